package models

// Reference/lookup entities. Seeded once at bootstrap, read-only afterwards.

// Well-known transaction status ids. The status sort order over these is
// injectable (see query.DefaultStatusOrder), not derived from the ids.
const (
	StatusPending   = 1
	StatusCompleted = 2
	StatusFailed    = 3
	StatusCancelled = 4
)

type TransactionType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TransactionStatus struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PaymentMethod struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TransactionTag associates a transaction with a tag.
type TransactionTag struct {
	TransactionID int `json:"transaction_id"`
	TagID         int `json:"tag_id"`
}
