package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single ledger entry. This subsystem only reads
// transactions; they are written by the ingestion side.
type Transaction struct {
	ID              int             `json:"id"`
	UserID          int             `json:"user_id"`
	AccountID       int             `json:"account_id"`
	Amount          decimal.Decimal `json:"amount"`
	TypeID          int             `json:"type_id"`
	StatusID        int             `json:"status_id"`
	PaymentMethodID int             `json:"payment_method_id"`
	RecipientName   string          `json:"recipient_name"`
	RecipientEmail  string          `json:"recipient_email"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
	Tags            []string        `json:"tags,omitempty"` // tag names, resolved on fetch
}
