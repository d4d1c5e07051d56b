package search

import (
	"time"

	"github.com/shopspring/decimal"
)

// SearchRequest carries the raw filter set for one search. Normalization
// produces a new value rather than mutating in place; the serialized form
// doubles as the job payload and the dedup key.
type SearchRequest struct {
	UserID int `json:"user_id"`

	// Date range
	FromDate        *time.Time `json:"from_date,omitempty"`
	ToDate          *time.Time `json:"to_date,omitempty"`
	PredefinedRange string     `json:"predefined_range,omitempty"`

	// Amount
	MinAmount   *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount   *decimal.Decimal `json:"max_amount,omitempty"`
	ExactAmount *decimal.Decimal `json:"exact_amount,omitempty"`

	// Filters
	TypeIDs          []int  `json:"type_ids,omitempty"`
	StatusIDs        []int  `json:"status_ids,omitempty"`
	PaymentMethodIDs []int  `json:"payment_method_ids,omitempty"`
	TagIDs           []int  `json:"tag_ids,omitempty"`
	Recipient        string `json:"recipient,omitempty"`
	Description      string `json:"description,omitempty"`

	// Pagination
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	// Sorting
	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"`
}
