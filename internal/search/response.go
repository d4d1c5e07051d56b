package search

import (
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	ID              int             `json:"id"`
	AccountID       int             `json:"account_id"`
	Amount          decimal.Decimal `json:"amount"`
	TypeID          int             `json:"type_id"`
	StatusID        int             `json:"status_id"`
	PaymentMethodID int             `json:"payment_method_id"`
	RecipientName   string          `json:"recipient_name"`
	RecipientEmail  string          `json:"recipient_email"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
	Tags            []string        `json:"tags"`
}

// SearchInfo is observability metadata attached to every response. JobID
// is the nil uuid unless the async path was used.
type SearchInfo struct {
	JobID          uuid.UUID     `json:"job_id"`
	QueryTime      time.Duration `json:"query_time"`
	AppliedFilters string        `json:"applied_filters"`
}

type SearchResponse struct {
	Results    []TransactionResponse `json:"results"`
	TotalCount int                   `json:"total_count"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	HasMore    bool                  `json:"has_more"`
	Metadata   SearchInfo            `json:"metadata"`
}

func toTransactionResponse(t models.Transaction) TransactionResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TransactionResponse{
		ID:              t.ID,
		AccountID:       t.AccountID,
		Amount:          t.Amount,
		TypeID:          t.TypeID,
		StatusID:        t.StatusID,
		PaymentMethodID: t.PaymentMethodID,
		RecipientName:   t.RecipientName,
		RecipientEmail:  t.RecipientEmail,
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
		Tags:            tags,
	}
}

// emptyResponse is the shape returned for queued and pending jobs.
func emptyResponse(jobID uuid.UUID, appliedFilters string) SearchResponse {
	return SearchResponse{
		Results: []TransactionResponse{},
		Metadata: SearchInfo{
			JobID:          jobID,
			AppliedFilters: appliedFilters,
		},
	}
}
