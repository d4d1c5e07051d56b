package handlers

import (
	"github.com/rogerio-castellano/ledger-search/internal/search"
	"github.com/shopspring/decimal"
)

type SearchValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// validateSearchRequest enforces request shape before normalization runs.
// Policy (tier spans, full-text windows) is the orchestrator's job, not
// checked here.
func validateSearchRequest(req search.SearchRequest) []SearchValidationError {
	errs := []SearchValidationError{}
	if req.UserID <= 0 {
		errs = append(errs, SearchValidationError{Field: "UserId", Description: "UserId must be a positive integer"})
	}
	if req.MinAmount != nil && req.MinAmount.LessThan(decimal.Zero) {
		errs = append(errs, SearchValidationError{Field: "MinAmount", Description: "MinAmount cannot be negative"})
	}
	if req.MaxAmount != nil && req.MaxAmount.LessThan(decimal.Zero) {
		errs = append(errs, SearchValidationError{Field: "MaxAmount", Description: "MaxAmount cannot be negative"})
	}
	if req.FromDate != nil && req.ToDate != nil && req.FromDate.After(*req.ToDate) {
		errs = append(errs, SearchValidationError{Field: "FromDate", Description: "FromDate cannot be after ToDate"})
	}
	return errs
}
