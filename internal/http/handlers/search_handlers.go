package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/ledger-search/internal/repo"
	"github.com/rogerio-castellano/ledger-search/internal/search"
)

// SearchTransactionsHandler godoc
// @Summary Search transactions with composable filters
// @Tags transactions
// @Produce json
// @Param fromDate query string false "Range start (RFC3339)"
// @Param toDate query string false "Range end (RFC3339)"
// @Param predefinedRange query string false "Named range shorthand, e.g. last30days"
// @Param minAmount query string false "Minimum amount"
// @Param maxAmount query string false "Maximum amount"
// @Param exactAmount query string false "Exact amount (suppresses min/max)"
// @Param typeIds query string false "Comma-separated transaction type ids"
// @Param statusIds query string false "Comma-separated status ids"
// @Param paymentMethodIds query string false "Comma-separated payment method ids"
// @Param tagIds query string false "Comma-separated tag ids"
// @Param recipient query string false "Recipient name/email substring"
// @Param description query string false "Description substring"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (max 100)"
// @Param sortBy query string false "date|amount|status"
// @Param sortDirection query string false "asc|desc"
// @Success 200 {object} search.SearchResponse
// @Failure 400 {object} []SearchValidationError
// @Failure 404 {string} string "Unknown user"
// @Failure 422 {string} string "Policy violation"
// @Router /api/transactions/search [get]
// @Security BearerAuth
func SearchTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromRequest(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	req, parseErrs := parseSearchRequest(r, userID)
	if validationErrs := append(parseErrs, validateSearchRequest(req)...); len(validationErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrs)
		return
	}

	resp, err := searchService.Search(r.Context(), req)
	if err != nil {
		writeSearchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SearchJobHandler godoc
// @Summary Retrieve the outcome of an asynchronous search job
// @Tags transactions
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} search.SearchResponse
// @Failure 400 {string} string "Invalid job id"
// @Failure 404 {string} string "Unknown job"
// @Router /api/transactions/search/job/{jobId} [get]
// @Security BearerAuth
func SearchJobHandler(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(chi.URLParam(r, "jobId"))
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	resp, err := searchService.Job(jobID)
	if err != nil {
		writeSearchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSearchError(w http.ResponseWriter, err error) {
	var policyErr *search.PolicyError
	switch {
	case errors.As(err, &policyErr):
		http.Error(w, policyErr.Reason, http.StatusUnprocessableEntity)
	case errors.Is(err, repo.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrJobNotFound):
		http.Error(w, "job not found", http.StatusNotFound)
	default:
		http.Error(w, "search failed", http.StatusInternalServerError)
	}
}
