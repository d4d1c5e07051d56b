package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/ledger-search/internal/search"
	"github.com/shopspring/decimal"
)

// parseSearchRequest maps the query string onto a search request. Malformed
// values are collected as field errors rather than failing fast.
func parseSearchRequest(r *http.Request, userID int) (search.SearchRequest, []SearchValidationError) {
	q := r.URL.Query()
	errs := []SearchValidationError{}

	req := search.SearchRequest{
		UserID:          userID,
		PredefinedRange: q.Get("predefinedRange"),
		Recipient:       q.Get("recipient"),
		Description:     q.Get("description"),
		SortBy:          q.Get("sortBy"),
		SortDirection:   q.Get("sortDirection"),
	}

	req.FromDate = parseTimeParam(q.Get("fromDate"), "fromDate", &errs)
	req.ToDate = parseTimeParam(q.Get("toDate"), "toDate", &errs)
	req.MinAmount = parseDecimalParam(q.Get("minAmount"), "minAmount", &errs)
	req.MaxAmount = parseDecimalParam(q.Get("maxAmount"), "maxAmount", &errs)
	req.ExactAmount = parseDecimalParam(q.Get("exactAmount"), "exactAmount", &errs)
	req.TypeIDs = parseIDListParam(q.Get("typeIds"), "typeIds", &errs)
	req.StatusIDs = parseIDListParam(q.Get("statusIds"), "statusIds", &errs)
	req.PaymentMethodIDs = parseIDListParam(q.Get("paymentMethodIds"), "paymentMethodIds", &errs)
	req.TagIDs = parseIDListParam(q.Get("tagIds"), "tagIds", &errs)
	req.Page = parseIntParam(q.Get("page"), "page", &errs)
	req.PageSize = parseIntParam(q.Get("pageSize"), "pageSize", &errs)

	return req, errs
}

func parseTimeParam(value, field string, errs *[]SearchValidationError) *time.Time {
	if value == "" {
		return nil
	}
	// URL query decoding turns + into a space inside RFC3339 offsets;
	// reverse that before parsing.
	if len(value) == len(time.RFC3339) && value[len(value)-6] == ' ' {
		value = value[:len(value)-6] + "+" + value[len(value)-5:]
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		*errs = append(*errs, SearchValidationError{Field: field, Description: "must be an RFC3339 timestamp"})
		return nil
	}
	return &t
}

func parseDecimalParam(value, field string, errs *[]SearchValidationError) *decimal.Decimal {
	if value == "" {
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		*errs = append(*errs, SearchValidationError{Field: field, Description: "must be a decimal number"})
		return nil
	}
	return &d
}

func parseIDListParam(value, field string, errs *[]SearchValidationError) []int {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			*errs = append(*errs, SearchValidationError{Field: field, Description: "must be a comma-separated list of integers"})
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

func parseIntParam(value, field string, errs *[]SearchValidationError) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, SearchValidationError{Field: field, Description: "must be an integer"})
		return 0
	}
	return n
}
