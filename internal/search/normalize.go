package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/ledger-search/internal/query"
	"github.com/rogerio-castellano/ledger-search/internal/tier"
)

// Normalize resolves a raw request into a fully-defaulted one under the
// tier policy: clamped pagination, validated sort, resolved date bounds
// (both present, ordered) and the exact-amount precedence rule. It returns
// a new value and is idempotent for a fixed now.
func Normalize(req SearchRequest, tierName string, policy tier.Policy, now time.Time) (SearchRequest, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = query.DefaultPageSize
	}
	if req.PageSize > query.MaxPageSize {
		req.PageSize = query.MaxPageSize
	}
	switch strings.ToLower(req.SortBy) {
	case "date", "amount", "status":
		req.SortBy = strings.ToLower(req.SortBy)
	default:
		req.SortBy = "date"
	}
	switch strings.ToLower(req.SortDirection) {
	case "asc", "desc":
		req.SortDirection = strings.ToLower(req.SortDirection)
	default:
		req.SortDirection = "desc"
	}

	// Exact amount takes precedence over min/max.
	if req.ExactAmount != nil {
		req.MinAmount = nil
		req.MaxAmount = nil
	}

	if req.FromDate == nil && req.PredefinedRange != "" {
		req = resolvePredefinedRange(req, now)
	}

	// Default to the trailing 30 days when still unset.
	from := now.AddDate(0, 0, -30)
	if req.FromDate != nil {
		from = *req.FromDate
	}
	to := now
	if req.ToDate != nil {
		to = *req.ToDate
	}
	if from.After(to) {
		from, to = to, from
	}

	maxDays, unbounded := policy.Limit(tierName)
	if !unbounded && to.Sub(from) > time.Duration(maxDays)*24*time.Hour {
		return SearchRequest{}, &PolicyError{
			Reason:  fmt.Sprintf("date range exceeds allowed maximum of %d days for your user tier", maxDays),
			MaxDays: maxDays,
		}
	}

	req.FromDate = &from
	req.ToDate = &to
	return req, nil
}

// resolvePredefinedRange expands a named shorthand into concrete bounds.
// Unrecognized tags leave the request unchanged.
func resolvePredefinedRange(req SearchRequest, now time.Time) SearchRequest {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	setRange := func(from, to time.Time) SearchRequest {
		req.FromDate = &from
		req.ToDate = &to
		return req
	}

	switch strings.ToLower(req.PredefinedRange) {
	case "today":
		return setRange(midnight, now)
	case "yesterday":
		return setRange(midnight.AddDate(0, 0, -1), midnight.Add(-time.Nanosecond))
	case "last7days":
		return setRange(now.AddDate(0, 0, -7), now)
	case "last30days":
		return setRange(now.AddDate(0, 0, -30), now)
	case "thismonth":
		return setRange(startOfMonth, now)
	case "lastmonth":
		return setRange(startOfMonth.AddDate(0, -1, 0), startOfMonth.Add(-time.Nanosecond))
	case "thisyear":
		return setRange(startOfYear, now)
	case "lastyear":
		return setRange(
			time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, now.Location()),
			time.Date(now.Year()-1, 12, 31, 23, 59, 59, 999*int(time.Millisecond), now.Location()),
		)
	default:
		return req
	}
}
