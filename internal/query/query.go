// Package query holds the composable search descriptor over the
// transaction dataset. Narrowing calls return a new value instead of
// mutating shared state; repositories compile the final descriptor into an
// executable query.
package query

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
	SortByStatus SortField = "status"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	MaxPageSize     = 100
	DefaultPageSize = 20

	// DefaultFulltextWindow bounds how far back a free-text description
	// search may reach, independent of the tier range limit.
	DefaultFulltextWindow = 90 * 24 * time.Hour
)

// ErrFulltextWindowExceeded is reported when a description search is
// combined with a from-date older than the full-text window.
var ErrFulltextWindowExceeded = errors.New("full-text search window limit exceeded")

// DefaultStatusOrder returns the fixed presentation ordering for status
// sorting: Pending < Completed < Failed < Cancelled. Unknown status ids
// sort last.
func DefaultStatusOrder() map[int]int {
	return map[int]int{
		1: 0, // Pending
		2: 1, // Completed
		3: 2, // Failed
		4: 3, // Cancelled
	}
}

// Query is an immutable predicate-set/sort/window descriptor. All narrowing
// calls are no-ops when their argument is absent or empty and compose
// conjunctively.
type Query struct {
	// Scope
	UserID           int
	Admin            bool
	SharedAccountIDs []int
	Scoped           bool

	// Predicates
	From             *time.Time
	To               *time.Time
	ExactAmount      *decimal.Decimal
	MinAmount        *decimal.Decimal
	MaxAmount        *decimal.Decimal
	TypeIDs          []int
	StatusIDs        []int
	PaymentMethodIDs []int
	TagIDs           []int
	Recipient        string
	Description      string

	// Ordering and windowing
	Sort        SortField
	Direction   SortDirection
	Page        int
	PageSize    int
	MaxResults  int
	StatusOrder map[int]int

	FulltextWindow time.Duration

	err error
}

func New() Query {
	return Query{
		Sort:           SortByDate,
		Direction:      SortDesc,
		StatusOrder:    DefaultStatusOrder(),
		FulltextWindow: DefaultFulltextWindow,
	}
}

// Err reports the first policy failure recorded while composing the
// descriptor. Repositories must refuse to execute a descriptor with a
// non-nil Err.
func (q Query) Err() error { return q.err }

// ForUser scopes the result set to rows owned by userID or belonging to
// one of the shared accounts. Administrators see all rows.
func (q Query) ForUser(userID int, isAdmin bool, sharedAccountIDs []int) Query {
	q.UserID = userID
	q.Admin = isAdmin
	q.SharedAccountIDs = sharedAccountIDs
	q.Scoped = true
	return q
}

// WithDateRange narrows to created-at within [from, to], inclusive on both
// bounds. Either bound may be nil.
func (q Query) WithDateRange(from, to *time.Time) Query {
	q.From = from
	q.To = to
	return q
}

// WithAmountRange narrows by amount. An exact amount suppresses min/max.
func (q Query) WithAmountRange(min, max, exact *decimal.Decimal) Query {
	if exact != nil {
		q.ExactAmount = exact
		q.MinAmount = nil
		q.MaxAmount = nil
		return q
	}
	q.MinAmount = min
	q.MaxAmount = max
	return q
}

func (q Query) WithTypes(typeIDs []int) Query {
	if len(typeIDs) > 0 {
		q.TypeIDs = typeIDs
	}
	return q
}

func (q Query) WithStatuses(statusIDs []int) Query {
	if len(statusIDs) > 0 {
		q.StatusIDs = statusIDs
	}
	return q
}

func (q Query) WithPaymentMethods(paymentMethodIDs []int) Query {
	if len(paymentMethodIDs) > 0 {
		q.PaymentMethodIDs = paymentMethodIDs
	}
	return q
}

// WithTags narrows to transactions associated with any of the given tags
// through the tag relation.
func (q Query) WithTags(tagIDs []int) Query {
	if len(tagIDs) > 0 {
		q.TagIDs = tagIDs
	}
	return q
}

// SearchRecipient narrows by case-insensitive substring match against
// recipient name or email.
func (q Query) SearchRecipient(recipient string) Query {
	if recipient != "" {
		q.Recipient = recipient
	}
	return q
}

// SearchDescription narrows by case-insensitive substring match against the
// description. A from-date older than the full-text window is a policy
// failure recorded on the descriptor.
func (q Query) SearchDescription(description string, from *time.Time, now time.Time) Query {
	if description == "" {
		return q
	}
	if from != nil && now.Sub(*from) > q.FulltextWindow {
		q.err = ErrFulltextWindowExceeded
		return q
	}
	q.Description = description
	return q
}

// WithFulltextWindow overrides the description-search window.
func (q Query) WithFulltextWindow(window time.Duration) Query {
	if window > 0 {
		q.FulltextWindow = window
	}
	return q
}

// WithStatusOrder overrides the status sort ordering.
func (q Query) WithStatusOrder(order map[int]int) Query {
	if len(order) > 0 {
		q.StatusOrder = order
	}
	return q
}

// SortBy replaces the ordering. Unknown fields fall back to date
// descending; an invalid direction falls back to descending.
func (q Query) SortBy(field, direction string) Query {
	switch SortDirection(direction) {
	case SortAsc, SortDesc:
		q.Direction = SortDirection(direction)
	default:
		q.Direction = SortDesc
	}
	switch SortField(field) {
	case SortByDate, SortByAmount, SortByStatus:
		q.Sort = SortField(field)
	default:
		q.Sort = SortByDate
		q.Direction = SortDesc
	}
	return q
}

// Paginate replaces the result window. Bounds are re-clamped here even if
// the request was already normalized.
func (q Query) Paginate(page, pageSize int) Query {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	q.Page = page
	q.PageSize = pageSize
	return q
}

// LimitResults caps the materialized result set regardless of pagination.
// Zero means no cap.
func (q Query) LimitResults(maxResults int) Query {
	if maxResults > 0 {
		q.MaxResults = maxResults
	}
	return q
}

// Offset returns the number of rows to skip, zero when unpaginated.
func (q Query) Offset() int {
	if q.Page < 1 || q.PageSize < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// Paginated reports whether a result window was requested.
func (q Query) Paginated() bool { return q.Page >= 1 && q.PageSize >= 1 }

// StatusRank resolves a status id against the configured ordering; unknown
// ids rank after all known ones.
func (q Query) StatusRank(statusID int) int {
	if rank, ok := q.StatusOrder[statusID]; ok {
		return rank
	}
	return int(^uint(0) >> 1)
}
