package query

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewDefaults(t *testing.T) {
	q := New()

	if q.Sort != SortByDate || q.Direction != SortDesc {
		t.Errorf("expected date/desc defaults, got %s/%s", q.Sort, q.Direction)
	}
	if q.FulltextWindow != DefaultFulltextWindow {
		t.Errorf("expected default full-text window, got %v", q.FulltextWindow)
	}
	if q.Paginated() {
		t.Error("a fresh descriptor must not be paginated")
	}
	if q.Err() != nil {
		t.Errorf("unexpected error: %v", q.Err())
	}
}

func TestNarrowingDoesNotMutateReceiver(t *testing.T) {
	base := New()
	narrowed := base.WithTypes([]int{1, 2}).SearchRecipient("acme").Paginate(2, 10)

	if len(base.TypeIDs) != 0 || base.Recipient != "" || base.Paginated() {
		t.Error("narrowing calls must not mutate the original descriptor")
	}
	if len(narrowed.TypeIDs) != 2 || narrowed.Recipient != "acme" || narrowed.Page != 2 {
		t.Error("narrowed descriptor missing applied predicates")
	}
}

func TestExactAmountSuppressesRange(t *testing.T) {
	min := decimal.NewFromInt(10)
	max := decimal.NewFromInt(90)
	exact := decimal.NewFromInt(42)

	q := New().WithAmountRange(&min, &max, &exact)
	if q.ExactAmount == nil || !q.ExactAmount.Equal(exact) {
		t.Fatal("expected exact amount to be kept")
	}
	if q.MinAmount != nil || q.MaxAmount != nil {
		t.Error("exact amount must suppress min/max")
	}

	q = New().WithAmountRange(&min, &max, nil)
	if q.MinAmount == nil || q.MaxAmount == nil {
		t.Error("expected min/max to be kept without an exact amount")
	}
}

func TestEmptyFiltersAreNoOps(t *testing.T) {
	q := New().
		WithTypes(nil).
		WithStatuses([]int{}).
		WithPaymentMethods(nil).
		WithTags(nil).
		SearchRecipient("")

	if len(q.TypeIDs) != 0 || len(q.StatusIDs) != 0 || len(q.PaymentMethodIDs) != 0 ||
		len(q.TagIDs) != 0 || q.Recipient != "" {
		t.Error("empty filter arguments must leave the descriptor unchanged")
	}
}

func TestSortByWhitelist(t *testing.T) {
	tests := []struct {
		field, direction string
		wantField        SortField
		wantDirection    SortDirection
	}{
		{"amount", "asc", SortByAmount, SortAsc},
		{"status", "desc", SortByStatus, SortDesc},
		{"date", "asc", SortByDate, SortAsc},
		{"balance", "asc", SortByDate, SortDesc},
		{"amount", "sideways", SortByAmount, SortDesc},
		{"", "", SortByDate, SortDesc},
	}

	for _, tt := range tests {
		q := New().SortBy(tt.field, tt.direction)
		if q.Sort != tt.wantField || q.Direction != tt.wantDirection {
			t.Errorf("SortBy(%q, %q): got %s/%s, want %s/%s",
				tt.field, tt.direction, q.Sort, q.Direction, tt.wantField, tt.wantDirection)
		}
	}
}

func TestPaginateClamps(t *testing.T) {
	tests := []struct {
		page, pageSize int
		wantPage       int
		wantSize       int
	}{
		{0, 0, 1, DefaultPageSize},
		{-3, -1, 1, DefaultPageSize},
		{2, 5000, 2, MaxPageSize},
		{3, 25, 3, 25},
	}

	for _, tt := range tests {
		q := New().Paginate(tt.page, tt.pageSize)
		if q.Page != tt.wantPage || q.PageSize != tt.wantSize {
			t.Errorf("Paginate(%d, %d): got %d/%d, want %d/%d",
				tt.page, tt.pageSize, q.Page, q.PageSize, tt.wantPage, tt.wantSize)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := New().Offset(); got != 0 {
		t.Errorf("unpaginated offset: got %d, want 0", got)
	}
	if got := New().Paginate(3, 25).Offset(); got != 50 {
		t.Errorf("page 3 size 25: got offset %d, want 50", got)
	}
}

func TestSearchDescriptionWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -30)
	stale := now.AddDate(0, 0, -120)

	q := New().SearchDescription("rent", &recent, now)
	if q.Err() != nil || q.Description != "rent" {
		t.Errorf("recent window must pass, got err=%v", q.Err())
	}

	q = New().SearchDescription("rent", &stale, now)
	if !errors.Is(q.Err(), ErrFulltextWindowExceeded) {
		t.Errorf("expected ErrFulltextWindowExceeded, got %v", q.Err())
	}

	q = New().WithFulltextWindow(365 * 24 * time.Hour).SearchDescription("rent", &stale, now)
	if q.Err() != nil {
		t.Errorf("widened window must admit the stale from-date, got %v", q.Err())
	}

	q = New().SearchDescription("rent", nil, now)
	if q.Err() != nil || q.Description != "rent" {
		t.Error("description without a from-date is not window-checked")
	}
}

func TestStatusRank(t *testing.T) {
	q := New()

	want := map[int]int{1: 0, 2: 1, 3: 2, 4: 3}
	for statusID, rank := range want {
		if got := q.StatusRank(statusID); got != rank {
			t.Errorf("status %d: got rank %d, want %d", statusID, got, rank)
		}
	}
	if q.StatusRank(99) <= q.StatusRank(4) {
		t.Error("unknown status ids must rank after all known ones")
	}

	custom := New().WithStatusOrder(map[int]int{4: 0, 1: 1})
	if custom.StatusRank(4) != 0 {
		t.Error("expected the override ordering to apply")
	}
}

func TestLimitResults(t *testing.T) {
	if got := New().LimitResults(0).MaxResults; got != 0 {
		t.Errorf("zero cap must stay uncapped, got %d", got)
	}
	if got := New().LimitResults(10000).MaxResults; got != 10000 {
		t.Errorf("got cap %d, want 10000", got)
	}
}
