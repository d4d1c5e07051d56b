package repo

import (
	"sort"
	"strings"
	"sync"

	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/query"
)

// InMemoryTransactionRepository evaluates search descriptors over an
// in-memory slice. Used by the test suites.
type InMemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	tagNames     map[int]string // tag id -> name
	assoc        map[int][]int  // transaction id -> tag ids

	CountCalls int
	FetchCalls int
}

func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{
		tagNames: make(map[int]string),
		assoc:    make(map[int][]int),
	}
}

func (r *InMemoryTransactionRepository) Add(t models.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, t)
}

func (r *InMemoryTransactionRepository) AddTag(id int, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tagNames[id] = name
}

func (r *InMemoryTransactionRepository) Associate(transactionID, tagID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assoc[transactionID] = append(r.assoc[transactionID], tagID)
}

func (r *InMemoryTransactionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = nil
	r.tagNames = make(map[int]string)
	r.assoc = make(map[int][]int)
	r.CountCalls = 0
	r.FetchCalls = 0
}

func (r *InMemoryTransactionRepository) Count(q query.Query) (int, error) {
	if err := q.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	r.CountCalls++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filter(q)), nil
}

func (r *InMemoryTransactionRepository) Fetch(q query.Query) ([]models.Transaction, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.FetchCalls++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filter(q)
	sortTransactions(matched, q)

	if q.MaxResults > 0 && len(matched) > q.MaxResults {
		matched = matched[:q.MaxResults]
	}
	if q.Paginated() {
		offset := q.Offset()
		if offset >= len(matched) {
			return []models.Transaction{}, nil
		}
		end := offset + q.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[offset:end]
	}

	page := make([]models.Transaction, len(matched))
	copy(page, matched)
	for i := range page {
		page[i].Tags = r.tagsOf(page[i].ID)
	}
	return page, nil
}

func (r *InMemoryTransactionRepository) filter(q query.Query) []models.Transaction {
	var matched []models.Transaction
	for _, t := range r.transactions {
		if r.matches(q, t) {
			matched = append(matched, t)
		}
	}
	return matched
}

func (r *InMemoryTransactionRepository) matches(q query.Query, t models.Transaction) bool {
	if q.Scoped && !q.Admin {
		if t.UserID != q.UserID && !containsInt(q.SharedAccountIDs, t.AccountID) {
			return false
		}
	}
	if q.From != nil && t.CreatedAt.Before(*q.From) {
		return false
	}
	if q.To != nil && t.CreatedAt.After(*q.To) {
		return false
	}
	if q.ExactAmount != nil {
		if !t.Amount.Equal(*q.ExactAmount) {
			return false
		}
	} else {
		if q.MinAmount != nil && t.Amount.LessThan(*q.MinAmount) {
			return false
		}
		if q.MaxAmount != nil && t.Amount.GreaterThan(*q.MaxAmount) {
			return false
		}
	}
	if len(q.TypeIDs) > 0 && !containsInt(q.TypeIDs, t.TypeID) {
		return false
	}
	if len(q.StatusIDs) > 0 && !containsInt(q.StatusIDs, t.StatusID) {
		return false
	}
	if len(q.PaymentMethodIDs) > 0 && !containsInt(q.PaymentMethodIDs, t.PaymentMethodID) {
		return false
	}
	if len(q.TagIDs) > 0 {
		found := false
		for _, tagID := range r.assoc[t.ID] {
			if containsInt(q.TagIDs, tagID) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Recipient != "" {
		needle := strings.ToLower(q.Recipient)
		if !strings.Contains(strings.ToLower(t.RecipientName), needle) &&
			!strings.Contains(strings.ToLower(t.RecipientEmail), needle) {
			return false
		}
	}
	if q.Description != "" {
		if !strings.Contains(strings.ToLower(t.Description), strings.ToLower(q.Description)) {
			return false
		}
	}
	return true
}

func sortTransactions(transactions []models.Transaction, q query.Query) {
	desc := q.Direction == query.SortDesc
	switch q.Sort {
	case query.SortByStatus:
		sort.SliceStable(transactions, func(i, j int) bool {
			return q.StatusRank(transactions[i].StatusID) < q.StatusRank(transactions[j].StatusID)
		})
	case query.SortByAmount:
		sort.SliceStable(transactions, func(i, j int) bool {
			if desc {
				return transactions[i].Amount.GreaterThan(transactions[j].Amount)
			}
			return transactions[i].Amount.LessThan(transactions[j].Amount)
		})
	default:
		sort.SliceStable(transactions, func(i, j int) bool {
			if desc {
				return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
			}
			return transactions[i].CreatedAt.Before(transactions[j].CreatedAt)
		})
	}
}

func (r *InMemoryTransactionRepository) tagsOf(transactionID int) []string {
	tagIDs := r.assoc[transactionID]
	if len(tagIDs) == 0 {
		return nil
	}
	names := make([]string, 0, len(tagIDs))
	for _, id := range tagIDs {
		if name, ok := r.tagNames[id]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
