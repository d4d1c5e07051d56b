package repo

import (
	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/query"
)

// TransactionRepository compiles and executes search descriptors against
// the transaction dataset.
type TransactionRepository interface {
	// Count returns the size of the filtered but unpaginated result set.
	Count(q query.Query) (int, error)
	// Fetch returns the filtered, sorted and paginated page with each
	// row's tag names resolved.
	Fetch(q query.Query) ([]models.Transaction, error)
}
