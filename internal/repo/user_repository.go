package repo

import (
	"errors"

	"github.com/rogerio-castellano/ledger-search/internal/models"
)

// ErrUserNotFound is returned when a user or their tier record is missing.
var ErrUserNotFound = errors.New("user not found")

// UserRepository exposes the user and account-share data needed to resolve
// access tiers.
type UserRepository interface {
	GetByID(id int) (models.User, error)
	// GetTierName returns the name of the user's tier, failing with
	// ErrUserNotFound when the user or the tier record does not exist.
	GetTierName(userID int) (string, error)
	GetSharedAccountIDs(userID int) ([]int, error)
}
