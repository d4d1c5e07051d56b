// Package tier answers access-tier questions about users: admin status,
// tier name and shared-account scope.
package tier

import (
	"strings"

	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/repo"
)

// Policy maps tier names to the maximum searchable date span in days.
// A non-positive entry means unbounded; unrecognized tiers fall back to
// DefaultMaxDays.
type Policy struct {
	MaxRangeDays   map[string]int
	DefaultMaxDays int
}

// DefaultPolicy returns the stock tier table: Regular=90, Premium=365,
// Admin unbounded.
func DefaultPolicy() Policy {
	return Policy{
		MaxRangeDays: map[string]int{
			models.TierRegular: 90,
			models.TierPremium: 365,
			models.TierAdmin:   0,
		},
		DefaultMaxDays: 90,
	}
}

// Limit resolves the maximum span for a tier. unbounded is true for tiers
// with no limit.
func (p Policy) Limit(tierName string) (maxDays int, unbounded bool) {
	days, ok := p.MaxRangeDays[tierName]
	if !ok {
		return p.DefaultMaxDays, false
	}
	if days <= 0 {
		return 0, true
	}
	return days, false
}

// Resolver is a pure read service over the user repository. No caching;
// called once per orchestrated search.
type Resolver struct {
	users repo.UserRepository
}

func NewResolver(users repo.UserRepository) *Resolver {
	return &Resolver{users: users}
}

func (r *Resolver) IsAdmin(userID int) (bool, error) {
	tierName, err := r.users.GetTierName(userID)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(tierName, models.TierAdmin), nil
}

func (r *Resolver) GetTier(userID int) (string, error) {
	return r.users.GetTierName(userID)
}

func (r *Resolver) GetSharedAccountIDs(userID int) ([]int, error) {
	return r.users.GetSharedAccountIDs(userID)
}
