package tier

import (
	"errors"
	"testing"

	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/repo"
)

func TestPolicyLimit(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		tierName      string
		wantDays      int
		wantUnbounded bool
	}{
		{models.TierRegular, 90, false},
		{models.TierPremium, 365, false},
		{models.TierAdmin, 0, true},
		{"Gold", 90, false},
		{"", 90, false},
	}

	for _, tt := range tests {
		days, unbounded := p.Limit(tt.tierName)
		if days != tt.wantDays || unbounded != tt.wantUnbounded {
			t.Errorf("Limit(%q): got %d/%v, want %d/%v",
				tt.tierName, days, unbounded, tt.wantDays, tt.wantUnbounded)
		}
	}
}

func TestResolverAdminCheck(t *testing.T) {
	users := repo.NewInMemoryUserRepository()
	users.AddUser(models.User{ID: 1, TierName: models.TierRegular})
	users.AddUser(models.User{ID: 2, TierName: "ADMIN"})
	r := NewResolver(users)

	if isAdmin, err := r.IsAdmin(1); err != nil || isAdmin {
		t.Errorf("regular user: got %v/%v", isAdmin, err)
	}
	if isAdmin, err := r.IsAdmin(2); err != nil || !isAdmin {
		t.Errorf("admin check must be case-insensitive: got %v/%v", isAdmin, err)
	}
	if _, err := r.IsAdmin(99); !errors.Is(err, repo.ErrUserNotFound) {
		t.Errorf("unknown user: expected ErrUserNotFound, got %v", err)
	}
}

func TestResolverSharedAccounts(t *testing.T) {
	users := repo.NewInMemoryUserRepository()
	users.AddUser(models.User{ID: 1, TierName: models.TierRegular})
	users.ShareAccount(1, 55)
	users.ShareAccount(1, 56)
	r := NewResolver(users)

	ids, err := r.GetSharedAccountIDs(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 shared accounts, got %v", ids)
	}
}
