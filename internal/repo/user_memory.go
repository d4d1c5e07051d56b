package repo

import (
	"github.com/rogerio-castellano/ledger-search/internal/models"
)

type InMemoryUserRepository struct {
	users  []models.User
	shares map[int][]int // user id -> shared account ids
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{shares: make(map[int][]int)}
}

func (r *InMemoryUserRepository) AddUser(u models.User) {
	r.users = append(r.users, u)
}

func (r *InMemoryUserRepository) ShareAccount(userID, accountID int) {
	r.shares[userID] = append(r.shares[userID], accountID)
}

func (r *InMemoryUserRepository) GetByID(id int) (models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetTierName(userID int) (string, error) {
	u, err := r.GetByID(userID)
	if err != nil {
		return "", err
	}
	if u.TierName == "" {
		return "", ErrUserNotFound
	}
	return u.TierName, nil
}

func (r *InMemoryUserRepository) GetSharedAccountIDs(userID int) ([]int, error) {
	return r.shares[userID], nil
}
