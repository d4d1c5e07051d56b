package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/ledger-search/internal/models"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(id int) (models.User, error) {
	query := `SELECT u.id, u.full_name, u.email, u.tier_id, COALESCE(t.name, ''), u.created_at
		FROM users u LEFT JOIN user_tiers t ON t.id = u.tier_id WHERE u.id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.FullName, &u.Email, &u.TierID, &u.TierName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *PostgresUserRepository) GetTierName(userID int) (string, error) {
	user, err := r.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user.TierName == "" {
		return "", ErrUserNotFound
	}
	return user.TierName, nil
}

func (r *PostgresUserRepository) GetSharedAccountIDs(userID int) ([]int, error) {
	query := `SELECT account_id FROM user_accounts WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accountIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		accountIDs = append(accountIDs, id)
	}
	return accountIDs, rows.Err()
}
