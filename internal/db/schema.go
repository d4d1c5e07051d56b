package db

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates all tables and indexes if they do not exist. Safe
// to run on every startup.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS user_tiers (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			tier_id INTEGER NOT NULL REFERENCES user_tiers(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id SERIAL PRIMARY KEY,
			account_number TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS user_accounts (
			user_id INTEGER NOT NULL REFERENCES users(id),
			account_id INTEGER NOT NULL REFERENCES accounts(id),
			PRIMARY KEY (user_id, account_id)
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_types (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_statuses (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS payment_methods (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			account_id INTEGER NOT NULL REFERENCES accounts(id),
			amount NUMERIC(18,2) NOT NULL,
			type_id INTEGER NOT NULL REFERENCES transaction_types(id),
			status_id INTEGER NOT NULL REFERENCES transaction_statuses(id),
			payment_method_id INTEGER NOT NULL REFERENCES payment_methods(id),
			recipient_name TEXT NOT NULL DEFAULT '',
			recipient_email TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_created
			ON transactions (user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_created
			ON transactions (account_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS transaction_tags (
			transaction_id INTEGER NOT NULL REFERENCES transactions(id),
			tag_id INTEGER NOT NULL REFERENCES tags(id),
			PRIMARY KEY (transaction_id, tag_id)
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_search_jobs (
			id UUID PRIMARY KEY,
			account_id INTEGER NOT NULL,
			request_json TEXT NOT NULL,
			result_json TEXT,
			status TEXT NOT NULL,
			failure_reason TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			completed_at TIMESTAMPTZ
		)`,
		// Closes the check-then-insert dedup race: at most one queued job
		// per (account, serialized request).
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_search_jobs_queued_dedup
			ON transaction_search_jobs (account_id, request_json)
			WHERE status = 'Queued'`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
