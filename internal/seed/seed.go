// Package seed populates the reference/lookup tables with explicit
// per-entity loader functions. Each loader is idempotent.
package seed

import (
	"database/sql"
	"fmt"
)

// Load runs all reference-data loaders in dependency order.
func Load(db *sql.DB) error {
	loaders := []struct {
		name string
		fn   func(*sql.DB) error
	}{
		{"user tiers", LoadUserTiers},
		{"transaction statuses", LoadTransactionStatuses},
		{"transaction types", LoadTransactionTypes},
		{"payment methods", LoadPaymentMethods},
		{"tags", LoadTags},
	}
	for _, loader := range loaders {
		if err := loader.fn(db); err != nil {
			return fmt.Errorf("failed to seed %s: %w", loader.name, err)
		}
	}
	return nil
}

func LoadUserTiers(db *sql.DB) error {
	return insertNamed(db, "user_tiers", map[int]string{
		1: "Regular",
		2: "Premium",
		3: "Admin",
	})
}

func LoadTransactionStatuses(db *sql.DB) error {
	return insertNamed(db, "transaction_statuses", map[int]string{
		1: "Pending",
		2: "Completed",
		3: "Failed",
		4: "Cancelled",
	})
}

func LoadTransactionTypes(db *sql.DB) error {
	return insertNamed(db, "transaction_types", map[int]string{
		1: "Deposit",
		2: "Withdrawal",
		3: "Transfer",
		4: "Payment",
	})
}

func LoadPaymentMethods(db *sql.DB) error {
	return insertNamed(db, "payment_methods", map[int]string{
		1: "Card",
		2: "BankTransfer",
		3: "Wallet",
		4: "Cash",
	})
}

func LoadTags(db *sql.DB) error {
	return insertNamed(db, "tags", map[int]string{
		1: "Groceries",
		2: "Utilities",
		3: "Travel",
		4: "Salary",
		5: "Subscription",
	})
}

// LoadDemoData seeds a small set of users, accounts, shares and
// transactions for local development. Idempotent like the reference
// loaders; not called by Load so production startups stay lookup-only.
func LoadDemoData(db *sql.DB) error {
	statements := []struct {
		stmt string
		args []any
	}{
		{`INSERT INTO users (id, full_name, email, tier_id) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			[]any{1, "Ada Moreira", "ada@example.com", 1}},
		{`INSERT INTO users (id, full_name, email, tier_id) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			[]any{2, "Pat Silva", "pat@example.com", 2}},
		{`INSERT INTO users (id, full_name, email, tier_id) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			[]any{3, "Alex Costa", "alex@example.com", 3}},
		{`INSERT INTO accounts (id, account_number) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			[]any{10, "ACC-0010"}},
		{`INSERT INTO accounts (id, account_number) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			[]any{20, "ACC-0020"}},
		{`INSERT INTO user_accounts (user_id, account_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{1, 20}},
		{`INSERT INTO transactions (id, user_id, account_id, amount, type_id, status_id, payment_method_id, recipient_name, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING`,
			[]any{1, 1, 10, "125.40", 4, 2, 1, "Acme Utilities", "march electricity"}},
		{`INSERT INTO transactions (id, user_id, account_id, amount, type_id, status_id, payment_method_id, recipient_name, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING`,
			[]any{2, 2, 20, "2500.00", 1, 2, 2, "Payroll Inc", "salary"}},
		{`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{1, 2}},
		{`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{2, 4}},
	}
	for _, s := range statements {
		if _, err := db.Exec(s.stmt, s.args...); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	return nil
}

func insertNamed(db *sql.DB, table string, rows map[int]string) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, table)
	for id, name := range rows {
		if _, err := db.Exec(stmt, id, name); err != nil {
			return err
		}
	}
	return nil
}
