package repo

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/query"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) Count(q query.Query) (int, error) {
	if err := q.Err(); err != nil {
		return 0, err
	}
	whereClause, args := buildWhereClause(q)
	countQuery := "SELECT COUNT(*) FROM transactions WHERE 1=1" + whereClause

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

func (r *PostgresTransactionRepository) Fetch(q query.Query) ([]models.Transaction, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	mainQuery, args := buildMainQuery(q)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, mainQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.Amount, &t.TypeID, &t.StatusID,
			&t.PaymentMethodID, &t.RecipientName, &t.RecipientEmail, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.resolveTags(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	return transactions, nil
}

// buildWhereClause constructs the filter conditions and collects arguments.
func buildWhereClause(q query.Query) (string, []any) {
	clause := ""
	args := []any{}
	argIdx := 1

	if q.Scoped && !q.Admin {
		if len(q.SharedAccountIDs) > 0 {
			placeholders, shared := intPlaceholders(q.SharedAccountIDs, argIdx+1)
			clause += fmt.Sprintf(" AND (user_id = $%d OR account_id IN (%s))", argIdx, placeholders)
			args = append(args, q.UserID)
			args = append(args, shared...)
			argIdx += 1 + len(q.SharedAccountIDs)
		} else {
			clause += fmt.Sprintf(" AND user_id = $%d", argIdx)
			args = append(args, q.UserID)
			argIdx++
		}
	}
	if q.From != nil {
		clause += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *q.From)
		argIdx++
	}
	if q.To != nil {
		clause += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *q.To)
		argIdx++
	}
	if q.ExactAmount != nil {
		clause += fmt.Sprintf(" AND amount = $%d", argIdx)
		args = append(args, *q.ExactAmount)
		argIdx++
	} else {
		if q.MinAmount != nil {
			clause += fmt.Sprintf(" AND amount >= $%d", argIdx)
			args = append(args, *q.MinAmount)
			argIdx++
		}
		if q.MaxAmount != nil {
			clause += fmt.Sprintf(" AND amount <= $%d", argIdx)
			args = append(args, *q.MaxAmount)
			argIdx++
		}
	}
	for _, membership := range []struct {
		column string
		ids    []int
	}{
		{"type_id", q.TypeIDs},
		{"status_id", q.StatusIDs},
		{"payment_method_id", q.PaymentMethodIDs},
	} {
		if len(membership.ids) == 0 {
			continue
		}
		placeholders, vals := intPlaceholders(membership.ids, argIdx)
		clause += fmt.Sprintf(" AND %s IN (%s)", membership.column, placeholders)
		args = append(args, vals...)
		argIdx += len(membership.ids)
	}
	if len(q.TagIDs) > 0 {
		placeholders, vals := intPlaceholders(q.TagIDs, argIdx)
		clause += fmt.Sprintf(" AND id IN (SELECT transaction_id FROM transaction_tags WHERE tag_id IN (%s))", placeholders)
		args = append(args, vals...)
		argIdx += len(q.TagIDs)
	}
	if q.Recipient != "" {
		clause += fmt.Sprintf(" AND (recipient_name ILIKE $%d OR recipient_email ILIKE $%d)", argIdx, argIdx+1)
		pattern := "%" + q.Recipient + "%"
		args = append(args, pattern, pattern)
		argIdx += 2
	}
	if q.Description != "" {
		clause += fmt.Sprintf(" AND description ILIKE $%d", argIdx)
		args = append(args, "%"+q.Description+"%")
		argIdx++
	}

	return clause, args
}

// buildMainQuery constructs the SELECT with ordering and windowing.
func buildMainQuery(q query.Query) (string, []any) {
	whereClause, args := buildWhereClause(q)
	sel := `SELECT id, user_id, account_id, amount, type_id, status_id, payment_method_id,
		recipient_name, recipient_email, description, created_at FROM transactions WHERE 1=1`
	sel += whereClause
	sel += " ORDER BY " + orderClause(q)

	argIdx := len(args) + 1
	if q.Paginated() {
		limit := q.PageSize
		if q.MaxResults > 0 && q.MaxResults < limit {
			limit = q.MaxResults
		}
		sel += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
		argIdx++
		if q.Offset() > 0 {
			sel += fmt.Sprintf(" OFFSET $%d", argIdx)
			args = append(args, q.Offset())
		}
	} else if q.MaxResults > 0 {
		sel += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, q.MaxResults)
	}

	return sel, args
}

func orderClause(q query.Query) string {
	dir := "DESC"
	if q.Direction == query.SortAsc {
		dir = "ASC"
	}
	switch q.Sort {
	case query.SortByStatus:
		// The rank values come from the injected ordering table, not from
		// user input, so they are rendered inline.
		ids := make([]int, 0, len(q.StatusOrder))
		for id := range q.StatusOrder {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		var b strings.Builder
		b.WriteString("CASE status_id")
		for _, id := range ids {
			fmt.Fprintf(&b, " WHEN %d THEN %d", id, q.StatusOrder[id])
		}
		fmt.Fprintf(&b, " ELSE %d END, id", int(^uint(0)>>1))
		return b.String()
	case query.SortByAmount:
		return "amount " + dir + ", id"
	default:
		return "created_at " + dir + ", id"
	}
}

// resolveTags loads tag names for the fetched page in one extra query.
func (r *PostgresTransactionRepository) resolveTags(ctx context.Context, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	index := make(map[int]*models.Transaction, len(transactions))
	ids := make([]int, 0, len(transactions))
	for i := range transactions {
		index[transactions[i].ID] = &transactions[i]
		ids = append(ids, transactions[i].ID)
	}

	placeholders, vals := intPlaceholders(ids, 1)
	tagQuery := fmt.Sprintf(`SELECT tt.transaction_id, tg.name
		FROM transaction_tags tt JOIN tags tg ON tg.id = tt.tag_id
		WHERE tt.transaction_id IN (%s) ORDER BY tg.name`, placeholders)

	rows, err := r.db.QueryContext(ctx, tagQuery, vals...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var transactionID int
		var name string
		if err := rows.Scan(&transactionID, &name); err != nil {
			return err
		}
		if t, ok := index[transactionID]; ok {
			t.Tags = append(t.Tags, name)
		}
	}
	return rows.Err()
}

func intPlaceholders(ids []int, startIdx int) (string, []any) {
	parts := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("$%d", startIdx+i)
		args[i] = id
	}
	return strings.Join(parts, ","), args
}
