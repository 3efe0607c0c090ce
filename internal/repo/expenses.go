package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
)

type Expenses struct{ pool *pgxpool.Pool }

func NewExpenses(p *pgxpool.Pool) *Expenses { return &Expenses{pool: p} }

func (r *Expenses) InsertExpense(ctx context.Context, e domain.ExpenseRecord) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO expenses(category, amount, note, created_at)
		VALUES($1,$2,$3,$4)
		RETURNING id
	`, e.Category, e.Amount, e.Note, e.CreatedAt).Scan(&id)
	return id, err
}

// ExpensesIn returns the expenses whose creation date falls in p, newest first.
func (r *Expenses) ExpensesIn(ctx context.Context, p domain.Period) ([]domain.ExpenseRecord, error) {
	q := `
		SELECT id, category, amount, note, created_at, updated_at
		FROM expenses
		WHERE created_at::date BETWEEN $1 AND $2
		ORDER BY created_at DESC
	`
	args := []any{p.Start, p.End}
	if p.ByMonth() {
		q = `
			SELECT id, category, amount, note, created_at, updated_at
			FROM expenses
			WHERE to_char(created_at, 'YYYY-MM') = $1
			ORDER BY created_at DESC
		`
		args = []any{p.MonthKey()}
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ExpenseRecord
	for rows.Next() {
		var e domain.ExpenseRecord
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
