package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
)

type Stats struct{ pool *pgxpool.Pool }

func NewStats(p *pgxpool.Pool) *Stats { return &Stats{pool: p} }

// Overall returns lifetime counts and sums across both tables.
func (r *Stats) Overall(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM sales),
			(SELECT COALESCE(SUM(amount), 0) FROM sales),
			(SELECT COUNT(*) FROM expenses),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses)
	`).Scan(&s.SaleCount, &s.SaleTotal, &s.ExpenseCount, &s.ExpenseTotal)
	return s, err
}
