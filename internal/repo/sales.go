package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
)

type Sales struct{ pool *pgxpool.Pool }

func NewSales(p *pgxpool.Pool) *Sales { return &Sales{pool: p} }

func (r *Sales) InsertSale(ctx context.Context, s domain.SaleRecord) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sales(name, phone, service, amount, note, created_at)
		VALUES($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, s.Name, s.Phone, s.Service, s.Amount, s.Note, s.CreatedAt).Scan(&id)
	return id, err
}

// SalesIn returns the sales whose creation date falls in p, newest first.
func (r *Sales) SalesIn(ctx context.Context, p domain.Period) ([]domain.SaleRecord, error) {
	q := `
		SELECT id, name, phone, service, amount, note, created_at, updated_at
		FROM sales
		WHERE created_at::date BETWEEN $1 AND $2
		ORDER BY created_at DESC
	`
	args := []any{p.Start, p.End}
	if p.ByMonth() {
		q = `
			SELECT id, name, phone, service, amount, note, created_at, updated_at
			FROM sales
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

	var out []domain.SaleRecord
	for rows.Next() {
		var s domain.SaleRecord
		if e := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Service, &s.Amount, &s.Note, &s.CreatedAt, &s.UpdatedAt); e != nil {
			return nil, e
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
