// Package report turns a date window into an aggregate summary and an
// optional CSV export of the matching records.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
)

type SaleSource interface {
	SalesIn(ctx context.Context, p domain.Period) ([]domain.SaleRecord, error)
}

type ExpenseSource interface {
	ExpensesIn(ctx context.Context, p domain.Period) ([]domain.ExpenseRecord, error)
}

// Totals are the aggregate figures of one report window.
type Totals struct {
	SaleCount    int
	SaleTotal    int64
	ExpenseCount int
	ExpenseTotal decimal.Decimal
}

func (t Totals) Profit() decimal.Decimal {
	return decimal.NewFromInt(t.SaleTotal).Sub(t.ExpenseTotal)
}

// Result is what a completed report hands back to the dialog layer.
// ExportPath is empty when no record matched the window.
type Result struct {
	Summary    string
	ExportPath string
}

type Aggregator struct {
	sales    SaleSource
	expenses ExpenseSource
	dir      string
	log      *zap.SugaredLogger
}

func NewAggregator(sales SaleSource, expenses ExpenseSource, dir string, log *zap.SugaredLogger) *Aggregator {
	return &Aggregator{sales: sales, expenses: expenses, dir: dir, log: log}
}

// Generate fetches both record kinds for p, computes totals, renders the
// summary block and, when any row matched, writes the CSV export.
func (a *Aggregator) Generate(ctx context.Context, p domain.Period) (Result, error) {
	sales, err := a.sales.SalesIn(ctx, p)
	if err != nil {
		a.log.Errorw("report: fetch sales", "period", p.Label(), "err", err)
		return Result{}, fmt.Errorf("fetch sales: %w", err)
	}
	expenses, err := a.expenses.ExpensesIn(ctx, p)
	if err != nil {
		a.log.Errorw("report: fetch expenses", "period", p.Label(), "err", err)
		return Result{}, fmt.Errorf("fetch expenses: %w", err)
	}

	totals := Summarize(sales, expenses)
	res := Result{Summary: RenderSummary(p, totals)}

	if len(sales) == 0 && len(expenses) == 0 {
		return res, nil
	}

	path, err := writeCSV(a.dir, sales, expenses, totals)
	if err != nil {
		a.log.Errorw("report: write export", "period", p.Label(), "err", err)
		return Result{}, fmt.Errorf("write export: %w", err)
	}
	a.log.Infow("report generated", "period", p.Label(),
		"sales", totals.SaleCount, "expenses", totals.ExpenseCount, "file", path)
	res.ExportPath = path
	return res, nil
}

// Summarize computes the window totals. Pure; shared by summary and export.
func Summarize(sales []domain.SaleRecord, expenses []domain.ExpenseRecord) Totals {
	t := Totals{
		SaleCount:    len(sales),
		ExpenseCount: len(expenses),
		ExpenseTotal: decimal.Zero,
	}
	for _, s := range sales {
		t.SaleTotal += s.Amount
	}
	for _, e := range expenses {
		t.ExpenseTotal = t.ExpenseTotal.Add(e.Amount)
	}
	return t
}

// RenderSummary renders the fixed-shape markdown summary block.
func RenderSummary(p domain.Period, t Totals) string {
	profit := t.Profit()
	emoji := "📈"
	if profit.Sign() < 0 {
		emoji = "📉"
	}

	var b strings.Builder
	b.WriteString("📊 *BÁO CÁO TỔNG HỢP*\n")
	b.WriteString(fmt.Sprintf("Kỳ: _%s_\n\n", p.Label()))
	b.WriteString("💵 *Doanh thu*\n")
	b.WriteString(fmt.Sprintf("• Số hóa đơn: `%d`\n", t.SaleCount))
	b.WriteString(fmt.Sprintf("• Tổng thu: `%sđ`\n\n", domain.FormatVND(t.SaleTotal)))
	b.WriteString("💸 *Chi phí*\n")
	b.WriteString(fmt.Sprintf("• Số khoản chi: `%d`\n", t.ExpenseCount))
	b.WriteString(fmt.Sprintf("• Tổng chi: `%sđ`\n\n", domain.FormatVNDDec(t.ExpenseTotal)))
	b.WriteString(fmt.Sprintf("%s *Lãi/Lỗ*: `%sđ`", emoji, domain.FormatSigned(profit)))
	return b.String()
}
