package report

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
)

type fakeSaleSource struct {
	sales []domain.SaleRecord
	err   error
}

func (f *fakeSaleSource) SalesIn(_ context.Context, p domain.Period) ([]domain.SaleRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.SaleRecord
	for _, s := range f.sales {
		if p.Contains(s.CreatedAt) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeExpenseSource struct {
	expenses []domain.ExpenseRecord
	err      error
}

func (f *fakeExpenseSource) ExpensesIn(_ context.Context, p domain.Period) ([]domain.ExpenseRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.ExpenseRecord
	for _, e := range f.expenses {
		if p.Contains(e.CreatedAt) {
			out = append(out, e)
		}
	}
	return out, nil
}

func saleAt(amount int64, at time.Time) domain.SaleRecord {
	return domain.SaleRecord{Name: "Khách", Phone: "0901234567", Service: "Cắt tóc", Amount: amount, CreatedAt: at}
}

func expenseAt(amount int64, at time.Time) domain.ExpenseRecord {
	return domain.ExpenseRecord{Category: "Điện nước", Amount: decimal.NewFromInt(amount), CreatedAt: at}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	totals := Summarize(
		[]domain.SaleRecord{saleAt(100, now), saleAt(200, now)},
		[]domain.ExpenseRecord{expenseAt(50, now)},
	)

	assert.Equal(t, 2, totals.SaleCount)
	assert.Equal(t, int64(300), totals.SaleTotal)
	assert.Equal(t, 1, totals.ExpenseCount)
	assert.Equal(t, "50", totals.ExpenseTotal.String())
	assert.Equal(t, "250", totals.Profit().String())
}

func TestRenderSummaryProfitSign(t *testing.T) {
	p := domain.MonthPeriod(2025, time.November)

	s := RenderSummary(p, Totals{SaleCount: 2, SaleTotal: 300, ExpenseCount: 1, ExpenseTotal: decimal.NewFromInt(50)})
	assert.Contains(t, s, "Kỳ: _tháng 11/2025_")
	assert.Contains(t, s, "Số hóa đơn: `2`")
	assert.Contains(t, s, "Tổng thu: `300đ`")
	assert.Contains(t, s, "Tổng chi: `50đ`")
	assert.Contains(t, s, "📈 *Lãi/Lỗ*: `+250đ`")

	s = RenderSummary(p, Totals{ExpenseCount: 1, ExpenseTotal: decimal.NewFromInt(80)})
	assert.Contains(t, s, "📉 *Lãi/Lỗ*: `-80đ`")
}

func TestGenerateWritesExport(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	agg := NewAggregator(
		&fakeSaleSource{sales: []domain.SaleRecord{saleAt(100, now), saleAt(200, now)}},
		&fakeExpenseSource{expenses: []domain.ExpenseRecord{expenseAt(50, now)}},
		t.TempDir(), zap.NewNop().Sugar(),
	)

	res, err := agg.Generate(context.Background(), domain.MonthPeriod(2025, time.November))
	require.NoError(t, err)
	assert.Contains(t, res.Summary, "+250đ")
	require.NotEmpty(t, res.ExportPath)

	data, err := os.ReadFile(res.ExportPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3], "export must start with a UTF-8 BOM")
	content := string(data[3:])
	assert.Contains(t, content, "=== DOANH THU ===")
	assert.Contains(t, content, "=== CHI PHÍ ===")
	assert.Contains(t, content, "=== TỔNG KẾT ===")
	assert.Contains(t, content, "0901234567")
}

func TestGenerateSkipsExportWhenEmpty(t *testing.T) {
	agg := NewAggregator(&fakeSaleSource{}, &fakeExpenseSource{}, t.TempDir(), zap.NewNop().Sugar())

	res, err := agg.Generate(context.Background(), domain.MonthPeriod(2025, time.November))
	require.NoError(t, err)
	assert.Empty(t, res.ExportPath)
	assert.Contains(t, res.Summary, "Số hóa đơn: `0`")
	assert.Contains(t, res.Summary, "+0đ")
}

func TestGenerateSurfacesFetcherror(t *testing.T) {
	agg := NewAggregator(
		&fakeSaleSource{err: errors.New("connection refused")},
		&fakeExpenseSource{},
		t.TempDir(), zap.NewNop().Sugar(),
	)

	_, err := agg.Generate(context.Background(), domain.MonthPeriod(2025, time.November))
	assert.Error(t, err)
}

func TestExportRowsSections(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	sale := saleAt(50000, now)
	sale.ID = 7
	sale.Note = "khách quen"
	exp := expenseAt(20000, now)
	exp.ID = 3

	rows := ExportRows([]domain.SaleRecord{sale}, []domain.ExpenseRecord{exp}, Summarize(
		[]domain.SaleRecord{sale}, []domain.ExpenseRecord{exp},
	))

	assert.Equal(t, []string{"=== DOANH THU ==="}, rows[0])
	assert.Equal(t, []string{"7", "Khách", "0901234567", "Cắt tóc", "50000", "khách quen", "2025-11-10 12:00:00"}, rows[2])
	assert.Equal(t, []string{"=== CHI PHÍ ==="}, rows[4])
	assert.Equal(t, []string{"3", "Điện nước", "20000", "", "2025-11-10 12:00:00"}, rows[6])
	assert.Equal(t, []string{"Lãi/Lỗ", "+30,000đ"}, rows[len(rows)-1])
}
