package dialog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
	"github.com/vindevops99/telegram-chat-bot/internal/report"
)

// In-memory collaborators for driving flows without a database or network.

type fakeSales struct {
	records []domain.SaleRecord
	err     error
}

func (f *fakeSales) InsertSale(_ context.Context, s domain.SaleRecord) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	s.ID = int64(len(f.records) + 1)
	f.records = append(f.records, s)
	return s.ID, nil
}

type fakeExpenses struct {
	records []domain.ExpenseRecord
	err     error
}

func (f *fakeExpenses) InsertExpense(_ context.Context, e domain.ExpenseRecord) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	e.ID = int64(len(f.records) + 1)
	f.records = append(f.records, e)
	return e.ID, nil
}

type paymentCall struct {
	amount  int64
	phone   string
	service string
}

type fakePayments struct {
	url   string
	err   error
	calls []paymentCall
}

func (f *fakePayments) PaymentCode(amount int64, phone, service string) (string, error) {
	f.calls = append(f.calls, paymentCall{amount, phone, service})
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeReporter struct {
	res     report.Result
	err     error
	periods []domain.Period
}

func (f *fakeReporter) Generate(_ context.Context, p domain.Period) (report.Result, error) {
	f.periods = append(f.periods, p)
	if f.err != nil {
		return report.Result{}, f.err
	}
	return f.res, nil
}

type testEnv struct {
	engine   *Engine
	sales    *fakeSales
	expenses *fakeExpenses
	payments *fakePayments
	reporter *fakeReporter
}

func newTestEnv() *testEnv {
	loc := time.FixedZone("UTC+7", 7*3600)
	env := &testEnv{
		sales:    &fakeSales{},
		expenses: &fakeExpenses{},
		payments: &fakePayments{url: "https://img.vietqr.io/image/test.png"},
		reporter: &fakeReporter{res: report.Result{Summary: "tổng hợp"}},
	}
	env.engine = NewEngine(
		NewStore(30*time.Minute),
		env.sales, env.expenses, env.payments, env.reporter,
		loc, zap.NewNop().Sugar(),
	)
	env.engine.now = func() time.Time {
		return time.Date(2025, time.November, 10, 14, 30, 0, 0, loc)
	}
	return env
}

// joinTexts flattens a reply for Contains-style assertions.
func joinTexts(r Reply) string {
	out := ""
	for _, m := range r.Messages {
		out += m.Text + "\n"
	}
	return out
}
