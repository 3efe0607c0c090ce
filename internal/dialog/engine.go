// Package dialog is the conversation state machine: three guided flows
// (bill entry, expense entry, report) sharing one execution model — a
// per-participant session, field validators, a static transition order per
// flow and side-effecting terminal states.
package dialog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
	"github.com/vindevops99/telegram-chat-bot/internal/report"
)

type Flow int

const (
	FlowBill Flow = iota
	FlowExpense
	FlowReport
)

func (f Flow) String() string {
	switch f {
	case FlowBill:
		return "bill"
	case FlowExpense:
		return "expense"
	case FlowReport:
		return "report"
	}
	return "unknown"
}

// State identifies one step of one flow. States never mix across flows.
type State int

const (
	StateBillName State = iota
	StateBillPhone
	StateBillService
	StateBillAmount
	StateBillNote
	StateBillConfirm

	StateExpenseCategory
	StateExpenseAmount
	StateExpenseNote
	StateExpenseConfirm

	StateReportChoice
	StateReportCustom
)

// SaleStore persists completed bills.
type SaleStore interface {
	InsertSale(ctx context.Context, s domain.SaleRecord) (int64, error)
}

// ExpenseStore persists completed expenses.
type ExpenseStore interface {
	InsertExpense(ctx context.Context, e domain.ExpenseRecord) (int64, error)
}

// PaymentCoder renders a payment-code image reference for a saved bill.
type PaymentCoder interface {
	PaymentCode(amount int64, phone, service string) (string, error)
}

// Reporter aggregates a period into a summary plus optional export file.
type Reporter interface {
	Generate(ctx context.Context, p domain.Period) (report.Result, error)
}

type Engine struct {
	sessions *Store
	sales    SaleStore
	expenses ExpenseStore
	payments PaymentCoder
	reports  Reporter
	loc      *time.Location
	log      *zap.SugaredLogger

	now func() time.Time
}

func NewEngine(sessions *Store, sales SaleStore, expenses ExpenseStore, payments PaymentCoder, reports Reporter, loc *time.Location, log *zap.SugaredLogger) *Engine {
	return &Engine{
		sessions: sessions,
		sales:    sales,
		expenses: expenses,
		payments: payments,
		reports:  reports,
		loc:      loc,
		log:      log,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

var flowEntry = map[Flow]State{
	FlowBill:    StateBillName,
	FlowExpense: StateExpenseCategory,
	FlowReport:  StateReportChoice,
}

// Start enters a flow, replacing any session the participant already has.
func (e *Engine) Start(participant int64, flow Flow) Reply {
	e.sessions.Start(participant, flow, flowEntry[flow])
	e.log.Infow("flow started", "flow", flow.String(), "participant", participant)

	switch flow {
	case FlowBill:
		return reply(markdownMsg("💵 *NHẬP HÓA ĐƠN*\n\nNhập tên khách hàng:"))
	case FlowExpense:
		return reply(markdownMsg("💸 *NHẬP CHI PHÍ*\n\nNhập loại chi phí:\nVí dụ: Mua nguyên liệu, Điện nước, Lương..."))
	case FlowReport:
		return reply(reportChoiceMsg())
	}
	return Reply{}
}

// Advance feeds one inbound event into the participant's session. The second
// return is false when no session is active (the input was not for a flow).
func (e *Engine) Advance(ctx context.Context, participant int64, in Input) (Reply, bool) {
	s, ok := e.sessions.Get(participant)
	if !ok {
		return Reply{}, false
	}

	switch s.Flow {
	case FlowBill:
		return e.advanceBill(ctx, participant, s, in), true
	case FlowExpense:
		return e.advanceExpense(ctx, participant, s, in), true
	case FlowReport:
		return e.advanceReport(ctx, participant, s, in), true
	}
	return Reply{}, false
}

// CancelFlow aborts whatever the participant is doing, from any state,
// without touching the store.
func (e *Engine) CancelFlow(participant int64) Reply {
	e.sessions.Clear(participant)
	return reply(textMsg("❌ Đã hủy thao tác.")).withMenu()
}

// Active reports whether the participant has a live session.
func (e *Engine) Active(participant int64) bool {
	_, ok := e.sessions.Get(participant)
	return ok
}

// RunJanitor evicts expired sessions until ctx is done.
func (e *Engine) RunJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := e.sessions.PurgeExpired(); n > 0 {
				e.log.Infow("sessions expired", "count", n)
			}
		}
	}
}

// finish ends the flow: session cleared, menu re-shown.
func (e *Engine) finish(participant int64, r Reply) Reply {
	e.sessions.Clear(participant)
	return r.withMenu()
}
