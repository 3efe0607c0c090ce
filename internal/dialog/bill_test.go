package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vindevops99/telegram-chat-bot/internal/payment"
)

const chat = int64(42)

func TestBillFlowHappyPath(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	r := env.engine.Start(chat, FlowBill)
	assert.Contains(t, joinTexts(r), "NHẬP HÓA ĐƠN")

	r, ok := env.engine.Advance(ctx, chat, TextInput("An"))
	require.True(t, ok)
	assert.Contains(t, joinTexts(r), "số điện thoại")

	r, _ = env.engine.Advance(ctx, chat, TextInput("0901234567"))
	assert.Contains(t, joinTexts(r), "dịch vụ")

	r, _ = env.engine.Advance(ctx, chat, TextInput("Cắt tóc"))
	assert.Contains(t, joinTexts(r), "số tiền")

	r, _ = env.engine.Advance(ctx, chat, TextInput("50000"))
	assert.Contains(t, joinTexts(r), "Ghi chú")

	r, _ = env.engine.Advance(ctx, chat, TextInput("-"))
	require.Len(t, r.Messages, 1)
	assert.Contains(t, r.Messages[0].Text, "XÁC NHẬN HÓA ĐƠN")
	assert.Contains(t, r.Messages[0].Text, "`50,000đ`")
	require.NotEmpty(t, r.Messages[0].Buttons)

	r, _ = env.engine.Advance(ctx, chat, SelectionInput("confirm_bill_ok"))
	assert.Contains(t, joinTexts(r), "ĐÃ LƯU HÓA ĐƠN THÀNH CÔNG")
	assert.True(t, r.ShowMenu)

	// Exactly one row, complete and canonicalized.
	require.Len(t, env.sales.records, 1)
	rec := env.sales.records[0]
	assert.Equal(t, "An", rec.Name)
	assert.Equal(t, "0901234567", rec.Phone)
	assert.Equal(t, "Cắt tóc", rec.Service)
	assert.Equal(t, int64(50000), rec.Amount)
	assert.Equal(t, "", rec.Note)
	assert.Equal(t, time.Date(2025, time.November, 10, 14, 30, 0, 0, rec.CreatedAt.Location()), rec.CreatedAt)

	// One payment-code attempt with the saved values.
	require.Len(t, env.payments.calls, 1)
	assert.Equal(t, paymentCall{50000, "0901234567", "Cắt tóc"}, env.payments.calls[0])

	// QR photo attached.
	var photo bool
	for _, m := range r.Messages {
		if m.PhotoURL != "" {
			photo = true
		}
	}
	assert.True(t, photo)

	assert.False(t, env.engine.Active(chat), "session must be cleared after the terminal state")
}

func TestBillValidationReprompts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.engine.Start(chat, FlowBill)

	r, _ := env.engine.Advance(ctx, chat, TextInput("A"))
	assert.Contains(t, joinTexts(r), "Tên quá ngắn")

	// Still on Name; a valid name now advances.
	r, _ = env.engine.Advance(ctx, chat, TextInput("An"))
	assert.Contains(t, joinTexts(r), "số điện thoại")

	for _, bad := range []string{"901234567", "08012345678", "abc1234567"} {
		r, _ = env.engine.Advance(ctx, chat, TextInput(bad))
		assert.Contains(t, joinTexts(r), "Số điện thoại không hợp lệ", "input %q", bad)
	}

	env.engine.Advance(ctx, chat, TextInput("0901234567"))
	env.engine.Advance(ctx, chat, TextInput("Cắt tóc"))

	r, _ = env.engine.Advance(ctx, chat, TextInput("xx"))
	assert.Contains(t, joinTexts(r), "chỉ chứa số")
	r, _ = env.engine.Advance(ctx, chat, TextInput("0"))
	assert.Contains(t, joinTexts(r), "lớn hơn 0")
	r, _ = env.engine.Advance(ctx, chat, TextInput("2000000000"))
	assert.Contains(t, joinTexts(r), "quá lớn")

	// Thousands separators are stripped before parsing.
	r, _ = env.engine.Advance(ctx, chat, TextInput("1,000,000"))
	assert.Contains(t, joinTexts(r), "Ghi chú")
	r, _ = env.engine.Advance(ctx, chat, TextInput("bỏ qua"))
	assert.Contains(t, r.Messages[0].Text, "`1,000,000đ`")
	assert.Contains(t, r.Messages[0].Text, "(Không có)")
}

func TestBillMisroutedInput(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.engine.Start(chat, FlowBill)

	// Button press while free text is expected: same question again.
	r, _ := env.engine.Advance(ctx, chat, SelectionInput("confirm_bill_ok"))
	assert.Contains(t, joinTexts(r), "tên khách hàng")
	assert.Empty(t, env.sales.records)

	env.engine.Advance(ctx, chat, TextInput("An"))
	env.engine.Advance(ctx, chat, TextInput("0901234567"))
	env.engine.Advance(ctx, chat, TextInput("Cắt tóc"))
	env.engine.Advance(ctx, chat, TextInput("50000"))
	env.engine.Advance(ctx, chat, TextInput("-"))

	// Free text while the confirm buttons are expected: re-prompted, no write.
	r, _ = env.engine.Advance(ctx, chat, TextInput("ok"))
	assert.Contains(t, joinTexts(r), "nút bấm")
	assert.Empty(t, env.sales.records)
	assert.True(t, env.engine.Active(chat))
}

func TestBillConfirmCancel(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.engine.Start(chat, FlowBill)
	env.engine.Advance(ctx, chat, TextInput("An"))
	env.engine.Advance(ctx, chat, TextInput("0901234567"))
	env.engine.Advance(ctx, chat, TextInput("Cắt tóc"))
	env.engine.Advance(ctx, chat, TextInput("50000"))
	env.engine.Advance(ctx, chat, TextInput("-"))

	r, _ := env.engine.Advance(ctx, chat, SelectionInput("confirm_bill_cancel"))
	assert.Contains(t, joinTexts(r), "Đã hủy nhập hóa đơn")
	assert.True(t, r.ShowMenu)
	assert.Empty(t, env.sales.records)
	assert.Empty(t, env.payments.calls)
	assert.False(t, env.engine.Active(chat))
}

func TestCancelCommandFromAnyState(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.engine.Start(chat, FlowBill)
	env.engine.Advance(ctx, chat, TextInput("An"))
	env.engine.Advance(ctx, chat, TextInput("0901234567"))

	r := env.engine.CancelFlow(chat)
	assert.Contains(t, joinTexts(r), "Đã hủy thao tác")
	assert.True(t, r.ShowMenu)
	assert.Empty(t, env.sales.records)
	assert.False(t, env.engine.Active(chat))
}

func TestBillPersistFailure(t *testing.T) {
	env := newTestEnv()
	env.sales.err = errors.New("connection reset")
	ctx := context.Background()
	env.engine.Start(chat, FlowBill)
	env.engine.Advance(ctx, chat, TextInput("An"))
	env.engine.Advance(ctx, chat, TextInput("0901234567"))
	env.engine.Advance(ctx, chat, TextInput("Cắt tóc"))
	env.engine.Advance(ctx, chat, TextInput("50000"))
	env.engine.Advance(ctx, chat, TextInput("-"))

	r, _ := env.engine.Advance(ctx, chat, SelectionInput("confirm_bill_ok"))
	assert.Contains(t, joinTexts(r), "LỖI LƯU DỮ LIỆU")
	assert.True(t, r.ShowMenu)

	// No partial record, no payment attempt, flow terminated.
	assert.Empty(t, env.sales.records)
	assert.Empty(t, env.payments.calls)
	assert.False(t, env.engine.Active(chat))
}

func TestBillPaymentDegradesGracefully(t *testing.T) {
	env := newTestEnv()
	env.payments.err = payment.ErrAccountNotConfigured
	ctx := context.Background()
	env.engine.Start(chat, FlowBill)
	env.engine.Advance(ctx, chat, TextInput("An"))
	env.engine.Advance(ctx, chat, TextInput("0901234567"))
	env.engine.Advance(ctx, chat, TextInput("Cắt tóc"))
	env.engine.Advance(ctx, chat, TextInput("50000"))
	env.engine.Advance(ctx, chat, TextInput("-"))

	r, _ := env.engine.Advance(ctx, chat, SelectionInput("confirm_bill_ok"))

	// The record is saved and reported; only the QR degrades to a warning.
	require.Len(t, env.sales.records, 1)
	out := joinTexts(r)
	assert.Contains(t, out, "ĐÃ LƯU HÓA ĐƠN THÀNH CÔNG")
	assert.Contains(t, out, "Mã QR chưa được tạo")
	for _, m := range r.Messages {
		assert.Empty(t, m.PhotoURL)
	}
}

func TestNewEntryOverwritesActiveSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.engine.Start(chat, FlowBill)
	env.engine.Advance(ctx, chat, TextInput("An"))

	// Re-entering restarts at Name with no leftover fields.
	env.engine.Start(chat, FlowBill)
	r, _ := env.engine.Advance(ctx, chat, TextInput("Bình"))
	assert.Contains(t, joinTexts(r), "số điện thoại")
	s, ok := env.engine.sessions.Get(chat)
	require.True(t, ok)
	assert.Equal(t, "Bình", s.Str("name"))
}
