package dialog

import (
	"context"
	"fmt"
	"time"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
	"github.com/vindevops99/telegram-chat-bot/internal/validate"
)

const (
	tagExpenseOK     = "confirm_exp_ok"
	tagExpenseCancel = "confirm_exp_cancel"
)

var expenseSteps = map[State]fieldStep{
	StateExpenseCategory: {
		ask: markdownMsg("💸 *NHẬP CHI PHÍ*\n\nNhập loại chi phí:\nVí dụ: Mua nguyên liệu, Điện nước, Lương..."),
		accept: func(s *Session, text string) error {
			cat, err := validate.Category(text)
			if err != nil {
				return err
			}
			s.Set("category", cat)
			return nil
		},
		reject: func(error) string { return "❌ Loại chi phí quá ngắn. Vui lòng nhập lại:" },
		next:   StateExpenseAmount,
	},
	StateExpenseAmount: {
		ask: textMsg("💰 Nhập số tiền chi:"),
		accept: func(s *Session, text string) error {
			d, err := validate.ExpenseAmount(text)
			if err != nil {
				return err
			}
			s.Set("amount", d)
			return nil
		},
		reject: rejectAmount,
		next:   StateExpenseNote,
	},
	StateExpenseNote: {
		ask: textMsg("📝 Ghi chú (nếu có, hoặc nhập '-' để bỏ qua):"),
		accept: func(s *Session, text string) error {
			s.Set("note", validate.ExpenseNote(text))
			return nil
		},
		reject: func(error) string { return "" },
		next:   StateExpenseConfirm,
	},
}

func (e *Engine) advanceExpense(ctx context.Context, participant int64, s *Session, in Input) Reply {
	if s.State == StateExpenseConfirm {
		if !in.isSelection() {
			return reply(textMsg("Vui lòng dùng nút bấm để xác nhận hoặc hủy."), expensePreview(s))
		}
		return e.confirmExpense(ctx, participant, s, in.Selection)
	}

	step := expenseSteps[s.State]
	if in.isSelection() {
		return reply(step.ask)
	}
	if err := step.accept(s, in.Text); err != nil {
		return reply(textMsg(step.reject(err)))
	}
	s.State = step.next
	if s.State == StateExpenseConfirm {
		return reply(expensePreview(s))
	}
	return reply(expenseSteps[s.State].ask)
}

func expensePreview(s *Session) Message {
	note := s.Str("note")
	if note == "" {
		note = "(Không có)"
	}
	m := markdownMsg(fmt.Sprintf(
		"🔍 *XÁC NHẬN CHI PHÍ*\n\n"+
			"• Loại: `%s`\n"+
			"• Số tiền: `%sđ`\n"+
			"• Ghi chú: `%s`",
		s.Str("category"), domain.FormatVNDDec(s.Dec("amount")), note,
	))
	m.Buttons = [][]Button{{
		{Label: "✅ Xác nhận", Data: tagExpenseOK},
		{Label: "❌ Hủy", Data: tagExpenseCancel},
	}}
	return m
}

func (e *Engine) confirmExpense(ctx context.Context, participant int64, s *Session, tag string) Reply {
	switch tag {
	case tagExpenseCancel:
		e.log.Infow("expense cancelled", "participant", participant)
		return e.finish(participant, reply(textMsg("❌ Đã hủy nhập chi phí.")))
	case tagExpenseOK:
	default:
		return reply(expensePreview(s))
	}

	rec := domain.ExpenseRecord{
		Category:  s.Str("category"),
		Amount:    s.Dec("amount"),
		Note:      s.Str("note"),
		CreatedAt: e.now().Truncate(time.Second),
	}

	id, err := e.expenses.InsertExpense(ctx, rec)
	if err != nil {
		e.log.Errorw("save expense", "participant", participant, "category", rec.Category, "err", err)
		return e.finish(participant, reply(markdownMsg(
			"❌ *LỖI LƯU DỮ LIỆU!*\n\nVui lòng thử lại sau.",
		)))
	}
	e.log.Infow("expense saved", "id", id, "category", rec.Category, "amount", rec.Amount.String())

	note := rec.Note
	if note == "" {
		note = "(Không có)"
	}
	return e.finish(participant, reply(markdownMsg(fmt.Sprintf(
		"✅ *ĐÃ LƯU CHI PHÍ THÀNH CÔNG!*\n\n"+
			"• Loại: `%s`\n"+
			"• Số tiền: `%sđ`\n"+
			"• Ghi chú: `%s`",
		rec.Category, domain.FormatVNDDec(rec.Amount), note,
	))))
}
