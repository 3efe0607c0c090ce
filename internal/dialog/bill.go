package dialog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
	"github.com/vindevops99/telegram-chat-bot/internal/payment"
	"github.com/vindevops99/telegram-chat-bot/internal/validate"
)

const (
	tagBillOK     = "confirm_bill_ok"
	tagBillCancel = "confirm_bill_cancel"
)

// fieldStep is one free-text state: how it is asked, how an input is
// accepted into the session and where the flow goes next.
type fieldStep struct {
	ask    Message
	accept func(s *Session, text string) error
	reject func(err error) string
	next   State
}

func rejectAmount(err error) string {
	switch {
	case errors.Is(err, validate.ErrNotPositive):
		return "❌ Số tiền phải lớn hơn 0. Vui lòng nhập lại:"
	case errors.Is(err, validate.ErrTooLarge):
		return "❌ Số tiền quá lớn. Vui lòng kiểm tra lại:"
	default:
		return "❌ Vui lòng nhập số tiền hợp lệ (chỉ chứa số):"
	}
}

var billSteps = map[State]fieldStep{
	StateBillName: {
		ask: markdownMsg("💵 *NHẬP HÓA ĐƠN*\n\nNhập tên khách hàng:"),
		accept: func(s *Session, text string) error {
			name, err := validate.Name(text)
			if err != nil {
				return err
			}
			s.Set("name", name)
			return nil
		},
		reject: func(error) string { return "❌ Tên quá ngắn. Vui lòng nhập lại:" },
		next:   StateBillPhone,
	},
	StateBillPhone: {
		ask: textMsg("📞 Nhập số điện thoại (10 chữ số, bắt đầu bằng 0):"),
		accept: func(s *Session, text string) error {
			phone, err := validate.Phone(text)
			if err != nil {
				return err
			}
			s.Set("phone", phone)
			return nil
		},
		reject: func(error) string {
			return "❌ Số điện thoại không hợp lệ!\nVui lòng nhập 10 chữ số, bắt đầu bằng 0.\nVí dụ: 0901234567"
		},
		next: StateBillService,
	},
	StateBillService: {
		ask: textMsg("💇 Nhập tên dịch vụ:"),
		accept: func(s *Session, text string) error {
			svc, err := validate.Service(text)
			if err != nil {
				return err
			}
			s.Set("service", svc)
			return nil
		},
		reject: func(error) string { return "❌ Tên dịch vụ quá ngắn. Vui lòng nhập lại:" },
		next:   StateBillAmount,
	},
	StateBillAmount: {
		ask: textMsg("💰 Nhập số tiền (VNĐ):"),
		accept: func(s *Session, text string) error {
			n, err := validate.SaleAmount(text)
			if err != nil {
				return err
			}
			s.Set("amount", n)
			return nil
		},
		reject: rejectAmount,
		next:   StateBillNote,
	},
	StateBillNote: {
		ask: textMsg("📝 Ghi chú khác (nếu có, hoặc nhập '-' để bỏ qua):"),
		accept: func(s *Session, text string) error {
			s.Set("note", validate.Note(text))
			return nil
		},
		reject: func(error) string { return "" },
		next:   StateBillConfirm,
	},
}

func (e *Engine) advanceBill(ctx context.Context, participant int64, s *Session, in Input) Reply {
	if s.State == StateBillConfirm {
		if !in.isSelection() {
			return reply(textMsg("Vui lòng dùng nút bấm để xác nhận hoặc hủy."), billPreview(s))
		}
		return e.confirmBill(ctx, participant, s, in.Selection)
	}

	step := billSteps[s.State]
	if in.isSelection() {
		// A button press where free text is expected: ask again.
		return reply(step.ask)
	}
	if err := step.accept(s, in.Text); err != nil {
		return reply(textMsg(step.reject(err)))
	}
	s.State = step.next
	if s.State == StateBillConfirm {
		return reply(billPreview(s))
	}
	return reply(billSteps[s.State].ask)
}

func billPreview(s *Session) Message {
	note := s.Str("note")
	if note == "" {
		note = "(Không có)"
	}
	m := markdownMsg(fmt.Sprintf(
		"📋 *XÁC NHẬN HÓA ĐƠN*\n\n"+
			"👤 Tên: `%s`\n"+
			"📞 SĐT: `%s`\n"+
			"💇 Dịch vụ: `%s`\n"+
			"💰 Số tiền: `%sđ`\n"+
			"📝 Ghi chú: `%s`",
		s.Str("name"), s.Str("phone"), s.Str("service"),
		domain.FormatVND(s.Int("amount")), note,
	))
	m.Buttons = [][]Button{{
		{Label: "✅ Xác nhận", Data: tagBillOK},
		{Label: "❌ Hủy", Data: tagBillCancel},
	}}
	return m
}

// confirmBill runs the terminal effects in order: persist, notify, then the
// payment code as a non-fatal secondary effect.
func (e *Engine) confirmBill(ctx context.Context, participant int64, s *Session, tag string) Reply {
	switch tag {
	case tagBillCancel:
		e.log.Infow("bill cancelled", "participant", participant)
		return e.finish(participant, reply(textMsg("❌ Đã hủy nhập hóa đơn.")))
	case tagBillOK:
	default:
		return reply(billPreview(s))
	}

	rec := domain.SaleRecord{
		Name:      s.Str("name"),
		Phone:     s.Str("phone"),
		Service:   s.Str("service"),
		Amount:    s.Int("amount"),
		Note:      s.Str("note"),
		CreatedAt: e.now().Truncate(time.Second),
	}

	id, err := e.sales.InsertSale(ctx, rec)
	if err != nil {
		e.log.Errorw("save bill", "participant", participant, "name", rec.Name, "err", err)
		return e.finish(participant, reply(markdownMsg(
			"❌ *LỖI LƯU DỮ LIỆU!*\n\nVui lòng thử lại sau.",
		)))
	}
	e.log.Infow("bill saved", "id", id, "name", rec.Name, "service", rec.Service, "amount", rec.Amount)

	note := rec.Note
	if note == "" {
		note = "(Không có)"
	}
	saved := fmt.Sprintf(
		"✅ *ĐÃ LƯU HÓA ĐƠN THÀNH CÔNG!*\n\n"+
			"👤 Khách hàng: `%s`\n"+
			"💇 Dịch vụ: `%s`\n"+
			"💰 Số tiền: `%sđ`\n"+
			"📝 Ghi chú: `%s`",
		rec.Name, rec.Service, domain.FormatVND(rec.Amount), note,
	)

	qrURL, err := e.payments.PaymentCode(rec.Amount, rec.Phone, rec.Service)
	switch {
	case err == nil:
		photo := Message{
			Text:     fmt.Sprintf("💳 Quét mã QR để thanh toán %sđ", domain.FormatVND(rec.Amount)),
			PhotoURL: qrURL,
		}
		return e.finish(participant, reply(
			markdownMsg(saved+"\n\n📱 QR thanh toán đang được gửi..."),
			photo,
		))
	case errors.Is(err, payment.ErrAccountNotConfigured):
		e.log.Warnw("payment code skipped", "err", err)
		return e.finish(participant, reply(markdownMsg(
			saved+"\n\n⚠️ *Lưu ý*: Mã QR chưa được tạo. Vui lòng cấu hình BANK_ACCOUNT.",
		)))
	default:
		e.log.Errorw("payment code", "err", err)
		return e.finish(participant, reply(
			markdownMsg(saved),
			textMsg("⚠️ Không thể tạo mã QR.\nVui lòng thu tiền thủ công."),
		))
	}
}
