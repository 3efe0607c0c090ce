package dialog

import (
	"context"
	"errors"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
	"github.com/vindevops99/telegram-chat-bot/internal/validate"
)

const (
	tagMonthCurrent  = "month_current"
	tagMonthPrevious = "month_previous"
	tagCustomDate    = "custom_date"
)

func reportChoiceMsg() Message {
	m := markdownMsg("📊 *BÁO CÁO*\n\nChọn loại báo cáo:")
	m.Buttons = [][]Button{
		{{Label: "📅 Tháng hiện tại", Data: tagMonthCurrent}},
		{{Label: "📆 Tháng trước", Data: tagMonthPrevious}},
		{{Label: "📌 Tùy chỉnh ngày", Data: tagCustomDate}},
	}
	return m
}

func (e *Engine) advanceReport(ctx context.Context, participant int64, s *Session, in Input) Reply {
	switch s.State {
	case StateReportChoice:
		if !in.isSelection() {
			return reply(textMsg("Vui lòng chọn loại báo cáo bằng nút bấm."), reportChoiceMsg())
		}
		switch in.Selection {
		case tagMonthCurrent:
			return e.runReport(ctx, participant, domain.CurrentMonth(e.now()),
				textMsg("⏳ Đang tạo báo cáo tháng hiện tại..."))
		case tagMonthPrevious:
			return e.runReport(ctx, participant, domain.PreviousMonth(e.now()),
				textMsg("⏳ Đang tạo báo cáo tháng trước..."))
		case tagCustomDate:
			s.State = StateReportCustom
			return reply(markdownMsg(
				"📅 *NHẬP KHOẢNG THỜI GIAN*\n\n" +
					"Format: `yyyy-mm-dd to yyyy-mm-dd`\n" +
					"Ví dụ: `2025-11-01 to 2025-11-03`",
			))
		default:
			return reply(reportChoiceMsg())
		}

	case StateReportCustom:
		if in.isSelection() {
			return reply(textMsg("Vui lòng nhập khoảng thời gian dạng chữ:\n`yyyy-mm-dd to yyyy-mm-dd`"))
		}
		start, end, err := validate.DateRange(in.Text)
		switch {
		case errors.Is(err, validate.ErrStartAfterEnd):
			return reply(textMsg("❌ Ngày bắt đầu phải trước ngày kết thúc.\nVui lòng nhập lại."))
		case errors.Is(err, validate.ErrRangeTooLong):
			return reply(textMsg("❌ Khoảng thời gian quá dài (tối đa 365 ngày).\nVui lòng nhập lại."))
		case err != nil:
			return reply(markdownMsg(
				"❌ *FORMAT KHÔNG HỢP LỆ!*\n\n" +
					"Vui lòng nhập đúng format:\n" +
					"`yyyy-mm-dd to yyyy-mm-dd`\n\n" +
					"Ví dụ: `2025-11-01 to 2025-11-03`",
			))
		}
		return e.runReport(ctx, participant, domain.RangePeriod(start, end),
			textMsg("⏳ Đang tạo báo cáo..."))
	}
	return Reply{}
}

// runReport is the report flow's terminal effect: aggregate, summarize and
// attach the export when one was produced. Any aggregation failure ends the
// flow with a single error message.
func (e *Engine) runReport(ctx context.Context, participant int64, p domain.Period, progress Message) Reply {
	res, err := e.reports.Generate(ctx, p)
	if err != nil {
		e.log.Errorw("report failed", "participant", participant, "period", p.Label(), "err", err)
		return e.finish(participant, reply(progress,
			textMsg("❌ Có lỗi xảy ra khi tạo báo cáo.\nVui lòng thử lại sau.")))
	}

	msgs := []Message{progress, markdownMsg(res.Summary)}
	if res.ExportPath != "" {
		msgs = append(msgs, Message{
			Text:     "📄 File báo cáo chi tiết",
			FilePath: res.ExportPath,
		})
	}
	return e.finish(participant, reply(msgs...))
}
