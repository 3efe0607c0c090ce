package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vindevops99/telegram-chat-bot/internal/dialog"
)

// send renders an engine reply in order: texts, photos, attachments, then
// the main menu when the flow handed control back.
func (h *Handler) send(chatID int64, r dialog.Reply) {
	for _, m := range r.Messages {
		switch {
		case m.PhotoURL != "":
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(m.PhotoURL))
			photo.Caption = m.Text
			if _, err := h.api.Send(photo); err != nil {
				h.log.Errorw("send photo", "chat", chatID, "err", err)
			}
		case m.FilePath != "":
			doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(m.FilePath))
			doc.Caption = m.Text
			if _, err := h.api.Send(doc); err != nil {
				h.log.Errorw("send document", "chat", chatID, "file", m.FilePath, "err", err)
			}
		default:
			msg := tgbotapi.NewMessage(chatID, m.Text)
			if m.Markdown {
				msg.ParseMode = "Markdown"
			}
			if len(m.Buttons) > 0 {
				msg.ReplyMarkup = keyboard(m.Buttons)
			}
			if _, err := h.api.Send(msg); err != nil {
				h.log.Errorw("send message", "chat", chatID, "err", err)
			}
		}
	}
	if r.ShowMenu {
		h.sendMenu(chatID)
	}
}

func (h *Handler) reply(chatID int64, text string, markdown bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markdown {
		msg.ParseMode = "Markdown"
	}
	if _, err := h.api.Send(msg); err != nil {
		h.log.Errorw("send message", "chat", chatID, "err", err)
	}
}

func (h *Handler) sendMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "➡️ Tôi là Nô Tỳ của HongDaoBrown, mời bạn chọn thao tác:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("💵 Thu tiền", "goto_inbill"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Chi phí", "goto_expense"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📊 Báo cáo", "goto_report"),
		},
	)
	if _, err := h.api.Send(msg); err != nil {
		h.log.Errorw("send menu", "chat", chatID, "err", err)
	}
}

func keyboard(rows [][]dialog.Button) tgbotapi.InlineKeyboardMarkup {
	out := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		out = append(out, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(out...)
}
