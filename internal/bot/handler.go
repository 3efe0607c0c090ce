// Package bot adapts Telegram updates onto the dialog engine: command and
// callback dispatch in, rendered replies out.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/vindevops99/telegram-chat-bot/internal/dialog"
	"github.com/vindevops99/telegram-chat-bot/internal/domain"
)

// StatsSource backs the /stats quick totals.
type StatsSource interface {
	Overall(ctx context.Context) (domain.Stats, error)
}

type Handler struct {
	api    *tgbotapi.BotAPI
	engine *dialog.Engine
	stats  StatsSource
	log    *zap.SugaredLogger
}

func NewHandler(api *tgbotapi.BotAPI, engine *dialog.Engine, stats StatsSource, log *zap.SugaredLogger) *Handler {
	return &Handler{api: api, engine: engine, stats: stats, log: log}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		h.handleCallback(ctx, upd.CallbackQuery)
		return
	}

	if upd.Message == nil {
		return
	}
	msg := upd.Message
	// operator bot, private chats only
	if !msg.Chat.IsPrivate() {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		h.handleCommand(ctx, chatID, msg.Command())
		return
	}

	if r, ok := h.engine.Advance(ctx, chatID, dialog.TextInput(text)); ok {
		h.send(chatID, r)
		return
	}

	// No active flow: echo with usage help, then the menu.
	h.reply(chatID, "💬 Bạn vừa gửi: "+text+"\n\n"+
		"Vui lòng chọn chức năng từ menu hoặc dùng lệnh:\n"+
		"/inbill - Thu tiền\n"+
		"/expense - Chi phí\n"+
		"/report - Báo cáo\n"+
		"/cancel - Để hủy thao tác hiện tại.", false)
	h.sendMenu(chatID)
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, cmd string) {
	switch cmd {
	case "start":
		h.reply(chatID, "👋 Xin chào! Chào mừng bạn đến với hệ thống quản lý.", false)
		h.sendMenu(chatID)
	case "cancel":
		h.send(chatID, h.engine.CancelFlow(chatID))
	case "stats":
		h.handleStats(ctx, chatID)
	default:
		if flow, ok := dialog.EntryFlow(cmd); ok {
			h.send(chatID, h.engine.Start(chatID, flow))
			return
		}
		h.reply(chatID, "❓ Lệnh không hợp lệ. Dùng /inbill, /expense, /report hoặc /cancel.", false)
		h.sendMenu(chatID)
	}
}

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	defer h.api.Request(tgbotapi.NewCallback(q.ID, ""))

	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID

	// Menu buttons enter a flow through the same table as the commands.
	if flow, ok := dialog.EntryFlow(q.Data); ok {
		h.send(chatID, h.engine.Start(chatID, flow))
		return
	}

	if r, ok := h.engine.Advance(ctx, chatID, dialog.SelectionInput(q.Data)); ok {
		h.send(chatID, r)
		return
	}
	// Stale button from a finished or expired dialog.
	h.sendMenu(chatID)
}

func (h *Handler) handleStats(ctx context.Context, chatID int64) {
	st, err := h.stats.Overall(ctx)
	if err != nil {
		h.log.Errorw("stats", "err", err)
		h.reply(chatID, "❌ Không thể lấy thống kê (DB).", false)
		return
	}
	h.reply(chatID,
		"📊 *THỐNG KÊ TỔNG*\n\n"+
			"💵 Hóa đơn: `"+domain.FormatVND(st.SaleCount)+"` — `"+domain.FormatVND(st.SaleTotal)+"đ`\n"+
			"💸 Khoản chi: `"+domain.FormatVND(st.ExpenseCount)+"` — `"+domain.FormatVNDDec(st.ExpenseTotal)+"đ`\n"+
			"📈 Lãi/Lỗ: `"+domain.FormatSigned(st.Profit())+"đ`",
		true)
}
