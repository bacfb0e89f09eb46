package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDeviceLimitHandler returns a handler for the /disable_device_limit
// command: a one-shot device-limit override for one account.
func NewDeviceLimitHandler(deps HandlerDeps) bot.HandlerFunc {
	return deviceLimitHandler{deps}.Handle
}

type deviceLimitHandler struct {
	deps HandlerDeps
}

func (h deviceLimitHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "disable_device_limit")
	tg := h.deps.transport(b)

	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	reply := func(text string, html bool) {
		params := &bot.SendMessageParams{ChatID: chatID, Text: text}
		if html {
			params.ParseMode = models.ParseModeHTML
		}
		if _, err := tg.SendMessage(ctx, params); err != nil {
			log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
		}
	}

	args := splitArgs(update.Message.Text)
	if len(args) != 2 {
		reply("Использование: /disable_device_limit TG_ID\nПример: /disable_device_limit 123456789", false)
		return
	}

	tgID, err := parseTelegramID(args[1])
	if err != nil {
		reply(fmt.Sprintf("❌ Ошибка: %v", err), false)
		return
	}

	log.InfoContext(ctx, "Admin disabling device limit",
		"admin_id", update.Message.From.ID, "target_id", tgID)

	if err := h.deps.API.DisableDeviceLimit(ctx, tgID); err != nil {
		log.WarnContext(ctx, "Device limit override failed", "target_id", tgID, "error", err)
		reply(formatAPIError(tgID, err), false)
		return
	}

	reply(fmt.Sprintf("✅ Лимит устройств для <code>%d</code> временно отключен", tgID), true)
}
