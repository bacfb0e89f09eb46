package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewInfoHandler returns a handler for the /info command: a formatted
// account summary fetched from the management API.
func NewInfoHandler(deps HandlerDeps) bot.HandlerFunc {
	return infoHandler{deps}.Handle
}

type infoHandler struct {
	deps HandlerDeps
}

func (h infoHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "info")
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
		reply("Использование: /info TG_ID\nПример: /info 123456789", false)
		return
	}

	tgID, err := parseTelegramID(args[1])
	if err != nil {
		reply(fmt.Sprintf("❌ Ошибка: %v", err), false)
		return
	}

	log.InfoContext(ctx, "Admin requested account info",
		"admin_id", update.Message.From.ID, "target_id", tgID)

	info, err := h.deps.API.UserInfo(ctx, tgID)
	if err != nil {
		log.WarnContext(ctx, "Account info lookup failed", "target_id", tgID, "error", err)
		reply(formatAPIError(tgID, err), false)
		return
	}

	reply(formatUserInfo(tgID, info), true)
}
