package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewToggleProHandler returns a handler for the /toggle_pro command.
func NewToggleProHandler(deps HandlerDeps) bot.HandlerFunc {
	return toggleProHandler{deps}.Handle
}

type toggleProHandler struct {
	deps HandlerDeps
}

func (h toggleProHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "toggle_pro")
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
	if len(args) != 3 {
		reply("Использование: /toggle_pro TG_ID on|off\n"+
			"Пример: /toggle_pro 123456789 on\n\n"+
			"PRO режим добавляет протоколы: XHTTP, gRPC, Trojan, Shadowsocks", false)
		return
	}

	tgID, err := parseTelegramID(args[1])
	if err != nil {
		reply(fmt.Sprintf("❌ Ошибка: %v", err), false)
		return
	}

	enable, err := parseOnOff(args[2])
	if err != nil {
		reply("❌ Укажите on или off.\nПример: /toggle_pro 123456789 on", false)
		return
	}

	log.InfoContext(ctx, "Admin toggling PRO mode",
		"admin_id", update.Message.From.ID, "target_id", tgID, "enable", enable)

	if err := h.deps.API.SetPro(ctx, tgID, enable); err != nil {
		log.WarnContext(ctx, "PRO toggle failed", "target_id", tgID, "error", err)
		reply(formatAPIError(tgID, err), false)
		return
	}

	status := "❌ Выключен"
	if enable {
		status = "⚡ Включён"
	}
	reply(fmt.Sprintf("✅ PRO режим для <code>%d</code>: %s", tgID, status), true)
}
