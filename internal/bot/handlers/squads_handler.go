package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kirillqa17/tech-support-bot/internal/subscription"
)

// NewSquadsHandler returns a handler for the /squads command: the user's
// current group memberships as reported by the management API.
func NewSquadsHandler(deps HandlerDeps) bot.HandlerFunc {
	return squadsHandler{deps}.Handle
}

type squadsHandler struct {
	deps HandlerDeps
}

func (h squadsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "squads")
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
		reply("Использование: /squads TG_ID\nПример: /squads 123456789", false)
		return
	}

	tgID, err := parseTelegramID(args[1])
	if err != nil {
		reply(fmt.Sprintf("❌ Ошибка: %v", err), false)
		return
	}

	log.InfoContext(ctx, "Admin requested squads",
		"admin_id", update.Message.From.ID, "target_id", tgID)

	squads, err := h.deps.API.Squads(ctx, tgID)
	if err != nil {
		log.WarnContext(ctx, "Squad lookup failed", "target_id", tgID, "error", err)
		reply(formatAPIError(tgID, err), false)
		return
	}

	if len(squads) == 0 {
		reply(fmt.Sprintf("У пользователя %d нет назначенных сквадов.", tgID), false)
		return
	}

	lines := []string{fmt.Sprintf("<b>🏷 Сквады пользователя %d:</b>\n", tgID)}
	for _, s := range squads {
		name := s.Name
		if name == "" {
			name = subscription.SquadName(s.UUID)
		}
		lines = append(lines, fmt.Sprintf("  • <b>%s</b>\n    <code>%s</code>", name, s.UUID))
	}
	reply(strings.Join(lines, "\n"), true)
}
