package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewTicketsHandler returns a handler for the /reply command: the list of
// open tickets, one inline button per ticket.
func NewTicketsHandler(deps HandlerDeps) bot.HandlerFunc {
	return ticketsHandler{deps}.Handle
}

type ticketsHandler struct {
	deps HandlerDeps
}

func (h ticketsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "tickets")
	tg := h.deps.transport(b)

	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	log.InfoContext(ctx, "Admin requested open ticket list", "admin_id", update.Message.From.ID)

	open := h.deps.Store.Open()
	if len(open) == 0 {
		if _, err := tg.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "Нет активных тикетов."}); err != nil {
			log.ErrorContext(ctx, "Failed to send empty ticket list", "error", err, "chat_id", chatID)
		}
		return
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(open))
	now := time.Now()
	for _, t := range open {
		label := fmt.Sprintf("@%s (ID: %d) — %d сообщ., %s",
			t.Username, t.UserID, len(t.Records), formatAge(now.Sub(t.OpenedAt)))
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         label,
			CallbackData: viewTicketCallback(t.UserID),
		}})
	}

	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Активные тикеты:",
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send ticket list", "error", err, "chat_id", chatID)
	}
}

// formatAge renders a ticket age compactly for the list labels.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "только что"
	case d < time.Hour:
		return fmt.Sprintf("%d мин", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d ч", int(d.Hours()))
	default:
		return fmt.Sprintf("%d дн", int(d.Hours()/24))
	}
}
