package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCompensateHandler returns a handler for the /compensate command: a
// bulk subscription extension for every active, paying account. A single
// progress message is edited in place with the final tally.
func NewCompensateHandler(deps HandlerDeps) bot.HandlerFunc {
	return compensateHandler{deps}.Handle
}

type compensateHandler struct {
	deps HandlerDeps
}

func (h compensateHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "compensate")
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
		reply("Использование: /compensate DAYS\nПример: /compensate 7", false)
		return
	}

	days, err := parseDays(args[1])
	if err != nil {
		reply(fmt.Sprintf("❌ Ошибка: %v", err), false)
		return
	}

	log.InfoContext(ctx, "Admin starting compensation",
		"admin_id", update.Message.From.ID, "days", days)

	users, err := h.deps.API.ActiveUsers(ctx)
	if err != nil {
		log.WarnContext(ctx, "Failed to list active users", "error", err)
		reply(fmt.Sprintf("❌ Не удалось получить список пользователей: %v", err), false)
		return
	}
	if len(users) == 0 {
		reply("Нет активных пользователей.", false)
		return
	}

	progress, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("⏳ Начисляю компенсацию %d дн. для %d активных пользователей...", days, len(users)),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send progress message", "error", err, "chat_id", chatID)
		return
	}

	res, err := h.deps.API.Compensate(ctx, users, days)
	if err != nil {
		log.ErrorContext(ctx, "Compensation aborted", "error", err)
		reply(fmt.Sprintf("❌ Компенсация прервана: %v", err), false)
		return
	}

	result := fmt.Sprintf("✅ Компенсация завершена!\n\n"+
		"<b>Дней:</b> %d\n"+
		"<b>Всего активных:</b> %d\n"+
		"<b>Успешно:</b> %d\n"+
		"<b>Пропущено (trial/free):</b> %d\n"+
		"<b>Ошибки:</b> %d",
		days, res.Total, res.Success, res.Skipped, res.Failed)

	if _, err := tg.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: progress.ID,
		Text:      result,
		ParseMode: models.ParseModeHTML,
	}); err != nil {
		log.ErrorContext(ctx, "Failed to edit progress message", "error", err, "chat_id", chatID)
	}
}
