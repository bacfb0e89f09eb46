package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kirillqa17/tech-support-bot/internal/subscription"
)

const extendUsage = "Использование: /extend TG_ID PLAN DAYS\n" +
	"Пример: /extend 123456789 base 30\n\n" +
	"Доступные планы: %s\n\n" +
	"<b>Сквады по планам:</b>\n" +
	"  base, family, trial, free → Default\n" +
	"  bsbase, bsfamily → Default + BS\n" +
	"  + PRO режим → + PRO сквад"

// NewExtendHandler returns a handler for the /extend command. All argument
// validation happens before any remote call.
func NewExtendHandler(deps HandlerDeps) bot.HandlerFunc {
	return extendHandler{deps}.Handle
}

type extendHandler struct {
	deps HandlerDeps
}

func (h extendHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "extend")
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
	if len(args) != 4 {
		reply(fmt.Sprintf(extendUsage, strings.Join(subscription.ValidPlans, ", ")), true)
		return
	}

	tgID, err := parseTelegramID(args[1])
	if err != nil {
		reply(fmt.Sprintf("❌ Ошибка: %v", err), false)
		return
	}

	plan := strings.ToLower(args[2])
	if !subscription.ValidPlan(plan) {
		reply(fmt.Sprintf("❌ Неизвестный план '%s'.\nДоступные: %s",
			plan, strings.Join(subscription.ValidPlans, ", ")), false)
		return
	}

	days, err := parseDays(args[3])
	if err != nil {
		reply(fmt.Sprintf("❌ Ошибка: %v", err), false)
		return
	}

	log.InfoContext(ctx, "Admin extending subscription",
		"admin_id", update.Message.From.ID, "target_id", tgID, "plan", plan, "days", days)

	if err := h.deps.API.Extend(ctx, tgID, plan, days); err != nil {
		log.WarnContext(ctx, "Extend failed", "target_id", tgID, "error", err)
		reply(formatAPIError(tgID, err), false)
		return
	}

	squadsInfo := "Default"
	if strings.HasPrefix(plan, "bs") {
		squadsInfo = "Default + BS"
	}
	reply(fmt.Sprintf("✅ Подписка продлена\n\n"+
		"<b>ID:</b> <code>%d</code>\n"+
		"<b>План:</b> %s\n"+
		"<b>Дней:</b> %d\n"+
		"<b>Сквады:</b> %s",
		tgID, subscription.PlanDisplay(plan), days, squadsInfo), true)
}
