package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kirillqa17/tech-support-bot/internal/ticket"
)

// NewViewTicketHandler returns the callback handler for view_ticket_<id>
// buttons: it re-forwards the ticket's accumulated history to the admin,
// sends the view notice with a close button, and records the admin's
// viewing state so their next reply can be routed.
func NewViewTicketHandler(deps HandlerDeps) bot.HandlerFunc {
	return viewTicketHandler{deps}.Handle
}

type viewTicketHandler struct {
	deps HandlerDeps
}

func (h viewTicketHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "view_ticket")
	tg := h.deps.transport(b)

	cq := update.CallbackQuery
	adminChatID, ok := callbackChatID(cq)
	if !ok {
		log.WarnContext(ctx, "View callback without accessible message", "update_id", update.ID)
		return
	}
	answer := func() {
		if _, err := tg.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID}); err != nil {
			log.ErrorContext(ctx, "Failed to answer callback query", "error", err)
		}
	}
	defer answer()

	if !h.deps.Config.Telegram.IsAdmin(cq.From.ID) {
		log.WarnContext(ctx, "Non-admin pressed ticket button", "user_id", cq.From.ID)
		return
	}

	userID, err := callbackUserID(cq.Data, "view_ticket_")
	if err != nil {
		log.ErrorContext(ctx, "Malformed view callback data", "data", cq.Data, "error", err)
		return
	}

	t, ok := h.deps.Store.Get(userID)
	if !ok {
		if _, err := tg.SendMessage(ctx, &bot.SendMessageParams{ChatID: adminChatID, Text: "Тикет не найден."}); err != nil {
			log.ErrorContext(ctx, "Failed to send ticket-not-found message", "error", err, "chat_id", adminChatID)
		}
		return
	}

	log.InfoContext(ctx, "Admin viewing ticket", "admin_id", cq.From.ID, "user_id", userID)

	for _, rec := range t.Records {
		if _, err := tg.ForwardMessage(ctx, &bot.ForwardMessageParams{
			ChatID:     adminChatID,
			FromChatID: rec.ChatID,
			MessageID:  rec.MessageID,
		}); err != nil {
			log.ErrorContext(ctx, "Failed to forward ticket message",
				"error", err, "user_id", userID, "message_id", rec.MessageID)
		}
	}

	notice, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: adminChatID,
		Text: fmt.Sprintf("%s%s (ID: <code>%d</code>). Ответьте на это сообщение, чтобы отправить ответ пользователю.",
			viewNoticePrefix, t.Username, userID),
		ParseMode: models.ParseModeHTML,
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{{
				{Text: "Закрыть тикет", CallbackData: closeTicketCallback(userID)},
			}},
		},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send view notice", "error", err, "chat_id", adminChatID)
		return
	}

	h.deps.Store.SetViewing(cq.From.ID, ticket.View{UserID: userID, NoticeMessageID: notice.ID})
}

// NewCloseTicketHandler returns the callback handler for close_ticket_<id>
// buttons: it removes the ticket from the open set and discards its history.
func NewCloseTicketHandler(deps HandlerDeps) bot.HandlerFunc {
	return closeTicketHandler{deps}.Handle
}

type closeTicketHandler struct {
	deps HandlerDeps
}

func (h closeTicketHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "close_ticket")
	tg := h.deps.transport(b)

	cq := update.CallbackQuery
	adminChatID, ok := callbackChatID(cq)
	if !ok {
		log.WarnContext(ctx, "Close callback without accessible message", "update_id", update.ID)
		return
	}
	defer func() {
		if _, err := tg.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID}); err != nil {
			log.ErrorContext(ctx, "Failed to answer callback query", "error", err)
		}
	}()

	if !h.deps.Config.Telegram.IsAdmin(cq.From.ID) {
		log.WarnContext(ctx, "Non-admin pressed ticket button", "user_id", cq.From.ID)
		return
	}

	userID, err := callbackUserID(cq.Data, "close_ticket_")
	if err != nil {
		log.ErrorContext(ctx, "Malformed close callback data", "data", cq.Data, "error", err)
		return
	}

	text := "Тикет закрыт."
	if !h.deps.Store.Close(userID) {
		text = "Тикет уже закрыт или не существует."
	} else {
		log.InfoContext(ctx, "Admin closed ticket", "admin_id", cq.From.ID, "user_id", userID)
	}

	if _, err := tg.SendMessage(ctx, &bot.SendMessageParams{ChatID: adminChatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send close confirmation", "error", err, "chat_id", adminChatID)
	}
}

// callbackChatID extracts the chat the callback button lives in, handling
// the inaccessible-message case.
func callbackChatID(cq *models.CallbackQuery) (int64, bool) {
	if cq == nil {
		return 0, false
	}
	if cq.Message.Message != nil {
		return cq.Message.Message.Chat.ID, true
	}
	if cq.Message.InaccessibleMessage != nil {
		return cq.Message.InaccessibleMessage.Chat.ID, true
	}
	return 0, false
}

// callbackUserID parses the user identifier out of a callback token.
func callbackUserID(data, prefix string) (int64, error) {
	return parseTelegramID(strings.TrimPrefix(data, prefix))
}
