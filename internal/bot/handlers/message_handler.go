package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kirillqa17/tech-support-bot/internal/ticket"
)

// NewMessageHandler returns the default handler for every update no command
// or callback handler claimed. It routes admin replies to ticket-view
// notices back to the originating user, and treats everything else from a
// non-admin as a support-ticket message.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if h.deps.Config.Telegram.IsAdmin(msg.From.ID) {
		if msg.ReplyToMessage != nil {
			h.handleAdminReply(ctx, b, msg)
		}
		// Admin chatter that is not a reply is ignored.
		return
	}

	h.handleUserMessage(ctx, b, msg)
}

// handleUserMessage records an inbound user message, acknowledges it, and
// fans the notification out to every admin. One admin's delivery failure
// never blocks the rest.
func (h messageHandler) handleUserMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	log := h.deps.Logger.With("handler", "user_message")
	tg := h.deps.transport(b)

	kind, ok := kindOf(msg)
	if !ok {
		log.DebugContext(ctx, "Ignoring unsupported content type", "chat_id", msg.Chat.ID, "message_id", msg.ID)
		return
	}

	userID := msg.From.ID
	username := msg.From.Username

	rec := ticket.Record{
		Kind:       kind,
		ChatID:     msg.Chat.ID,
		MessageID:  msg.ID,
		Username:   username,
		ReceivedAt: time.Unix(int64(msg.Date), 0),
	}
	created := h.deps.Store.Append(userID, username, rec)
	displayName := h.deps.Store.DisplayName(userID)

	if _, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   h.deps.Config.Messages.UserAck,
	}); err != nil {
		log.ErrorContext(ctx, "Failed to acknowledge user message", "error", err, "user_id", userID)
	}

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{Text: "Ответить", CallbackData: viewTicketCallback(userID)},
		}},
	}

	if created {
		log.InfoContext(ctx, "New ticket opened", "user_id", userID, "username", displayName)
		forEachAdmin(ctx, log, h.deps.Config.Telegram.AdminIDs, "new_ticket", func(adminID int64) error {
			_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: adminID,
				Text: fmt.Sprintf("📩 Новый тикет от @%s (ID: <code>%d</code>)",
					displayName, userID),
				ParseMode:   models.ParseModeHTML,
				ReplyMarkup: markup,
			})
			return err
		})
		return
	}

	log.InfoContext(ctx, "Message appended to open ticket", "user_id", userID)
	forEachAdmin(ctx, log, h.deps.Config.Telegram.AdminIDs, "ticket_message", func(adminID int64) error {
		if _, err := tg.ForwardMessage(ctx, &bot.ForwardMessageParams{
			ChatID:     adminID,
			FromChatID: rec.ChatID,
			MessageID:  rec.MessageID,
		}); err != nil {
			return err
		}
		_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: adminID,
			Text: fmt.Sprintf("📩 Новое сообщение в тикете от @%s (ID: <code>%d</code>)",
				displayName, userID),
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
		return err
	})
}

// handleAdminReply routes an admin's reply to a ticket-view notice back to
// the user whose ticket the admin has open. Replies to anything else are a
// no-op; a reply to a recognizable notice whose viewing state is gone (the
// ticket was closed) is reported as a failure and nothing is sent.
func (h messageHandler) handleAdminReply(ctx context.Context, b *bot.Bot, msg *models.Message) {
	log := h.deps.Logger.With("handler", "admin_reply")
	tg := h.deps.transport(b)
	adminID := msg.From.ID

	reply := func(text string) {
		if _, err := tg.SendMessage(ctx, &bot.SendMessageParams{ChatID: msg.Chat.ID, Text: text}); err != nil {
			log.ErrorContext(ctx, "Failed to send reply status", "error", err, "chat_id", msg.Chat.ID)
		}
	}

	view, viewing := h.deps.Store.Viewing(adminID)
	if !viewing || msg.ReplyToMessage.ID != view.NoticeMessageID {
		if strings.Contains(msg.ReplyToMessage.Text, viewNoticePrefix) {
			// A stale notice: the ticket was closed or another one was opened
			// since. There is no user to route to.
			reply("Не удалось определить пользователя. Откройте тикет заново через /reply.")
		}
		return
	}

	if err := sendContent(ctx, tg, view.UserID, msg, h.deps.Config.Messages.ReplyPrefix); err != nil {
		log.ErrorContext(ctx, "Failed to deliver admin reply", "error", err, "user_id", view.UserID)
		reply(fmt.Sprintf("Ошибка при отправке ответа: %v", err))
		return
	}

	log.InfoContext(ctx, "Admin replied to ticket", "admin_id", adminID, "user_id", view.UserID)
	reply(fmt.Sprintf("Ответ отправлен пользователю @%s.", h.deps.Store.DisplayName(view.UserID)))
}
