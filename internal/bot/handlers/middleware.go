// Package handlers contains Telegram bot command, callback, and message
// handlers, along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminGate restricts a command handler to members of the admin allow-list.
// A non-admin invocation is not rejected: it falls through to the ticket
// path, so a user typing "/info" gets it recorded as an ordinary support
// message instead of an authorization error.
func AdminGate(deps HandlerDeps, fallback tgbot.HandlerFunc) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			if !deps.Config.Telegram.IsAdmin(update.Message.From.ID) {
				log := deps.Logger.With("middleware", "admin_gate")
				log.DebugContext(ctx, "Non-admin command treated as ticket message",
					"user_id", update.Message.From.ID, "chat_id", update.Message.Chat.ID)
				if fallback != nil {
					fallback(ctx, b, update)
				}
				return
			}

			next(ctx, b, update)
		}
	}
}
