package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
)

// newTicketReminderTask creates the scheduled task that reminds admins about
// tickets that have stayed open longer than the configured minimum age.
func newTicketReminderTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "open_ticket_reminder")

	return func(ctx context.Context) error {
		cutoff := time.Now().Add(-deps.Config.Scheduler.Reminder.MinAge)
		stale := deps.Store.OlderThan(cutoff)
		if len(stale) == 0 {
			log.DebugContext(ctx, "No stale tickets, skipping reminder")
			return nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("⏰ Напоминание: %d тикет(ов) без ответа:\n", len(stale)))
		for _, t := range stale {
			age := time.Since(t.OpenedAt).Round(time.Minute)
			sb.WriteString(fmt.Sprintf("• @%s (ID: %d) — %d сообщ., открыт %s назад\n",
				t.Username, t.UserID, len(t.Records), age))
		}
		text := sb.String()

		var failed int
		for _, adminID := range deps.Config.Telegram.AdminIDs {
			_, err := deps.TG.SendMessage(ctx, &tgbot.SendMessageParams{
				ChatID: adminID,
				Text:   text,
			})
			if err != nil {
				failed++
				log.WarnContext(ctx, "Failed to send ticket reminder to admin", "admin_id", adminID, "error", err)
			}
		}

		log.InfoContext(ctx, "Ticket reminder sent", "tickets", len(stale), "admins", len(deps.Config.Telegram.AdminIDs), "failed", failed)
		return nil
	}
}
