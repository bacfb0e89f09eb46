package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kirillqa17/tech-support-bot/internal/bot/handlers"
	"github.com/kirillqa17/tech-support-bot/internal/config"
	"github.com/kirillqa17/tech-support-bot/internal/ticket"
)

// fakeSender satisfies handlers.Transport for the one method the reminder
// task uses. The embedded interface panics on anything else.
type fakeSender struct {
	handlers.Transport
	sent []*tgbot.SendMessageParams
	fail map[int64]bool
}

func (f *fakeSender) SendMessage(_ context.Context, params *tgbot.SendMessageParams) (*models.Message, error) {
	if id, ok := params.ChatID.(int64); ok && f.fail[id] {
		return nil, errors.New("send failed")
	}
	f.sent = append(f.sent, params)
	return &models.Message{ID: 1}, nil
}

func newReminderDeps(admins []int64) (TaskDeps, *fakeSender) {
	fs := &fakeSender{fail: make(map[int64]bool)}
	cfg := &config.Config{
		Telegram:  config.TelegramConfig{AdminIDs: admins},
		Scheduler: config.SchedulerConfig{Reminder: config.ReminderConfig{MinAge: time.Hour}},
	}
	return TaskDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:  ticket.NewStore(nil),
		TG:     fs,
		Config: cfg,
	}, fs
}

func TestTicketReminderSkipsWhenNothingStale(t *testing.T) {
	t.Parallel()

	deps, fs := newReminderDeps([]int64{1000})
	deps.Store.Append(42, "fresh", ticket.Record{Kind: ticket.KindText, ReceivedAt: time.Now()})

	task := newTicketReminderTask(deps)
	if err := task(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.sent) != 0 {
		t.Errorf("expected no reminders, got %d", len(fs.sent))
	}
}

func TestTicketReminderDigestsStaleTickets(t *testing.T) {
	t.Parallel()

	deps, fs := newReminderDeps([]int64{1000, 1001})
	fs.fail[1001] = true
	now := time.Now()
	deps.Store.Append(42, "old", ticket.Record{Kind: ticket.KindText, ReceivedAt: now.Add(-2 * time.Hour)})
	deps.Store.Append(43, "fresh", ticket.Record{Kind: ticket.KindText, ReceivedAt: now})

	task := newTicketReminderTask(deps)
	if err := task(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One admin fails, the other still gets the digest.
	if len(fs.sent) != 1 {
		t.Fatalf("expected 1 delivered reminder, got %d", len(fs.sent))
	}
	text := fs.sent[0].Text
	if !strings.Contains(text, "@old") {
		t.Errorf("expected stale ticket in digest:\n%s", text)
	}
	if strings.Contains(text, "@fresh") {
		t.Errorf("fresh ticket must not appear in digest:\n%s", text)
	}
}
