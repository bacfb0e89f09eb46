package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kirillqa17/tech-support-bot/internal/config"
	"github.com/kirillqa17/tech-support-bot/internal/ticket"
)

var errSendFailed = errors.New("send failed")

// fakeTransport records every outbound call instead of talking to Telegram.
// Chats listed in failChats make SendMessage return an error.
type fakeTransport struct {
	mu        sync.Mutex
	sent      []*bot.SendMessageParams
	forwarded []*bot.ForwardMessageParams
	edited    []*bot.EditMessageTextParams
	photos    []*bot.SendPhotoParams
	documents []*bot.SendDocumentParams
	stickers  []*bot.SendStickerParams
	answered  []string
	failChats map[int64]bool
	nextID    int
}

func asChatID(v any) int64 {
	switch id := v.(type) {
	case int64:
		return id
	case int:
		return int64(id)
	default:
		return 0
	}
}

func (f *fakeTransport) message(chatID int64) *models.Message {
	f.nextID++
	return &models.Message{ID: 1000 + f.nextID, Chat: models.Chat{ID: chatID}}
}

func (f *fakeTransport) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chatID := asChatID(params.ChatID)
	if f.failChats[chatID] {
		return nil, errSendFailed
	}
	f.sent = append(f.sent, params)
	return f.message(chatID), nil
}

func (f *fakeTransport) ForwardMessage(_ context.Context, params *bot.ForwardMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chatID := asChatID(params.ChatID)
	if f.failChats[chatID] {
		return nil, errSendFailed
	}
	f.forwarded = append(f.forwarded, params)
	return f.message(chatID), nil
}

func (f *fakeTransport) EditMessageText(_ context.Context, params *bot.EditMessageTextParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited = append(f.edited, params)
	return f.message(asChatID(params.ChatID)), nil
}

func (f *fakeTransport) SendPhoto(_ context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos = append(f.photos, params)
	return f.message(asChatID(params.ChatID)), nil
}

func (f *fakeTransport) SendDocument(_ context.Context, params *bot.SendDocumentParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents = append(f.documents, params)
	return f.message(asChatID(params.ChatID)), nil
}

func (f *fakeTransport) SendAudio(_ context.Context, params *bot.SendAudioParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message(asChatID(params.ChatID)), nil
}

func (f *fakeTransport) SendVideo(_ context.Context, params *bot.SendVideoParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message(asChatID(params.ChatID)), nil
}

func (f *fakeTransport) SendVoice(_ context.Context, params *bot.SendVoiceParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message(asChatID(params.ChatID)), nil
}

func (f *fakeTransport) SendSticker(_ context.Context, params *bot.SendStickerParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stickers = append(f.stickers, params)
	return f.message(asChatID(params.ChatID)), nil
}

func (f *fakeTransport) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, params.CallbackQueryID)
	return true, nil
}

// sentTo returns the texts of messages sent to the given chat, in order.
func (f *fakeTransport) sentTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.sent {
		if asChatID(p.ChatID) == chatID {
			out = append(out, p.Text)
		}
	}
	return out
}

func newTestDeps(admins []int64) (HandlerDeps, *fakeTransport) {
	ft := &fakeTransport{failChats: make(map[int64]bool)}
	cfg := &config.Config{
		Telegram: config.TelegramConfig{
			Token:    "test-token",
			AdminIDs: admins,
		},
		Messages: config.MessagesConfig{
			UserWelcome:  "welcome user",
			AdminWelcome: "welcome admin",
			UserAck:      "got it",
			ReplyPrefix:  "✉️ Ответ поддержки:",
			GeneralError: "error",
		},
	}
	deps := HandlerDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: cfg,
		Store:  ticket.NewStore(nil),
		TG:     ft,
	}
	return deps, ft
}

func messageUpdate(userID int64, username, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   10,
			From: &models.User{ID: userID, Username: username},
			Chat: models.Chat{ID: userID},
			Text: text,
			Date: int(time.Now().Unix()),
		},
	}
}

func callbackUpdate(fromID int64, data string, messageID int) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: fromID},
			Data: data,
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: messageID, Chat: models.Chat{ID: fromID}},
			},
		},
	}
}
