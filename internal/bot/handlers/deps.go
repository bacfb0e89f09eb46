package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kirillqa17/tech-support-bot/internal/config"
	"github.com/kirillqa17/tech-support-bot/internal/subscription"
	"github.com/kirillqa17/tech-support-bot/internal/ticket"
)

// Transport is the subset of *bot.Bot send primitives the handlers use.
// *bot.Bot satisfies it directly; tests substitute a fake transport.
type Transport interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	ForwardMessage(ctx context.Context, params *bot.ForwardMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
	SendAudio(ctx context.Context, params *bot.SendAudioParams) (*models.Message, error)
	SendVideo(ctx context.Context, params *bot.SendVideoParams) (*models.Message, error)
	SendVoice(ctx context.Context, params *bot.SendVoiceParams) (*models.Message, error)
	SendSticker(ctx context.Context, params *bot.SendStickerParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  *ticket.Store
	API    *subscription.Client

	// TG overrides the transport used for outbound calls. Left nil in
	// production so handlers use the live *bot.Bot they were invoked with.
	TG Transport
}

// transport selects the outbound transport for a handler invocation.
func (d HandlerDeps) transport(b *bot.Bot) Transport {
	if d.TG != nil {
		return d.TG
	}
	return b
}
