package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kirillqa17/tech-support-bot/internal/ticket"
)

// kindOf classifies a Telegram message into one of the content kinds the
// ticket flow handles. ok is false for anything else (locations, polls,
// contacts, service messages).
func kindOf(msg *models.Message) (ticket.Kind, bool) {
	switch {
	case msg.Text != "":
		return ticket.KindText, true
	case len(msg.Photo) > 0:
		return ticket.KindPhoto, true
	case msg.Document != nil:
		return ticket.KindDocument, true
	case msg.Audio != nil:
		return ticket.KindAudio, true
	case msg.Video != nil:
		return ticket.KindVideo, true
	case msg.Voice != nil:
		return ticket.KindVoice, true
	case msg.Sticker != nil:
		return ticket.KindSticker, true
	default:
		return "", false
	}
}

// sendContent relays the given message to chatID using the send primitive
// matching its content kind, prefixing text and captions with prefix. This
// is the single dispatch point for the admin-reply path; stickers carry no
// caption so a follow-up text notice is sent instead.
func sendContent(ctx context.Context, tg Transport, chatID int64, msg *models.Message, prefix string) error {
	kind, ok := kindOf(msg)
	if !ok {
		return fmt.Errorf("unsupported content type")
	}

	caption := prefix
	if msg.Caption != "" {
		caption = prefix + "\n" + msg.Caption
	}

	var err error
	switch kind {
	case ticket.KindText:
		_, err = tg.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   prefix + "\n" + msg.Text,
		})
	case ticket.KindPhoto:
		// Telegram orders photo sizes smallest first; forward the largest.
		photo := msg.Photo[len(msg.Photo)-1]
		_, err = tg.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  chatID,
			Photo:   &models.InputFileString{Data: photo.FileID},
			Caption: caption,
		})
	case ticket.KindDocument:
		_, err = tg.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:   chatID,
			Document: &models.InputFileString{Data: msg.Document.FileID},
			Caption:  caption,
		})
	case ticket.KindAudio:
		_, err = tg.SendAudio(ctx, &bot.SendAudioParams{
			ChatID:  chatID,
			Audio:   &models.InputFileString{Data: msg.Audio.FileID},
			Caption: caption,
		})
	case ticket.KindVideo:
		_, err = tg.SendVideo(ctx, &bot.SendVideoParams{
			ChatID:  chatID,
			Video:   &models.InputFileString{Data: msg.Video.FileID},
			Caption: caption,
		})
	case ticket.KindVoice:
		_, err = tg.SendVoice(ctx, &bot.SendVoiceParams{
			ChatID:  chatID,
			Voice:   &models.InputFileString{Data: msg.Voice.FileID},
			Caption: prefix,
		})
	case ticket.KindSticker:
		if _, err = tg.SendSticker(ctx, &bot.SendStickerParams{
			ChatID:  chatID,
			Sticker: &models.InputFileString{Data: msg.Sticker.FileID},
		}); err == nil {
			_, err = tg.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   prefix + " (стикер)",
			})
		}
	}
	return err
}
