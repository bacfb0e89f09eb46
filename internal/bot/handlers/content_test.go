package handlers

import (
	"context"
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		msg      *models.Message
		expected string
		ok       bool
	}{
		{"text", &models.Message{Text: "hi"}, "text", true},
		{"photo", &models.Message{Photo: []models.PhotoSize{{FileID: "p"}}}, "photo", true},
		{"document", &models.Message{Document: &models.Document{FileID: "d"}}, "document", true},
		{"voice", &models.Message{Voice: &models.Voice{FileID: "v"}}, "voice", true},
		{"sticker", &models.Message{Sticker: &models.Sticker{FileID: "s"}}, "sticker", true},
		{"location", &models.Message{Location: &models.Location{}}, "", false},
		{"empty", &models.Message{}, "", false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			kind, ok := kindOf(tc.msg)
			if ok != tc.ok || string(kind) != tc.expected {
				t.Errorf("kindOf() = (%q, %v), expected (%q, %v)", kind, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestSendContentText(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{}
	msg := &models.Message{Text: "hello"}

	if err := sendContent(context.Background(), ft, 42, msg, "prefix:"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ft.sent) != 1 || ft.sent[0].Text != "prefix:\nhello" {
		t.Errorf("unexpected sends: %+v", ft.sent)
	}
}

func TestSendContentPicksLargestPhoto(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{}
	msg := &models.Message{
		Photo:   []models.PhotoSize{{FileID: "small"}, {FileID: "medium"}, {FileID: "large"}},
		Caption: "screenshot",
	}

	if err := sendContent(context.Background(), ft, 42, msg, "prefix:"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ft.photos) != 1 {
		t.Fatalf("expected 1 photo send, got %d", len(ft.photos))
	}
	file, ok := ft.photos[0].Photo.(*models.InputFileString)
	if !ok || file.Data != "large" {
		t.Errorf("expected the largest photo size to be sent, got %+v", ft.photos[0].Photo)
	}
	if ft.photos[0].Caption != "prefix:\nscreenshot" {
		t.Errorf("unexpected caption: %q", ft.photos[0].Caption)
	}
}

func TestSendContentStickerWithNotice(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{}
	msg := &models.Message{Sticker: &models.Sticker{FileID: "stk"}}

	if err := sendContent(context.Background(), ft, 42, msg, "prefix:"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ft.stickers) != 1 {
		t.Fatalf("expected 1 sticker send, got %d", len(ft.stickers))
	}
	if len(ft.sent) != 1 || ft.sent[0].Text != "prefix: (стикер)" {
		t.Errorf("expected follow-up notice after sticker, got %+v", ft.sent)
	}
}

func TestSendContentUnsupported(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{}
	if err := sendContent(context.Background(), ft, 42, &models.Message{}, "prefix:"); err == nil {
		t.Error("expected an error for unsupported content")
	}
}
