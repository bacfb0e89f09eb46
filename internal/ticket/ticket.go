// Package ticket implements the in-memory ticket store: per-user message
// history, the open-ticket set, the display-name cache, and the per-admin
// viewing state used to route admin replies. All state is process-local;
// a restart loses every open ticket.
package ticket

import (
	"fmt"
	"time"
)

// Kind tags the content type of a stored or relayed message.
type Kind string

// Content kinds handled by the bot. Anything else (locations, polls, ...)
// is ignored by the ticket flow.
const (
	KindText     Kind = "text"
	KindPhoto    Kind = "photo"
	KindDocument Kind = "document"
	KindAudio    Kind = "audio"
	KindVideo    Kind = "video"
	KindVoice    Kind = "voice"
	KindSticker  Kind = "sticker"
)

// Record references one inbound user message: enough to re-forward the
// original via the platform, plus the sender's display name at receipt time.
type Record struct {
	Kind       Kind
	ChatID     int64
	MessageID  int
	Username   string
	ReceivedAt time.Time
}

// Ticket is the accumulated message history and status for one user.
// A ticket exists in the store iff it is open.
type Ticket struct {
	UserID   int64
	Username string
	OpenedAt time.Time
	Records  []Record
}

// View is the per-admin viewing state: which user's ticket the admin has
// open and the message ID of the view notice their reply must target.
type View struct {
	UserID          int64
	NoticeMessageID int
}

// FallbackName returns the display name used when a user has no username.
func FallbackName(userID int64) string {
	return fmt.Sprintf("id%d", userID)
}
