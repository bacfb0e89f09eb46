package ticket

import (
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Store owns all mutable ticket state. go-telegram/bot dispatches each
// update on its own goroutine, so access is guarded by an RWMutex.
type Store struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	tickets map[int64]*Ticket
	names   map[int64]string
	viewing map[int64]View
}

// NewStore creates an empty ticket store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		logger:  logger.With("component", "ticket_store"),
		tickets: make(map[int64]*Ticket),
		names:   make(map[int64]string),
		viewing: make(map[int64]View),
	}
}

// Append records an inbound user message, opening a ticket if the user has
// none. It returns true when a new ticket was created. The display-name
// cache is refreshed on every call.
func (s *Store) Append(userID int64, username string, rec Record) (created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" {
		username = FallbackName(userID)
	}
	s.names[userID] = username

	t, ok := s.tickets[userID]
	if !ok {
		t = &Ticket{
			UserID:   userID,
			Username: username,
			OpenedAt: rec.ReceivedAt,
		}
		s.tickets[userID] = t
		created = true
		s.logger.Info("Opened new ticket", "user_id", userID, "username", username)
	}
	t.Username = username
	t.Records = append(t.Records, rec)
	return created
}

// Get returns a snapshot of the user's open ticket, or false if none exists.
func (s *Store) Get(userID int64) (Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tickets[userID]
	if !ok {
		return Ticket{}, false
	}
	return snapshot(t), true
}

// Open returns snapshots of all open tickets, oldest first.
func (s *Store) Open() []Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, snapshot(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenedAt.Before(out[j].OpenedAt) })
	return out
}

// Len returns the number of open tickets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}

// Close removes the user from the open set and discards the accumulated
// history. Viewing state pointing at the ticket is cleared for every admin.
// It returns false if the user had no open ticket.
func (s *Store) Close(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[userID]; !ok {
		return false
	}
	delete(s.tickets, userID)
	for adminID, v := range s.viewing {
		if v.UserID == userID {
			delete(s.viewing, adminID)
		}
	}
	s.logger.Info("Closed ticket", "user_id", userID)
	return true
}

// DisplayName returns the cached display name for the user, falling back to
// a synthetic id<N> name. The cache never expires.
func (s *Store) DisplayName(userID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name, ok := s.names[userID]; ok && name != "" {
		return name
	}
	return FallbackName(userID)
}

// SetViewing records that the admin has opened the given ticket view,
// replacing any previously viewed ticket for that admin.
func (s *Store) SetViewing(adminID int64, v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewing[adminID] = v
}

// Viewing returns the admin's current viewing state, if any.
func (s *Store) Viewing(adminID int64) (View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.viewing[adminID]
	return v, ok
}

// OlderThan returns snapshots of open tickets whose first message arrived
// before the given cutoff, oldest first. Used by the reminder task.
func (s *Store) OlderThan(cutoff time.Time) []Ticket {
	all := s.Open()
	out := all[:0]
	for _, t := range all {
		if t.OpenedAt.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

func snapshot(t *Ticket) Ticket {
	cp := *t
	cp.Records = make([]Record, len(t.Records))
	copy(cp.Records, t.Records)
	return cp
}
