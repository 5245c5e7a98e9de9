package chat

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo, used in dev without a
// database and by handler tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session   // sessionID -> session
	messages map[string][]Message // sessionID -> messages, insertion order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sessions: make(map[string]Session),
		messages: make(map[string][]Message),
	}
}

// CreateSession stores a new session.
func (r *MemoryRepo) CreateSession(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

// GetSession returns a session owned by the user.
func (r *MemoryRepo) GetSession(ctx context.Context, userID, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	if !ok || session.UserID != userID {
		return Session{}, ErrNotFound
	}
	return session, nil
}

// ListSessions returns the user's sessions, most recently updated first.
func (r *MemoryRepo) ListSessions(ctx context.Context, userID string) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Session, 0)
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// TouchSession updates the denormalized preview fields.
func (r *MemoryRepo) TouchSession(ctx context.Context, userID, sessionID, lastMessage string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok || session.UserID != userID {
		return ErrNotFound
	}
	session.LastMessage = lastMessage
	session.UpdatedAt = time.Now().UTC()
	r.sessions[sessionID] = session
	return nil
}

// CreateMessage appends a message to its session.
func (r *MemoryRepo) CreateMessage(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.SessionID] = append(r.messages[msg.SessionID], msg)
	return nil
}

// ListMessages returns messages in insertion order.
func (r *MemoryRepo) ListMessages(ctx context.Context, sessionID string) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	msgs := r.messages[sessionID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
