package chat

import "context"

// Repo persists chat sessions and their messages.
type Repo interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, userID, sessionID string) (Session, error)
	ListSessions(ctx context.Context, userID string) ([]Session, error)
	// TouchSession updates the denormalized preview and timestamp.
	TouchSession(ctx context.Context, userID, sessionID, lastMessage string) error

	CreateMessage(ctx context.Context, msg Message) error
	// ListMessages returns a session's messages in insertion order.
	ListMessages(ctx context.Context, sessionID string) ([]Message, error)
}
