package chat

import "time"

// Session groups the turns of one conversation with the assistant. LastMessage
// and UnreadCount are denormalized for list views and updated best-effort.
type Session struct {
	ID          string
	UserID      string
	Title       string
	LastMessage string
	UnreadCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Message senders.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message is a single turn within a session.
type Message struct {
	ID        string
	SessionID string
	Sender    string
	Content   string
	Kind      string
	CreatedAt time.Time
}
