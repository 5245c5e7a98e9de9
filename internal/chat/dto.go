package chat

import "time"

// TurnRequest is the POST /chat payload.
type TurnRequest struct {
	Message    string `json:"message"`
	SessionID  string `json:"sessionId"`
	DocumentID string `json:"documentId"`
}

// MessageResponse is one chat message on the wire.
type MessageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// TurnResponse is the reply to a chat turn.
type TurnResponse struct {
	SessionID string          `json:"sessionId"`
	Message   MessageResponse `json:"message"`
}

// SessionItem is one session in a list view.
type SessionItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastMessage string    `json:"lastMessage"`
	UnreadCount int       `json:"unreadCount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toMessageResponse(m Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Sender:    m.Sender,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func toSessionItem(s Session) SessionItem {
	return SessionItem{
		ID:          s.ID,
		Title:       s.Title,
		LastMessage: s.LastMessage,
		UnreadCount: s.UnreadCount,
		UpdatedAt:   s.UpdatedAt,
	}
}
