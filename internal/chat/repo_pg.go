package chat

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateSession inserts a new session row.
func (r *PGRepo) CreateSession(ctx context.Context, session Session) error {
	const query = `
INSERT INTO chat_sessions (
    id,
    user_id,
    title,
    last_message,
    unread_count,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.Title,
		session.LastMessage,
		session.UnreadCount,
		session.CreatedAt,
		session.UpdatedAt,
	)
	return err
}

// GetSession fetches a session owned by the user.
func (r *PGRepo) GetSession(ctx context.Context, userID, sessionID string) (Session, error) {
	const query = `
SELECT id, user_id, title, last_message, unread_count, created_at, updated_at
FROM chat_sessions
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var s Session
	err := r.DB.QueryRowContext(ctx, query, userID, sessionID).Scan(
		&s.ID, &s.UserID, &s.Title, &s.LastMessage, &s.UnreadCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return s, nil
}

// ListSessions lists sessions for the user, most recently updated first.
func (r *PGRepo) ListSessions(ctx context.Context, userID string) ([]Session, error) {
	const query = `
SELECT id, user_id, title, last_message, unread_count, created_at, updated_at
FROM chat_sessions
WHERE user_id = $1
ORDER BY updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Title, &s.LastMessage, &s.UnreadCount, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TouchSession updates the denormalized preview and timestamp.
func (r *PGRepo) TouchSession(ctx context.Context, userID, sessionID, lastMessage string) error {
	const query = `
UPDATE chat_sessions
SET last_message = $1, updated_at = NOW()
WHERE user_id = $2 AND id = $3`
	res, err := r.DB.ExecContext(ctx, query, lastMessage, userID, sessionID)
	if err != nil {
		return err
	}
	if updated, err := res.RowsAffected(); err == nil && updated == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateMessage inserts a message row.
func (r *PGRepo) CreateMessage(ctx context.Context, msg Message) error {
	const query = `
INSERT INTO chat_messages (
    id,
    session_id,
    sender,
    content,
    kind,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		msg.ID,
		msg.SessionID,
		msg.Sender,
		msg.Content,
		msg.Kind,
		msg.CreatedAt,
	)
	return err
}

// ListMessages returns messages in insertion order.
func (r *PGRepo) ListMessages(ctx context.Context, sessionID string) ([]Message, error) {
	const query = `
SELECT id, session_id, sender, content, kind, created_at
FROM chat_messages
WHERE session_id = $1
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Sender, &m.Content, &m.Kind, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
