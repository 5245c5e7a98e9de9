package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"libramind-backend/internal/documents"
	"libramind-backend/internal/llm"
	"libramind-backend/internal/shared/metrics"
	"libramind-backend/internal/shared/telemetry"
	"libramind-backend/internal/shared/util"
)

const (
	// defaultTitleChars bounds the session title derived from the first message.
	defaultTitleChars = 60
	// defaultGroundingChars bounds the document slice prepended to the prompt.
	defaultGroundingChars = 2000
)

// DocumentSource looks up a caller's document for grounding context.
// *documents.PGRepo and *documents.MemoryRepo both satisfy it.
type DocumentSource interface {
	GetByID(ctx context.Context, userID, documentID string) (documents.Document, error)
}

// Service runs chat turns against the configured assistant.
type Service struct {
	Repo           Repo
	LLM            llm.Client
	Docs           DocumentSource
	TitleChars     int
	GroundingChars int
}

// Turn handles one chat exchange. The assistant reply is the response itself,
// so an LLM failure surfaces as ErrLLMUnavailable instead of degrading.
// Message persistence and session preview updates are best-effort.
func (s *Service) Turn(ctx context.Context, userID string, req TurnRequest) (TurnResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return TurnResponse{}, fmt.Errorf("%w: message required", ErrInvalidInput)
	}
	if userID == "" {
		return TurnResponse{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
		titleChars := s.TitleChars
		if titleChars <= 0 {
			titleChars = defaultTitleChars
		}
		session := Session{
			ID:        sessionID,
			UserID:    userID,
			Title:     util.TruncateRunes(message, titleChars),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Repo.CreateSession(ctx, session); err != nil {
			metrics.IncChatTurn("failed")
			return TurnResponse{}, fmt.Errorf("create session: %w", err)
		}
	} else {
		if _, err := s.Repo.GetSession(ctx, userID, sessionID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return TurnResponse{}, err
			}
			return TurnResponse{}, fmt.Errorf("load session: %w", err)
		}
	}

	userMsg := Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    SenderUser,
		Content:   message,
		Kind:      "text",
		CreatedAt: now,
	}
	if err := s.Repo.CreateMessage(ctx, userMsg); err != nil {
		telemetry.Error("chat.message.persist_failed", map[string]any{
			"session_id": sessionID,
			"sender":     SenderUser,
			"err":        err.Error(),
		})
	}

	prompt := s.buildPrompt(ctx, userID, req.DocumentID, message)

	reply, err := s.LLM.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		metrics.IncChatTurn("failed")
		if err == nil {
			err = errors.New("empty completion")
		}
		telemetry.Error("chat.llm.failed", map[string]any{
			"session_id": sessionID,
			"err":        err.Error(),
		})
		return TurnResponse{}, fmt.Errorf("%w: %v", ErrLLMUnavailable, err)
	}

	aiMsg := Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    SenderAI,
		Content:   reply,
		Kind:      "text",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateMessage(ctx, aiMsg); err != nil {
		telemetry.Error("chat.message.persist_failed", map[string]any{
			"session_id": sessionID,
			"sender":     SenderAI,
			"err":        err.Error(),
		})
	}
	if err := s.Repo.TouchSession(ctx, userID, sessionID, util.TruncateRunes(reply, 120)); err != nil {
		telemetry.Error("chat.session.touch_failed", map[string]any{
			"session_id": sessionID,
			"err":        err.Error(),
		})
	}

	metrics.IncChatTurn("completed")

	return TurnResponse{
		SessionID: sessionID,
		Message:   toMessageResponse(aiMsg),
	}, nil
}

// buildPrompt prepends a slice of the referenced document's extracted text
// when the caller owns it. Grounding is optional context, so lookup failures
// only log.
func (s *Service) buildPrompt(ctx context.Context, userID, documentID, message string) string {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" || s.Docs == nil {
		return message
	}

	doc, err := s.Docs.GetByID(ctx, userID, documentID)
	if err != nil {
		telemetry.Warn("chat.grounding.unavailable", map[string]any{
			"document_id": documentID,
			"err":         err.Error(),
		})
		return message
	}

	groundingChars := s.GroundingChars
	if groundingChars <= 0 {
		groundingChars = defaultGroundingChars
	}
	excerpt := util.TruncateRunes(doc.Content, groundingChars)

	return fmt.Sprintf(
		"You are a reading assistant. Use the following document excerpt to answer.\n\nDocument %q:\n%s\n\nQuestion: %s",
		doc.FileName, excerpt, message,
	)
}

// ListSessions returns the caller's sessions, most recently updated first.
func (s *Service) ListSessions(ctx context.Context, userID string) ([]SessionItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	sessions, err := s.Repo.ListSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]SessionItem, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionItem(session))
	}
	return out, nil
}

// ListMessages returns a session's messages in insertion order, after
// checking the caller owns the session.
func (s *Service) ListMessages(ctx context.Context, userID, sessionID string) ([]MessageResponse, error) {
	if _, err := s.Repo.GetSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	msgs, err := s.Repo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out, nil
}
