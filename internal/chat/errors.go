package chat

import "errors"

var (
	// ErrNotFound signals a missing session.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidInput signals a rejected request payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLLMUnavailable signals that the assistant could not produce a reply.
	ErrLLMUnavailable = errors.New("llm unavailable")
)
