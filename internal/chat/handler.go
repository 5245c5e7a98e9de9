package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"libramind-backend/internal/shared/server/middleware"
	"libramind-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.turn)
	rg.GET("/chat/sessions", h.listSessions)
	rg.GET("/chat/sessions/:id/messages", h.listMessages)
}

func (h *Handler) turn(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Turn(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		case errors.Is(err, ErrLLMUnavailable):
			respond.Error(c, http.StatusBadGateway, "llm_unavailable", "assistant is unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process chat turn", nil)
		}
		return
	}

	c.Set("sessionId", result.SessionID)
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) listSessions(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sessions, err := h.Svc.ListSessions(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list sessions", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, sessions)
}

func (h *Handler) listMessages(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("id")

	msgs, err := h.Svc.ListMessages(c.Request.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list messages", nil)
		}
		return
	}

	c.Set("sessionId", sessionID)
	respond.JSON(c, http.StatusOK, msgs)
}
