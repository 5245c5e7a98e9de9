package books

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"libramind-backend/internal/shared/server/respond"
)

// Handler serves book search.
type Handler struct {
	Client *Client
}

// NewHandler constructs a Handler.
func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

// RegisterRoutes attaches book routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/books/search", h.search)
}

func (h *Handler) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "q is required", nil)
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	results, err := h.Client.Search(c.Request.Context(), query, limit)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "q is required", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "books_unavailable", "book search is unavailable", nil)
		return
	}

	respond.JSON(c, http.StatusOK, results)
}
