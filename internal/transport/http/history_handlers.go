package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"daychat/internal/store"
)

// HistoryHandlers serves past messages so a chat view can be
// pre-populated before the client attaches to the live channel.
type HistoryHandlers struct {
	store store.MessageStore
	log   *zerolog.Logger
}

// NewHistoryHandlers creates a new history handlers instance.
func NewHistoryHandlers(st store.MessageStore, logger *zerolog.Logger) *HistoryHandlers {
	return &HistoryHandlers{
		store: st,
		log:   logger,
	}
}

// ErrorResponse represents an API error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID        int64  `json:"id"`
	Room      string `json:"room"`
	User      string `json:"user"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// ListMessages returns a room's messages, oldest first.
// GET /api/rooms/:room/messages
func (h *HistoryHandlers) ListMessages(c *gin.Context) {
	room := c.Param("room")

	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "message storage unavailable"})
		return
	}

	messages, err := h.store.ListByRoom(c.Request.Context(), room)
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, MessageResponse{
			ID:        msg.ID,
			Room:      msg.Room,
			User:      msg.User,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}
