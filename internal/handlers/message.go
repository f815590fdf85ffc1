package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/gatekeeper"
	"github.com/sokolovamp/collabra/internal/handlers/dto"
	"github.com/sokolovamp/collabra/internal/middleware"
	"github.com/sokolovamp/collabra/internal/store"
)

// MessageHandler — постраничный доступ к истории комнаты.
// Полная история — забота этого API, брокер отдаёт только
// ограниченную пачку при подключении.
type MessageHandler struct {
	store      store.Store
	gatekeeper *gatekeeper.Service
}

func NewMessageHandler(messages store.Store, gk *gatekeeper.Service) *MessageHandler {
	return &MessageHandler{store: messages, gatekeeper: gk}
}

// GetRoomMessages возвращает страницу истории, от старых к новым
func (h *MessageHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	// Доступ к истории только участникам
	member, err := h.gatekeeper.IsMember(c.Request.Context(), roomID, userID)
	if err != nil {
		gatekeeperError(c, err)
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this project"})
		return
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var sinceSeq int64
	if s := c.Query("since"); s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil && parsed >= 0 {
			sinceSeq = parsed
		}
	}

	messages, err := h.store.List(c.Request.Context(), roomID, limit, sinceSeq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": dto.NewMessageResponses(messages),
		"has_more": len(messages) == limit,
	})
}
