package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sokolovamp/collabra/internal/gatekeeper"
	"github.com/sokolovamp/collabra/internal/middleware"
	"github.com/sokolovamp/collabra/internal/models"
	"github.com/sokolovamp/collabra/internal/ws"
	"go.uber.org/zap"
)

// WebSocketHandler поднимает соединение до сессии брокера.
// Любой сбой аутентификации или резолва комнаты отклоняет соединение
// до апгрейда: отсутствующий проект обрывает подключение, никаких
// комнат-заглушек.
type WebSocketHandler struct {
	hub        *ws.Hub
	gatekeeper *gatekeeper.Service
	logger     *zap.Logger
	upgrader   websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, gk *gatekeeper.Service, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		gatekeeper: gk,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: проверять origin в prod
				return true
			},
		},
	}
}

// HandleWebSocket аутентифицирует, резолвит комнату и запускает сессию
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	sender := c.MustGet(middleware.SenderKey).(models.Sender)

	roomID, err := uuid.Parse(c.Query("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	member, err := h.gatekeeper.IsMember(c.Request.Context(), roomID, userID)
	if err != nil {
		if errors.Is(err, gatekeeper.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this project"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID, sender, roomID)

	if err := h.hub.Join(c.Request.Context(), client); err != nil {
		h.logger.Error("join failed",
			zap.String("user_id", userID.String()),
			zap.String("room_id", roomID.String()),
			zap.Error(err))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
