package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sokolovamp/collabra/internal/models"
	"go.uber.org/zap"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер сообщения
	maxMessageSize = 512 * 1024 // 512KB
)

// Client — эфемерная сессия одного соединения, умирает вместе с ним
type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Sender   models.Sender
	RoomID   uuid.UUID
	JoinedAt time.Time

	Conn *websocket.Conn
	Send chan []byte

	hub    *Hub
	logger *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, sender models.Sender, roomID uuid.UUID) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Sender:   sender,
		RoomID:   roomID,
		JoinedAt: time.Now(),
		Conn:     conn,
		Send:     make(chan []byte, 256),
		hub:      hub,
		logger:   hub.logger,
	}
}

// ReadPump читает события от клиента
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Leave(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var evt Event
		if err := c.Conn.ReadJSON(&evt); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error",
					zap.String("connection_id", c.ID.String()),
					zap.Error(err))
			}
			break
		}

		switch evt.Type {
		case EventSendMessage:
			var payload SendPayload
			if err := json.Unmarshal(evt.Data, &payload); err != nil {
				c.SendError(ErrInvalidMessage.Error())
				continue
			}
			if err := c.hub.HandleSend(context.Background(), c, payload.Body); err != nil {
				c.logger.Error("send failed",
					zap.String("connection_id", c.ID.String()),
					zap.Error(err))
				c.SendError(publicError(err))
			}

		default:
			c.logger.Debug("unknown event type", zap.String("type", string(evt.Type)))
		}
	}
}

// WritePump отправляет события клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue кладёт сериализованное событие в очередь соединения
func (c *Client) enqueue(data []byte) error {
	select {
	case c.Send <- data:
		return nil
	default:
		return ErrClientQueueFull
	}
}

// SendEvent сериализует и отправляет событие этому соединению
func (c *Client) SendEvent(eventType EventType, payload interface{}) error {
	data, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	return c.enqueue(data)
}

func (c *Client) SendError(errorMsg string) {
	_ = c.SendEvent(EventError, ErrorPayload{Error: errorMsg})
}
