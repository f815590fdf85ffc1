package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/models"
)

// EventType определяет типы событий протокола
type EventType string

const (
	// Сервер → клиент
	EventHistoryBatch EventType = "history-batch"
	EventMessage      EventType = "message"
	EventMemberLeft   EventType = "member-left"
	EventError        EventType = "error"

	// Клиент → сервер
	EventSendMessage EventType = "send-message"
)

// Event — конверт протокола
type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent упаковывает payload в конверт и сериализует целиком
func NewEvent(eventType EventType, payload interface{}) ([]byte, error) {
	evt := Event{
		Type:      eventType,
		Timestamp: time.Now(),
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		evt.Data = data
	}

	return json.Marshal(evt)
}

// MessagePayload — сообщение в сторону клиента
type MessagePayload struct {
	ID        uuid.UUID     `json:"id"`
	RoomID    uuid.UUID     `json:"room_id"`
	Seq       int64         `json:"seq"`
	SenderID  uuid.UUID     `json:"sender_id"`
	Sender    models.Sender `json:"sender"`
	Body      string        `json:"body"`
	Origin    models.Origin `json:"origin"`
	CreatedAt time.Time     `json:"created_at"`
}

func messagePayload(m models.Message) MessagePayload {
	return MessagePayload{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Seq:       m.Seq,
		SenderID:  m.SenderID,
		Sender:    m.SenderInfo(),
		Body:      m.Body,
		Origin:    m.Origin,
		CreatedAt: m.CreatedAt,
	}
}

// SendPayload — входящий запрос на отправку; клиентские id и timestamp
// игнорируются, их назначает сервер
type SendPayload struct {
	Body      string     `json:"body"`
	ID        string     `json:"id,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// MemberLeftPayload — уведомление оставшимся участникам комнаты
type MemberLeftPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
