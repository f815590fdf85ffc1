package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/models"
)

// MessageResponse — сообщение в ответе постраничного API истории
type MessageResponse struct {
	ID        uuid.UUID     `json:"id"`
	RoomID    uuid.UUID     `json:"room_id"`
	Seq       int64         `json:"seq"`
	SenderID  uuid.UUID     `json:"sender_id"`
	Sender    models.Sender `json:"sender"`
	Body      string        `json:"body"`
	Origin    models.Origin `json:"origin"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewMessageResponses(messages []models.Message) []MessageResponse {
	out := make([]MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = MessageResponse{
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
	return out
}
