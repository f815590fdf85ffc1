package models

import (
	"time"

	"github.com/google/uuid"
)

// Origin различает человеческие сообщения и ответы ассистента
type Origin string

const (
	OriginHuman     Origin = "human"
	OriginAssistant Origin = "assistant"
)

// AssistantSenderID — зарезервированный отправитель для сообщений ассистента
var AssistantSenderID = uuid.Nil

const AssistantName = "AI Assistant"

// Sender — снимок данных отправителя на момент отправки.
// Не меняется при последующем редактировании профиля.
type Sender struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// Message — запись журнала комнаты. После сохранения неизменяема,
// ядро её никогда не удаляет.
type Message struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID uuid.UUID `gorm:"not null;index:idx_room_seq,unique"`
	// Seq монотонно растёт внутри комнаты; (CreatedAt, Seq) задаёт
	// единый для всех наблюдателей порядок
	Seq          int64     `gorm:"not null;index:idx_room_seq,unique"`
	SenderID     uuid.UUID `gorm:"type:uuid"`
	SenderName   string
	SenderEmail  string
	SenderGender string
	Body         string `gorm:"not null"`
	Origin       Origin `gorm:"not null;default:'human'"`
	CreatedAt    time.Time
}

// SenderInfo собирает снимок отправителя
func (m *Message) SenderInfo() Sender {
	return Sender{Name: m.SenderName, Email: m.SenderEmail, Gender: m.SenderGender}
}
