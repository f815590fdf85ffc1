package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/models"
)

// ErrStore оборачивает любой сбой персистентности
var ErrStore = errors.New("message store failure")

// Store — журнал сообщений с упорядочиванием внутри комнаты
type Store interface {
	// Append сохраняет сообщение, присваивая id, seq и отметку времени.
	// Seq монотонен внутри комнаты даже при конкурирующих писателях.
	Append(ctx context.Context, msg *models.Message) error

	// Recent возвращает последние limit сообщений, от старых к новым
	Recent(ctx context.Context, roomID uuid.UUID, limit int) ([]models.Message, error)

	// List возвращает страницу сообщений с seq > sinceSeq, от старых к новым
	List(ctx context.Context, roomID uuid.UUID, limit int, sinceSeq int64) ([]models.Message, error)
}
