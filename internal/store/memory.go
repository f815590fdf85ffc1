package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/models"
)

// Memory — журнал в памяти для локальной разработки и тестов
type Memory struct {
	mu    sync.Mutex
	rooms map[uuid.UUID][]models.Message
}

func NewMemory() *Memory {
	return &Memory{rooms: make(map[uuid.UUID][]models.Message)}
}

func (s *Memory) Append(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.rooms[msg.RoomID]

	msg.ID = uuid.New()
	msg.Seq = int64(len(log)) + 1
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	s.rooms[msg.RoomID] = append(log, *msg)
	return nil
}

func (s *Memory) Recent(_ context.Context, roomID uuid.UUID, limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.rooms[roomID]
	if len(log) > limit {
		log = log[len(log)-limit:]
	}

	out := make([]models.Message, len(log))
	copy(out, log)
	return out, nil
}

func (s *Memory) List(_ context.Context, roomID uuid.UUID, limit int, sinceSeq int64) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, 0, limit)
	for _, m := range s.rooms[roomID] {
		if m.Seq <= sinceSeq {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
