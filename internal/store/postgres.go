package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/models"
	"gorm.io/gorm"
)

// Postgres хранит журнал в таблице messages; счётчики seq сеются
// из MAX(seq) и дальше живут в памяти
type Postgres struct {
	db *gorm.DB

	mu   sync.Mutex
	seqs map[uuid.UUID]*roomSeq
}

type roomSeq struct {
	mu     sync.Mutex
	seeded bool
	next   int64
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{
		db:   db,
		seqs: make(map[uuid.UUID]*roomSeq),
	}
}

func (s *Postgres) roomSeq(roomID uuid.UUID) *roomSeq {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.seqs[roomID]
	if !ok {
		rs = &roomSeq{}
		s.seqs[roomID] = rs
	}
	return rs
}

func (s *Postgres) Append(ctx context.Context, msg *models.Message) error {
	rs := s.roomSeq(msg.RoomID)

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.seeded {
		var max int64
		err := s.db.WithContext(ctx).
			Model(&models.Message{}).
			Where("room_id = ?", msg.RoomID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&max).Error
		if err != nil {
			return fmt.Errorf("%w: seed seq: %v", ErrStore, err)
		}
		rs.next = max
		rs.seeded = true
	}

	msg.ID = uuid.New()
	msg.Seq = rs.next + 1
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	// Счётчик двигаем только после успешной записи
	rs.next = msg.Seq
	return nil
}

func (s *Postgres) Recent(ctx context.Context, roomID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("seq DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	// Разворачиваем порядок, чтобы старые сообщения были первыми
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (s *Postgres) List(ctx context.Context, roomID uuid.UUID, limit int, sinceSeq int64) ([]models.Message, error) {
	var messages []models.Message

	err := s.db.WithContext(ctx).
		Where("room_id = ? AND seq > ?", roomID, sinceSeq).
		Order("seq ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return messages, nil
}
