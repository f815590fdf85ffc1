package ws

import (
	"sync"

	"github.com/google/uuid"
)

// room — живой набор соединений одного проекта; все операции комнаты
// взаимно исключаются её мьютексом
type room struct {
	id uuid.UUID

	mu    sync.Mutex
	conns map[uuid.UUID]*Client
	// dropped выставляется при удалении из реестра хаба
	dropped bool
}

func newRoom(id uuid.UUID) *room {
	return &room{
		id:    id,
		conns: make(map[uuid.UUID]*Client),
	}
}

// broadcastExcept рассылает событие всем, кроме excludeID; вызывающий
// держит r.mu. Возвращает соединения с переполненной очередью.
func (r *room) broadcastExcept(data []byte, excludeID uuid.UUID) []uuid.UUID {
	var congested []uuid.UUID
	for _, client := range r.conns {
		if client.ID == excludeID {
			continue
		}
		if err := client.enqueue(data); err != nil {
			congested = append(congested, client.ID)
		}
	}
	return congested
}

// broadcastAll рассылает событие всем соединениям, включая инициатора
func (r *room) broadcastAll(data []byte) []uuid.UUID {
	return r.broadcastExcept(data, uuid.Nil)
}
