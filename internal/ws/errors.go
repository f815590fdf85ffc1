package ws

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrInvalidMessage  = errors.New("invalid message format")
	ErrRoomNotFound    = errors.New("room not found")
)

// publicError прячет внутренние детали сбоев от клиента; подробности
// остаются в логе
func publicError(err error) string {
	if errors.Is(err, ErrInvalidMessage) || errors.Is(err, ErrRoomNotFound) {
		return err.Error()
	}
	return "failed to send message"
}
