package ai

import (
	"context"
	"errors"
)

// ErrUpstream — терминальный сбой вызова модели (таймаут, квота, битый
// ответ). Ретраев нет: неудачный вызов закрывается fallback-сообщением.
var ErrUpstream = errors.New("ai upstream failure")

// Completer — одноразовое текстовое дополнение
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
