package ws

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/ai"
	"github.com/sokolovamp/collabra/internal/models"
	"github.com/sokolovamp/collabra/internal/store"
	"go.uber.org/zap"
)

// FallbackAssistantReply рассылается комнате, когда вызов модели не удался
const FallbackAssistantReply = "Sorry, I could not process that request right now. Please try again later."

// Hub мультиплексирует соединения по комнатам: сохранение в журнал
// строго до рассылки, один писатель на комнату
type Hub struct {
	store        store.Store
	ai           ai.Completer
	logger       *zap.Logger
	historyLimit int
	aiTimeout    time.Duration

	mu    sync.RWMutex
	rooms map[uuid.UUID]*room
}

func NewHub(messages store.Store, completer ai.Completer, logger *zap.Logger, historyLimit int, aiTimeout time.Duration) *Hub {
	return &Hub{
		store:        messages,
		ai:           completer,
		logger:       logger,
		historyLimit: historyLimit,
		aiTimeout:    aiTimeout,
		rooms:        make(map[uuid.UUID]*room),
	}
}

// getOrCreateRoom возвращает комнату, создавая её при первом подключении
func (h *Hub) getOrCreateRoom(id uuid.UUID) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[id]
	if !ok {
		r = newRoom(id)
		h.rooms[id] = r
	}
	return r
}

func (h *Hub) getRoom(id uuid.UUID) *room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[id]
}

// Join регистрирует соединение в комнате и отдаёт ему — и только ему —
// пачку последних сообщений
func (h *Hub) Join(ctx context.Context, c *Client) error {
	for {
		r := h.getOrCreateRoom(c.RoomID)
		ok, err := h.joinRoom(ctx, r, c)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		// Комната успела опустеть и выпасть из реестра, берём свежую
	}
}

// joinRoom возвращает false, если комната уже удалена из реестра
func (h *Hub) joinRoom(ctx context.Context, r *room, c *Client) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dropped {
		return false, nil
	}

	history, err := h.store.Recent(ctx, c.RoomID, h.historyLimit)
	if err != nil {
		return false, err
	}

	r.conns[c.ID] = c

	batch := make([]MessagePayload, len(history))
	for i, m := range history {
		batch[i] = messagePayload(m)
	}
	if err := c.SendEvent(EventHistoryBatch, batch); err != nil {
		h.logger.Warn("history batch dropped",
			zap.String("connection_id", c.ID.String()),
			zap.Error(err))
	}

	h.logger.Info("connection joined",
		zap.String("connection_id", c.ID.String()),
		zap.String("user_id", c.UserID.String()),
		zap.String("room_id", c.RoomID.String()))

	return true, nil
}

// Leave убирает соединение из комнаты и уведомляет оставшихся; идемпотентно
func (h *Hub) Leave(c *Client) {
	r := h.getRoom(c.RoomID)
	if r == nil {
		return
	}

	r.mu.Lock()
	if _, ok := r.conns[c.ID]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.conns, c.ID)
	close(c.Send)

	empty := len(r.conns) == 0
	if !empty {
		data, err := NewEvent(EventMemberLeft, MemberLeftPayload{
			UserID: c.UserID,
			Name:   c.Sender.Name,
		})
		if err == nil {
			r.broadcastExcept(data, c.ID)
		}
	}
	r.mu.Unlock()

	if empty {
		h.dropRoomIfEmpty(r)
	}

	h.logger.Info("connection left",
		zap.String("connection_id", c.ID.String()),
		zap.String("room_id", c.RoomID.String()))
}

// dropRoomIfEmpty удаляет опустевшую комнату; порядок захвата всегда h.mu → r.mu
func (h *Hub) dropRoomIfEmpty(r *room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.rooms[r.id]; !ok || current != r {
		return
	}

	r.mu.Lock()
	if len(r.conns) == 0 {
		// Флаг и удаление из реестра меняются атомарно, чтобы
		// конкурирующий Join не зарегистрировался в комнате-сироте
		r.dropped = true
		delete(h.rooms, r.id)
	}
	r.mu.Unlock()
}

// HandleSend сохраняет человеческое сообщение и рассылает его всем,
// кроме отправителя
func (h *Hub) HandleSend(ctx context.Context, c *Client, body string) error {
	if body == "" {
		return ErrInvalidMessage
	}

	r := h.getRoom(c.RoomID)
	if r == nil {
		return ErrRoomNotFound
	}

	msg := &models.Message{
		RoomID:       c.RoomID,
		SenderID:     c.UserID,
		SenderName:   c.Sender.Name,
		SenderEmail:  c.Sender.Email,
		SenderGender: c.Sender.Gender,
		Body:         body,
		Origin:       models.OriginHuman,
	}

	r.mu.Lock()
	if err := h.store.Append(ctx, msg); err != nil {
		// Несохранённое сообщение не показываем никому
		r.mu.Unlock()
		h.logger.Error("append failed, broadcast aborted",
			zap.String("room_id", c.RoomID.String()),
			zap.Error(err))
		return err
	}

	data, err := NewEvent(EventMessage, messagePayload(*msg))
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if congested := r.broadcastExcept(data, c.ID); len(congested) > 0 {
		h.logger.Warn("slow consumers dropped message",
			zap.String("room_id", c.RoomID.String()),
			zap.Int("count", len(congested)))
	}
	r.mu.Unlock()

	// Медленная или упавшая модель не задерживает обычную доставку
	if prompt, ok := ParseTrigger(body); ok {
		go h.invokeAssistant(r, prompt)
	}

	return nil
}

// invokeAssistant вызывает модель вне блокировки комнаты; ответ или
// fallback получают все, включая инициатора
func (h *Hub) invokeAssistant(r *room, prompt string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.aiTimeout)
	defer cancel()

	body, err := h.ai.Complete(ctx, prompt)
	if err != nil {
		h.logger.Error("ai invocation failed",
			zap.String("room_id", r.id.String()),
			zap.Error(err))
		body = FallbackAssistantReply
	}

	msg := &models.Message{
		RoomID:     r.id,
		SenderID:   models.AssistantSenderID,
		SenderName: models.AssistantName,
		Body:       body,
		Origin:     models.OriginAssistant,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := h.store.Append(context.Background(), msg); err != nil {
		h.logger.Error("assistant append failed, broadcast aborted",
			zap.String("room_id", r.id.String()),
			zap.Error(err))
		return
	}

	data, err := NewEvent(EventMessage, messagePayload(*msg))
	if err != nil {
		return
	}
	r.broadcastAll(data)
}

// RoomUsers возвращает пользователей с активными соединениями в комнате
func (h *Hub) RoomUsers(roomID uuid.UUID) []uuid.UUID {
	r := h.getRoom(roomID)
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uuid.UUID]bool)
	users := make([]uuid.UUID, 0, len(r.conns))
	for _, c := range r.conns {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			users = append(users, c.UserID)
		}
	}
	return users
}
