package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/gatekeeper"
	"github.com/sokolovamp/collabra/internal/handlers/dto"
	"github.com/sokolovamp/collabra/internal/models"
	"github.com/sokolovamp/collabra/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMessageRouter(userID uuid.UUID, messages store.Store, gk *gatekeeper.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMessageHandler(messages, gk)

	api := r.Group("/api/v1", identity(userID))
	api.GET("/projects/:id/messages", h.GetRoomMessages)
	return r
}

func seedMessages(t *testing.T, s store.Store, roomID uuid.UUID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		msg := &models.Message{
			RoomID:   roomID,
			SenderID: uuid.New(),
			Body:     fmt.Sprintf("msg %d", i+1),
			Origin:   models.OriginHuman,
		}
		require.NoError(t, s.Append(context.Background(), msg))
	}
}

func TestGetRoomMessagesPagination(t *testing.T) {
	repo := newFakeRepo()
	gk := gatekeeper.NewService(repo, zap.NewNop())

	ownerID := uuid.New()
	project, err := gk.CreateProject(context.Background(), "demo", ownerID)
	require.NoError(t, err)

	messages := store.NewMemory()
	seedMessages(t, messages, project.ID, 7)

	r := newMessageRouter(ownerID, messages, gk)

	w := doJSON(t, r, http.MethodGet,
		"/api/v1/projects/"+project.ID.String()+"/messages?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Messages []dto.MessageResponse `json:"messages"`
		HasMore  bool                  `json:"has_more"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Messages, 5)
	assert.True(t, page.HasMore)
	assert.Equal(t, int64(1), page.Messages[0].Seq)

	// Вторая страница от последнего seq
	w = doJSON(t, r, http.MethodGet,
		"/api/v1/projects/"+project.ID.String()+"/messages?limit=5&since=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Messages, 2)
	assert.False(t, page.HasMore)
	assert.Equal(t, int64(6), page.Messages[0].Seq)
	assert.Equal(t, "msg 6", page.Messages[0].Body)
}

func TestGetRoomMessagesAccess(t *testing.T) {
	repo := newFakeRepo()
	gk := gatekeeper.NewService(repo, zap.NewNop())

	ownerID := uuid.New()
	project, err := gk.CreateProject(context.Background(), "demo", ownerID)
	require.NoError(t, err)

	messages := store.NewMemory()

	// Не-участник → 403
	outsider := newMessageRouter(uuid.New(), messages, gk)
	w := doJSON(t, outsider, http.MethodGet,
		"/api/v1/projects/"+project.ID.String()+"/messages", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	owner := newMessageRouter(ownerID, messages, gk)

	// Неизвестный проект → 404
	w = doJSON(t, owner, http.MethodGet,
		"/api/v1/projects/"+uuid.New().String()+"/messages", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Кривой id → 400
	w = doJSON(t, owner, http.MethodGet, "/api/v1/projects/oops/messages", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
