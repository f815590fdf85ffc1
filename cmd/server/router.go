package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sokolovamp/collabra/internal/handlers"
	"github.com/sokolovamp/collabra/internal/middleware"
	"github.com/sokolovamp/collabra/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	projectH *handlers.ProjectHandler,
	messageH *handlers.MessageHandler,
	wsH *handlers.WebSocketHandler,
) {
	// WebSocket: токен приходит в query, поэтому отдельный middleware
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.POST("/projects", projectH.CreateProject)
		api.GET("/projects", projectH.ListProjects)
		api.GET("/projects/:id", projectH.GetProject)
		api.PUT("/projects/:id/members", projectH.AddMembers)
		api.DELETE("/projects/:id/members", projectH.RemoveMembers)
		api.PUT("/projects/:id/workspace", projectH.UpdateWorkspace)

		api.GET("/projects/:id/messages", messageH.GetRoomMessages)
	}
}
