package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/models"
	"github.com/sokolovamp/collabra/pkg/auth"
)

const (
	UserIDKey = "userID"
	SenderKey = "sender"
)

// authenticate проверяет токен: подпись, срок, реестр отозванных
func authenticate(c *gin.Context, jwtManager *auth.JWTManager, redisClient *redis.Client, token string) bool {
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		c.Abort()
		return false
	}

	// Отозванные токены лежат в Redis до истечения срока
	exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
	if err != nil || exists > 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is revoked"})
		c.Abort()
		return false
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		c.Abort()
		return false
	}

	c.Set(UserIDKey, userID)
	c.Set(SenderKey, models.Sender{
		Name:   claims.Name,
		Email:  claims.Email,
		Gender: claims.Gender,
	})
	return true
}

// AuthMiddleware проверяет JWT из Authorization header
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			c.Abort()
			return
		}

		if authenticate(c, jwtManager, redisClient, token) {
			c.Next()
		}
	}
}

// WSAuthMiddleware — вариант для WebSocket: токен может прийти
// в query-параметре, браузерный клиент не умеет ставить заголовки
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					token = parts[1]
				}
			}
		}

		if authenticate(c, jwtManager, redisClient, token) {
			c.Next()
		}
	}
}
