package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sokolovamp/collabra/internal/ai"
	"github.com/sokolovamp/collabra/internal/config"
	"github.com/sokolovamp/collabra/internal/database"
	"github.com/sokolovamp/collabra/internal/gatekeeper"
	"github.com/sokolovamp/collabra/internal/handlers"
	"github.com/sokolovamp/collabra/internal/store"
	"github.com/sokolovamp/collabra/internal/ws"
	"github.com/sokolovamp/collabra/pkg/auth"
	"go.uber.org/zap"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
	Logger *zap.Logger
	DB     *database.Database
	Redis  *redis.Client
	Hub    *ws.Hub
}

func NewServer() *Server {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("invalid REDIS_URL", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	messages := store.NewPostgres(db.Gorm())
	completer := ai.NewGeminiProvider(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AITemperature, cfg.AITimeout)
	hub := ws.NewHub(messages, completer, logger, cfg.HistoryLimit, cfg.AITimeout)

	gk := gatekeeper.NewService(db, logger)

	projectH := handlers.NewProjectHandler(gk)
	messageH := handlers.NewMessageHandler(messages, gk)
	wsH := handlers.NewWebSocketHandler(hub, gk, logger)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, projectH, messageH, wsH)

	return &Server{
		Config: cfg,
		Router: router,
		Logger: logger,
		DB:     db,
		Redis:  rdb,
		Hub:    hub,
	}
}

func (s *Server) Run() {
	defer s.Logger.Sync()

	s.Logger.Info("server starting", zap.String("port", s.Config.Port))
	if err := s.Router.Run(":" + s.Config.Port); err != nil {
		s.Logger.Fatal("server run error", zap.Error(err))
	}
}
