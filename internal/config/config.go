package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL,required"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Настройки AI-ассистента
	AIBaseURL     string        `env:"AI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	AIAPIKey      string        `env:"AI_API_KEY"`
	AIModel       string        `env:"AI_MODEL" envDefault:"gemini-2.0-flash"`
	AITemperature float64       `env:"AI_TEMPERATURE" envDefault:"0.4"`
	AITimeout     time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`

	// Размер пачки истории, отдаваемой при подключении
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"50"`
}

// Load читает .env.local/.env и разбирает окружение в структуру
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		// .env.local опционален, .env тоже
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
