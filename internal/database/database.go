package database

import (
	"errors"

	"github.com/sokolovamp/collabra/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// Connect открывает Postgres и прогоняет миграции
func Connect(dsn string) (*Database, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.Message{}); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// Gorm отдаёт соединение для слоёв, работающих с базой напрямую
func (d *Database) Gorm() *gorm.DB {
	return d.db
}
