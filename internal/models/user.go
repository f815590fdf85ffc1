package models

import (
	"github.com/google/uuid"
	"time"
)

// User — справочник пользователей. Записи создаёт внешний сервис
// регистрации, ядро их только читает для снимков отправителя.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Gender    string
	CreatedAt time.Time
}
