package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project — проект с чатом. Комната чата соответствует ровно одному проекту.
type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedBy uuid.UUID
	CreatedAt time.Time

	// Непрозрачное состояние общего рабочего пространства (файловое дерево)
	Workspace datatypes.JSON

	// Связи
	Members []User `gorm:"many2many:project_members"`
}

// HasMember проверяет членство по загруженному набору участников
func (p *Project) HasMember(userID uuid.UUID) bool {
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
