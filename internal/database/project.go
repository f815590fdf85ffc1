package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/gatekeeper"
	"github.com/sokolovamp/collabra/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Реализация gatekeeper.Repo поверх gorm

func (d *Database) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := d.db.WithContext(ctx).
		Preload("Members").
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gatekeeper.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (d *Database) CreateProject(ctx context.Context, project *models.Project, ownerID uuid.UUID) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		var owner models.User
		if err := tx.First(&owner, "id = ?", ownerID).Error; err != nil {
			return err
		}
		return tx.Model(project).Association("Members").Append(&owner)
	})
}

func (d *Database) ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := d.db.WithContext(ctx).
		Joins("JOIN project_members pm ON pm.project_id = projects.id").
		Where("pm.user_id = ?", userID).
		Preload("Members").
		Find(&projects).Error
	return projects, err
}

func (d *Database) AddProjectMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	var project models.Project
	if err := d.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gatekeeper.ErrNotFound
		}
		return err
	}

	var users []models.User
	if err := d.db.WithContext(ctx).Find(&users, "id IN ?", userIDs).Error; err != nil {
		return err
	}

	return d.db.WithContext(ctx).Model(&project).Association("Members").Append(&users)
}

func (d *Database) RemoveProjectMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	var project models.Project
	if err := d.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gatekeeper.ErrNotFound
		}
		return err
	}

	var users []models.User
	if err := d.db.WithContext(ctx).Find(&users, "id IN ?", userIDs).Error; err != nil {
		return err
	}

	return d.db.WithContext(ctx).Model(&project).Association("Members").Delete(&users)
}

func (d *Database) UpdateWorkspace(ctx context.Context, projectID uuid.UUID, blob datatypes.JSON) error {
	res := d.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("workspace", blob)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gatekeeper.ErrNotFound
	}
	return nil
}
