package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/models"
	"gorm.io/datatypes"
)

type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type MembersRequest struct {
	UserIDs []string `json:"user_ids" binding:"required"`
}

type UpdateWorkspaceRequest struct {
	Workspace datatypes.JSON `json:"workspace" binding:"required"`
}

type MemberResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Gender string    `json:"gender,omitempty"`
}

type ProjectResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	CreatedBy uuid.UUID        `json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`
	Workspace datatypes.JSON   `json:"workspace,omitempty"`
	Members   []MemberResponse `json:"members"`
}

func NewMemberResponses(users []models.User) []MemberResponse {
	members := make([]MemberResponse, len(users))
	for i, u := range users {
		members[i] = MemberResponse{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Gender: u.Gender,
		}
	}
	return members
}

func NewProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		Workspace: p.Workspace,
		Members:   NewMemberResponses(p.Members),
	}
}
