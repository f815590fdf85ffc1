package gatekeeper

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Repo — слой хранения проектов. Реализация обязана возвращать
// ErrNotFound для отсутствующего проекта.
type Repo interface {
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	CreateProject(ctx context.Context, project *models.Project, ownerID uuid.UUID) error
	ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	AddProjectMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error
	RemoveProjectMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error
	UpdateWorkspace(ctx context.Context, projectID uuid.UUID, blob datatypes.JSON) error
}

// Service отвечает за членство в проектах и проверку прав.
// Все мутации членства — операции над множеством: без дубликатов,
// удаление отсутствующего участника — не ошибка.
type Service struct {
	repo   Repo
	logger *zap.Logger
}

func NewService(repo Repo, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func parseUserIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty user list", ErrInvalidInput)
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed user id %q", ErrInvalidInput, r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// authorize загружает проект и проверяет, что requester — участник
func (s *Service) authorize(ctx context.Context, projectID, requesterID uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(requesterID) {
		return nil, ErrUnauthorized
	}
	return project, nil
}

// AddMembers добавляет пользователей в проект (объединение множеств).
// Уже состоящие в проекте молча пропускаются.
func (s *Service) AddMembers(ctx context.Context, projectID, requesterID uuid.UUID, rawUserIDs []string) ([]models.User, error) {
	userIDs, err := parseUserIDs(rawUserIDs)
	if err != nil {
		return nil, err
	}

	project, err := s.authorize(ctx, projectID, requesterID)
	if err != nil {
		return nil, err
	}

	newIDs := make([]uuid.UUID, 0, len(userIDs))
	for _, id := range userIDs {
		if !project.HasMember(id) {
			newIDs = append(newIDs, id)
		}
	}

	// Нечего добавлять — идемпотентный успех с текущим набором
	if len(newIDs) == 0 {
		return project.Members, nil
	}

	if err := s.repo.AddProjectMembers(ctx, projectID, newIDs); err != nil {
		return nil, err
	}

	s.logger.Info("members added",
		zap.String("project_id", projectID.String()),
		zap.Int("count", len(newIDs)))

	updated, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return updated.Members, nil
}

// RemoveMembers исключает пользователей из проекта (разность множеств).
// Удаление не-участника — no-op, не ошибка.
func (s *Service) RemoveMembers(ctx context.Context, projectID, requesterID uuid.UUID, rawUserIDs []string) ([]models.User, error) {
	userIDs, err := parseUserIDs(rawUserIDs)
	if err != nil {
		return nil, err
	}

	project, err := s.authorize(ctx, projectID, requesterID)
	if err != nil {
		return nil, err
	}

	present := make([]uuid.UUID, 0, len(userIDs))
	for _, id := range userIDs {
		if project.HasMember(id) {
			present = append(present, id)
		}
	}

	if len(present) == 0 {
		return project.Members, nil
	}

	if err := s.repo.RemoveProjectMembers(ctx, projectID, present); err != nil {
		return nil, err
	}

	s.logger.Info("members removed",
		zap.String("project_id", projectID.String()),
		zap.Int("count", len(present)))

	updated, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return updated.Members, nil
}

// GetProject возвращает проект с развёрнутым набором участников
func (s *Service) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	return s.repo.GetProject(ctx, projectID)
}

// IsMember проверяет членство на момент действия
func (s *Service) IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return false, err
	}
	return project.HasMember(userID), nil
}

// CreateProject создаёт проект; владелец становится первым участником
func (s *Service) CreateProject(ctx context.Context, name string, ownerID uuid.UUID) (*models.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}

	project := &models.Project{
		Name:      name,
		CreatedBy: ownerID,
	}
	if err := s.repo.CreateProject(ctx, project, ownerID); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", ownerID.String()))

	return s.repo.GetProject(ctx, project.ID)
}

// ListProjects возвращает проекты, где пользователь состоит участником
func (s *Service) ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	return s.repo.ListProjects(ctx, userID)
}

// UpdateWorkspace заменяет непрозрачный блоб рабочего пространства
func (s *Service) UpdateWorkspace(ctx context.Context, projectID, requesterID uuid.UUID, blob datatypes.JSON) (*models.Project, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("%w: workspace payload is required", ErrInvalidInput)
	}

	if _, err := s.authorize(ctx, projectID, requesterID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWorkspace(ctx, projectID, blob); err != nil {
		return nil, err
	}
	return s.repo.GetProject(ctx, projectID)
}
