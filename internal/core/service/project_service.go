package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

// ongoingWindow bounds the "ongoing" project listing.
const ongoingWindow = 7 * 24 * time.Hour

// ProjectService implements project management.
type ProjectService struct {
	repo    ports.ProjectRepository
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, clients ports.ClientRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, clients: clients, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, in ports.ProjectInput) (*domain.Project, error) {
	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = domain.StatusNotStarted
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("project_id", created.ID).Str("client_id", in.ClientID).Msg("project created")
	return created, nil
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) ListOngoing(ctx context.Context) ([]domain.Project, error) {
	return s.repo.ListCreatedSince(ctx, time.Now().UTC().Add(-ongoingWindow))
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) Update(ctx context.Context, id string, in ports.ProjectInput) (*domain.Project, error) {
	if in.ClientID != "" {
		if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
			return nil, err
		}
	}
	if in.Status == "" {
		in.Status = domain.StatusNotStarted
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	return s.repo.Update(ctx, id, in)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
