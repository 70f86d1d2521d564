package locations

import (
	"context"
	"fmt"
	"strings"

	"travel-agency/internal/models"

	"go.uber.org/zap"
)

// ServiceInterface defines directory operations over locations.
type ServiceInterface interface {
	GetAll(ctx context.Context) ([]models.Location, error)
	GetByID(ctx context.Context, id int64) (*models.Location, error)
	Create(ctx context.Context, req models.LocationRequest) (*models.Location, error)
	Update(ctx context.Context, id int64, req models.LocationRequest) (*models.Location, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements the location directory.
type Service struct {
	repo   RepositoryInterface
	logger *zap.Logger
}

// NewService creates a new location service.
func NewService(repo RepositoryInterface, logger *zap.Logger) ServiceInterface {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]models.Location, error) {
	s.logger.Info("fetching all locations")
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	s.logger.Info("fetching location", zap.Int64("id", id))
	return s.repo.FindByID(ctx, id)
}

// Create stores the name verbatim. Any caller-supplied id is ignored so a
// save request always produces a new row; dedup happens only inside the
// customer reconciliation flow.
func (s *Service) Create(ctx context.Context, req models.LocationRequest) (*models.Location, error) {
	if req.ID != 0 {
		s.logger.Warn("ignoring caller-supplied location id", zap.Int64("id", req.ID))
	}
	loc, err := s.repo.Create(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("service.CreateLocation: %w", err)
	}
	s.logger.Info("location created", zap.Int64("id", loc.ID), zap.String("name", loc.Name))
	return loc, nil
}

// Update overwrites the name, except that a blank or missing name keeps the
// stored one unchanged. That no-op policy is deliberate, not an error.
func (s *Service) Update(ctx context.Context, id int64, req models.LocationRequest) (*models.Location, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := existing.Name
	if strings.TrimSpace(req.Name) != "" {
		name = req.Name
	} else {
		s.logger.Warn("location name not provided, keeping existing name", zap.Int64("id", id))
	}

	loc, err := s.repo.Update(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateLocation: %w", err)
	}
	s.logger.Info("location updated", zap.Int64("id", id))
	return loc, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("location deleted", zap.Int64("id", id))
	return nil
}
