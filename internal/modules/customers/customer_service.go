package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-agency/internal/models"

	"go.uber.org/zap"
)

// LocationDirectory is the slice of the location repository the
// reconciliation flow needs for dedup-on-write. The concrete locations
// repository satisfies it.
type LocationDirectory interface {
	FindByNameFold(ctx context.Context, name string) (*models.Location, error)
	Create(ctx context.Context, name string) (*models.Location, error)
}

// ServiceInterface defines the customer reconciliation operations.
type ServiceInterface interface {
	GetAll(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error)
	Update(ctx context.Context, id int64, req models.UpdateCustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements the reconciliation engine: scalar mapping, owned-address
// composition and location dedup-on-write, persisted as one aggregate write.
type Service struct {
	repo      RepositoryInterface
	locations LocationDirectory
	logger    *zap.Logger
}

// NewService creates a new customer service.
func NewService(repo RepositoryInterface, locations LocationDirectory, logger *zap.Logger) ServiceInterface {
	return &Service{repo: repo, locations: locations, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]models.Customer, error) {
	s.logger.Info("fetching all customers")
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	s.logger.Info("fetching customer", zap.Int64("id", id))
	return s.repo.FindByID(ctx, id)
}

// Create builds a brand-new aggregate: scalars mapped verbatim, two fresh
// address rows (no reuse even if identical postal data exists elsewhere), and
// the resolved location set, persisted in a single transaction.
func (s *Service) Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	s.logger.Info("creating customer", zap.String("phone", req.CustomerDetails.Phone))

	customer := &models.Customer{
		FirstName:            req.CustomerDetails.FirstName,
		LastName:             req.CustomerDetails.LastName,
		StartLocation:        req.CustomerDetails.StartLocation,
		Destination:          req.CustomerDetails.Destination,
		PackageName:          req.CustomerDetails.PackageName,
		Cost:                 req.CustomerDetails.Cost,
		Phone:                req.CustomerDetails.Phone,
		Notes:                req.CustomerDetails.Notes,
		PermanentAddress:     req.PermanentAddress.ToAddress(),
		CommunicationAddress: req.CommunicationAddress.ToAddress(),
	}

	resolved, err := s.resolveLocations(ctx, req.Locations)
	if err != nil {
		return nil, err
	}
	customer.Locations = resolved

	saved, err := s.repo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			s.logger.Error("data integrity violation during customer creation", zap.Error(err))
			return nil, models.NewCreationFailed("Failed to create customer due to data integrity issue.")
		}
		s.logger.Error("unexpected error during customer creation", zap.Error(err))
		return nil, models.NewCreationFailed("Failed to create customer due to an internal error.")
	}

	s.logger.Info("customer created", zap.Int64("id", saved.ID))
	return saved, nil
}

// Update applies PATCH semantics: nil fields leave the stored value alone,
// non-nil fields overwrite it. Address slots merge in place (or attach a new
// row when the slot is empty); a non-nil location list fully replaces the
// set via clear-then-add.
func (s *Service) Update(ctx context.Context, id int64, req models.UpdateCustomerRequest) (*models.Customer, error) {
	s.logger.Info("updating customer", zap.Int64("id", id))

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return nil, models.NewCreationFailed("Enter an input to update")
	}

	if req.CustomerDetails != nil {
		req.CustomerDetails.ApplyTo(existing)
	}
	existing.PermanentAddress = mergeAddressSlot(existing.PermanentAddress, req.PermanentAddress)
	existing.CommunicationAddress = mergeAddressSlot(existing.CommunicationAddress, req.CommunicationAddress)

	replaceLocations := req.Locations != nil
	if replaceLocations {
		resolved, err := s.resolveLocations(ctx, req.Locations)
		if err != nil {
			return nil, err
		}
		existing.Locations = resolved
	}

	updated, err := s.repo.Update(ctx, existing, replaceLocations)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			s.logger.Error("data integrity violation during customer update", zap.Int64("id", id), zap.Error(err))
			return nil, models.NewCreationFailed("Failed to update customer because of a data conflict.")
		}
		s.logger.Error("unexpected error during customer update", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("service.UpdateCustomer: %w", err)
	}

	s.logger.Info("customer updated", zap.Int64("id", updated.ID))
	return updated, nil
}

// Delete removes the customer and its two owned addresses; referenced
// locations stay regardless of how many customers still point at them.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("deleting customer", zap.Int64("id", id))
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.Int64("id", id))
	return nil
}

// mergeAddressSlot applies a patch to one address slot. A nil patch leaves
// the slot untouched; a patch onto an occupied slot field-merges in place; a
// patch onto an empty slot attaches a new address row.
func mergeAddressSlot(current *models.Address, patch *models.AddressPatch) *models.Address {
	if patch == nil {
		return current
	}
	if current != nil {
		patch.ApplyTo(current)
		return current
	}
	return patch.ToAddress()
}

// resolveLocations maps the listed names onto managed location rows: trim,
// skip blanks, reuse by case-insensitive name, insert when missing. An
// insert that loses a race to a concurrent request gets exactly one
// re-query; if that also misses, the whole customer write fails.
func (s *Service) resolveLocations(ctx context.Context, list []models.LocationRequest) ([]models.Location, error) {
	resolved := []models.Location{}
	seen := make(map[int64]bool)

	for _, entry := range list {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}

		existing, err := s.locations.FindByNameFold(ctx, name)
		if err == nil {
			if !seen[existing.ID] {
				seen[existing.ID] = true
				resolved = append(resolved, *existing)
				s.logger.Debug("reusing existing location", zap.String("name", existing.Name))
			}
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("service.ResolveLocations: %w", err)
		}

		created, err := s.locations.Create(ctx, name)
		if err == nil {
			seen[created.ID] = true
			resolved = append(resolved, *created)
			s.logger.Info("created new location", zap.String("name", created.Name))
			continue
		}
		if !errors.Is(err, models.ErrConflict) {
			return nil, fmt.Errorf("service.ResolveLocations: %w", err)
		}

		// Lost a race with a concurrent request creating the same name.
		// One re-check only; no retry loop.
		s.logger.Warn("concurrent creation of location, re-fetching", zap.String("name", name))
		refetched, err := s.locations.FindByNameFold(ctx, name)
		if err != nil {
			s.logger.Error("failed to recover from concurrent location creation",
				zap.String("name", name), zap.Error(err))
			return nil, models.NewCreationFailed(
				fmt.Sprintf("Failed to process location '%s' because of a data conflict.", name))
		}
		if !seen[refetched.ID] {
			seen[refetched.ID] = true
			resolved = append(resolved, *refetched)
		}
	}
	return resolved, nil
}
