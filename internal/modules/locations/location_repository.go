package locations

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines storage operations for the location directory.
// FindByNameFold is the case-insensitive lookup the customer reconciliation
// flow uses for dedup-on-write.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.Location, error)
	FindByID(ctx context.Context, id int64) (*models.Location, error)
	FindByNameFold(ctx context.Context, name string) (*models.Location, error)
	Create(ctx context.Context, name string) (*models.Location, error)
	Update(ctx context.Context, id int64, name string) (*models.Location, error)
	Delete(ctx context.Context, id int64) error
}

// Repository implements RepositoryInterface on a pgx pool.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new location repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]models.Location, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM location`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListLocations: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, fmt.Errorf("repository.ListLocations: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListLocations: %w", err)
	}
	return locations, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Location, error) {
	loc := &models.Location{}
	err := r.db.QueryRow(ctx, `SELECT id, name FROM location WHERE id = $1`, id).
		Scan(&loc.ID, &loc.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindLocationByID: %w", err)
	}
	return loc, nil
}

// FindByNameFold matches on LOWER(name) so "Paris", "paris" and "PARIS"
// resolve to the same row.
func (r *Repository) FindByNameFold(ctx context.Context, name string) (*models.Location, error) {
	loc := &models.Location{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM location WHERE LOWER(name) = LOWER($1) LIMIT 1`, name).
		Scan(&loc.ID, &loc.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindLocationByNameFold: %w", err)
	}
	return loc, nil
}

func (r *Repository) Create(ctx context.Context, name string) (*models.Location, error) {
	loc := &models.Location{Name: name}
	err := r.db.QueryRow(ctx,
		`INSERT INTO location (name) VALUES ($1) RETURNING id`, name).
		Scan(&loc.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.CreateLocation: %w", err)
	}
	return loc, nil
}

func (r *Repository) Update(ctx context.Context, id int64, name string) (*models.Location, error) {
	loc := &models.Location{ID: id, Name: name}
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE location SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return nil, fmt.Errorf("repository.UpdateLocation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return loc, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	// Join-table rows referencing this location are removed by the
	// customer_location FK cascade, not by application code.
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM location WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteLocation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
