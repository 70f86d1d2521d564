package auth

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines storage operations for back-office users and
// their role grants.
type RepositoryInterface interface {
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	RolesByUsername(ctx context.Context, username string) ([]string, error)
	CreateUser(ctx context.Context, user *models.User, passwordHash string, roles []string) (*models.User, error)
}

// Repository implements RepositoryInterface on a pgx pool.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new user repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// FindByUsernameOrEmail matches the identifier against either column, the
// lookup behind usernameOrEmail login.
func (r *Repository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1 OR email = $1`
	err := r.db.QueryRow(ctx, query, identifier).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByUsernameOrEmail: %w", err)
	}
	return user, nil
}

// RolesByUsername loads the authority set for a validated subject. Called
// once per admin-gated request.
func (r *Repository) RolesByUsername(ctx context.Context, username string) ([]string, error) {
	query := `
		SELECT ro.name
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		JOIN roles ro ON ro.id = ur.role_id
		WHERE u.username = $1`
	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("repository.RolesByUsername: %w", err)
	}
	defer rows.Close()

	roles := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("repository.RolesByUsername: %w", err)
		}
		roles = append(roles, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.RolesByUsername: %w", err)
	}
	return roles, nil
}

// CreateUser inserts the user row and its role grants in one transaction.
func (r *Repository) CreateUser(ctx context.Context, user *models.User, passwordHash string, roles []string) (*models.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateUser: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, query, user.Username, user.Email, passwordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.CreateUser: %w", err)
	}

	for _, role := range roles {
		cmdTag, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) SELECT $1, id FROM roles WHERE name = $2`,
			user.ID, role,
		)
		if err != nil {
			return nil, fmt.Errorf("repository.CreateUser: grant role: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return nil, fmt.Errorf("repository.CreateUser: unknown role %q", role)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.CreateUser: commit: %w", err)
	}
	user.Roles = roles
	return user, nil
}
