// Command seed bootstraps the first ADMIN account so the back office can be
// logged into at all. Subsequent accounts are created through the admin-only
// register endpoint.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"travel-agency/internal/config"
	"travel-agency/internal/migrate"
	"travel-agency/internal/models"
	"travel-agency/internal/modules/auth"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	username := os.Getenv("SEED_ADMIN_USERNAME")
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if username == "" || email == "" || password == "" {
		log.Fatal("SEED_ADMIN_USERNAME, SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v", err)
	}
	defer dbPool.Close()

	if err := migrate.Apply(ctx, dbPool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	userRepo := auth.NewRepository(dbPool)
	user := &models.User{Username: username, Email: email}
	created, err := userRepo.CreateUser(ctx, user, string(hash), []string{models.RoleAdmin})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			log.Printf("Admin user %q already exists, nothing to do", username)
			return
		}
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Seeded admin user %q (id %d)", created.Username, created.ID)
}
