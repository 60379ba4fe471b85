package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"emimet/internal/domain/auth"
	"emimet/internal/platform/config"
)

var seedSectors = []string{"Wood Carpentry", "Aluminum", "Iron Work"}

var seedFunctions = []string{"Senior Carpenter", "Carpenter", "Installer", "Assistant"}

// Seed inserts the bootstrap admin account and the default sector and
// function catalogs. Every insert is idempotent so running it on an
// already seeded database is a no-op.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
		hash, err := auth.HashPassword(cfg.SeedAdminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO users (name, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING`,
			"Administrator", cfg.SeedAdminEmail, hash, auth.RoleAdmin)
		if err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
	}

	for _, name := range seedSectors {
		if _, err := pool.Exec(ctx, `
			INSERT INTO sectors (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed sector %q: %w", name, err)
		}
	}

	for _, name := range seedFunctions {
		if _, err := pool.Exec(ctx, `
			INSERT INTO functions (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed function %q: %w", name, err)
		}
	}

	return nil
}
