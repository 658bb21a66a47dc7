package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ems/internal/auth"
	"ems/internal/config"
)

// Seed provisions the initial admin account when SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD are configured. Idempotent: an existing account with
// that email is left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, first_name, last_name, role)
    VALUES ($1, $2, 'System', 'Admin', $3)
  `, email, hash, auth.RoleAdmin)
	return err
}
