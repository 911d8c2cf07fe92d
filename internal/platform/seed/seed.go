package seed

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/domain/auth"
	"appraisal/internal/platform/config"
)

// Seed provisions the initial HR account and, when enabled, a small demo
// org so the appraisal flow can be exercised end to end on a fresh
// database. Every step is idempotent.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if _, err := ensureUser(ctx, pool, cfg.SeedHREmail, cfg.SeedHRPassword, "People", "Ops", auth.RoleHR); err != nil {
		return err
	}

	if !cfg.SeedDemoData {
		return nil
	}

	if _, err := ensureUser(ctx, pool, "manager@demo.local", "manager-demo", "Morgan", "Lee", auth.RoleManager); err != nil {
		return err
	}
	for _, demo := range []struct {
		email, first, last string
	}{
		{"alex@demo.local", "Alex", "Rivera"},
		{"sam@demo.local", "Sam", "Chen"},
	} {
		if _, err := ensureUser(ctx, pool, demo.email, "employee-demo", demo.first, demo.last, auth.RoleEmployee); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password, firstName, lastName, role string) (string, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return "", nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return id, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	err = pool.QueryRow(ctx, `
    INSERT INTO users (email, first_name, last_name, role, password_hash, status)
    VALUES ($1, $2, $3, $4, $5, 'active')
    RETURNING id
  `, email, firstName, lastName, role, hash).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
