package auth

import (
	"context"

	"appraisal/internal/platform/db"
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (User, error) {
	q := db.QueryerFromContext(ctx, s.DB)
	var out User
	err := q.QueryRow(ctx, `
    SELECT id, email, first_name, last_name, role, password_hash
    FROM users
    WHERE email = $1 AND status = 'active'
  `, email).Scan(&out.ID, &out.Email, &out.FirstName, &out.LastName, &out.Role, &out.PasswordHash)
	return out, err
}

func (s *Store) FindUserByID(ctx context.Context, userID string) (User, error) {
	q := db.QueryerFromContext(ctx, s.DB)
	var out User
	err := q.QueryRow(ctx, `
    SELECT id, email, first_name, last_name, role, password_hash
    FROM users
    WHERE id = $1 AND status = 'active'
  `, userID).Scan(&out.ID, &out.Email, &out.FirstName, &out.LastName, &out.Role, &out.PasswordHash)
	return out, err
}

func (s *Store) UserRole(ctx context.Context, userID string) (string, error) {
	q := db.QueryerFromContext(ctx, s.DB)
	var role string
	if err := q.QueryRow(ctx, "SELECT role FROM users WHERE id = $1", userID).Scan(&role); err != nil {
		return "", err
	}
	return role, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	q := db.QueryerFromContext(ctx, s.DB)
	_, err := q.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}

// IsDisputeResolver reports whether the user may resolve appraisal
// disputes. The appraisal engine consumes this through its
// ResolverDirectory interface.
func (s *Store) IsDisputeResolver(ctx context.Context, userID string) (bool, error) {
	role, err := s.UserRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return RoleHasPermission(role, PermDisputesResolve), nil
}
