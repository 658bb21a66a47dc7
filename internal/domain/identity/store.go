package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"ems/internal/platform/pgerr"
	"ems/internal/platform/querier"
)

// Store defines the persistence operations the identity service needs.
type Store interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	Create(ctx context.Context, user User) (string, error)
	AttachGoogleID(ctx context.Context, userID, googleID string) error
}

type pgStore struct {
	db      querier.Querier
	timeout time.Duration
}

// NewStore builds a pgx-backed store. Every call is bounded by timeout so
// a stalled database surfaces as an error instead of a hung request.
func NewStore(db querier.Querier, timeout time.Duration) Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &pgStore{db: db, timeout: timeout}
}

const userColumns = `
    id,
    email,
    COALESCE(password_hash, ''),
    first_name,
    last_name,
    role,
    COALESCE(google_id, ''),
    created_at,
    updated_at`

func (s *pgStore) FindByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.scanUser(s.db.QueryRow(ctx, "SELECT"+userColumns+" FROM users WHERE id = $1", id))
}

func (s *pgStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.scanUser(s.db.QueryRow(ctx, "SELECT"+userColumns+" FROM users WHERE email = $1", email))
}

func (s *pgStore) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.scanUser(s.db.QueryRow(ctx, "SELECT"+userColumns+" FROM users WHERE google_id = $1", googleID))
}

func (s *pgStore) Create(ctx context.Context, user User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var id string
	err := s.db.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, first_name, last_name, role, google_id)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, user.Email, nullIfEmpty(user.PasswordHash), user.FirstName, user.LastName, user.Role, nullIfEmpty(user.GoogleID)).Scan(&id)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return id, nil
}

func (s *pgStore) AttachGoogleID(ctx context.Context, userID, googleID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd, err := s.db.Exec(ctx, "UPDATE users SET google_id = $1, updated_at = now() WHERE id = $2", googleID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Role, &user.GoogleID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
