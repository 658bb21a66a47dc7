package identity

import (
	"context"
	"errors"
	"fmt"

	"ems/internal/auth"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a local account. Role defaults to employee when the
// input carries none.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if _, err := s.store.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = auth.RoleEmployee
	}

	id, err := s.store.Create(ctx, User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	return s.store.FindByID(ctx, id)
}

// Login verifies credentials. Unknown email, wrong password, and
// OAuth-only accounts all fail with the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.store.FindByID(ctx, id)
}

// LoginWithGoogle resolves the account for an OAuth callback: by Google
// subject first, then by email (linking the subject to the existing
// account), otherwise a fresh employee-role account with no password.
func (s *Service) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*User, error) {
	user, err := s.store.FindByGoogleID(ctx, profile.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user, err = s.store.FindByEmail(ctx, profile.Email)
	if err == nil {
		if err := s.store.AttachGoogleID(ctx, user.ID, profile.Subject); err != nil {
			return nil, err
		}
		user.GoogleID = profile.Subject
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	id, err := s.store.Create(ctx, User{
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Role:      auth.RoleEmployee,
		GoogleID:  profile.Subject,
	})
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, id)
}
