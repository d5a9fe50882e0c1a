// Package user implements registration and lookup of user accounts.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"content-hub/internal/domain/entity"
	"content-hub/internal/repository"
)

// PasswordHasher encodes plain text passwords for storage.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	UserType entity.UserType
}

type Service struct {
	Repo   repository.UserRepository
	Hasher PasswordHasher
	Now    func() time.Time
	NewID  func() string
}

// Register validates in, hashes the password and stores the account.
// A taken username or email surfaces as entity.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := entity.ValidateRegistration(username, email, in.Password, in.UserType); err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	now, newID := time.Now, uuid.NewString
	if s.Now != nil {
		now = s.Now
	}
	if s.NewID != nil {
		newID = s.NewID
	}

	createdAt := now().UTC()
	u := &entity.User{
		ID:           newID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		UserType:     in.UserType,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
