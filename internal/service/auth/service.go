package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"content-hub/internal/domain/entity"
	"content-hub/internal/repository"
	"content-hub/pkg/security/password"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials represents login credentials.
type Credentials struct {
	Email    string
	Password string
}

// PasswordVerifier checks a plain password against a stored hash.
type PasswordVerifier interface {
	Verify(plain, hash string) error
}

// AuthService authenticates users and issues access tokens.
type AuthService struct {
	users    repository.UserRepository
	verifier PasswordVerifier
	tokens   *TokenManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, verifier PasswordVerifier, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, verifier: verifier, tokens: tokens}
}

// Login returns a signed access token and the authenticated user.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (string, *entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	if err := s.verifier.Verify(creds.Password, u.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("auth.Login verify: %w", err)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, fmt.Errorf("auth.Login issue token: %w", err)
	}
	return token, u, nil
}

// Authenticate validates a bearer token.
func (s *AuthService) Authenticate(tokenString string) (*Principal, error) {
	return s.tokens.Parse(tokenString)
}
