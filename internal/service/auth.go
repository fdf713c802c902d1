// Package service provides business logic for authentication and the proxy
// directory, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"

	"github.com/titanmaster/vortexproxies/internal/models"
	"github.com/titanmaster/vortexproxies/internal/password"
)

// ErrInvalidCredentials is returned for every failed login, whether the
// username is unknown or the password is wrong. Callers must not be able
// to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines the persistence operations
// required by the authentication service.
type UserRepository interface {
	// GetUser returns the user with the given id, or nil if absent.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserByUsername returns the user with the given username, or nil if absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateUser inserts a user whose password is already a hashed composite.
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
}

// AuthService implements credential verification against a UserRepository.
type AuthService struct {
	// repo performs the data-layer operations.
	repo UserRepository
}

// NewAuthService constructs a new AuthService using the provided repository.
func NewAuthService(repo UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Login verifies the username/password pair and returns the matching user.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, plain string) (*models.User, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Verify(plain, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetUser resolves a user id to its current record, or nil if absent.
// Session handling re-fetches through here on every request, so a removed
// user is de-authenticated immediately.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}
