// Package service contains billed-api business logic.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"billed/internal/api/auth"
	"billed/internal/api/repository"
	"billed/internal/models"
)

var (
	// ErrEmailInUse is returned when registering a duplicate email.
	ErrEmailInUse = errors.New("auth: email already registered")
	// ErrInvalidCredentials represents login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrUnknownRole rejects roles outside the allow-list.
	ErrUnknownRole = errors.New("auth: unknown role")
)

// UserRepository defines the storage contract used by the service.
type UserRepository interface {
	Create(ctx context.Context, user *repository.User) error
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
}

// AuthService contains registration and login logic.
type AuthService struct {
	repo   UserRepository
	hasher auth.Hasher
	tokens *auth.TokenService
	logger *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(repo UserRepository, hasher auth.Hasher, tokens *auth.TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Signup registers a new account.
func (s *AuthService) Signup(ctx context.Context, email, password, role string) (*repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("auth: email required")
	}
	if password == "" {
		return nil, errors.New("auth: password required")
	}
	if role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleEmployee && role != models.RoleAdmin {
		return nil, ErrUnknownRole
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &repository.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("email", user.Email), zap.String("role", user.Role))
	return user, nil
}

// Login authenticates a user and produces a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
