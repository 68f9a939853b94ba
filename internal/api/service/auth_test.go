package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"billed/internal/api/auth"
	"billed/internal/api/repository"
	"billed/internal/models"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*repository.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*repository.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *repository.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newAuthService(repo *fakeUserRepo) (*AuthService, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(repo, plainHasher{}, tokens, zap.NewNop()), tokens
}

func TestSignupDefaultsToEmployee(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newAuthService(repo)

	user, err := svc.Signup(context.Background(), "Employee@Test.TLD", "azerty", "")
	require.NoError(t, err)
	assert.Equal(t, "employee@test.tld", user.Email)
	assert.Equal(t, models.RoleEmployee, user.Role)
	assert.Equal(t, "hash:azerty", user.PasswordHash)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newAuthService(repo)

	_, err := svc.Signup(context.Background(), "employee@test.tld", "azerty", models.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "employee@test.tld", "other", models.RoleEmployee)
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, _ := newAuthService(newFakeUserRepo())

	_, err := svc.Signup(context.Background(), "employee@test.tld", "azerty", "Superuser")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestLoginIssuesValidToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc, tokens := newAuthService(repo)

	_, err := svc.Signup(context.Background(), "admin@test.tld", "azerty", models.RoleAdmin)
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "admin@test.tld", "azerty")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@test.tld", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newAuthService(repo)

	_, err := svc.Signup(context.Background(), "employee@test.tld", "azerty", models.RoleEmployee)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "employee@test.tld", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "ghost@test.tld", "azerty")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
