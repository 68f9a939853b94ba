package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateNormalizesEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("employee@test.tld", "hashed", "Employee").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))

	repo := NewUserRepository(db)
	user := &User{Email: "  Employee@Test.TLD ", PasswordHash: "hashed", Role: "Employee"}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, "employee@test.tld", user.Email)
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("employee@test.tld").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at"}).
			AddRow(int64(7), "employee@test.tld", "hashed", "Employee", time.Now()))

	repo := NewUserRepository(db)
	user, err := repo.GetByEmail(context.Background(), "Employee@Test.TLD")
	require.NoError(t, err)
	assert.Equal(t, "Employee", user.Role)
}

func TestUserRepositoryGetByEmailMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@test.tld").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at"}))

	repo := NewUserRepository(db)
	_, err = repo.GetByEmail(context.Background(), "ghost@test.tld")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
