// Package session holds the per-tab key/value persistence the containers
// read their identity from. The contract mirrors web storage: string keys,
// string values, absence reported as ErrNoItem.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"billed/internal/models"
)

// Keys used by the application.
const (
	UserKey  = "user"
	TokenKey = "jwt"
)

// ErrNoItem means the key has never been set (or the session expired).
var ErrNoItem = errors.New("session: item not found")

// Store is the scoped accessor handed to containers at construction.
type Store interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Sessions produces a Store scoped to one browser tab session id.
type Sessions interface {
	Scope(sid string) Store
}

// CurrentUser decodes the identity stored under the "user" key.
// ErrNoItem propagates when no login happened in this session.
func CurrentUser(ctx context.Context, store Store) (*models.User, error) {
	raw, err := store.GetItem(ctx, UserKey)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("session: decode user: %w", err)
	}
	return &user, nil
}

// SaveUser serializes the identity under the "user" key.
func SaveUser(ctx context.Context, store Store, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return store.SetItem(ctx, UserKey, string(data))
}
