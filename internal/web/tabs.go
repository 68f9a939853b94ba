package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"sync"

	"billed/internal/router"
	"billed/internal/session"
)

const sidCookie = "billed_sid"

// tabRegistry keeps one router (and so one mount and one draft) per
// browser tab session.
type tabRegistry struct {
	mu      sync.Mutex
	routers map[string]*router.Router
	build   func(sid string) *router.Router
}

func newTabRegistry(build func(sid string) *router.Router) *tabRegistry {
	return &tabRegistry{
		routers: make(map[string]*router.Router),
		build:   build,
	}
}

func (t *tabRegistry) routerFor(sid string) *router.Router {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rtr, ok := t.routers[sid]; ok {
		return rtr
	}
	rtr := t.build(sid)
	t.routers[sid] = rtr
	return rtr
}

// drop forgets a tab's router, releasing its mount and any upload draft.
func (t *tabRegistry) drop(sid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.routers, sid)
}

// ensureSID reads the tab session cookie, minting one when absent.
func ensureSID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sidCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sid := newSID()
	http.SetCookie(w, &http.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

func newSID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// sessionTokens feeds the store client the bearer token saved at login.
type sessionTokens struct {
	scope session.Store
}

func (s sessionTokens) Token(ctx context.Context) (string, error) {
	token, err := s.scope.GetItem(ctx, session.TokenKey)
	if errors.Is(err, session.ErrNoItem) {
		return "", nil
	}
	return token, err
}
