package session

import (
	"context"
	"sync"
)

// MemorySessions is the in-process fallback used in tests and when no
// redis address is configured.
type MemorySessions struct {
	mu   sync.Mutex
	tabs map[string]map[string]string
}

// NewMemorySessions returns an empty in-memory session factory.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{tabs: make(map[string]map[string]string)}
}

// Scope binds the store to one tab session id.
func (s *MemorySessions) Scope(sid string) Store {
	return &memoryScope{parent: s, sid: sid}
}

type memoryScope struct {
	parent *MemorySessions
	sid    string
}

func (s *memoryScope) GetItem(_ context.Context, key string) (string, error) {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	tab, ok := s.parent.tabs[s.sid]
	if !ok {
		return "", ErrNoItem
	}
	value, ok := tab[key]
	if !ok {
		return "", ErrNoItem
	}
	return value, nil
}

func (s *memoryScope) SetItem(_ context.Context, key, value string) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	tab, ok := s.parent.tabs[s.sid]
	if !ok {
		tab = make(map[string]string)
		s.parent.tabs[s.sid] = tab
	}
	tab[key] = value
	return nil
}

func (s *memoryScope) RemoveItem(_ context.Context, key string) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	if tab, ok := s.parent.tabs[s.sid]; ok {
		delete(tab, key)
	}
	return nil
}
