package router

import "sync"

// Mount is the single mount point: exactly one view's markup at a time,
// plus the active navigation icon marker for that view.
type Mount struct {
	mu         sync.RWMutex
	path       string
	html       string
	activeIcon string
}

// HTML returns the currently mounted markup.
func (m *Mount) HTML() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.html
}

// ActiveIcon returns the nav icon marker for the mounted view.
func (m *Mount) ActiveIcon() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeIcon
}

// Path returns the logical path of the mounted view.
func (m *Mount) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

func (m *Mount) clear() {
	m.mu.Lock()
	m.path, m.html, m.activeIcon = "", "", ""
	m.mu.Unlock()
}

func (m *Mount) set(path, html, activeIcon string) {
	m.mu.Lock()
	m.path, m.html, m.activeIcon = path, html, activeIcon
	m.mu.Unlock()
}
