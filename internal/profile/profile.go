// Package profile manages user profiles: each profile owns a data directory
// and a preference service. Profiles are the unit an error console is scoped
// to.
package profile

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"error-console-api/internal/prefs"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is one user profile. The prefs service lives as long as the
// profile does.
type Profile struct {
	ID    string
	Dir   string
	Prefs *prefs.Service
}

// Manager owns all live profiles.
type Manager struct {
	mu       sync.Mutex
	baseDir  string
	profiles map[string]*Profile
	log      *slog.Logger
}

// NewManager creates the base data directory if needed.
func NewManager(baseDir string, log *slog.Logger) (*Manager, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Manager{
		baseDir:  baseDir,
		profiles: make(map[string]*Profile),
		log:      log,
	}, nil
}

// Create makes a new profile with a fresh id and an empty pref store.
func (m *Manager) Create() (*Profile, error) {
	id := uuid.NewString()
	dir := filepath.Join(m.baseDir, id)

	svc, err := prefs.NewService(dir, m.log)
	if err != nil {
		return nil, err
	}

	p := &Profile{ID: id, Dir: dir, Prefs: svc}

	m.mu.Lock()
	m.profiles[id] = p
	m.mu.Unlock()

	m.log.Info("profile created", "profile", id)
	return p, nil
}

// Get returns the live profile with the given id.
func (m *Manager) Get(id string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Remove destroys a profile: its prefs stop watching and its data directory
// is deleted. Callers tear down anything scoped to the profile (the error
// console) before removing it.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	p, ok := m.profiles[id]
	if ok {
		delete(m.profiles, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrProfileNotFound
	}

	if err := p.Prefs.Close(); err != nil {
		m.log.Warn("closing prefs", "profile", id, "error", err)
	}
	if err := os.RemoveAll(p.Dir); err != nil {
		return err
	}
	m.log.Info("profile removed", "profile", id)
	return nil
}

// Close tears down every live profile's watcher without deleting data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		p.Prefs.Close()
	}
	m.profiles = make(map[string]*Profile)
}
