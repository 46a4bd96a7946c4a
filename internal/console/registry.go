package console

import (
	"log/slog"
	"sync"

	"error-console-api/internal/profile"
)

// Registry hands out one ErrorConsole per profile, created on first use and
// destroyed explicitly when the profile goes away. The console tracks its
// profile's lifetime but never owns it.
type Registry struct {
	mu        sync.Mutex
	consoles  map[string]*ErrorConsole
	maxErrors int
	log       *slog.Logger
}

// NewRegistry builds a registry whose consoles use the given cap
// (<= 0 for the default).
func NewRegistry(maxErrors int, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		consoles:  make(map[string]*ErrorConsole),
		maxErrors: maxErrors,
		log:       log,
	}
}

// Get returns p's console, creating it on first use.
func (r *Registry) Get(p *profile.Profile) *ErrorConsole {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.consoles[p.ID]; ok {
		return c
	}
	c := New(p.Prefs, r.maxErrors, r.log.With("profile", p.ID))
	r.consoles[p.ID] = c
	return c
}

// Remove destroys p's console, broadcasting OnErrorConsoleDestroyed to its
// remaining observers. Safe to call for a profile that never had a console.
func (r *Registry) Remove(p *profile.Profile) {
	r.mu.Lock()
	c, ok := r.consoles[p.ID]
	if ok {
		delete(r.consoles, p.ID)
	}
	r.mu.Unlock()

	if ok {
		c.destroy()
	}
}
