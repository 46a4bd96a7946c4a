// Package console collects extension errors for one profile. Producers (the
// manifest validator, the DevTools runtime-error pump, the HTTP report
// endpoint) push fully-formed records through ReportError; consumers either
// poll GetErrorsForExtension or register as Observers. Everything is gated on
// the profile's developer-mode preference: while it is off, reports are
// silently dropped, and flipping it off discards every stored record.
package console

import (
	"log/slog"
	"sync"

	"error-console-api/internal/extension"
	"error-console-api/internal/prefs"
)

// Observer is notified of every stored error and of console teardown.
// Observers hold a non-owning reference to the console; after
// OnErrorConsoleDestroyed they must drop it.
type Observer interface {
	OnErrorAdded(err *extension.Error)
	OnErrorConsoleDestroyed()
}

// ErrorConsole is the per-profile error collection service.
type ErrorConsole struct {
	mu          sync.Mutex
	enabled     bool
	destroyed   bool
	store       *errorStore
	observers   []Observer
	unsubscribe func()
	log         *slog.Logger
}

// New builds a console wired to the profile's preference service. The
// console mirrors the developer-mode pref from the moment of creation and
// reacts to every subsequent change. maxErrors <= 0 uses the default cap.
func New(prefSvc *prefs.Service, maxErrors int, log *slog.Logger) *ErrorConsole {
	if log == nil {
		log = slog.Default()
	}
	c := &ErrorConsole{
		store: newErrorStore(maxErrors),
		log:   log,
	}
	c.enabled = prefSvc.GetBool(prefs.DeveloperMode)
	c.unsubscribe = prefSvc.Subscribe(prefs.DeveloperMode, c.onDeveloperModeChanged)
	return c
}

// ReportError ingests one record. While developer mode is off the record is
// dropped without a trace. Otherwise it is stored under its extension id,
// the oldest store-wide entry is evicted if the cap was hit, and every
// registered observer is notified synchronously in registration order before
// ReportError returns.
//
// Calling ReportError on a destroyed console is a caller bug and panics.
func (c *ErrorConsole) ReportError(err *extension.Error) {
	if err == nil {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		panic("console: ReportError on destroyed ErrorConsole")
	}
	if !c.enabled {
		c.mu.Unlock()
		return
	}
	evicted := c.store.add(err)
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	if evicted != nil {
		c.log.Debug("evicted oldest error",
			"extension", evicted.ExtensionID, "message", evicted.Message)
	}
	for _, o := range observers {
		o.OnErrorAdded(err)
	}
}

// GetErrorsForExtension returns id's errors in detection order. The result
// is empty both when no error occurred and when developer mode was off; the
// two are indistinguishable by design. Callers must not mutate the records.
func (c *ErrorConsole) GetErrorsForExtension(id extension.ID) []*extension.Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*extension.Error(nil), c.store.get(id)...)
}

// TotalEntries is the store-wide entry count.
func (c *ErrorConsole) TotalEntries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.size()
}

// Enabled reports whether the console is currently retaining errors.
func (c *ErrorConsole) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// AddObserver registers o. Observers are notified in registration order.
func (c *ErrorConsole) AddObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// RemoveObserver unregisters o. Removing an observer that was never
// registered is a no-op.
func (c *ErrorConsole) RemoveObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.observers {
		if existing == o {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

func (c *ErrorConsole) onDeveloperModeChanged(enabled bool) {
	c.mu.Lock()
	if c.destroyed || c.enabled == enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = enabled
	if !enabled {
		// Nothing survives the toggle; re-enabling starts from scratch.
		c.store.clear()
	}
	c.mu.Unlock()

	c.log.Info("developer mode changed", "enabled", enabled)
}

// destroy tears the console down on profile destruction: every remaining
// observer receives exactly one OnErrorConsoleDestroyed so it can null out
// its reference, then the registry is released and the pref subscription
// dropped. Only the Registry calls this.
func (c *ErrorConsole) destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	observers := c.observers
	c.observers = nil
	c.store.clear()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	for _, o := range observers {
		o.OnErrorConsoleDestroyed()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
}
