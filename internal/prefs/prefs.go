// Package prefs holds per-profile boolean preferences with change
// notifications. Values persist as a JSON file in the profile directory; the
// file is also watched, so edits made outside the process fire the same
// subscriber callbacks as SetBool.
package prefs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DeveloperMode gates whether extension errors are retained at all.
const DeveloperMode = "extensions.ui.developer_mode"

const fileName = "prefs.json"

// Service is one profile's preference store. Safe for concurrent use.
// Callbacks run synchronously on the goroutine that changed the value (or on
// the watcher goroutine for external file edits).
type Service struct {
	mu        sync.Mutex
	values    map[string]bool
	subs      map[string]map[int]func(bool)
	nextSub   int
	path      string
	watcher   *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
	log       *slog.Logger
}

// NewService loads (or creates) the preference file under dir and starts
// watching it for external edits.
func NewService(dir string, log *slog.Logger) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	s := &Service{
		values: make(map[string]bool),
		subs:   make(map[string]map[int]func(bool)),
		path:   filepath.Join(dir, fileName),
		done:   make(chan struct{}),
		log:    log,
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefs watcher: %v", err)
	}
	// Watch the directory, not the file: the file may not exist yet, and
	// editors often replace rather than rewrite it.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("prefs watcher: %v", err)
	}
	s.watcher = watcher
	go s.watch()

	return s, nil
}

// GetBool returns the stored value for key, false if unset.
func (s *Service) GetBool(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// SetBool stores value under key, persists, and notifies subscribers of key
// if the value actually changed.
func (s *Service) SetBool(key string, value bool) error {
	s.mu.Lock()
	if s.values[key] == value {
		s.mu.Unlock()
		return nil
	}
	s.values[key] = value
	err := s.persistLocked()
	callbacks := s.callbacksLocked(key)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(value)
	}
	return err
}

// Subscribe registers fn to run whenever key changes. The returned function
// unsubscribes; calling it more than once is harmless.
func (s *Service) Subscribe(key string, fn func(bool)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(bool))
	}
	token := s.nextSub
	s.nextSub++
	s.subs[key][token] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], token)
	}
}

// Close stops the file watcher. Stored values remain on disk. Safe to call
// more than once.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

func (s *Service) watch() {
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != fileName {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s.reload()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("prefs watch error", "error", err)
		}
	}
}

// reload re-reads the file and fires callbacks for every key whose value
// differs from the in-memory state. Writes made through SetBool produce a
// no-diff reload and stay silent.
func (s *Service) reload() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	fresh := make(map[string]bool)
	if err := json.Unmarshal(data, &fresh); err != nil {
		s.log.Warn("prefs file unreadable, keeping in-memory values", "path", s.path, "error", err)
		return
	}

	type change struct {
		value     bool
		callbacks []func(bool)
	}
	var changes []change

	s.mu.Lock()
	for key, value := range fresh {
		if s.values[key] != value {
			s.values[key] = value
			changes = append(changes, change{value, s.callbacksLocked(key)})
		}
	}
	for key := range s.values {
		if _, ok := fresh[key]; !ok {
			delete(s.values, key)
			changes = append(changes, change{false, s.callbacksLocked(key)})
		}
	}
	s.mu.Unlock()

	for _, ch := range changes {
		for _, fn := range ch.callbacks {
			fn(ch.value)
		}
	}
}

func (s *Service) callbacksLocked(key string) []func(bool) {
	callbacks := make([]func(bool), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		callbacks = append(callbacks, fn)
	}
	return callbacks
}

func (s *Service) persistLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *Service) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.values)
}
