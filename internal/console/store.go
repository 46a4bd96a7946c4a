package console

import (
	"error-console-api/internal/extension"
)

// DefaultMaxTotalErrors caps the number of entries held across all
// extensions combined.
const DefaultMaxTotalErrors = 100

// errorStore keeps each extension's errors in detection order, with a
// store-wide insertion queue so eviction can drop the globally-oldest entry
// regardless of which extension owns it. Not synchronized; the console
// serializes access.
type errorStore struct {
	entries map[extension.ID][]*extension.Error
	order   []extension.ID // one element per stored entry, oldest first
	max     int
}

func newErrorStore(max int) *errorStore {
	if max <= 0 {
		max = DefaultMaxTotalErrors
	}
	return &errorStore{
		entries: make(map[extension.ID][]*extension.Error),
		max:     max,
	}
}

// add appends err and returns the entry evicted to stay under the cap, if
// any.
func (s *errorStore) add(err *extension.Error) *extension.Error {
	var evicted *extension.Error
	if len(s.order) >= s.max {
		evicted = s.evictOldest()
	}
	s.entries[err.ExtensionID] = append(s.entries[err.ExtensionID], err)
	s.order = append(s.order, err.ExtensionID)
	return evicted
}

func (s *errorStore) evictOldest() *extension.Error {
	id := s.order[0]
	s.order = s.order[1:]

	list := s.entries[id]
	oldest := list[0]
	if len(list) == 1 {
		delete(s.entries, id)
	} else {
		s.entries[id] = list[1:]
	}
	return oldest
}

// get returns the stored list for id; nil when the extension has no errors.
func (s *errorStore) get(id extension.ID) []*extension.Error {
	return s.entries[id]
}

// size is the total entry count across all extensions.
func (s *errorStore) size() int {
	return len(s.order)
}

func (s *errorStore) clear() {
	s.entries = make(map[extension.ID][]*extension.Error)
	s.order = nil
}
