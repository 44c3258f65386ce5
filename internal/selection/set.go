// Package selection holds the user's chosen ingredients.
package selection

import (
	"slices"
	"strings"
	"sync"
)

// Set is a deduplicated, insertion-ordered list of ingredient names.
// Names are compared by exact equality. Safe for concurrent use.
type Set struct {
	mu    sync.RWMutex
	names []string
}

// New returns an empty set.
func New() *Set {
	return &Set{}
}

// Add appends name unless it is already present. Returns true if added.
func (s *Set) Add(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" || slices.Contains(s.names, name) {
		return false
	}
	s.names = append(s.names, name)
	return true
}

// Remove deletes every occurrence of name. Returns true if anything changed.
func (s *Set) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.names)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
	return len(s.names) != before
}

// RemoveAt deletes the name at index i and returns it. Out of range is a no-op.
func (s *Set) RemoveAt(i int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.names) {
		return "", false
	}
	name := s.names[i]
	s.names = slices.Delete(s.names, i, i+1)
	return name, true
}

// Contains reports whether name is selected.
func (s *Set) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.names, name)
}

// Names returns a copy of the selection in insertion order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.names)
}

// Len returns the number of selected names.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// CanSearch reports whether a recipe search may be triggered.
func (s *Set) CanSearch() bool {
	return s.Len() > 0
}

// Joined returns the names as a single comma-delimited parameter.
func (s *Set) Joined() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.Join(s.names, ",")
}
