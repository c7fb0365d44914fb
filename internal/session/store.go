// Package session keeps the entries a user collects for the aggregate risk
// analysis. Stores are owned by their caller; there is no package-level state.
package session

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/nitro-cli/internal/model"
)

// ErrNotFound is returned when removing an entry that is not in the store.
var ErrNotFound = eris.New("session: entry not found")

// Store is an ordered, in-memory list of entries.
type Store struct {
	mu      sync.Mutex
	entries []model.Entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add validates e, assigns it an ID when it has none and appends it.
func (s *Store) Add(e model.Entry) (model.Entry, error) {
	if err := e.Validate(); err != nil {
		return model.Entry{}, eris.Wrap(err, "session: add entry")
	}
	e = cloneEntry(e)
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.NitrosamineRisk != nil {
		// Validate accepted it, so the Portuguese labels map onto low/high.
		lvl, _ := model.ParseRiskLevel(string(*e.NitrosamineRisk))
		e.NitrosamineRisk = &lvl
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.entries, func(x model.Entry) bool { return x.ID == e.ID }) {
		return model.Entry{}, eris.Errorf("session: duplicate entry id %s", e.ID)
	}
	s.entries = append(s.entries, e)
	return cloneEntry(e), nil
}

// Remove deletes the entry with the given ID, keeping the order of the rest.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.entries, func(x model.Entry) bool { return x.ID == id })
	if i < 0 {
		return eris.Wrapf(ErrNotFound, "session: remove %s", id)
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

// List returns a copy of the entries in insertion order, never nil.
func (s *Store) List() []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = cloneEntry(e)
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// cloneEntry copies the pointer fields of e so the store never shares storage
// with its callers.
func cloneEntry(e model.Entry) model.Entry {
	if e.NitrosamineName != nil {
		name := *e.NitrosamineName
		e.NitrosamineName = &name
	}
	if e.NitrosamineRisk != nil {
		lvl := *e.NitrosamineRisk
		e.NitrosamineRisk = &lvl
	}
	return e
}
