package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry maps browser session IDs to their stores. Stores idle for longer
// than the TTL are dropped on the next access.
type Registry struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	stores map[string]*registryItem
}

type registryItem struct {
	store    *Store
	lastSeen time.Time
}

// NewRegistry returns a registry evicting stores idle for ttl. A zero ttl
// keeps stores for the life of the process.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:    ttl,
		now:    time.Now,
		stores: make(map[string]*registryItem),
	}
}

// Get returns the store for id, creating one when id is empty or unknown. The
// returned id is the one the caller should hand back next time.
func (r *Registry) Get(id string) (string, *Store) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictLocked(now)

	if item, ok := r.stores[id]; ok && id != "" {
		item.lastSeen = now
		return id, item.store
	}

	id = uuid.New().String()
	item := &registryItem{store: NewStore(), lastSeen: now}
	r.stores[id] = item
	return id, item.store
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

func (r *Registry) evictLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, item := range r.stores {
		if now.Sub(item.lastSeen) > r.ttl {
			delete(r.stores, id)
		}
	}
}
