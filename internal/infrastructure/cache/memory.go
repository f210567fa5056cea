package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"telesalud-admin/internal/domain/repository"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryQueryCache is the in-process QueryCache used when Redis is not configured.
type MemoryQueryCache struct {
	mu          sync.Mutex
	ttl         time.Duration
	entries     map[string]map[string]memoryEntry // entity -> digest -> entry
	generations map[string]int64
	now         func() time.Time
}

func NewMemoryQueryCache(ttl time.Duration) *MemoryQueryCache {
	return &MemoryQueryCache{
		ttl:         ttl,
		entries:     make(map[string]map[string]memoryEntry),
		generations: make(map[string]int64),
		now:         time.Now,
	}
}

var _ repository.QueryCache = (*MemoryQueryCache)(nil)

func (c *MemoryQueryCache) Get(ctx context.Context, entity string, filter interface{}, dest interface{}) (bool, int64, error) {
	digest, err := FilterDigest(filter)
	if err != nil {
		return false, 0, err
	}

	c.mu.Lock()
	gen := c.generations[entity]
	entry, ok := c.entries[entity][digest]
	if ok && entry.expired(c.now()) {
		delete(c.entries[entity], digest)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false, gen, nil
	}
	return true, gen, json.Unmarshal(entry.raw, dest)
}

// Set drops the value when the entity was invalidated after generation was read.
func (c *MemoryQueryCache) Set(ctx context.Context, entity string, generation int64, filter interface{}, value interface{}) error {
	digest, err := FilterDigest(filter)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generations[entity] {
		return nil
	}
	if c.entries[entity] == nil {
		c.entries[entity] = make(map[string]memoryEntry)
	}
	entry := memoryEntry{raw: raw}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}
	c.entries[entity][digest] = entry
	return nil
}

func (c *MemoryQueryCache) Invalidate(ctx context.Context, entity string) error {
	c.mu.Lock()
	c.generations[entity]++
	delete(c.entries, entity)
	c.mu.Unlock()
	return nil
}

// MemorySessionStore is the in-process SessionStore used when Redis is not configured.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]map[string]memoryEntry
	now      func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]map[string]memoryEntry),
		now:      time.Now,
	}
}

var _ repository.SessionStore = (*MemorySessionStore)(nil)

func (s *MemorySessionStore) Get(ctx context.Context, sid, key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	entry, ok := s.sessions[sid][key]
	if ok && entry.expired(s.now()) {
		delete(s.sessions, sid)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(entry.raw, dest)
}

func (s *MemorySessionStore) Set(ctx context.Context, sid, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sid] == nil {
		s.sessions[sid] = make(map[string]memoryEntry)
	}
	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}
	s.sessions[sid][key] = memoryEntry{raw: raw, expiresAt: expiresAt}
	// slide the whole session
	for k, e := range s.sessions[sid] {
		e.expiresAt = expiresAt
		s.sessions[sid][k] = e
	}
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sid, key string) error {
	s.mu.Lock()
	delete(s.sessions[sid], key)
	s.mu.Unlock()
	return nil
}
