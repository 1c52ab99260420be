package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// NoExpiration keeps entries until they are removed.
const NoExpiration = gocache.NoExpiration

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a memory store. Entries put with a zero ttl use
// defaultTTL; expired entries are swept every cleanupInterval (0 disables
// the sweep).
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(defaultTTL, cleanupInterval)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (s *MemoryStore) Put(key string, value []byte, ttl time.Duration) error {
	// gocache.DefaultExpiration is the zero duration
	s.cache.Set(key, value, ttl)
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *MemoryStore) Purge() error {
	s.cache.Flush()
	return nil
}

// Len returns the number of entries, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}
