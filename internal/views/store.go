package views

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LatchStore выдаёт защёлку на пару (экземпляр страницы, объявление).
// Acquire возвращает true ровно один раз для каждой пары.
type LatchStore interface {
	Acquire(ctx context.Context, pageInstanceID, listingID string) (bool, error)
}

func latchKey(pageInstanceID, listingID string) string {
	return pageInstanceID + ":" + listingID
}

type memoryEntry struct {
	latch   *Latch
	expires time.Time
}

// MemoryLatchStore - защёлки в памяти процесса с TTL и ограничением размера
type MemoryLatchStore struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewMemoryLatchStore(ttl time.Duration, maxEntries int) *MemoryLatchStore {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &MemoryLatchStore{
		entries:    make(map[string]*memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *MemoryLatchStore) Acquire(_ context.Context, pageInstanceID, listingID string) (bool, error) {
	key := latchKey(pageInstanceID, listingID)
	now := s.now()

	s.mu.Lock()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.expires) {
		if len(s.entries) >= s.maxEntries {
			s.evictLocked(now)
		}
		entry = &memoryEntry{latch: &Latch{}, expires: now.Add(s.ttl)}
		s.entries[key] = entry
	}
	latch := entry.latch
	s.mu.Unlock()

	return latch.TryFire(), nil
}

func (s *MemoryLatchStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictLocked убирает просроченные записи, а если их нет - самую старую
func (s *MemoryLatchStore) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, key)
			continue
		}
		if oldestKey == "" || entry.expires.Before(oldest) {
			oldestKey, oldest = key, entry.expires
		}
	}
	if len(s.entries) >= s.maxEntries && oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}

// RedisLatchStore - общие защёлки для нескольких инстансов (SETNX с TTL)
type RedisLatchStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisLatchStore(client *redis.Client, ttl time.Duration) *RedisLatchStore {
	return &RedisLatchStore{client: client, ttl: ttl, prefix: "tawzif:view-latch:"}
}

func (s *RedisLatchStore) Acquire(ctx context.Context, pageInstanceID, listingID string) (bool, error) {
	return s.client.SetNX(ctx, s.prefix+latchKey(pageInstanceID, listingID), 1, s.ttl).Result()
}
