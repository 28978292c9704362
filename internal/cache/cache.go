// Package cache stores rendered fragments keyed by a digest of their
// source.
package cache

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a string key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Key returns a stable cache key for a namespace and source bytes.
func Key(namespace string, src []byte) string {
	sum := sha256.Sum256(src)
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// DefaultCapacity bounds NewMemory caches.
const DefaultCapacity = 1024

type memoryEntry struct {
	key     string
	value   string
	expires time.Time
}

// Memory is an in-process LRU cache with expiry.
type Memory struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
	now      func() time.Time
}

// NewMemory creates a memory cache holding at most capacity entries. A
// non-positive capacity uses DefaultCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		now:      time.Now,
	}
}

// Get implements Cache. Expired entries are removed on access.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return "", false, nil
	}
	entry := elem.Value.(*memoryEntry)
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		m.eviction.Remove(elem)
		delete(m.items, key)
		return "", false, nil
	}
	m.eviction.MoveToFront(elem)
	return entry.value, true, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expires = expires
		m.eviction.MoveToFront(elem)
		return nil
	}

	m.items[key] = m.eviction.PushFront(&memoryEntry{key: key, value: value, expires: expires})
	if m.eviction.Len() > m.capacity {
		oldest := m.eviction.Back()
		m.eviction.Remove(oldest)
		delete(m.items, oldest.Value.(*memoryEntry).key)
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eviction.Len()
}

// Redis stores entries in Redis under a key prefix.
type Redis struct {
	db     redis.UniversalClient
	prefix string
}

// NewRedis wraps a Redis client.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{db: client, prefix: prefix}
}

// Get implements Cache. A missing key is not an error.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.db.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set implements Cache.
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.db.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.db.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.db.Close()
}

// Dial connects to Redis and verifies the connection with PING.
func Dial(ctx context.Context, addr, password string, db int, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	r := NewRedis(client, prefix)
	if err := r.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return r, nil
}
