package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe in-process key/value store with per-entry expiry.
type Cache struct {
	m   sync.Map // string -> *cacheItem
	now func() time.Time
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{now: time.Now}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	value     interface{}
	expiresAt int64 // unix nanos; 0 means no expiration
}

func (c *Cache) newItem(value interface{}, ttl time.Duration) *cacheItem {
	item := &cacheItem{value: value}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl).UnixNano()
	}
	return item
}

func (c *Cache) expired(item *cacheItem) bool {
	return item.expiresAt > 0 && c.now().UnixNano() > item.expiresAt
}

// Set stores a value for a key. A ttl of 0 means the value does not expire.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.m.Store(key, c.newItem(value, ttl))
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(*cacheItem)
	if c.expired(item) {
		c.m.CompareAndDelete(key, item)
		return nil, false
	}
	return item.value, true
}

// SetIfAbsent stores value only when key is missing or expired, atomically with
// respect to other callers. It reports whether the value was stored.
func (c *Cache) SetIfAbsent(key string, value interface{}, ttl time.Duration) bool {
	item := c.newItem(value, ttl)
	for {
		v, loaded := c.m.LoadOrStore(key, item)
		if !loaded {
			return true
		}
		old := v.(*cacheItem)
		if !c.expired(old) {
			return false
		}
		if c.m.CompareAndSwap(key, old, item) {
			return true
		}
	}
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	c.m.Delete(key)
}

// PurgeExpired drops every expired entry and returns how many were removed.
func (c *Cache) PurgeExpired() int {
	removed := 0
	c.m.Range(func(key, v interface{}) bool {
		item := v.(*cacheItem)
		if c.expired(item) && c.m.CompareAndDelete(key, item) {
			removed++
		}
		return true
	})
	return removed
}

// Len counts entries, expired ones included until purged.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
