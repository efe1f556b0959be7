// Package cache holds per-language state retained across resolutions.
//
// The cache has a single slot. It is tagged with one language and is replaced
// wholesale, never merged, when a different language becomes active.
package cache

import (
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// Entry is the state retained for one language. Consumers use it to skip
// redundant downstream work such as re-rendering unchanged documents.
type Entry struct {
	lang  string
	store *gocache.Cache
}

func newEntry(lang string) *Entry {
	// Replacement is the only invalidation: no expiry and no janitor.
	return &Entry{lang: lang, store: gocache.New(gocache.NoExpiration, 0)}
}

// Lang returns the language the entry was created for.
func (e *Entry) Lang() string { return e.lang }

// Get returns a previously stored value.
func (e *Entry) Get(key string) (any, bool) { return e.store.Get(key) }

// Set stores a value for the lifetime of the entry.
func (e *Entry) Set(key string, value any) { e.store.Set(key, value, gocache.NoExpiration) }

// Delete removes a value.
func (e *Entry) Delete(key string) { e.store.Delete(key) }

// Len reports the number of stored values.
func (e *Entry) Len() int { return e.store.ItemCount() }

// ContentCache owns the single per-language entry.
type ContentCache struct {
	mu    sync.RWMutex
	entry *Entry
}

// New returns an empty cache.
func New() *ContentCache {
	return &ContentCache{}
}

// Get returns the entry when it belongs to lang.
func (c *ContentCache) Get(lang string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.entry.lang != lang {
		return nil, false
	}
	return c.entry, true
}

// Reset installs a fresh empty entry for lang, discarding the previous one.
func (c *ContentCache) Reset(lang string) *Entry {
	e := newEntry(lang)
	c.mu.Lock()
	c.entry = e
	c.mu.Unlock()
	return e
}

// CurrentLanguage reports the language of the held entry, if any.
func (c *ContentCache) CurrentLanguage() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return "", false
	}
	return c.entry.lang, true
}
