package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/ottostep/internal/logger"
)

// DefaultCacheEntries bounds the in-memory tier. A long recipe plus its
// alert lines fits comfortably.
const DefaultCacheEntries = 128

// CacheOption configures an AudioCache.
type CacheOption func(*AudioCache)

// WithCacheDir enables the disk tier rooted at dir. When write is false
// existing files are still read but nothing new is persisted.
func WithCacheDir(dir string, write bool) CacheOption {
	return func(c *AudioCache) {
		c.dir = dir
		c.diskWrite = write
	}
}

// WithMaxEntries bounds the in-memory tier. Oldest entries go first.
func WithMaxEntries(n int) CacheOption {
	return func(c *AudioCache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// AudioCache keeps synthesized narration keyed by sha256(voice + ":" + text),
// so switching voices misses until switched back. Memory is checked first,
// then the optional disk directory.
type AudioCache struct {
	mu         sync.Mutex
	entries    map[string][]byte
	order      []string // insertion order, for eviction
	maxEntries int
	voice      string
	dir        string
	diskWrite  bool
	hits       int64
	misses     int64
	log        *logger.Logger
}

// NewAudioCache creates a cache for the given voice.
func NewAudioCache(voice string, log *logger.Logger, opts ...CacheOption) *AudioCache {
	c := &AudioCache{
		entries:    make(map[string][]byte),
		maxEntries: DefaultCacheEntries,
		voice:      voice,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dir != "" && c.diskWrite {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			log.Warn("cache: cannot create %s: %v", c.dir, err)
			c.diskWrite = false
		}
	}
	return c
}

// Get returns cached audio for text.
func (c *AudioCache) Get(text string) ([]byte, bool) {
	key := c.key(text)

	c.mu.Lock()
	data, ok := c.entries[key]
	if ok {
		c.hits++
	}
	c.mu.Unlock()
	if ok {
		c.log.Debug("cache hit (mem): %s", clip(text, 40))
		return data, true
	}

	if c.dir != "" {
		if data, err := os.ReadFile(c.path(key)); err == nil {
			c.mu.Lock()
			c.storeLocked(key, data)
			c.hits++
			c.mu.Unlock()
			c.log.Debug("cache hit (disk): %s", clip(text, 40))
			return data, true
		}
	}

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
	return nil, false
}

// Put stores audio for text in memory and, when enabled, on disk.
func (c *AudioCache) Put(text string, audio []byte) {
	key := c.key(text)

	c.mu.Lock()
	c.storeLocked(key, audio)
	c.mu.Unlock()

	if c.dir == "" || !c.diskWrite {
		return
	}
	if err := os.WriteFile(c.path(key), audio, 0o644); err != nil {
		c.log.Warn("cache: disk write failed: %v", err)
	}
}

// Len returns the number of in-memory entries.
func (c *AudioCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *AudioCache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *AudioCache) storeLocked(key string, audio []byte) {
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = audio
	for len(c.order) > c.maxEntries {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
}

func (c *AudioCache) key(text string) string {
	h := sha256.Sum256([]byte(c.voice + ":" + text))
	return hex.EncodeToString(h[:])
}

func (c *AudioCache) path(key string) string {
	return filepath.Join(c.dir, key+".wav")
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
