package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/grid"
)

// Cache holds the last report keyed by grid hash.
// Thread-safe for concurrent access.
type Cache struct {
	mu         sync.RWMutex
	gridHash   string
	report     *Report
	computedAt time.Time
	ttl        time.Duration
}

// DefaultCacheTTL is the default time-to-live for cached results.
const DefaultCacheTTL = 5 * time.Minute

// NewCache creates a new cache with the specified TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// Get returns the cached report if g's hash matches and the TTL hasn't
// expired.
func (c *Cache) Get(g *grid.Grid) (*Report, bool) {
	return c.GetByHash(ComputeGridHash(g))
}

// GetByHash is Get with a pre-computed hash.
func (c *Cache) GetByHash(hash string) (*Report, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.report == nil {
		return nil, false
	}
	if hash == c.gridHash && time.Since(c.computedAt) < c.ttl {
		return c.report, true
	}
	return nil, false
}

// Set stores a report. The hash is taken from the report itself.
func (c *Cache) Set(r *Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gridHash = r.Hash
	c.report = r
	c.computedAt = time.Now()
}

// Invalidate clears the cache.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gridHash = ""
	c.report = nil
	c.computedAt = time.Time{}
}

// Stats returns cache statistics for debugging.
func (c *Cache) Stats() (hash string, age time.Duration, hasData bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.report == nil {
		return "", 0, false
	}
	return c.gridHash, time.Since(c.computedAt), true
}

// AnalyzeCached returns the cached report for g, analyzing and storing it on
// a miss.
func (c *Cache) AnalyzeCached(g *grid.Grid) Report {
	hash := ComputeGridHash(g)
	if r, ok := c.GetByHash(hash); ok {
		return *r
	}
	r := Analyze(g)
	c.Set(&r)
	return r
}

// ComputeGridHash generates a deterministic hash of the grid layout: its
// size, walls and endpoints. Search state is ignored.
func ComputeGridHash(g *grid.Grid) string {
	if g == nil {
		return "empty"
	}
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(g.Rows())))
	h.Write([]byte{'x'})
	h.Write([]byte(strconv.Itoa(g.Cols())))
	h.Write([]byte{0})
	h.Write([]byte(g.String()))
	return hex.EncodeToString(h.Sum(nil))
}
