package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"lcoe-calculator/internal/lcoe"
	"lcoe-calculator/internal/model"
)

// CacheEntry represents a cached evaluation.
type CacheEntry struct {
	Result    *lcoe.Result
	ExpiresAt time.Time
}

// ResultCache memoizes engine results by input key so the API can serve a
// result's cash flows after the evaluating request has returned.
//
// Results are immutable and a pure function of the inputs, so a hit is
// indistinguishable from re-evaluating. The cache is owned by whoever constructs
// it; there is no package-level instance.
type ResultCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewResultCache creates a cache and starts its cleanup loop. Call Close to stop it.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &ResultCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go c.cleanup(5 * time.Minute)
	return c
}

// Evaluate returns the memoized result for in, evaluating and storing it on a miss.
// Errors are never cached.
func (c *ResultCache) Evaluate(in model.ProjectInputs) (*lcoe.Result, string, error) {
	key := Key(in)
	if res, ok := c.Get(key); ok {
		return res, key, nil
	}
	res, err := lcoe.Evaluate(in)
	if err != nil {
		return nil, key, err
	}
	c.Set(key, res)
	return res, key, nil
}

// Get retrieves a cached result if available and not expired
func (c *ResultCache) Get(key string) (*lcoe.Result, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Result, true
}

// Set stores a result in the cache
func (c *ResultCache) Set(key string, res *lcoe.Result) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Result:    res,
		ExpiresAt: c.now().Add(c.ttl),
	}
}

// Len returns the number of stored entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache
func (c *ResultCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// Close stops the cleanup loop.
func (c *ResultCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *ResultCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *ResultCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
		}
	}
}

// Key creates a deterministic cache key from every input field.
func Key(in model.ProjectInputs) string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	keyStr := fmt.Sprintf("%s:%s:%s:%s:%s:%d:%d:%s:%s",
		f(in.Capacity),
		f(in.EnergyGeneration),
		f(in.CapexPerMW),
		f(in.OpexPercent),
		f(in.InterestRate),
		in.LoanTenure,
		in.ProjectLifetime,
		f(in.DiscountRate),
		in.FinancingOrDefault(),
	)

	// Hash the key to keep it reasonably sized
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
