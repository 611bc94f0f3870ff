// Package ratelimit limits requests per client with token buckets.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// bucket refills continuously at rate tokens per second up to capacity.
type bucket struct {
	capacity   float64
	rate       float64
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{capacity: float64(capacity), rate: rate, tokens: float64(capacity), lastRefill: now, lastAccess: now}
}

func (b *bucket) refill(now time.Time) {
	b.tokens = math.Min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.rate)
	b.lastRefill = now
}

// take consumes a token if one is available.
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	b.lastAccess = now
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// fullAt is when the bucket will be full again.
func (b *bucket) fullAt(now time.Time) time.Time {
	missing := b.capacity - b.tokens
	if missing <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / b.rate * float64(time.Second)))
}

// nextTokenAt is when the next whole token becomes available.
func (b *bucket) nextTokenAt(now time.Time) time.Time {
	if b.tokens >= 1 {
		return now
	}
	return now.Add(time.Duration((1 - b.tokens) / b.rate * float64(time.Second)))
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stopOnce sync.Once
	stop     chan struct{}
}

// NewLimiter creates a limiter. A nil config uses DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow checks whether a request from clientID to path is allowed and consumes a token if so.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	cfg := l.config
	switch {
	case !cfg.Enabled, cfg.Whitelist[clientID], cfg.Exempt[path]:
		return true, Info{Allowed: true}
	case cfg.Blacklist[clientID]:
		return false, Info{}
	}

	rule := cfg.Match(path, method)
	var key string
	if rule == nil {
		rule = &Rule{Limit: cfg.DefaultLimit, Window: cfg.DefaultWindow}
		// Unmatched requests share one bucket per client.
		key = clientID + ":default"
	} else {
		key = clientID + ":" + rule.Method + ":" + rule.Path
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		b = newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds(), now)
		l.buckets[key] = b
	}
	allowed := b.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: int(b.tokens),
		ResetTime: b.fullAt(now),
	}
	if !allowed {
		info.RetryAfter = b.nextTokenAt(now).Sub(now)
	}
	l.mu.Unlock()

	return allowed, info
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup drops buckets idle for longer than IdleTTL.
func (l *Limiter) cleanup() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
