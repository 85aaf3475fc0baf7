// Package ratelimit enforces per-key request budgets over a rolling window.
package ratelimit

import (
	"sync"
	"time"
)

// KeyedLimiter admits at most perWindow calls per key in any window-long span.
type KeyedLimiter struct {
	mu        sync.Mutex
	perWindow int
	window    time.Duration
	now       func() time.Time
	hits      map[string][]time.Time
}

func NewKeyedLimiter(perWindow int, window time.Duration) *KeyedLimiter {
	if perWindow < 1 {
		perWindow = 1
	}
	return &KeyedLimiter{
		perWindow: perWindow,
		window:    window,
		now:       time.Now,
		hits:      make(map[string][]time.Time),
	}
}

// Allow records a call for key and reports whether it fits the budget. Rejected calls are not recorded.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := l.prune(key, now)
	if len(hits) >= l.perWindow {
		return false
	}
	l.hits[key] = append(hits, now)
	return true
}

// Remaining reports how many calls key may still make right now.
func (l *KeyedLimiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.perWindow - len(l.prune(key, l.now()))
}

// prune drops hits that are a full window old. Callers hold mu.
func (l *KeyedLimiter) prune(key string, now time.Time) []time.Time {
	hits := l.hits[key]
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == len(hits) {
		delete(l.hits, key)
		return nil
	}
	hits = hits[i:]
	l.hits[key] = hits
	return hits
}

// CleanExpired forgets keys with no hits inside the current window.
func (l *KeyedLimiter) CleanExpired() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key := range l.hits {
		if l.prune(key, now) == nil {
			removed++
		}
	}
	return removed
}

func (l *KeyedLimiter) ActiveKeys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}
