// Package ratelimit bounds attempts per identity within a rolling window.
//
// The counter lives in process memory: limits do not survive a restart and
// do not hold across replicas. That makes this a soft limiter against
// brute-force and spam, not a hard security boundary — a clustered
// deployment needs a shared counter instead.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

const (
	DefaultWindow      = 15 * time.Minute
	DefaultMaxAttempts = 5
)

type entry struct {
	count     int
	resetTime time.Time
}

type Limiter struct {
	mu          sync.Mutex
	entries     map[string]*entry
	window      time.Duration
	maxAttempts int
	now         func() time.Time // injectable for tests
}

func NewLimiter(window time.Duration, maxAttempts int) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Limiter{
		entries:     make(map[string]*entry),
		window:      window,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Key builds the composite identity string, e.g. "login_1.2.3.4_a@b.com".
func Key(action, clientIP, target string) string {
	return fmt.Sprintf("%s_%s_%s", action, clientIP, target)
}

// Allow consumes one attempt for key. A fresh or expired window restarts the
// count at 1 and allows; within a window the call allows until maxAttempts
// is reached, then denies without incrementing further.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetTime) {
		l.entries[key] = &entry{count: 1, resetTime: now.Add(l.window)}
		return true
	}
	if e.count < l.maxAttempts {
		e.count++
		return true
	}
	return false
}

// RetryAfter reports how long until the key's window resets. Zero when the
// key is unknown or already reset.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return 0
	}
	d := e.resetTime.Sub(l.now())
	if d < 0 {
		return 0
	}
	return d
}

// sweep drops entries whose window has passed, bounding map growth under
// sustained unique-key churn.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, e := range l.entries {
		if now.After(e.resetTime) {
			delete(l.entries, k)
		}
	}
}

// StartSweeper runs sweep every window length until stop is closed.
func (l *Limiter) StartSweeper(stop <-chan struct{}) {
	go func() {
		t := time.NewTicker(l.window)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				l.sweep()
			case <-stop:
				return
			}
		}
	}()
}
