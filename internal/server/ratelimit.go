// ABOUTME: Thread-safe fixed-window rate limiter keyed by client IP
// ABOUTME: A background goroutine periodically drops expired windows

package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// windowEntry tracks one client's request count inside the current window
type windowEntry struct {
	start time.Time
	count int
}

// rateLimiter counts requests per client IP within a fixed window.
// Requests beyond the maximum are rejected until the window rolls over.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*windowEntry
	window  time.Duration
	max     int
	done    chan struct{}
	closed  bool
}

// newRateLimiter creates a limiter allowing max requests per window.
// A background goroutine periodically cleans up expired windows.
func newRateLimiter(window time.Duration, max int) *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*windowEntry),
		window:  window,
		max:     max,
		done:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// allow reports whether the client may make another request, counting it if so
func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, ok := rl.clients[key]
	if !ok || now.Sub(entry.start) >= rl.window {
		rl.clients[key] = &windowEntry{start: now, count: 1}
		return true
	}

	if entry.count >= rl.max {
		return false
	}
	entry.count++
	return true
}

// cleanup drops expired windows so the map doesn't grow unbounded
func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, entry := range rl.clients {
				if now.Sub(entry.start) >= rl.window {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// close stops the cleanup goroutine
func (rl *rateLimiter) close() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if !rl.closed {
		rl.closed = true
		close(rl.done)
	}
}

// middleware rejects requests over the limit with 429
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !rl.allow(key) {
			writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address, ignoring the port
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
