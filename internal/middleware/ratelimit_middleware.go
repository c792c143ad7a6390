package middleware

import (
	"sync"
	"time"
)

// LoginRateLimiter counts failed sign-in attempts per IP.
// Limit: 5 failures per minute.
type LoginRateLimiter struct {
	mu        sync.Mutex
	attempts  map[string]*attemptInfo
	limit     int
	window    time.Duration
	lastPrune time.Time
	now       func() time.Time
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

func NewLoginRateLimiter() *LoginRateLimiter {
	return &LoginRateLimiter{
		attempts: make(map[string]*attemptInfo),
		limit:    5,
		window:   time.Minute,
		now:      time.Now,
	}
}

// Blocked reports whether ip has used up its failures for the current window.
func (r *LoginRateLimiter) Blocked(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, ok := r.attempts[ip]
	if !ok {
		return false
	}
	if r.now().Sub(info.firstAt) > r.window {
		delete(r.attempts, ip)
		return false
	}
	return info.count >= r.limit
}

// Fail records a failed attempt from ip.
func (r *LoginRateLimiter) Fail(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.prune(now)

	info, ok := r.attempts[ip]
	if !ok || now.Sub(info.firstAt) > r.window {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return
	}
	info.count++
}

// Reset clears ip after a successful sign-in.
func (r *LoginRateLimiter) Reset(ip string) {
	r.mu.Lock()
	delete(r.attempts, ip)
	r.mu.Unlock()
}

// prune drops expired windows at most every five minutes. Caller holds mu.
func (r *LoginRateLimiter) prune(now time.Time) {
	if now.Sub(r.lastPrune) < 5*time.Minute {
		return
	}
	r.lastPrune = now
	for ip, info := range r.attempts {
		if now.Sub(info.firstAt) > r.window {
			delete(r.attempts, ip)
		}
	}
}
