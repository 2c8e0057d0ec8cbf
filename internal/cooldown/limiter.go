// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cooldown

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/slashkit/internal/definition"
)

// Limiter is a token-bucket Handler: a sender may use a command burst times in a row,
// after which one use is restored per cooldown duration. A negative duration allows
// burst uses in total.
type Limiter struct {
	burst int
	key   KeyFunc
	now   func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLimiter creates a limiter with the given burst. Bursts below one are raised to one.
func NewLimiter(burst int, opts ...Option) *Limiter {
	if burst < 1 {
		burst = 1
	}
	o := applyOptions(opts)
	return &Limiter{
		burst:    burst,
		key:      o.key,
		now:      o.now,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *Limiter) limiter(key string, spec definition.Cooldown) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters[key]; ok {
		return lim
	}
	every := rate.Limit(0)
	if !spec.Forever() {
		every = rate.Every(spec.Duration)
	}
	lim := rate.NewLimiter(every, l.burst)
	l.limiters[key] = lim
	return lim
}

// Remaining implements Handler.
func (l *Limiter) Remaining(sender any, node *definition.Node, spec definition.Cooldown) time.Duration {
	if spec.Duration == 0 {
		return 0
	}
	id, ok := l.key(sender)
	if !ok {
		return 0
	}

	now := l.now()
	r := l.limiter(storeKey(id, node), spec).ReserveN(now, 1)
	if !r.OK() {
		return Forever
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return delay
	}
	return 0
}

// Sweep drops the buckets that have refilled completely by now and returns how many
// were removed. A dropped bucket is recreated full on next use, so Sweep only reclaims
// memory. Buckets for permanent cooldowns never refill and are kept.
func (l *Limiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, lim := range l.limiters {
		if lim.Limit() == 0 {
			continue
		}
		if lim.TokensAt(now) >= float64(lim.Burst()) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
