package api

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// throttle keeps one limiter per endpoint path so a burst of UI-triggered
// calls to one screen cannot hammer the backend or starve another screen's
// requests. Waits respect the request context.
type throttle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

func newThrottle(rps float64, burst int) *throttle {
	return &throttle{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Limit(rps),
		burst:    burst,
	}
}

func (t *throttle) wait(ctx context.Context, path string) error {
	t.mu.Lock()
	l, ok := t.limiters[path]
	if !ok {
		l = rate.NewLimiter(t.r, t.burst)
		t.limiters[path] = l
	}
	t.mu.Unlock()
	return l.Wait(ctx)
}
