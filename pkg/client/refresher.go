package client

import (
	"sync"
	"time"
)

// defaultLeeway is how long before access-token expiry the silent refresh
// fires.
const defaultLeeway = 2 * time.Minute

// refresher owns the one-shot timer that drives silent token refresh. At
// most one timer is armed at a time; scheduling replaces any pending one.
type refresher struct {
	leeway time.Duration
	run    func()

	mu    sync.Mutex
	timer *time.Timer
}

func newRefresher(leeway time.Duration, run func()) *refresher {
	if leeway <= 0 {
		leeway = defaultLeeway
	}
	return &refresher{leeway: leeway, run: run}
}

// schedule arms the timer to fire leeway before the token expires. A token
// that is already inside the leeway window refreshes immediately.
func (r *refresher) schedule(expiresIn time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}

	delay := expiresIn - r.leeway
	if delay < 0 {
		delay = 0
	}
	r.timer = time.AfterFunc(delay, r.run)
}

// cancel stops any pending refresh.
func (r *refresher) cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
