// Package triage holds the trigger side of the downstream triage runner: the
// component that re-evaluates which work is assignable once a review-status
// label frees up.
package triage

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultSettleDelay is how long a notification waits before signalling the
// runner, so the label mutation that caused it is visible remotely.
const DefaultSettleDelay = 2 * time.Second

// Runner re-evaluates assignable work for one installation. RunSoon must be
// safe to call concurrently and is expected to debounce: several calls within
// a short window result in a single run.
type Runner interface {
	RunSoon()
}

// Registry maps GitHub App installation IDs to their triage runners. It is
// populated once at startup and only read afterwards.
type Registry struct {
	runners     map[int64]Runner
	SettleDelay time.Duration
}

// NewRegistry creates an empty registry with the default settle delay.
func NewRegistry() *Registry {
	return &Registry{
		runners:     map[int64]Runner{},
		SettleDelay: DefaultSettleDelay,
	}
}

// Register binds an installation to its runner. Not safe to call once the
// server is accepting deliveries.
func (r *Registry) Register(installationID int64, runner Runner) {
	r.runners[installationID] = runner
}

// Notify waits the settle delay and then signals the installation's runner.
// A missing runner is a wiring error and is returned to the caller.
func (r *Registry) Notify(installationID int64) error {
	runner, ok := r.runners[installationID]
	if !ok {
		return errors.Errorf("no triage runner registered for installation %d", installationID)
	}

	time.Sleep(r.SettleDelay)
	runner.RunSoon()

	return nil
}

// DebouncedRunner collapses RunSoon calls within a window into a single
// execution of run.
type DebouncedRunner struct {
	run    func()
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncedRunner creates a runner that executes run at most once per
// window, however often RunSoon fires.
func NewDebouncedRunner(window time.Duration, run func()) *DebouncedRunner {
	return &DebouncedRunner{
		run:    run,
		window: window,
	}
}

// RunSoon schedules a run after the window. Calls that arrive while a run is
// pending are absorbed into it.
func (d *DebouncedRunner) RunSoon() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		return
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()

		d.run()
	})
}
