// Package schedule debounces fitting passes.
//
// Layout settles over several frames after a change (fonts, late images,
// a resized viewport), so a single trigger schedules one pass on the next
// frame and two trailing passes. A new trigger cancels whatever is still
// pending. Passes never overlap and are never interrupted.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Default delays after a trigger.
var DefaultDelays = []time.Duration{16 * time.Millisecond, 90 * time.Millisecond, 220 * time.Millisecond}

// Scheduler runs a pass function after each trigger.
type Scheduler struct {
	run    func(context.Context)
	ctx    context.Context
	delays []time.Duration

	mu      sync.Mutex
	timers  map[uint64]*time.Timer
	nextID  uint64
	stopped bool

	passMu sync.Mutex
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDelays replaces the delays scheduled per trigger.
func WithDelays(d ...time.Duration) Option {
	return func(s *Scheduler) { s.delays = d }
}

// WithContext sets the context handed to every pass. Once it is done no
// further passes start.
func WithContext(ctx context.Context) Option {
	return func(s *Scheduler) { s.ctx = ctx }
}

// New returns a scheduler that calls run for every scheduled pass.
func New(run func(context.Context), opts ...Option) *Scheduler {
	s := &Scheduler{
		run:    run,
		ctx:    context.Background(),
		delays: DefaultDelays,
		timers: make(map[uint64]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Trigger cancels pending passes and schedules a fresh set.
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.cancelLocked()
	for _, d := range s.delays {
		s.nextID++
		id := s.nextID
		s.timers[id] = time.AfterFunc(d, func() { s.fire(id) })
	}
}

// Flush cancels pending passes and runs one pass now.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	s.cancelLocked()
	s.mu.Unlock()
	s.pass()
}

// Stop cancels pending passes and ignores later triggers. A pass that is
// already running completes.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.cancelLocked()
}

// Pending reports how many passes are scheduled and not yet started.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) cancelLocked() {
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// fire runs the pass for timer id unless it was cancelled after it fired.
func (s *Scheduler) fire(id uint64) {
	s.mu.Lock()
	_, pending := s.timers[id]
	delete(s.timers, id)
	stopped := s.stopped
	s.mu.Unlock()
	if stopped || !pending {
		return
	}
	s.pass()
}

func (s *Scheduler) pass() {
	if s.ctx.Err() != nil {
		return
	}
	s.passMu.Lock()
	defer s.passMu.Unlock()
	s.run(s.ctx)
}
