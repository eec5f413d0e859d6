// Package breaker implements a consecutive-failure circuit breaker guard
// shared across retry invocations.
package breaker

import (
	"sync"
	"time"
)

// State is the mutable breaker memory shared across retry invocations.
// The caller creates it, passes it by reference, and owns its lifetime.
//
// A State from NewState performs plain read-modify-write updates.
// Concurrent invocations sharing one such State may interleave updates and
// miscount failures; the counter stays approximately correct and the breaker
// still trips, but exact trip timing is not guaranteed. Use
// NewSynchronizedState when callers run concurrently.
type State struct {
	mu       *sync.Mutex
	failures int
	openedAt time.Time
}

// NewState creates a fresh closed state: zero consecutive failures, no open
// timestamp.
func NewState() *State {
	return &State{}
}

// NewSynchronizedState creates a fresh closed state whose accesses are
// mutex-guarded, for sharing across concurrent retry invocations.
func NewSynchronizedState() *State {
	return &State{mu: &sync.Mutex{}}
}

// Failures returns the consecutive failure count.
func (s *State) Failures() int {
	s.lock()
	defer s.unlock()
	return s.failures
}

// OpenedAt returns the timestamp of the most recent trip and whether the
// breaker has one. A present timestamp alone does not mean calls are blocked;
// the elapsed time against the cooldown is rechecked on every consultation.
func (s *State) OpenedAt() (time.Time, bool) {
	s.lock()
	defer s.unlock()
	return s.openedAt, !s.openedAt.IsZero()
}

func (s *State) lock() {
	if s.mu != nil {
		s.mu.Lock()
	}
}

func (s *State) unlock() {
	if s.mu != nil {
		s.mu.Unlock()
	}
}

// Breaker couples a trip policy (failure threshold, cooldown) with a shared
// State. It never blocks and performs no I/O; the current time is passed in
// by the caller.
type Breaker struct {
	failureThreshold int
	cooldown         time.Duration
	state            *State
}

// New creates a breaker over state. A threshold below 1 is clamped to 1;
// a nil state gets a fresh unsynchronized one.
func New(failureThreshold int, cooldown time.Duration, state *State) *Breaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if cooldown < 0 {
		cooldown = 0
	}
	if state == nil {
		state = NewState()
	}

	return &Breaker{
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		state:            state,
	}
}

// Check reports whether calls are currently blocked and, if so, how much of
// the cooldown remains. A closed breaker passes. An open breaker whose
// cooldown has elapsed also passes, without mutating state: that admits one
// full invocation as a recovery probe, and only that probe's success (via
// RecordSuccess) closes the breaker.
func (b *Breaker) Check(now time.Time) (remaining time.Duration, open bool) {
	b.state.lock()
	defer b.state.unlock()

	if b.state.openedAt.IsZero() {
		return 0, false
	}

	elapsed := now.Sub(b.state.openedAt)
	if elapsed < b.cooldown {
		return b.cooldown - elapsed, true
	}

	return 0, false
}

// RecordFailure increments the consecutive failure count. Every failure at or
// past the threshold restamps the open timestamp, so the cooldown window
// restarts on each recorded failure while open.
func (b *Breaker) RecordFailure(now time.Time) {
	b.state.lock()
	defer b.state.unlock()

	b.state.failures++
	if b.state.failures >= b.failureThreshold {
		b.state.openedAt = now
	}
}

// RecordSuccess resets the state to closed unconditionally: zero failures,
// no open timestamp.
func (b *Breaker) RecordSuccess() {
	b.state.lock()
	defer b.state.unlock()

	b.state.failures = 0
	b.state.openedAt = time.Time{}
}

// State returns the shared state this breaker operates on.
func (b *Breaker) State() *State {
	return b.state
}
