package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/memorygame/internal/dependencies/scheduler"
)

// ManualScheduler is a virtual-time implementation of Timer and Delayer for testing.
// Nothing fires until Advance is called; callbacks then run synchronously in time order.
type ManualScheduler struct {
	mu      sync.Mutex
	elapsed time.Duration
	seq     int
	events  []*scheduledEvent
}

type scheduledEvent struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// Ensure ManualScheduler implements Delayer
var _ scheduler.Delayer = (*ManualScheduler)(nil)

// NewManualScheduler creates a ManualScheduler at virtual time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After schedules fn to run once d of virtual time has elapsed
func (s *ManualScheduler) After(d time.Duration, fn func()) scheduler.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleLocked(d, fn)
}

func (s *ManualScheduler) scheduleLocked(d time.Duration, fn func()) *manualHandle {
	s.seq++
	ev := &scheduledEvent{at: s.elapsed + d, seq: s.seq, fn: fn}
	s.events = append(s.events, ev)
	return &manualHandle{scheduler: s, event: ev}
}

// Advance moves virtual time forward by d, running every callback that falls due
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.elapsed + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		ev := s.popDueLocked(target)
		if ev == nil {
			s.elapsed = target
			s.mu.Unlock()
			return
		}
		s.elapsed = ev.at
		s.mu.Unlock()

		// Run outside the lock so callbacks can schedule or cancel
		ev.fn()
	}
}

// popDueLocked removes and returns the earliest live event at or before target
func (s *ManualScheduler) popDueLocked(target time.Duration) *scheduledEvent {
	idx := -1
	for i, ev := range s.events {
		if ev.cancelled || ev.at > target {
			continue
		}
		if idx == -1 || ev.at < s.events[idx].at || (ev.at == s.events[idx].at && ev.seq < s.events[idx].seq) {
			idx = i
		}
	}
	if idx == -1 {
		s.compactLocked()
		return nil
	}
	ev := s.events[idx]
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	return ev
}

func (s *ManualScheduler) compactLocked() {
	live := s.events[:0]
	for _, ev := range s.events {
		if !ev.cancelled {
			live = append(live, ev)
		}
	}
	s.events = live
}

// Elapsed returns the virtual time that has passed
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Pending returns the number of callbacks still scheduled
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, ev := range s.events {
		if !ev.cancelled {
			count++
		}
	}
	return count
}

// NewTimer creates a Timer driven by this scheduler's virtual clock
func (s *ManualScheduler) NewTimer() *ManualTimer {
	return &ManualTimer{scheduler: s}
}

type manualHandle struct {
	scheduler *ManualScheduler
	event     *scheduledEvent
}

func (h *manualHandle) Cancel() {
	h.scheduler.mu.Lock()
	defer h.scheduler.mu.Unlock()
	h.event.cancelled = true
}

// ManualTimer is a Timer whose seconds only pass when its scheduler advances
type ManualTimer struct {
	scheduler *ManualScheduler

	// Guarded by scheduler.mu
	run    *timerRun
	starts int
	ticks  int
}

type timerRun struct {
	remaining int
	onTick    func(remaining int)
	next      *manualHandle
	stopped   bool
}

// Ensure ManualTimer implements Timer
var _ scheduler.Timer = (*ManualTimer)(nil)

// Start begins a countdown, replacing any previous one
func (t *ManualTimer) Start(seconds int, onTick func(remaining int)) {
	s := t.scheduler
	s.mu.Lock()
	defer s.mu.Unlock()

	t.stopLocked()
	t.starts++
	run := &timerRun{remaining: seconds, onTick: onTick}
	t.run = run
	if seconds > 0 {
		t.scheduleTickLocked(run)
	}
}

func (t *ManualTimer) scheduleTickLocked(run *timerRun) {
	run.next = t.scheduler.scheduleLocked(time.Second, func() {
		s := t.scheduler
		s.mu.Lock()
		if run.stopped {
			s.mu.Unlock()
			return
		}
		run.remaining--
		remaining := run.remaining
		t.ticks++
		if remaining > 0 {
			t.scheduleTickLocked(run)
		} else {
			run.stopped = true
		}
		s.mu.Unlock()

		run.onTick(remaining)
	})
}

// Stop halts the countdown
func (t *ManualTimer) Stop() {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	t.stopLocked()
}

func (t *ManualTimer) stopLocked() {
	if t.run == nil {
		return
	}
	t.run.stopped = true
	if t.run.next != nil {
		t.run.next.event.cancelled = true
	}
	t.run = nil
}

// Running returns true while a countdown is active
func (t *ManualTimer) Running() bool {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	return t.run != nil && !t.run.stopped
}

// Starts returns how many times Start has been called
func (t *ManualTimer) Starts() int {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	return t.starts
}

// Ticks returns how many ticks have been delivered across all countdowns
func (t *ManualTimer) Ticks() int {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	return t.ticks
}
