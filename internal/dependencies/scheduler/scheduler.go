package scheduler

import (
	"sync"
	"time"
)

// Timer is a recurring one-second countdown that can be mocked for testing
type Timer interface {
	// Start begins a countdown of the given length, replacing any running one.
	// onTick receives the seconds left after each elapsed second, ending at 0.
	Start(seconds int, onTick func(remaining int))

	// Stop halts the countdown. Ticks already in flight may still arrive.
	Stop()
}

// Handle refers to a pending delayed callback
type Handle interface {
	// Cancel prevents the callback from running if it has not started yet
	Cancel()
}

// Delayer schedules one-shot callbacks that can be mocked for testing
type Delayer interface {
	After(d time.Duration, fn func()) Handle
}

// TickerTimer implements Timer with a time.Ticker driven goroutine
type TickerTimer struct {
	mu     sync.Mutex
	stop   chan struct{}
	period time.Duration
}

// NewTimer creates a TickerTimer ticking once per second
func NewTimer() *TickerTimer {
	return &TickerTimer{period: time.Second}
}

// Start begins a new countdown, stopping the previous one
func (t *TickerTimer) Start(seconds int, onTick func(remaining int)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop

	go t.run(seconds, onTick, stop)
}

// Stop halts the running countdown, if any
func (t *TickerTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *TickerTimer) run(seconds int, onTick func(remaining int), stop <-chan struct{}) {
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for remaining := seconds - 1; remaining >= 0; remaining-- {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		// Stop may have raced the tick
		select {
		case <-stop:
			return
		default:
		}

		onTick(remaining)
	}
}

// AfterFuncDelayer implements Delayer with time.AfterFunc
type AfterFuncDelayer struct{}

// NewDelayer creates a new AfterFuncDelayer
func NewDelayer() *AfterFuncDelayer {
	return &AfterFuncDelayer{}
}

// After runs fn on its own goroutine once d has elapsed
func (d *AfterFuncDelayer) After(delay time.Duration, fn func()) Handle {
	return &timerHandle{timer: time.AfterFunc(delay, fn)}
}

type timerHandle struct {
	timer *time.Timer
}

func (h *timerHandle) Cancel() {
	h.timer.Stop()
}
