package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerTimerCountsDown(t *testing.T) {
	timer := &TickerTimer{period: 5 * time.Millisecond}

	ticks := make(chan int, 10)
	timer.Start(3, func(remaining int) { ticks <- remaining })

	var got []int
	for len(got) < 3 {
		select {
		case r := <-ticks:
			got = append(got, r)
		case <-time.After(time.Second):
			t.Fatalf("timed out after ticks %v", got)
		}
	}
	assert.Equal(t, []int{2, 1, 0}, got)

	// Nothing after zero
	select {
	case r := <-ticks:
		t.Fatalf("unexpected tick %d", r)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestTickerTimerStop(t *testing.T) {
	timer := &TickerTimer{period: 5 * time.Millisecond}

	var mu sync.Mutex
	count := 0
	timer.Start(100, func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	time.Sleep(20 * time.Millisecond)
	timer.Stop()

	mu.Lock()
	stoppedAt := count
	mu.Unlock()

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, count, stoppedAt+1, "at most one in-flight tick after Stop")

	// Stopping twice is fine
	timer.Stop()
}

func TestTickerTimerRestartReplacesCountdown(t *testing.T) {
	timer := &TickerTimer{period: 5 * time.Millisecond}

	first := make(chan int, 100)
	timer.Start(100, func(r int) { first <- r })
	time.Sleep(12 * time.Millisecond)

	second := make(chan int, 10)
	timer.Start(2, func(r int) { second <- r })

	for _, want := range []int{1, 0} {
		select {
		case r := <-second:
			assert.Equal(t, want, r)
		case <-time.After(time.Second):
			t.Fatal("second countdown did not tick")
		}
	}

	drained := len(first)
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, len(first), drained+1)
	timer.Stop()
}

func TestTickerTimerZeroSeconds(t *testing.T) {
	timer := NewTimer()

	called := make(chan int, 1)
	timer.Start(0, func(r int) { called <- r })

	select {
	case r := <-called:
		t.Fatalf("unexpected tick %d", r)
	case <-time.After(20 * time.Millisecond):
	}
	timer.Stop()
}

func TestAfterFuncDelayer(t *testing.T) {
	d := NewDelayer()

	fired := make(chan struct{})
	d.After(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
}

func TestAfterFuncDelayerCancel(t *testing.T) {
	d := NewDelayer()

	fired := make(chan struct{}, 1)
	h := d.After(20*time.Millisecond, func() { fired <- struct{}{} })
	require.NotNil(t, h)
	h.Cancel()

	select {
	case <-fired:
		t.Fatal("cancelled callback ran")
	case <-time.After(50 * time.Millisecond):
	}
}
