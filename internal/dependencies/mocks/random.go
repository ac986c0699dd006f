package mocks

import (
	"sync"

	"github.com/mcoot/memorygame/internal/dependencies/random"
)

// MockRandom replays queued Intn results, then returns 0.
// Every requested bound is recorded so tests can check a Fisher-Yates walk.
type MockRandom struct {
	mu      sync.Mutex
	results []int
	next    int
	bounds  []int
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, clamped into [0, n)
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bounds = append(r.bounds, n)
	if r.next >= len(r.results) || n <= 0 {
		return 0
	}
	v := r.results[r.next]
	r.next++
	if v >= n {
		v = n - 1
	}
	return v
}

// QueueIntn appends values to the result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, values...)
}

// Bounds returns every n passed to Intn so far
func (r *MockRandom) Bounds() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.bounds...)
}

// Reset clears queued results and recorded bounds
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results, r.next, r.bounds = nil, 0, nil
}
