package factory

import (
	"time"

	"github.com/mcoot/memorygame/internal/dependencies/mocks"
	"github.com/mcoot/memorygame/internal/dependencies/scheduler"
	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/services/auth"
	"github.com/mcoot/memorygame/internal/services/session"
	"github.com/mcoot/memorygame/internal/storage/memory"
	"github.com/mcoot/memorygame/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	Scheduler    *mocks.ManualScheduler
	MockShuffler *mocks.FixedShuffler
	MockIDs      *mocks.SequentialIDs
}

// NewTestApp creates an App configured for testing with mocked dependencies.
//
// Decks are dealt unshuffled unless MockShuffler is given decks, so with the
// default symbols card i matches card i+8. Time only passes through Scheduler.
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	sched := mocks.NewManualScheduler()
	shuffler := mocks.NewFixedShuffler()
	idGen := mocks.NewSequentialIDs("id")

	deps := dependencies{
		store:    memory.New(),
		clock:    mockClock,
		ids:      idGen,
		shuffler: shuffler,
		newTimer: func() scheduler.Timer { return sched.NewTimer() },
		delayer:  sched,
	}

	app := newWithDependencies(deps, auth.DefaultConfig(), session.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		Scheduler:    sched,
		MockShuffler: shuffler,
		MockIDs:      idGen,
	}
}

// Advance moves both the clock and the scheduler forward
func (t *TestApp) Advance(d time.Duration) {
	t.MockClock.Advance(d)
	t.Scheduler.Advance(d)
}

// PairOf returns the index in snap.Cards of the card matching cards[i], for an
// unshuffled deal
func PairOf(snap model.Snapshot, i int) int {
	half := len(snap.Cards) / 2
	if i < half {
		return i + half
	}
	return i - half
}
