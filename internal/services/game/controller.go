package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/memorygame/internal/dependencies/clock"
	"github.com/mcoot/memorygame/internal/dependencies/ids"
	"github.com/mcoot/memorygame/internal/dependencies/scheduler"
	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/render"
)

// Shuffler deals the cards of a game
type Shuffler interface {
	Shuffle(seq []model.Symbol) []model.Symbol
	// Deck returns every symbol twice in random order
	Deck(symbols []model.Symbol) []model.Symbol
}

// Config holds the rules of a game
type Config struct {
	Symbols       []model.Symbol // Each appears twice on the board
	Duration      time.Duration  // Rounded down to whole seconds
	MismatchDelay time.Duration  // How long a mismatched pair stays face up
	OverlayDelay  time.Duration  // Pause between the outcome image and the overlay
	VictoryAsset  string
	DefeatAsset   string

	// OnChange is called with a fresh snapshot after every state change,
	// outside the controller lock
	OnChange func(model.Snapshot)
}

// DefaultConfig returns the standard eight-pair, sixty-second game
func DefaultConfig() Config {
	return Config{
		Symbols:       model.DefaultSymbols(),
		Duration:      60 * time.Second,
		MismatchDelay: 1200 * time.Millisecond,
		OverlayDelay:  500 * time.Millisecond,
		VictoryAsset:  model.VictoryAsset,
		DefeatAsset:   model.DefeatAsset,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if len(c.Symbols) == 0 {
		c.Symbols = def.Symbols
	}
	if c.Duration < time.Second {
		c.Duration = def.Duration
	}
	if c.MismatchDelay <= 0 {
		c.MismatchDelay = def.MismatchDelay
	}
	if c.OverlayDelay <= 0 {
		c.OverlayDelay = def.OverlayDelay
	}
	if c.VictoryAsset == "" {
		c.VictoryAsset = def.VictoryAsset
	}
	if c.DefeatAsset == "" {
		c.DefeatAsset = def.DefeatAsset
	}
	return c
}

// Controller is the state machine of a single game session.
//
// Every entry point (clicks, timer ticks, delayed callbacks, start and restart)
// holds mu for its whole run, so they never interleave. Callbacks scheduled by
// one game capture its generation and are dropped once a new game has started.
type Controller struct {
	id       model.GameID
	config   Config
	renderer render.Renderer
	shuffler Shuffler
	timer    scheduler.Timer
	delayer  scheduler.Delayer
	ids      ids.Generator
	clock    clock.Clock
	logger   *slog.Logger

	mu         sync.Mutex
	cards      []model.Card
	symbols    map[model.CardID]model.Symbol
	matched    map[model.CardID]bool
	selection  []model.CardID
	state      model.GameState
	generation uint64
	pending    map[uint64]scheduler.Handle
	nextDelay  uint64
	version    uint64
	updatedAt  time.Time
	closed     bool
}

// NewController creates a Controller in the idle phase; call StartGame to deal
func NewController(
	id model.GameID,
	config Config,
	renderer render.Renderer,
	shuffler Shuffler,
	timer scheduler.Timer,
	delayer scheduler.Delayer,
	ids ids.Generator,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	config = config.withDefaults()
	return &Controller{
		id:       id,
		config:   config,
		renderer: renderer,
		shuffler: shuffler,
		timer:    timer,
		delayer:  delayer,
		ids:      ids,
		clock:    clock,
		logger:   logger.With(slog.String("component", "game"), slog.String("game_id", string(id))),
		symbols:  make(map[model.CardID]model.Symbol),
		matched:  make(map[model.CardID]bool),
		pending:  make(map[uint64]scheduler.Handle),
		state: model.GameState{
			TotalPairs: len(config.Symbols),
			Phase:      model.PhaseIdle,
		},
		updatedAt: clock.Now(),
	}
}

// ID returns the game's identifier
func (c *Controller) ID() model.GameID {
	return c.id
}

// StartGame deals a fresh shuffled board and starts the countdown.
// Anything left over from a previous game is cancelled first.
func (c *Controller) StartGame() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.startLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Restart hides the outcome overlay and starts a new game
func (c *Controller) Restart() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.logger.Info("game restarted",
		slog.String("phase", string(c.state.Phase)),
		slog.Int("matched_pairs", c.state.MatchedPairs),
		slog.Int("time_remaining", c.state.TimeRemaining),
	)
	c.startLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) startLocked() {
	c.resetSchedulesLocked()

	seconds := int(c.config.Duration / time.Second)
	deck := c.shuffler.Deck(c.config.Symbols)

	c.cards = make([]model.Card, len(deck))
	c.symbols = make(map[model.CardID]model.Symbol, len(deck))
	for i, sym := range deck {
		card := model.Card{ID: model.CardID(c.ids.NewID()), Symbol: sym}
		c.cards[i] = card
		c.symbols[card.ID] = sym
	}
	c.matched = make(map[model.CardID]bool, len(deck))
	c.selection = nil
	c.state = model.GameState{
		MatchedPairs:  0,
		TotalPairs:    len(c.config.Symbols),
		BoardLocked:   false,
		TimeRemaining: seconds,
		Phase:         model.PhasePlaying,
	}

	c.renderer.HideOverlay()
	c.renderer.RenderBoard(c.cards)
	c.renderer.OnCardClick(c.OnCardClicked)
	c.renderer.ShowTime(seconds)

	gen := c.generation
	c.timer.Start(seconds, func(remaining int) {
		c.onTimerTick(gen, remaining)
	})
	c.touchLocked()

	c.logger.Info("game started",
		slog.Int("cards", len(c.cards)),
		slog.Int("seconds", seconds),
	)
}

// resetSchedulesLocked moves to a new generation, stopping the countdown and
// every pending delay of the old one
func (c *Controller) resetSchedulesLocked() {
	c.generation++
	c.timer.Stop()
	for key, h := range c.pending {
		h.Cancel()
		delete(c.pending, key)
	}
}

// OnCardClicked handles a click on a card. Clicks are ignored while the board
// is locked, when the game is not being played, on the card already waiting for
// its partner and on matched or unknown cards.
func (c *Controller) OnCardClicked(id model.CardID) {
	c.mu.Lock()
	changed := c.clickLocked(id)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.notify(snap)
	}
}

func (c *Controller) clickLocked(id model.CardID) bool {
	if c.closed || c.state.Phase != model.PhasePlaying || c.state.BoardLocked {
		return false
	}
	if _, ok := c.symbols[id]; !ok {
		return false
	}
	if c.matched[id] {
		return false
	}
	if len(c.selection) == 1 && c.selection[0] == id {
		return false
	}

	c.renderer.Flip(id)
	c.selection = append(c.selection, id)

	if len(c.selection) == 2 {
		c.state.BoardLocked = true
		c.evaluateMatchLocked()
	}
	c.touchLocked()
	return true
}

func (c *Controller) evaluateMatchLocked() {
	first, second := c.selection[0], c.selection[1]

	if c.symbols[first] == c.symbols[second] {
		c.renderer.MarkMatched(first)
		c.renderer.MarkMatched(second)
		c.matched[first] = true
		c.matched[second] = true
		c.state.MatchedPairs++
		c.selection = nil
		c.state.BoardLocked = false

		c.logger.Debug("pair matched",
			slog.String("symbol", string(c.symbols[first])),
			slog.Int("matched_pairs", c.state.MatchedPairs),
		)

		if c.state.MatchedPairs == c.state.TotalPairs {
			c.winLocked()
		}
		return
	}

	c.logger.Debug("pair mismatched",
		slog.String("first", string(first)),
		slog.String("second", string(second)),
	)

	c.scheduleLocked(c.config.MismatchDelay, func() {
		c.renderer.Unflip(first)
		c.renderer.Unflip(second)
		c.selection = nil
		// A loss during the reveal keeps the board locked
		if c.state.Phase == model.PhasePlaying {
			c.state.BoardLocked = false
		}
	})
}

func (c *Controller) onTimerTick(gen uint64, remaining int) {
	c.mu.Lock()
	if gen != c.generation || c.state.Phase != model.PhasePlaying {
		c.mu.Unlock()
		return
	}

	c.state.TimeRemaining = remaining
	c.renderer.ShowTime(remaining)
	if remaining <= 0 {
		c.loseLocked()
	}
	c.touchLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) winLocked() {
	c.state.Phase = model.PhaseWon
	c.timer.Stop()
	c.renderer.ShowOverlayImage(c.config.VictoryAsset)
	c.scheduleLocked(c.config.OverlayDelay, c.renderer.ShowOverlay)

	c.logger.Info("game won", slog.Int("time_remaining", c.state.TimeRemaining))
}

func (c *Controller) loseLocked() {
	c.state.Phase = model.PhaseLost
	c.state.BoardLocked = true
	c.timer.Stop()
	c.renderer.ShowOverlayImage(c.config.DefeatAsset)
	c.scheduleLocked(c.config.OverlayDelay, c.renderer.ShowOverlay)

	c.logger.Info("game lost", slog.Int("matched_pairs", c.state.MatchedPairs))
}

// scheduleLocked runs fn under the lock after d, unless the game has moved on
func (c *Controller) scheduleLocked(d time.Duration, fn func()) {
	gen := c.generation
	c.nextDelay++
	key := c.nextDelay

	c.pending[key] = c.delayer.After(d, func() {
		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			return
		}
		delete(c.pending, key)
		fn()
		c.touchLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.notify(snap)
	})
}

// Snapshot returns a consistent view of the game
func (c *Controller) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() model.Snapshot {
	selected := make(map[model.CardID]bool, len(c.selection))
	for _, id := range c.selection {
		selected[id] = true
	}

	views := make([]model.CardView, len(c.cards))
	for i, card := range c.cards {
		view := model.CardView{ID: card.ID, Face: model.FaceDown}
		switch {
		case c.matched[card.ID]:
			view.Face = model.FaceMatched
			view.Symbol = card.Symbol
		case selected[card.ID]:
			view.Face = model.FaceUp
			view.Symbol = card.Symbol
		}
		views[i] = view
	}

	return model.Snapshot{
		GameID:    c.id,
		State:     c.state,
		Status:    c.statusLocked(),
		Cards:     views,
		Selection: append([]model.CardID(nil), c.selection...),
		Version:   c.version,
		UpdatedAt: c.updatedAt,
	}
}

func (c *Controller) statusLocked() model.Status {
	switch c.state.Phase {
	case model.PhaseIdle:
		return model.StatusIdle
	case model.PhaseWon:
		return model.StatusWon
	case model.PhaseLost:
		return model.StatusLost
	}
	if c.state.BoardLocked {
		return model.StatusLocked
	}
	if len(c.selection) == 1 {
		return model.StatusAwaitingSecondFlip
	}
	return model.StatusAwaitingFirstFlip
}

// Close stops the countdown and cancels pending callbacks. A closed controller
// ignores every further call except Snapshot.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.resetSchedulesLocked()
	c.logger.Debug("game closed")
}

func (c *Controller) touchLocked() {
	c.version++
	c.updatedAt = c.clock.Now()
}

func (c *Controller) notify(snap model.Snapshot) {
	if c.config.OnChange != nil {
		c.config.OnChange(snap)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	ID() model.GameID
	StartGame()
	OnCardClicked(id model.CardID)
	Restart()
	Snapshot() model.Snapshot
	Close()
}

var _ ControllerInterface = (*Controller)(nil)
