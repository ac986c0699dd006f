package mocks

import "github.com/mcoot/memorygame/internal/model"

// FixedShuffler is a mock Shuffler that deals a predetermined order
type FixedShuffler struct {
	// Decks is a queue of orders; the last one repeats once the queue is drained
	Decks [][]model.Symbol
	calls int
}

// NewFixedShuffler creates a FixedShuffler dealing the given decks in turn
func NewFixedShuffler(decks ...[]model.Symbol) *FixedShuffler {
	return &FixedShuffler{Decks: decks}
}

// Shuffle ignores the input order and returns the next queued deck.
// With nothing queued the input is returned unchanged.
func (s *FixedShuffler) Shuffle(seq []model.Symbol) []model.Symbol {
	s.calls++
	if len(s.Decks) == 0 {
		return append([]model.Symbol(nil), seq...)
	}
	idx := s.calls - 1
	if idx >= len(s.Decks) {
		idx = len(s.Decks) - 1
	}
	return append([]model.Symbol(nil), s.Decks[idx]...)
}

// Deck doubles symbols and deals them through Shuffle
func (s *FixedShuffler) Deck(symbols []model.Symbol) []model.Symbol {
	pairs := make([]model.Symbol, 0, 2*len(symbols))
	pairs = append(pairs, symbols...)
	return s.Shuffle(append(pairs, symbols...))
}

// Calls returns how many decks have been dealt
func (s *FixedShuffler) Calls() int {
	return s.calls
}
