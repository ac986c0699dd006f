package shuffle

import (
	"github.com/mcoot/memorygame/internal/dependencies/random"
	"github.com/mcoot/memorygame/internal/model"
)

// Service produces uniformly random permutations of symbol sequences
type Service struct {
	random random.Random
}

// New creates a new shuffle Service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Shuffle returns a Fisher-Yates permutation of seq, leaving seq untouched
func (s *Service) Shuffle(seq []model.Symbol) []model.Symbol {
	out := make([]model.Symbol, len(seq))
	copy(out, seq)

	for i := len(out) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deck returns a shuffled deck holding every symbol exactly twice
func (s *Service) Deck(symbols []model.Symbol) []model.Symbol {
	return s.Shuffle(Pairs(symbols))
}

// Pairs concatenates symbols with itself
func Pairs(symbols []model.Symbol) []model.Symbol {
	pairs := make([]model.Symbol, 0, 2*len(symbols))
	pairs = append(pairs, symbols...)
	return append(pairs, symbols...)
}
