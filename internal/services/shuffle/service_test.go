package shuffle

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/memorygame/internal/dependencies/mocks"
	"github.com/mcoot/memorygame/internal/dependencies/random"
	"github.com/mcoot/memorygame/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random)
}

func (s *ServiceSuite) TestShuffleSwapsFromLastIndexDown() {
	// i=3 picks 0, i=2 picks 2 (no-op), i=1 picks 0
	s.random.QueueIntn(0, 2, 0)

	result := s.service.Shuffle([]model.Symbol{"a", "b", "c", "d"})

	// [a b c d] -> swap 3,0 -> [d b c a] -> swap 2,2 -> [d b c a] -> swap 1,0 -> [b d c a]
	s.Equal([]model.Symbol{"b", "d", "c", "a"}, result)
}

func (s *ServiceSuite) TestShuffleWithSelfSwapsIsIdentity() {
	s.random.QueueIntn(3, 2, 1)

	result := s.service.Shuffle([]model.Symbol{"a", "b", "c", "d"})

	s.Equal([]model.Symbol{"a", "b", "c", "d"}, result)
}

func (s *ServiceSuite) TestShuffleDoesNotModifyInput() {
	input := []model.Symbol{"a", "b", "c"}
	s.random.QueueIntn(0, 0)

	_ = s.service.Shuffle(input)

	s.Equal([]model.Symbol{"a", "b", "c"}, input)
}

func (s *ServiceSuite) TestShuffleHandlesEmptyAndSingle() {
	s.Empty(s.service.Shuffle(nil))
	s.Equal([]model.Symbol{"a"}, s.service.Shuffle([]model.Symbol{"a"}))
}

func (s *ServiceSuite) TestShuffleBoundsRandomCalls() {
	_ = s.service.Shuffle([]model.Symbol{"a", "b", "c", "d", "e"})

	s.Equal([]int{5, 4, 3, 2}, s.random.Bounds())
}

func (s *ServiceSuite) TestSeededDeckIsReproducible() {
	symbols := model.DefaultSymbols()
	first := New(random.NewSeeded(99)).Deck(symbols)
	second := New(random.NewSeeded(99)).Deck(symbols)

	s.Equal(first, second)
}

func (s *ServiceSuite) TestDeckContainsEverySymbolTwice() {
	service := New(random.New())
	symbols := model.DefaultSymbols()

	for run := 0; run < 50; run++ {
		deck := service.Deck(symbols)
		s.Len(deck, 16)

		counts := make(map[model.Symbol]int)
		for _, sym := range deck {
			counts[sym]++
		}
		s.Len(counts, 8)
		for _, sym := range symbols {
			s.Equal(2, counts[sym], "symbol %s", sym)
		}
	}
}

func (s *ServiceSuite) TestDeckPositionsAreRoughlyUniform() {
	service := New(random.New())
	symbols := []model.Symbol{"a", "b", "c"}
	const runs = 6000

	// Count how often "a" lands in position 0; each position holds it 2/6 of the time
	first := 0
	for run := 0; run < runs; run++ {
		if service.Deck(symbols)[0] == "a" {
			first++
		}
	}
	s.InDelta(runs/3, first, runs/20)
}

func (s *ServiceSuite) TestPairs() {
	s.Equal([]model.Symbol{"a", "b", "a", "b"}, Pairs([]model.Symbol{"a", "b"}))
}
