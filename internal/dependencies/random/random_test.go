package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoRandomBounds(t *testing.T) {
	r := New()
	for range 200 {
		v := r.Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-3))
}

func TestSeededRandomRepeats(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for range 50 {
		assert.Equal(t, a.Intn(16), b.Intn(16))
	}
	assert.Equal(t, 0, a.Intn(0))
}

func TestFromSeed(t *testing.T) {
	assert.IsType(t, &CryptoRandom{}, FromSeed(0))
	assert.IsType(t, &SeededRandom{}, FromSeed(7))
}
