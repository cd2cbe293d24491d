package shortlink

import (
	"fmt"
	"sync"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the 49-symbol code alphabet. Visually ambiguous characters
// (0, 1, I, O, l and friends) are excluded to avoid transcription errors.
const Alphabet = "23456789bcdfghjkmnpqrstvwxyzBCDFGHJKLMNPQRSTVWXYZ"

// Generator produces a random candidate code of the requested length.
type Generator interface {
	Generate(length int) (string, error)
}

// NanoidGenerator draws uniformly from Alphabet using go-nanoid. It caches
// one nanoid function per length, so repeated calls at the same length do
// not rebuild the generator.
type NanoidGenerator struct {
	mu    sync.Mutex
	byLen map[int]func() string
}

// NewNanoidGenerator creates a generator over the restricted alphabet.
func NewNanoidGenerator() *NanoidGenerator {
	return &NanoidGenerator{byLen: make(map[int]func() string)}
}

func (g *NanoidGenerator) Generate(length int) (string, error) {
	if length < 2 || length > 255 {
		return "", fmt.Errorf("code length %d out of range", length)
	}

	// The lock also covers the gen() call: nanoid functions keep an
	// internal entropy buffer that is not safe for concurrent use.
	g.mu.Lock()
	defer g.mu.Unlock()

	gen, ok := g.byLen[length]
	if !ok {
		var err error

		gen, err = nanoid.CustomASCII(Alphabet, length)
		if err != nil {
			return "", fmt.Errorf("build code generator: %w", err)
		}

		g.byLen[length] = gen
	}

	return gen(), nil
}

// Compile-time check.
var _ Generator = (*NanoidGenerator)(nil)
