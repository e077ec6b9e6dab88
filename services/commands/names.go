package commands

import (
	"log"
	"math/rand"
	"strings"
	"sync"

	"github.com/lucasepe/codename"
)

// nameGenerator produces random two-word names for superhero and bandname.
// codename's rng is not safe for concurrent use, so calls are serialized.
type nameGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newNameGenerator() *nameGenerator {
	rng, err := codename.DefaultRNG()
	if err != nil {
		log.Printf("⚠️ Failed to seed name generator, using fixed names: %v", err)
		return &nameGenerator{}
	}
	return &nameGenerator{rng: rng}
}

// Next returns a title-cased name like "Absolute Karnak", or fallback when no rng is available
func (g *nameGenerator) Next(fallback string) string {
	if g.rng == nil {
		return fallback
	}

	g.mu.Lock()
	name := codename.Generate(g.rng, 0)
	g.mu.Unlock()

	words := strings.Split(name, "-")
	for i, word := range words {
		words[i] = capitalize(word)
	}
	joined := strings.TrimSpace(strings.Join(words, " "))
	if joined == "" {
		return fallback
	}
	return joined
}
