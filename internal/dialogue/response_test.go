package dialogue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tahcohcat/gofigure-interrogation/internal/game"
)

func TestBuildResponseVariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := &game.Suspect{Prefixes: []string{"Well,"}, Suffixes: []string{"sir."}}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[buildResponse(rng, "I was home.", s)] = true
	}

	assert.Equal(t, map[string]bool{
		"I was home.":           true,
		"Well, I was home.":     true,
		"I was home sir.":       true,
		"Well, I was home sir.": true,
	}, seen)
}

func TestBuildResponseWithoutTics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, "Plain.", buildResponse(rng, "Plain.", &game.Suspect{}))
}
