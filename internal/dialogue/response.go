package dialogue

import (
	"math/rand"
	"strings"

	"github.com/tahcohcat/gofigure-interrogation/internal/game"
)

// buildResponse dresses a canned line with the suspect's verbal tics. Each of
// prefix and suffix is added with even odds.
func buildResponse(rng *rand.Rand, text string, suspect *game.Suspect) string {
	prefix := ""
	if len(suspect.Prefixes) > 0 && rng.Float64() > 0.5 {
		prefix = suspect.Prefixes[rng.Intn(len(suspect.Prefixes))] + " "
	}

	suffix := ""
	if len(suspect.Suffixes) > 0 && rng.Float64() > 0.5 {
		suffix = " " + suspect.Suffixes[rng.Intn(len(suspect.Suffixes))]
	}

	if text != "" && suffix != "" {
		text = strings.TrimSuffix(text, ".")
	}

	return prefix + text + suffix
}

func pick(rng *rand.Rand, phrases []string) string {
	return phrases[rng.Intn(len(phrases))]
}
