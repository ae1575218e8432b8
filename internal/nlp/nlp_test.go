package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"where", "were", "you", "at", "8", "30"}, Tokenize("Where were YOU at 8:30?"))
	assert.Equal(t, []string{"i", "didnt", "do", "it"}, Tokenize("I didn't do it!"))
	assert.Empty(t, Tokenize("  ?!  "))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "kill", Stem("killed"))
	assert.Equal(t, Stem("murder"), Stem("murdered"))
	assert.Equal(t, "", Stem(""))
}

func TestTerms(t *testing.T) {
	keep := map[string]bool{"where": true, "you": true}

	terms := Terms("Where were you during the storm?", keep)
	assert.Equal(t, []string{Stem("where"), Stem("you"), Stem("storm")}, terms)

	assert.Empty(t, Terms("was it the", nil))
}

func TestStemSet(t *testing.T) {
	set := StemSet("The letters were typed")
	assert.True(t, set[Stem("letter")])
	assert.True(t, set[Stem("typed")])
	assert.True(t, set["the"])
}
