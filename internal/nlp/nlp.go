// Package nlp holds the text handling shared by the dialogue matcher and the
// offline embedder: case folding, tokenizing, stop words and stemming.
package nlp

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
)

// Fold lower-cases text with Unicode case folding.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Tokenize folds s and splits it into words. Apostrophes are dropped so
// "didn't" becomes "didnt"; digits stay attached to letters.
func Tokenize(s string) []string {
	s = strings.NewReplacer("'", "", "’", "").Replace(Fold(s))

	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Stem reduces a folded word to its English stem.
func Stem(word string) string {
	if word == "" {
		return ""
	}
	return english.Stem(word, true)
}

// IsStopword reports whether a folded token carries no content.
func IsStopword(word string) bool {
	return stopwords[word]
}

// Terms returns the stems of the content words in s. Words in keep survive
// even when they are stop words.
func Terms(s string, keep map[string]bool) []string {
	var terms []string
	for _, tok := range Tokenize(s) {
		if IsStopword(tok) && !keep[tok] {
			continue
		}
		terms = append(terms, Stem(tok))
	}
	return terms
}

// StemSet returns the distinct stems of every token in s.
func StemSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, tok := range Tokenize(s) {
		set[Stem(tok)] = true
	}
	return set
}

var stopwords = toSet(`
a about above across after afterwards again against all almost alone along
already also although always am among amongst an and another any anyhow
anyone anything anyway anywhere are around as at be became because become
becomes becoming been before beforehand behind being below beside besides
between beyond both but by can cannot could did do does doing done down due
during each either else elsewhere enough even ever every everyone everything
everywhere except few for former formerly from further had has have he hence
her here hereafter hereby herein hereupon hers herself him himself his how
however i if in indeed into is it its itself just keep last latter latterly
least less made many may me meanwhile might mine more moreover most mostly
much must my myself namely neither never nevertheless next no nobody none
noone nor not nothing now nowhere of off often on once one only onto or
other others otherwise our ours ourselves out over own per perhaps please
put quite rather re really regarding same say seem seemed seeming seems
she should show side since so some somehow someone something sometime
sometimes somewhere still such take than that the their them themselves
then thence there thereafter thereby therefore therein thereupon these they
this those though through throughout thru thus to together too toward
towards under unless until up upon us used using various very via was we
well were what whatever when whence whenever where whereafter whereas
whereby wherein whereupon wherever whether which while whither who whoever
whole whom whose why will with within without would yet you your yours
yourself yourselves
`)

func toSet(words string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
