package game

import (
	"strings"
)

const (
	MinWillingness = 0
	MaxWillingness = 100

	// GreetingMarker is stored as LastMatch after a greeting.
	GreetingMarker = "greeting"

	defaultDefense  = "I didn't do it!"
	defaultFallback = "I don't understand."
)

// Suspect in the game. The JSON fields are static; Willingness and LastMatch
// change during an interrogation.
type Suspect struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Bio                string            `json:"bio"`
	PersonalityStyle   string            `json:"personality_style"`
	IsGuilty           bool              `json:"is_guilty"`
	KnowledgeSentences []string          `json:"knowledge_sentences"`
	Timeline           map[string]string `json:"timeline"`
	Prefixes           []string          `json:"prefixes,omitempty"`
	Suffixes           []string          `json:"suffixes,omitempty"`
	DefenseStatement   string            `json:"defense_statement"`
	FallbackStatement  string            `json:"fallback_statement"`
	Voice              string            `json:"voice,omitempty"`

	Willingness int    `json:"-"`
	LastMatch   string `json:"-"`
}

// DecreaseWillingness lowers willingness by n, never below zero.
func (s *Suspect) DecreaseWillingness(n int) {
	s.Willingness = clamp(s.Willingness-n, MinWillingness, MaxWillingness)
}

func (s *Suspect) IncreaseWillingness(n int) {
	s.Willingness = clamp(s.Willingness+n, MinWillingness, MaxWillingness)
}

// Silent reports whether the suspect has stopped talking.
func (s *Suspect) Silent() bool {
	return s.Willingness <= MinWillingness
}

func (s *Suspect) PersonalityLabel() string {
	return strings.ReplaceAll(s.PersonalityStyle, "_", " ")
}

// Reset restores the mutable state for a fresh interrogation.
func (s *Suspect) Reset(willingness int) {
	s.Willingness = clamp(willingness, MinWillingness, MaxWillingness)
	s.LastMatch = ""
}

// normalize cleans knowledge sentences so every fact ends with punctuation
// and fills in default statements.
func (s *Suspect) normalize() {
	clean := make([]string, 0, len(s.KnowledgeSentences))
	for _, sentence := range s.KnowledgeSentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if !strings.HasSuffix(sentence, ".") && !strings.HasSuffix(sentence, "!") && !strings.HasSuffix(sentence, "?") {
			sentence += "."
		}
		clean = append(clean, sentence)
	}
	s.KnowledgeSentences = clean

	if strings.TrimSpace(s.DefenseStatement) == "" {
		s.DefenseStatement = defaultDefense
	}
	if strings.TrimSpace(s.FallbackStatement) == "" {
		s.FallbackStatement = defaultFallback
	}
	if s.Timeline == nil {
		s.Timeline = map[string]string{}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
