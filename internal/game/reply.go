package game

import "context"

// Kind classifies how the matcher answered.
type Kind string

const (
	KindSilent         Kind = "silent"
	KindInsult         Kind = "insult"
	KindTimeline       Kind = "timeline"
	KindGreeting       Kind = "greeting"
	KindGreetingRepeat Kind = "greeting_repeat"
	KindAccusation     Kind = "accusation"
	KindFact           Kind = "fact"
	KindRepeat         Kind = "repeat"
	KindFallback       Kind = "fallback"
)

// Reply is a suspect's answer to one utterance.
type Reply struct {
	Text             string  `json:"text"`
	Kind             Kind    `json:"kind"`
	Fact             string  `json:"fact,omitempty"`
	Hour             string  `json:"hour,omitempty"`
	Score            float64 `json:"score,omitempty"`
	WillingnessDelta int     `json:"willingness_delta"`
}

// Hostile reports whether the reply was provoked by an insult or accusation.
func (r Reply) Hostile() bool {
	return r.Kind == KindInsult || r.Kind == KindAccusation
}

// Revealing reports whether the reply surfaced a knowledge line or timeline entry.
func (r Reply) Revealing() bool {
	return r.Kind == KindFact || r.Kind == KindTimeline
}

// Interrogator turns player input into a suspect's reply. Implementations
// update the suspect's willingness and last match.
type Interrogator interface {
	Parse(ctx context.Context, msg string, suspect *Suspect) Reply
}
