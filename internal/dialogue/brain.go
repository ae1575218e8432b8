package dialogue

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/tahcohcat/gofigure-interrogation/config"
	"github.com/tahcohcat/gofigure-interrogation/internal/embedding"
	"github.com/tahcohcat/gofigure-interrogation/internal/game"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
	"github.com/tahcohcat/gofigure-interrogation/internal/nlp"
)

const (
	DefaultThreshold    = 0.35
	DefaultKeywordBonus = 3.0
)

// Brain answers questions from a suspect's canned lines.
type Brain struct {
	embedder     embedding.Embedder
	threshold    float64
	keywordBonus float64
	penalties    config.PenaltyConfig

	mu  sync.Mutex
	rng *rand.Rand

	logger *logger.Log
}

var _ game.Interrogator = (*Brain)(nil)

func NewBrain(embedder embedding.Embedder, rng *rand.Rand) *Brain {
	return &Brain{
		embedder:     embedder,
		threshold:    DefaultThreshold,
		keywordBonus: DefaultKeywordBonus,
		penalties: config.PenaltyConfig{
			Question:       2,
			RepeatGreeting: 10,
			Accusation:     10,
			Insult:         15,
			Repetition:     5,
		},
		rng:    rng,
		logger: logger.New(),
	}
}

// NewBrainFromConfig applies matcher and penalty settings.
func NewBrainFromConfig(cfg *config.Config, embedder embedding.Embedder, rng *rand.Rand) *Brain {
	return NewBrain(embedder, rng).
		WithThreshold(cfg.Matcher.Threshold).
		WithKeywordBonus(cfg.Matcher.KeywordBonus).
		WithPenalties(cfg.Game.Penalties)
}

func (b *Brain) WithThreshold(t float64) *Brain {
	if t > 0 {
		b.threshold = t
	}
	return b
}

func (b *Brain) WithKeywordBonus(bonus float64) *Brain {
	if bonus >= 0 {
		b.keywordBonus = bonus
	}
	return b
}

func (b *Brain) WithPenalties(p config.PenaltyConfig) *Brain {
	b.penalties = p
	return b
}

// KeepWords are stop words the matcher treats as content.
func KeepWords() map[string]bool {
	return keep
}

// Parse classifies msg and answers as the suspect. The suspect's willingness
// and last match are updated.
func (b *Brain) Parse(ctx context.Context, msg string, suspect *game.Suspect) game.Reply {
	before := suspect.Willingness
	reply := b.parse(ctx, msg, suspect)
	reply.WillingnessDelta = suspect.Willingness - before
	return reply
}

func (b *Brain) parse(ctx context.Context, msg string, suspect *game.Suspect) game.Reply {
	if suspect.Silent() {
		return game.Reply{
			Kind: game.KindSilent,
			Text: fmt.Sprintf("(Silent) %s refuses to say another word.", suspect.Name),
		}
	}

	text := nlp.Fold(strings.TrimSpace(msg))
	tokens := nlp.Tokenize(text)
	joined := " " + strings.Join(tokens, " ") + " "

	if isInsult(tokens, joined) {
		suspect.DecreaseWillingness(b.penalties.Insult)
		return game.Reply{
			Kind: game.KindInsult,
			Text: "(Offended) " + b.pick(offendedPhrases),
		}
	}

	if hour, entry, ok := lookupTimeline(suspect.Timeline, hourCandidates(text)); ok {
		suspect.DecreaseWillingness(b.penalties.Question)
		return game.Reply{
			Kind: game.KindTimeline,
			Hour: hour,
			Text: b.build(entry, suspect),
		}
	}

	if len(tokens) > 0 && greetings[tokens[0]] {
		if suspect.LastMatch == game.GreetingMarker {
			suspect.DecreaseWillingness(b.penalties.RepeatGreeting)
			return game.Reply{
				Kind: game.KindGreetingRepeat,
				Text: "(Annoyed) We have established that. Ask your questions.",
			}
		}

		suspect.LastMatch = game.GreetingMarker
		return game.Reply{
			Kind: game.KindGreeting,
			Text: fmt.Sprintf("(%s) I am listening.", suspect.PersonalityLabel()),
		}
	}

	if isAccusation(tokens, joined) {
		suspect.DecreaseWillingness(b.penalties.Accusation)
		return game.Reply{
			Kind: game.KindAccusation,
			Text: "(Defensively) " + suspect.DefenseStatement,
		}
	}

	if best, score, ok := b.matchStory(ctx, text, suspect); ok {
		if best == suspect.LastMatch {
			suspect.DecreaseWillingness(b.penalties.Repetition)
			return game.Reply{
				Kind:  game.KindRepeat,
				Fact:  best,
				Score: score,
				Text:  "(Annoyed) " + b.pick(annoyedPhrases),
			}
		}

		suspect.LastMatch = best
		suspect.DecreaseWillingness(b.penalties.Question)
		return game.Reply{
			Kind:  game.KindFact,
			Fact:  best,
			Score: score,
			Text:  b.build(best, suspect),
		}
	}

	suspect.DecreaseWillingness(b.penalties.Question)
	return game.Reply{
		Kind: game.KindFallback,
		Text: fmt.Sprintf("(%s) %s", suspect.PersonalityLabel(), suspect.FallbackStatement),
	}
}

// matchStory scores each knowledge sentence by embedding similarity plus a
// bonus per search term it contains. The best sentence wins when it beats the
// threshold.
func (b *Brain) matchStory(ctx context.Context, text string, suspect *game.Suspect) (string, float64, bool) {
	if len(suspect.KnowledgeSentences) == 0 {
		return "", 0, false
	}

	terms := searchTerms(text)

	vecs := b.embedStory(ctx, text, suspect.KnowledgeSentences)

	best, bestScore := "", 0.0
	for i, sentence := range suspect.KnowledgeSentences {
		score := 0.0
		if vecs != nil {
			score = embedding.CosineSimilarity(vecs[0], vecs[i+1])
		}

		score += b.keywordBonus * float64(countMatches(terms, nlp.StemSet(sentence)))

		if score > bestScore {
			best, bestScore = sentence, score
		}
	}

	b.logger.Debug(fmt.Sprintf("Best match for %s scored %.2f: %q", suspect.Name, bestScore, best))

	if best == "" || bestScore <= b.threshold {
		return "", bestScore, false
	}
	return best, bestScore, true
}

// embedStory embeds the question followed by every sentence. It returns nil
// when any embedding fails so the whole story is scored on keywords alone.
func (b *Brain) embedStory(ctx context.Context, text string, sentences []string) [][]float32 {
	vecs := make([][]float32, 0, len(sentences)+1)
	for _, s := range append([]string{text}, sentences...) {
		vec, err := b.embedder.Embed(ctx, s)
		if err != nil {
			b.logger.WithError(err).Warn("Embedding failed, matching on keywords only")
			return nil
		}
		vecs = append(vecs, vec)
	}
	return vecs
}

func (b *Brain) build(text string, suspect *game.Suspect) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return buildResponse(b.rng, text, suspect)
}

func (b *Brain) pick(phrases []string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return pick(b.rng, phrases)
}

func isInsult(tokens []string, joined string) bool {
	for _, tok := range tokens {
		if insultWords[tok] {
			return true
		}
	}
	for _, phrase := range insultPhrases {
		if strings.Contains(joined, " "+phrase+" ") {
			return true
		}
	}
	return false
}

// isAccusation needs an accusing word aimed at the listener. A question
// about "who" is about somebody else.
func isAccusation(tokens []string, joined string) bool {
	addressed := false
	for _, tok := range tokens {
		if secondPerson[tok] {
			addressed = true
			break
		}
	}

	accused := false
	if addressed {
		for _, tok := range tokens {
			if accusationStems[nlp.Stem(tok)] || tok == "killer" {
				accused = true
				break
			}
		}
	}
	if strings.Contains(joined, " "+accusationPhrase+" ") {
		accused = true
	}

	for _, tok := range tokens {
		if tok == "who" {
			return false
		}
	}
	return accused
}

// searchTerms are the query's content stems plus their synonyms. Multi-word
// synonyms are kept as space-joined stems.
func searchTerms(text string) map[string]bool {
	terms := map[string]bool{}
	for _, stem := range nlp.Terms(text, keep) {
		terms[stem] = true
		for _, syn := range stemmedSynonyms[stem] {
			terms[syn] = true
		}
	}
	return terms
}

// countMatches counts terms found in the sentence. A multi-word term matches
// when all its stems are present.
func countMatches(terms, sentence map[string]bool) int {
	matches := 0
	for term := range terms {
		all := true
		for _, part := range strings.Fields(term) {
			if !sentence[part] {
				all = false
				break
			}
		}
		if all {
			matches++
		}
	}
	return matches
}

var accusationStems = func() map[string]bool {
	set := map[string]bool{}
	for _, w := range accusationWords {
		set[nlp.Stem(w)] = true
	}
	return set
}()

var stemmedSynonyms = func() map[string][]string {
	out := map[string][]string{}
	for word, syns := range synonyms {
		key := nlp.Stem(word)
		for _, syn := range syns {
			parts := strings.Fields(syn)
			for i, p := range parts {
				parts[i] = nlp.Stem(p)
			}
			out[key] = append(out[key], strings.Join(parts, " "))
		}
	}
	return out
}()
