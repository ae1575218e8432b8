package game

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted answers with a fixed reply per question.
type scripted map[string]Reply

func (s scripted) Parse(_ context.Context, msg string, suspect *Suspect) Reply {
	r, ok := s[msg]
	if !ok {
		r = Reply{Kind: KindFallback, Text: suspect.FallbackStatement, WillingnessDelta: -2}
	}
	suspect.IncreaseWillingness(r.WillingnessDelta)
	return r
}

var answers = scripted{
	"billiards?": {Kind: KindFact, Fact: "I spent most of the evening in the billiard room practising my shots.", WillingnessDelta: -2},
	"at 8?":      {Kind: KindTimeline, Hour: "20:00", WillingnessDelta: -2},
	"liar":       {Kind: KindInsult, WillingnessDelta: -15},
	"again":      {Kind: KindRepeat, WillingnessDelta: -5},
}

func newTestSession(t *testing.T, rules Rules) *Session {
	t.Helper()
	sc, err := DefaultScenario()
	require.NoError(t, err)
	return NewSession(sc, answers, rules)
}

func TestAskScoresFirstRevealOnly(t *testing.T) {
	s := newTestSession(t, DefaultRules())
	ctx := context.Background()

	_, err := s.Ask(ctx, "julian", "billiards?")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Score)

	_, err = s.Ask(ctx, "julian", "billiards?")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Score)

	_, err = s.Ask(ctx, "julian", "at 8?")
	require.NoError(t, err)
	assert.Equal(t, 20, s.Score)

	assert.Equal(t, 3, s.Turns)
	assert.Equal(t, 2, s.Revealed("julian"))
	assert.Equal(t, []string{"billiards?", "billiards?", "at 8?"}, s.Questions("julian"))
}

func TestAskPenaltiesNeverGoNegative(t *testing.T) {
	s := newTestSession(t, DefaultRules())
	ctx := context.Background()

	_, err := s.Ask(ctx, "edgar", "liar")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Score)

	_, err = s.Ask(ctx, "edgar", "billiards?")
	require.NoError(t, err)
	_, err = s.Ask(ctx, "edgar", "again")
	require.NoError(t, err)
	assert.Equal(t, 8, s.Score)

	edgar := s.Scenario.SuspectByID("edgar")
	assert.Equal(t, 100-15-2-5, edgar.Willingness)
}

func TestAnsweredEventKeepsZeroWillingness(t *testing.T) {
	rules := DefaultRules()
	rules.StartingWillingness = 10
	s := newTestSession(t, rules)

	var last Event
	s.WithListener(func(ev Event) { last = ev })

	_, err := s.Ask(context.Background(), "edgar", "liar")
	require.NoError(t, err)
	require.Equal(t, EventAnswered, last.Type)
	assert.Zero(t, last.Willingness)

	raw, err := json.Marshal(last)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"willingness":0`)
}

func TestAskErrors(t *testing.T) {
	s := newTestSession(t, DefaultRules())
	ctx := context.Background()

	_, err := s.Ask(ctx, "nobody", "hello")
	assert.ErrorIs(t, err, ErrUnknownSuspect)

	_, err = s.Ask(ctx, "julian", "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Equal(t, 0, s.Turns)

	s.Abandon()
	_, err = s.Ask(ctx, "julian", "hello")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, "Case closed (Unsolved).", s.Outcome())
}

func TestTimeoutAfterMaxTurns(t *testing.T) {
	rules := DefaultRules()
	rules.MaxTurns = 2
	s := newTestSession(t, rules)

	var events []Event
	s.WithListener(func(ev Event) { events = append(events, ev) })

	ctx := context.Background()
	_, err := s.Ask(ctx, "veronica", "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, s.TurnsLeft())

	_, err = s.Ask(ctx, "veronica", "hello")
	require.NoError(t, err)

	assert.Equal(t, StatusTimeout, s.Status)
	assert.Equal(t, s.Scenario.Outcomes.Timeout, s.Outcome())

	_, err = s.Accuse("julian")
	assert.ErrorIs(t, err, ErrGameOver)

	require.Len(t, events, 4)
	assert.Equal(t, EventStarted, events[0].Type)
	assert.Equal(t, EventAnswered, events[1].Type)
	assert.Equal(t, "veronica", events[1].SuspectID)
	assert.Equal(t, EventTimeout, events[3].Type)
}

func TestAccuseCorrect(t *testing.T) {
	s := newTestSession(t, DefaultRules())

	_, err := s.Ask(context.Background(), "julian", "billiards?")
	require.NoError(t, err)

	v, err := s.Accuse("Julian")
	require.NoError(t, err)

	assert.True(t, v.Correct)
	assert.Equal(t, "Julian The Heir", v.Accused)
	assert.Equal(t, "Gambling debts and impatience for inheritance.", v.Motive)
	// 10 for the fact, 50 for solving, 2 per remaining turn
	assert.Equal(t, 10+50+2*39, v.Score)
	assert.Equal(t, StatusSolved, s.Status)
	assert.Equal(t, s.Scenario.Outcomes.Success, v.Outcome)
}

func TestAccuseWrong(t *testing.T) {
	s := newTestSession(t, DefaultRules())

	v, err := s.Accuse("Edgar")
	require.NoError(t, err)

	assert.False(t, v.Correct)
	assert.Equal(t, "Edgar The Butler", v.Accused)
	assert.Equal(t, "Julian The Heir", v.Killer)
	assert.Equal(t, 0, v.Score)
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, s.Scenario.Outcomes.Failure, s.Outcome())
}

func TestSummary(t *testing.T) {
	start := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	clock := start
	s := newTestSession(t, DefaultRules()).WithClock(func() time.Time { return clock })

	_, err := s.Ask(context.Background(), "julian", "billiards?")
	require.NoError(t, err)
	clock = start.Add(5 * time.Minute)
	_, err = s.Accuse("veronica")
	require.NoError(t, err)

	sum := s.Summary()
	assert.Equal(t, s.ID, sum.SessionID)
	assert.Equal(t, "The Silent Estate", sum.Title)
	assert.Equal(t, StatusFailed, sum.Status)
	assert.Equal(t, "Veronica The Secretary", sum.Accused)
	assert.Equal(t, 1, sum.FactsRevealed)
	assert.Equal(t, 1, sum.Questions)
	assert.Equal(t, 5*time.Minute, sum.EndedAt.Sub(sum.StartedAt))
}

func TestRulesFromDefaultsResetWillingness(t *testing.T) {
	rules := DefaultRules()
	rules.StartingWillingness = 30
	s := newTestSession(t, rules)

	for _, suspect := range s.Scenario.Suspects {
		assert.Equal(t, 30, suspect.Willingness)
	}
}
