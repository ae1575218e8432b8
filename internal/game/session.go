package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tahcohcat/gofigure-interrogation/config"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

var (
	ErrGameOver        = errors.New("the case is closed")
	ErrUnknownSuspect  = errors.New("no such suspect")
	ErrEmptyQuestion   = errors.New("question is empty")
	ErrUnknownScenario = errors.New("no such scenario")
)

const unsolvedText = "Case closed (Unsolved)."

type Status string

const (
	StatusActive    Status = "active"
	StatusSolved    Status = "solved"
	StatusFailed    Status = "failed"
	StatusTimeout   Status = "timeout"
	StatusAbandoned Status = "abandoned"
)

// Rules controls turns and scoring.
type Rules struct {
	MaxTurns            int
	StartingWillingness int
	FactPoints          int
	HostilityPenalty    int
	RepeatPenalty       int
	SolveBonus          int
	TurnBonus           int
	WrongPenalty        int
}

func RulesFromConfig(cfg config.GameConfig) Rules {
	return Rules{
		MaxTurns:            cfg.MaxTurns,
		StartingWillingness: cfg.StartingWillingness,
		FactPoints:          cfg.Scoring.FactPoints,
		HostilityPenalty:    cfg.Scoring.HostilityPenalty,
		RepeatPenalty:       cfg.Scoring.RepeatPenalty,
		SolveBonus:          cfg.Scoring.SolveBonus,
		TurnBonus:           cfg.Scoring.TurnBonus,
		WrongPenalty:        cfg.Scoring.WrongPenalty,
	}
}

// DefaultRules matches the shipped configuration defaults.
func DefaultRules() Rules {
	return Rules{
		MaxTurns:            40,
		StartingWillingness: MaxWillingness,
		FactPoints:          10,
		HostilityPenalty:    5,
		RepeatPenalty:       2,
		SolveBonus:          50,
		TurnBonus:           2,
		WrongPenalty:        50,
	}
}

type EventType string

const (
	EventStarted   EventType = "started"
	EventAnswered  EventType = "answered"
	EventAccused   EventType = "accused"
	EventTimeout   EventType = "timeout"
	EventAbandoned EventType = "abandoned"
)

// Event describes a state change, delivered to the session listener.
type Event struct {
	Type        EventType `json:"type"`
	SessionID   string    `json:"session_id"`
	SuspectID   string    `json:"suspect_id,omitempty"`
	Question    string    `json:"question,omitempty"`
	Reply       *Reply    `json:"reply,omitempty"`
	Verdict     *Verdict  `json:"verdict,omitempty"`
	Turns       int       `json:"turns"`
	Score       int       `json:"score"`
	Status      Status    `json:"status"`
	Willingness int       `json:"willingness"`
}

// Verdict is the result of an accusation.
type Verdict struct {
	Correct bool   `json:"correct"`
	Accused string `json:"accused"`
	Killer  string `json:"killer"`
	Motive  string `json:"motive"`
	Weapon  string `json:"weapon,omitempty"`
	Outcome string `json:"outcome"`
	Score   int    `json:"score"`
}

// Summary of a finished case, stored in the case log.
type Summary struct {
	SessionID     string
	Title         string
	Status        Status
	Score         int
	Turns         int
	Accused       string
	Killer        string
	FactsRevealed int
	Questions     int
	StartedAt     time.Time
	EndedAt       time.Time
}

// Session is one playthrough of a scenario.
type Session struct {
	mu sync.Mutex

	ID        string
	Scenario  *Scenario
	Rules     Rules
	Turns     int
	Score     int
	Status    Status
	StartedAt time.Time
	EndedAt   time.Time
	Accused   string

	revealed  map[string]map[string]bool
	questions map[string][]string

	brain    Interrogator
	listener func(Event)
	now      func() time.Time
	log      *logger.Log
}

func NewSession(scenario *Scenario, brain Interrogator, rules Rules) *Session {
	scenario.ResetSuspects(rules.StartingWillingness)

	s := &Session{
		ID:        uuid.NewString(),
		Scenario:  scenario,
		Rules:     rules,
		Status:    StatusActive,
		revealed:  map[string]map[string]bool{},
		questions: map[string][]string{},
		brain:     brain,
		now:       time.Now,
		log:       logger.New(),
	}
	s.StartedAt = s.now()

	return s
}

// WithListener registers fn for state change events and emits a started event.
func (s *Session) WithListener(fn func(Event)) *Session {
	s.mu.Lock()
	s.listener = fn
	ev := s.event(EventStarted)
	s.mu.Unlock()

	s.emit(ev)
	return s
}

// WithClock replaces the time source.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	s.StartedAt = now()
	return s
}

// Ask puts a question to a suspect and applies the scoring rules.
func (s *Session) Ask(ctx context.Context, suspectQuery, question string) (Reply, error) {
	s.mu.Lock()

	if s.Status != StatusActive {
		s.mu.Unlock()
		return Reply{}, ErrGameOver
	}

	suspect := s.Scenario.FindSuspect(suspectQuery)
	if suspect == nil {
		s.mu.Unlock()
		return Reply{}, fmt.Errorf("%w: %q", ErrUnknownSuspect, suspectQuery)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		s.mu.Unlock()
		return Reply{}, ErrEmptyQuestion
	}

	s.Turns++
	s.questions[suspect.ID] = append(s.questions[suspect.ID], question)

	reply := s.brain.Parse(ctx, question, suspect)
	s.log.Suspect(suspect.Name, fmt.Sprintf("[%s] %s", reply.Kind, reply.Text))

	s.applyScore(suspect, reply)

	events := []Event{s.answered(suspect, question, reply)}
	if s.Rules.MaxTurns > 0 && s.Turns >= s.Rules.MaxTurns {
		s.finish(StatusTimeout)
		events = append(events, s.event(EventTimeout))
	}
	s.mu.Unlock()

	for _, ev := range events {
		s.emit(ev)
	}

	return reply, nil
}

func (s *Session) applyScore(suspect *Suspect, reply Reply) {
	switch {
	case reply.Revealing():
		key := reply.Fact
		if reply.Kind == KindTimeline {
			key = "@" + reply.Hour
		}
		if s.revealed[suspect.ID] == nil {
			s.revealed[suspect.ID] = map[string]bool{}
		}
		if !s.revealed[suspect.ID][key] {
			s.revealed[suspect.ID][key] = true
			s.Score += s.Rules.FactPoints
		}
	case reply.Hostile():
		s.Score -= s.Rules.HostilityPenalty
	case reply.Kind == KindRepeat || reply.Kind == KindGreetingRepeat:
		s.Score -= s.Rules.RepeatPenalty
	}

	if s.Score < 0 {
		s.Score = 0
	}
}

// Accuse names the killer and ends the case.
func (s *Session) Accuse(guess string) (Verdict, error) {
	s.mu.Lock()

	if s.Status != StatusActive {
		s.mu.Unlock()
		return Verdict{}, ErrGameOver
	}

	accused, correct := s.Scenario.IsKiller(guess)

	v := Verdict{
		Correct: correct,
		Accused: strings.TrimSpace(guess),
		Killer:  s.Scenario.Meta.Solution.Killer,
		Motive:  s.Scenario.Meta.Solution.Motive,
		Weapon:  s.Scenario.Meta.Solution.Weapon,
	}
	if accused != nil {
		v.Accused = accused.Name
	}

	if correct {
		s.Score += s.Rules.SolveBonus + s.Rules.TurnBonus*s.turnsLeft()
		s.finish(StatusSolved)
	} else {
		s.Score -= s.Rules.WrongPenalty
		if s.Score < 0 {
			s.Score = 0
		}
		s.finish(StatusFailed)
	}

	s.Accused = v.Accused
	v.Outcome = s.outcome()
	v.Score = s.Score

	ev := s.event(EventAccused)
	ev.Verdict = &v
	s.mu.Unlock()

	s.emit(ev)

	return v, nil
}

// Abandon closes an unsolved case. It is a no-op once the case is over.
func (s *Session) Abandon() {
	s.mu.Lock()
	if s.Status != StatusActive {
		s.mu.Unlock()
		return
	}
	s.finish(StatusAbandoned)
	ev := s.event(EventAbandoned)
	s.mu.Unlock()

	s.emit(ev)
}

// Outcome returns the closing text for the current status.
func (s *Session) Outcome() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.outcome()
}

func (s *Session) outcome() string {
	switch s.Status {
	case StatusSolved:
		return s.Scenario.Outcomes.Success
	case StatusFailed:
		return s.Scenario.Outcomes.Failure
	case StatusTimeout:
		return s.Scenario.Outcomes.Timeout
	case StatusAbandoned:
		return unsolvedText
	}
	return ""
}

// Active reports whether the case is still open.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.Status == StatusActive
}

// TurnsLeft returns -1 when there is no turn limit.
func (s *Session) TurnsLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Rules.MaxTurns <= 0 {
		return -1
	}
	return s.turnsLeft()
}

func (s *Session) turnsLeft() int {
	if s.Rules.MaxTurns <= 0 {
		return 0
	}
	left := s.Rules.MaxTurns - s.Turns
	if left < 0 {
		return 0
	}
	return left
}

// Revealed returns how many distinct facts a suspect has given up.
func (s *Session) Revealed(suspectID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.revealed[suspectID])
}

// Questions returns the questions put to a suspect so far.
func (s *Session) Questions(suspectID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.questions[suspectID]...)
}

// Snapshot returns an event describing the current state.
func (s *Session) Snapshot() Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.event("")
}

// Summary records the case for the case log.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	facts, questions := 0, 0
	for _, r := range s.revealed {
		facts += len(r)
	}
	for _, q := range s.questions {
		questions += len(q)
	}

	ended := s.EndedAt
	if ended.IsZero() {
		ended = s.now()
	}

	return Summary{
		SessionID:     s.ID,
		Title:         s.Scenario.Meta.Title,
		Status:        s.Status,
		Score:         s.Score,
		Turns:         s.Turns,
		Accused:       s.Accused,
		Killer:        s.Scenario.Meta.Solution.Killer,
		FactsRevealed: facts,
		Questions:     questions,
		StartedAt:     s.StartedAt,
		EndedAt:       ended,
	}
}

func (s *Session) finish(status Status) {
	s.Status = status
	s.EndedAt = s.now()
	s.log.Info(fmt.Sprintf("Case %s closed: %s (score %d, %d turns)", s.ID, status, s.Score, s.Turns))
}

func (s *Session) answered(suspect *Suspect, question string, reply Reply) Event {
	ev := s.event(EventAnswered)
	ev.SuspectID = suspect.ID
	ev.Question = question
	ev.Reply = &reply
	ev.Willingness = suspect.Willingness
	return ev
}

func (s *Session) event(t EventType) Event {
	return Event{
		Type:      t,
		SessionID: s.ID,
		Turns:     s.Turns,
		Score:     s.Score,
		Status:    s.Status,
	}
}

func (s *Session) emit(ev Event) {
	if s.listener != nil {
		s.listener(ev)
	}
}
