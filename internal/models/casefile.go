package models

import (
	"time"

	"github.com/tahcohcat/gofigure-interrogation/internal/game"
)

// CaseFile is one finished playthrough.
type CaseFile struct {
	ID            int       `json:"id" db:"id"`
	SessionID     string    `json:"session_id" db:"session_id"`
	Title         string    `json:"title" db:"title"`
	Status        string    `json:"status" db:"status"`
	Score         int       `json:"score" db:"score"`
	Turns         int       `json:"turns" db:"turns"`
	Questions     int       `json:"questions" db:"questions"`
	FactsRevealed int       `json:"facts_revealed" db:"facts_revealed"`
	Accused       string    `json:"accused" db:"accused"`
	Killer        string    `json:"killer" db:"killer"`
	StartedAt     time.Time `json:"started_at" db:"started_at"`
	EndedAt       time.Time `json:"ended_at" db:"ended_at"`
}

func CaseFileFromSummary(s game.Summary) *CaseFile {
	return &CaseFile{
		SessionID:     s.SessionID,
		Title:         s.Title,
		Status:        string(s.Status),
		Score:         s.Score,
		Turns:         s.Turns,
		Questions:     s.Questions,
		FactsRevealed: s.FactsRevealed,
		Accused:       s.Accused,
		Killer:        s.Killer,
		StartedAt:     s.StartedAt,
		EndedAt:       s.EndedAt,
	}
}

func (c *CaseFile) Solved() bool {
	return c.Status == string(game.StatusSolved)
}

// Duration is how long the case stayed open.
func (c *CaseFile) Duration() time.Duration {
	return c.EndedAt.Sub(c.StartedAt)
}

// CaseStats aggregates the case log.
type CaseStats struct {
	Played     int     `json:"played" db:"played"`
	Solved     int     `json:"solved" db:"solved"`
	Failed     int     `json:"failed" db:"failed"`
	TimedOut   int     `json:"timed_out" db:"timed_out"`
	Abandoned  int     `json:"abandoned" db:"abandoned"`
	BestScore  int     `json:"best_score" db:"best_score"`
	AvgTurns   float64 `json:"avg_turns" db:"avg_turns"`
	FastestWin int     `json:"fastest_win" db:"fastest_win"` // turns, 0 = no solves
}

// SolveRate is the share of played cases that were solved.
func (s CaseStats) SolveRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Solved) / float64(s.Played)
}

// Badge is a milestone earned across cases. MaxProgress 0 means the badge
// is earned by a single case.
type Badge struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MaxProgress int    `json:"max_progress"`
}

// EarnedBadge is a badge row joined with its definition.
type EarnedBadge struct {
	Badge
	CaseID   int       `json:"case_id" db:"case_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}
