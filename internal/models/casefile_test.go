package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tahcohcat/gofigure-interrogation/internal/game"
)

func TestCaseFileFromSummary(t *testing.T) {
	start := time.Date(2025, 3, 1, 21, 0, 0, 0, time.UTC)
	cf := CaseFileFromSummary(game.Summary{
		SessionID: "abc",
		Title:     "The Silent Estate",
		Status:    game.StatusSolved,
		Score:     120,
		Turns:     7,
		Accused:   "Julian Reed",
		Killer:    "Julian Reed",
		StartedAt: start,
		EndedAt:   start.Add(4 * time.Minute),
	})

	assert.Equal(t, "abc", cf.SessionID)
	assert.Equal(t, "solved", cf.Status)
	assert.True(t, cf.Solved())
	assert.Equal(t, 4*time.Minute, cf.Duration())
}

func TestSolveRate(t *testing.T) {
	assert.Zero(t, CaseStats{}.SolveRate())
	assert.InDelta(t, 0.25, CaseStats{Played: 4, Solved: 1}.SolveRate(), 1e-9)
}
