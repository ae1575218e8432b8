package services

import (
	"fmt"

	"github.com/tahcohcat/gofigure-interrogation/internal/database"
	"github.com/tahcohcat/gofigure-interrogation/internal/game"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
	"github.com/tahcohcat/gofigure-interrogation/internal/models"
)

// CaseLog stores finished cases.
type CaseLog struct {
	db     *database.DB
	badges *BadgeService
	logger *logger.Log
}

func NewCaseLog(db *database.DB) *CaseLog {
	return &CaseLog{
		db:     db,
		badges: NewBadgeService(db),
		logger: logger.New(),
	}
}

// Record saves a finished case and awards any badges it earned. Recording
// the same session twice is a no-op.
func (s *CaseLog) Record(summary game.Summary) (*models.CaseFile, []models.Badge, error) {
	if summary.Status == game.StatusActive {
		return nil, nil, fmt.Errorf("case %s is still open", summary.SessionID)
	}

	cf := models.CaseFileFromSummary(summary)

	query := `
		INSERT INTO case_files (session_id, title, status, score, turns, questions, facts_revealed, accused, killer, started_at, ended_at)
		VALUES (:session_id, :title, :status, :score, :turns, :questions, :facts_revealed, :accused, :killer, :started_at, :ended_at)
		ON CONFLICT(session_id) DO NOTHING
	`

	result, err := s.db.NamedExec(query, cf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record case: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		existing, err := s.BySession(summary.SessionID)
		return existing, nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get case ID: %w", err)
	}
	cf.ID = int(id)

	earned, err := s.badges.Award(cf)
	if err != nil {
		// Non-fatal, the case itself is stored
		s.logger.WithError(err).Warn("Failed to award badges")
	}

	s.logger.Debug(fmt.Sprintf("Recorded case %d (%s, score %d)", cf.ID, cf.Status, cf.Score))
	return cf, earned, nil
}

// Recorder adapts Record to a session summary hook, logging failures.
func (s *CaseLog) Recorder() func(game.Summary) {
	return func(summary game.Summary) {
		_, earned, err := s.Record(summary)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to write case log")
			return
		}
		for _, b := range earned {
			s.logger.Info(fmt.Sprintf("%s Badge earned: %s", b.Icon, b.Title))
		}
	}
}

func (s *CaseLog) BySession(sessionID string) (*models.CaseFile, error) {
	var cf models.CaseFile
	if err := s.db.Get(&cf, "SELECT * FROM case_files WHERE session_id = ?", sessionID); err != nil {
		return nil, fmt.Errorf("failed to get case %s: %w", sessionID, err)
	}
	return &cf, nil
}

// Recent returns the latest n cases, newest first.
func (s *CaseLog) Recent(n int) ([]models.CaseFile, error) {
	if n <= 0 {
		n = 10
	}

	cases := []models.CaseFile{}
	err := s.db.Select(&cases, "SELECT * FROM case_files ORDER BY ended_at DESC, id DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

func (s *CaseLog) Stats() (models.CaseStats, error) {
	query := `
		SELECT
			COUNT(*) AS played,
			COALESCE(SUM(CASE WHEN status = 'solved' THEN 1 ELSE 0 END), 0) AS solved,
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) AS failed,
			COALESCE(SUM(CASE WHEN status = 'timeout' THEN 1 ELSE 0 END), 0) AS timed_out,
			COALESCE(SUM(CASE WHEN status = 'abandoned' THEN 1 ELSE 0 END), 0) AS abandoned,
			COALESCE(MAX(score), 0) AS best_score,
			COALESCE(AVG(turns), 0) AS avg_turns,
			COALESCE(MIN(CASE WHEN status = 'solved' THEN turns END), 0) AS fastest_win
		FROM case_files
	`

	var stats models.CaseStats
	if err := s.db.Get(&stats, query); err != nil {
		return stats, fmt.Errorf("failed to get case stats: %w", err)
	}
	return stats, nil
}

func (s *CaseLog) Badges() ([]models.EarnedBadge, error) {
	return s.badges.Earned()
}
