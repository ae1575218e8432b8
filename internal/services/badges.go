package services

import (
	"fmt"
	"time"

	"github.com/tahcohcat/gofigure-interrogation/internal/database"
	"github.com/tahcohcat/gofigure-interrogation/internal/models"
)

// Badge ids
const (
	BadgeFirstCase  = "first_case"
	BadgeQuickStudy = "quick_study"
	BadgeThorough   = "thorough"
	BadgeVeteran    = "veteran"
	BadgeColdCase   = "cold_case"
)

var badgeCatalog = []models.Badge{
	{ID: BadgeFirstCase, Icon: "🔍", Title: "First Case", Description: "Solve your first case"},
	{ID: BadgeQuickStudy, Icon: "⚡", Title: "Quick Study", Description: "Solve a case in 10 turns or fewer"},
	{ID: BadgeThorough, Icon: "📜", Title: "Thorough", Description: "Uncover 10 facts in a single case"},
	{ID: BadgeVeteran, Icon: "🎖️", Title: "Veteran", Description: "Solve 5 cases", MaxProgress: 5},
	{ID: BadgeColdCase, Icon: "🧊", Title: "Cold Case", Description: "Leave 3 cases unsolved", MaxProgress: 3},
}

// Catalog lists every badge definition.
func Catalog() []models.Badge {
	out := make([]models.Badge, len(badgeCatalog))
	copy(out, badgeCatalog)
	return out
}

func badgeByID(id string) (models.Badge, bool) {
	for _, b := range badgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}

func progressGoal(id string) int {
	b, _ := badgeByID(id)
	return b.MaxProgress
}

type BadgeService struct {
	db  *database.DB
	now func() time.Time
}

func NewBadgeService(db *database.DB) *BadgeService {
	return &BadgeService{db: db, now: time.Now}
}

// Award checks the badge conditions after cf was stored and returns the
// badges it newly earned.
func (s *BadgeService) Award(cf *models.CaseFile) ([]models.Badge, error) {
	solved, unsolved, err := s.counts()
	if err != nil {
		return nil, err
	}

	candidates := []string{}
	if cf.Solved() {
		candidates = append(candidates, BadgeFirstCase)
		if cf.Turns <= 10 {
			candidates = append(candidates, BadgeQuickStudy)
		}
	}
	if cf.FactsRevealed >= 10 {
		candidates = append(candidates, BadgeThorough)
	}
	if solved >= progressGoal(BadgeVeteran) {
		candidates = append(candidates, BadgeVeteran)
	}
	if unsolved >= progressGoal(BadgeColdCase) {
		candidates = append(candidates, BadgeColdCase)
	}

	var earned []models.Badge
	for _, id := range candidates {
		result, err := s.db.Exec(
			"INSERT INTO badges (badge_id, case_id, earned_at) VALUES (?, ?, ?) ON CONFLICT(badge_id) DO NOTHING",
			id, cf.ID, s.now())
		if err != nil {
			return earned, fmt.Errorf("failed to award badge %s: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			b, _ := badgeByID(id)
			earned = append(earned, b)
		}
	}

	return earned, nil
}

// Earned lists awarded badges, oldest first.
func (s *BadgeService) Earned() ([]models.EarnedBadge, error) {
	rows := []struct {
		BadgeID  string    `db:"badge_id"`
		CaseID   int       `db:"case_id"`
		EarnedAt time.Time `db:"earned_at"`
	}{}
	if err := s.db.Select(&rows, "SELECT badge_id, case_id, earned_at FROM badges ORDER BY earned_at, badge_id"); err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}

	earned := make([]models.EarnedBadge, 0, len(rows))
	for _, r := range rows {
		b, ok := badgeByID(r.BadgeID)
		if !ok {
			continue
		}
		earned = append(earned, models.EarnedBadge{Badge: b, CaseID: r.CaseID, EarnedAt: r.EarnedAt})
	}
	return earned, nil
}

func (s *BadgeService) counts() (solved, unsolved int, err error) {
	row := struct {
		Solved   int `db:"solved"`
		Unsolved int `db:"unsolved"`
	}{}
	err = s.db.Get(&row, `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'solved' THEN 1 ELSE 0 END), 0) AS solved,
			COALESCE(SUM(CASE WHEN status != 'solved' THEN 1 ELSE 0 END), 0) AS unsolved
		FROM case_files`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count cases: %w", err)
	}
	return row.Solved, row.Unsolved, nil
}
