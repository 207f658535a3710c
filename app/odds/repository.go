package odds

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new odds repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// CreateMatch creates a new fixture
func (r *repository) CreateMatch(ctx context.Context, match *models.Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

// GetMatchByID returns a match by ID
func (r *repository) GetMatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetUpcomingMatches returns scheduled fixtures kicking off within the
// lookahead window, soonest first.
func (r *repository) GetUpcomingMatches(ctx context.Context, from time.Time, lookaheadDays int) ([]models.Match, error) {
	var matches []models.Match
	until := from.AddDate(0, 0, lookaheadDays)
	err := r.db.WithContext(ctx).
		Where("status = ? AND kickoff_at > ? AND kickoff_at <= ?", models.MatchStatusScheduled, from, until).
		Order("kickoff_at ASC").
		Find(&matches).Error
	return matches, err
}

// GetCompletedMatchesForTeam returns a team's most recent completed matches,
// newest first.
func (r *repository) GetCompletedMatchesForTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Where("status = ? AND (home_team_id = ? OR away_team_id = ?)", models.MatchStatusCompleted, teamID, teamID).
		Order("kickoff_at DESC").
		Limit(limit).
		Find(&matches).Error
	return matches, err
}

// ReplaceOddsSet atomically swaps a match's stored odds for a fresh set.
// Readers never observe a partially written book.
func (r *repository) ReplaceOddsSet(ctx context.Context, set *models.OddsSet) error {
	lines := set.Lines()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", set.MatchID).Delete(&models.OddsLine{}).Error; err != nil {
			return err
		}
		return tx.Create(&lines).Error
	})
}

// GetOddsLinesForMatch returns all stored odds lines for a match
func (r *repository) GetOddsLinesForMatch(ctx context.Context, matchID uuid.UUID) ([]models.OddsLine, error) {
	var lines []models.OddsLine
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("market, outcome").
		Find(&lines).Error
	return lines, err
}

// ListMatchesWithOdds returns matches that have any stored odds, most
// recently priced first, capped at limit.
func (r *repository) ListMatchesWithOdds(ctx context.Context, limit int) ([]models.Match, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.OddsLine{}).
		Select("match_id").
		Group("match_id").
		Order("MAX(generated_at) DESC").
		Limit(limit).
		Pluck("match_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Match{}, nil
	}

	var matches []models.Match
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&matches).Error; err != nil {
		return nil, err
	}

	// restore pricing recency order after the IN fetch
	byID := make(map[uuid.UUID]models.Match, len(matches))
	for i := range matches {
		byID[matches[i].ID] = matches[i]
	}
	ordered := make([]models.Match, 0, len(ids))
	for _, id := range ids {
		if match, ok := byID[id]; ok {
			ordered = append(ordered, match)
		}
	}
	return ordered, nil
}

// GetMatchIDsWithOdds reports which of the given matches have a stored book
func (r *repository) GetMatchIDsWithOdds(ctx context.Context, matchIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(matchIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}

	var withOdds []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.OddsLine{}).
		Distinct("match_id").
		Where("match_id IN ?", matchIDs).
		Pluck("match_id", &withOdds).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID]bool, len(withOdds))
	for _, id := range withOdds {
		result[id] = true
	}
	return result, nil
}
