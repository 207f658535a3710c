package odds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/internal/cache"
	"github.com/matchday/oddsbook/internal/logger"
	"github.com/matchday/oddsbook/models"
)

const (
	defaultPricedMatchesLimit = 20
	maxPricedMatchesLimit     = 100
)

// service implements the Service interface
type service struct {
	repo      Repository
	config    *Config
	engine    PricingEngine
	analyzer  FormAnalyzer
	oddsCache cache.Cache[*models.OddsSet]
	logger    logger.Logger
	validator *validator.Validate
}

// NewService creates a new odds service
func NewService(repo Repository, config *Config, engine PricingEngine, analyzer FormAnalyzer,
	oddsCache cache.Cache[*models.OddsSet], log logger.Logger) Service {
	return &service{
		repo:      repo,
		config:    config,
		engine:    engine,
		analyzer:  analyzer,
		oddsCache: oddsCache,
		logger:    log,
		validator: validator.New(),
	}
}

// CreateMatch registers a new scheduled fixture
func (s *service) CreateMatch(ctx context.Context, req *CreateMatchRequest) (*MatchResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if req.HomeTeamID == req.AwayTeamID {
		return nil, models.ErrInvalidMatchID
	}
	if !req.KickoffAt.After(time.Now()) {
		return nil, models.ErrMatchAlreadyStarted
	}

	match := &models.Match{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		HomeTeam:   req.HomeTeam,
		AwayTeam:   req.AwayTeam,
		KickoffAt:  req.KickoffAt,
		Status:     models.MatchStatusScheduled,
	}
	if err := match.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	return ToMatchResponse(match, false), nil
}

// GetMatch returns a single fixture
func (s *service) GetMatch(ctx context.Context, matchID uuid.UUID) (*MatchResponse, error) {
	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get match %s: %w", matchID, err)
	}

	withOdds, err := s.repo.GetMatchIDsWithOdds(ctx, []uuid.UUID{match.ID})
	if err != nil {
		return nil, fmt.Errorf("check match odds: %w", err)
	}

	return ToMatchResponse(match, withOdds[match.ID]), nil
}

// ListUpcomingMatches returns scheduled fixtures inside the lookahead window
func (s *service) ListUpcomingMatches(ctx context.Context) ([]MatchResponse, error) {
	matches, err := s.repo.GetUpcomingMatches(ctx, time.Now(), s.config.LookaheadDays)
	if err != nil {
		return nil, fmt.Errorf("list upcoming matches: %w", err)
	}

	ids := make([]uuid.UUID, len(matches))
	for i := range matches {
		ids[i] = matches[i].ID
	}
	withOdds, err := s.repo.GetMatchIDsWithOdds(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("check match odds: %w", err)
	}

	responses := make([]MatchResponse, 0, len(matches))
	for i := range matches {
		responses = append(responses, *ToMatchResponse(&matches[i], withOdds[matches[i].ID]))
	}
	return responses, nil
}

// ListMatchesWithOdds returns matches that hold a stored book, most
// recently priced first.
func (s *service) ListMatchesWithOdds(ctx context.Context, limit int) ([]MatchResponse, error) {
	if limit <= 0 {
		limit = defaultPricedMatchesLimit
	}
	if limit > maxPricedMatchesLimit {
		limit = maxPricedMatchesLimit
	}

	matches, err := s.repo.ListMatchesWithOdds(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches with odds: %w", err)
	}

	responses := make([]MatchResponse, 0, len(matches))
	for i := range matches {
		responses = append(responses, *ToMatchResponse(&matches[i], true))
	}
	return responses, nil
}

// GenerateOdds prices every market of a match from the two teams' recent
// form and replaces any previously stored book.
func (s *service) GenerateOdds(ctx context.Context, matchID uuid.UUID) (*OddsSetResponse, error) {
	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get match %s: %w", matchID, err)
	}

	if match.IsVoided() {
		return nil, models.ErrMatchVoided
	}
	if match.HasStarted(time.Now()) {
		return nil, models.ErrMatchAlreadyStarted
	}

	set, err := s.priceMatch(ctx, match)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceOddsSet(ctx, set); err != nil {
		return nil, fmt.Errorf("store odds for match %s: %w", matchID, err)
	}
	s.invalidateOddsCache(ctx, matchID)

	s.logger.Info("odds generated", map[string]interface{}{
		"match_id":     matchID.String(),
		"generated_at": set.GeneratedAt,
	})

	return ToOddsSetResponse(set), nil
}

// GenerateUpcomingOdds prices every scheduled fixture inside the lookahead
// window. Failures on individual matches do not abort the run.
func (s *service) GenerateUpcomingOdds(ctx context.Context) (*BulkGenerateResponse, error) {
	matches, err := s.repo.GetUpcomingMatches(ctx, time.Now(), s.config.LookaheadDays)
	if err != nil {
		return nil, fmt.Errorf("list upcoming matches: %w", err)
	}

	resp := &BulkGenerateResponse{}
	for i := range matches {
		match := &matches[i]

		set, err := s.priceMatch(ctx, match)
		if err == nil {
			err = s.repo.ReplaceOddsSet(ctx, set)
		}
		if err != nil {
			s.logger.Error(err, map[string]interface{}{
				"match_id": match.ID.String(),
				"message":  "skipping match during bulk odds generation",
			})
			resp.Failures = append(resp.Failures, match.ID)
			continue
		}

		s.invalidateOddsCache(ctx, match.ID)
		resp.MatchesPriced++
	}
	return resp, nil
}

func (s *service) priceMatch(ctx context.Context, match *models.Match) (*models.OddsSet, error) {
	homeForm, err := s.buildForm(ctx, match.HomeTeamID)
	if err != nil {
		return nil, err
	}
	awayForm, err := s.buildForm(ctx, match.AwayTeamID)
	if err != nil {
		return nil, err
	}

	set, err := s.engine.BuildOddsSet(match.ID, homeForm, awayForm, time.Now())
	if err != nil {
		return nil, fmt.Errorf("price match %s: %w", match.ID, err)
	}
	return set, nil
}

func (s *service) buildForm(ctx context.Context, teamID uuid.UUID) (*models.TeamFormSnapshot, error) {
	history, err := s.repo.GetCompletedMatchesForTeam(ctx, teamID, s.config.LookbackWindow)
	if err != nil {
		return nil, fmt.Errorf("load history for team %s: %w", teamID, err)
	}
	return s.analyzer.BuildSnapshot(teamID, history), nil
}

// GetMatchOdds returns the stored book for a match, cache-aside
func (s *service) GetMatchOdds(ctx context.Context, matchID uuid.UUID) (*OddsSetResponse, error) {
	if set, err := s.oddsCache.Get(ctx, oddsCacheKey(matchID)); err == nil {
		return ToOddsSetResponse(set), nil
	}

	lines, err := s.repo.GetOddsLinesForMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("load odds for match %s: %w", matchID, err)
	}
	if len(lines) == 0 {
		return nil, models.ErrOddsNotFound
	}

	set := models.OddsSetFromLines(matchID, lines)
	if err := s.oddsCache.Set(ctx, oddsCacheKey(matchID), set, s.config.OddsCacheTTL); err != nil {
		s.logger.Error(err, map[string]interface{}{"match_id": matchID.String(), "message": "odds cache write failed"})
	}

	return ToOddsSetResponse(set), nil
}

// GetTeamForm returns the scoring summary the pricing engine would use
func (s *service) GetTeamForm(ctx context.Context, teamID uuid.UUID) (*models.TeamFormSnapshot, error) {
	return s.buildForm(ctx, teamID)
}

func (s *service) invalidateOddsCache(ctx context.Context, matchID uuid.UUID) {
	if err := s.oddsCache.Delete(ctx, oddsCacheKey(matchID)); err != nil {
		s.logger.Error(err, map[string]interface{}{"match_id": matchID.String(), "message": "odds cache invalidation failed"})
	}
}

func oddsCacheKey(matchID uuid.UUID) string {
	return "odds:match:" + matchID.String()
}
