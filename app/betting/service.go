package betting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/internal/logger"
	"github.com/matchday/oddsbook/models"
)

// service implements the Service interface
type service struct {
	db        *gorm.DB // Main DB connection for starting transactions
	repo      Repository
	config    *Config
	logger    logger.Logger
	validator *validator.Validate
}

// NewService creates a new betting service
func NewService(db *gorm.DB, repo Repository, config *Config, log logger.Logger) Service {
	return &service{
		db:        db,
		repo:      repo,
		config:    config,
		logger:    log,
		validator: validator.New(),
	}
}

// PlaceBet validates the ticket against current odds and open matches, then
// debits the stake and records the bet in a single transaction.
func (s *service) PlaceBet(ctx context.Context, userID uuid.UUID, req *PlaceBetRequest) (*BetResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	bet, err := s.buildBet(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.executePlacement(ctx, bet); err != nil {
		return nil, err
	}

	s.logger.Info("bet placed", map[string]interface{}{
		"bet_id":    bet.ID.String(),
		"user_id":   userID.String(),
		"structure": string(bet.Structure),
		"stake":     bet.TotalStake.String(),
	})

	return ToBetResponse(bet), nil
}

// buildBet turns the request into a validated Bet model priced from the
// currently stored odds.
func (s *service) buildBet(ctx context.Context, userID uuid.UUID, req *PlaceBetRequest) (*models.Bet, error) {
	if err := s.checkStakeLimits(req.TotalStake); err != nil {
		return nil, err
	}
	if len(req.Legs) > s.config.MaxLegs {
		return nil, models.ErrTooManyLegs
	}

	matchIDs := make([]uuid.UUID, 0, len(req.Legs))
	for _, leg := range req.Legs {
		matchIDs = append(matchIDs, leg.MatchID)
	}

	matches, err := s.repo.GetMatchesByIDs(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	currentPrices, err := s.loadCurrentPrices(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	legs := make([]models.BetLeg, 0, len(req.Legs))
	prices := make([]decimal.Decimal, 0, len(req.Legs))
	for _, legReq := range req.Legs {
		leg, err := s.buildLeg(&legReq, matches, currentPrices, now)
		if err != nil {
			return nil, err
		}
		legs = append(legs, *leg)
		prices = append(prices, leg.PriceAtPlacement)
	}

	ticket, err := s.buildTicket(req, prices)
	if err != nil {
		return nil, err
	}

	potential := ticket.PotentialPayout()
	if potential.GreaterThan(s.config.MaxPayout) {
		return nil, models.ErrPayoutLimitExceeded
	}

	bet := &models.Bet{
		UserID:          userID,
		Structure:       ticket.Structure(),
		SystemSpec:      req.SystemSpec,
		TotalStake:      req.TotalStake,
		PotentialPayout: potential,
		Status:          models.BetStatusPending,
		Legs:            legs,
	}
	if err := bet.Validate(); err != nil {
		return nil, err
	}
	return bet, nil
}

func (s *service) checkStakeLimits(stake decimal.Decimal) error {
	if stake.LessThan(s.config.MinStake) {
		return models.ErrStakeTooSmall
	}
	if stake.GreaterThan(s.config.MaxStake) {
		return models.ErrStakeTooLarge
	}
	return nil
}

// loadCurrentPrices builds a (match, market, outcome) -> price index from
// the stored odds lines.
func (s *service) loadCurrentPrices(ctx context.Context, matchIDs []uuid.UUID) (map[priceKey]decimal.Decimal, error) {
	lines, err := s.repo.GetOddsLinesForMatches(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("load odds: %w", err)
	}

	index := make(map[priceKey]decimal.Decimal, len(lines))
	for i := range lines {
		line := &lines[i]
		index[priceKey{line.MatchID, line.Market, line.Outcome}] = line.Price
	}
	return index, nil
}

type priceKey struct {
	matchID uuid.UUID
	market  models.BetMarket
	outcome string
}

// buildLeg validates one selection against its match state and stored price
func (s *service) buildLeg(req *LegRequest, matches map[uuid.UUID]*models.Match,
	prices map[priceKey]decimal.Decimal, now time.Time) (*models.BetLeg, error) {
	market := models.BetMarket(req.Market)
	if !models.ValidMarket(market) {
		return nil, models.ErrInvalidMarket
	}
	if !models.ValidOutcome(market, req.Outcome) {
		return nil, models.ErrInvalidOutcome
	}

	match, ok := matches[req.MatchID]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	if !match.OpenForBetting(now) {
		if match.IsVoided() {
			return nil, models.ErrMatchVoided
		}
		return nil, models.ErrMatchAlreadyStarted
	}

	current, ok := prices[priceKey{req.MatchID, market, req.Outcome}]
	if !ok {
		return nil, models.ErrOddsNotFound
	}
	if current.Sub(req.QuotedPrice).Abs().GreaterThan(s.config.PriceTolerance) {
		return nil, models.ErrStaleOdds
	}

	return &models.BetLeg{
		MatchID:          req.MatchID,
		Market:           market,
		Outcome:          req.Outcome,
		PriceAtPlacement: current,
		Status:           models.LegStatusPending,
	}, nil
}

func (s *service) buildTicket(req *PlaceBetRequest, prices []decimal.Decimal) (*Ticket, error) {
	switch models.BetStructure(req.Structure) {
	case models.BetStructureSingle:
		if len(prices) != 1 {
			return nil, models.ErrInvalidBetStructure
		}
		return NewSingleTicket(req.TotalStake, prices[0])
	case models.BetStructureAccumulator:
		return NewAccumulatorTicket(req.TotalStake, prices)
	case models.BetStructureSystem:
		return NewSystemTicket(req.TotalStake, prices, req.SystemSpec)
	default:
		return nil, models.ErrInvalidBetStructure
	}
}

// executePlacement performs the balance check, debit, ledger write and bet
// insert atomically.
func (s *service) executePlacement(ctx context.Context, bet *models.Bet) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		wallet, err := repoTx.GetUserWalletForUpdate(ctx, bet.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// first touch opens the wallet with the initial credit, in the
			// same transaction as the placement
			wallet, err = s.openWallet(ctx, repoTx, bet.UserID)
		}
		if err != nil {
			return fmt.Errorf("get user wallet: %w", err)
		}

		if !wallet.CanDebit(bet.TotalStake) {
			return models.ErrInsufficientBalance
		}
		balanceBefore := wallet.Balance

		ledgerTx := models.CreateBetTransaction(bet.UserID, wallet.ID, bet.TotalStake, balanceBefore, uuid.Nil)
		if err := repoTx.CreateTransaction(ctx, ledgerTx); err != nil {
			return fmt.Errorf("create ledger transaction: %w", err)
		}

		bet.TransactionID = ledgerTx.ID
		if err := repoTx.CreateBet(ctx, bet); err != nil {
			return fmt.Errorf("create bet record: %w", err)
		}

		ledgerTx.ReferenceID = &bet.ID
		if err := repoTx.UpdateTransaction(ctx, ledgerTx); err != nil {
			return fmt.Errorf("update ledger transaction with bet ID: %w", err)
		}

		if err := wallet.Debit(bet.TotalStake); err != nil {
			return fmt.Errorf("in-memory wallet debit: %w", err)
		}
		if err := repoTx.UpdateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("update wallet record: %w", err)
		}

		return nil // Commit transaction
	})
}

// openWallet creates the wallet and books the initial balance as a ledger
// deposit, using the placement's transaction-scoped repository.
func (s *service) openWallet(ctx context.Context, repo Repository, userID uuid.UUID) (*models.Wallet, error) {
	wallet := &models.Wallet{
		UserID:       userID,
		CurrencyCode: models.DefaultCurrencyCode,
		Balance:      models.InitialWalletBalance,
	}
	if err := repo.CreateWallet(ctx, wallet); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}

	opening := models.CreateDepositTransaction(
		userID, wallet.ID, models.InitialWalletBalance, decimal.Zero, "Initial balance credit",
	)
	if err := repo.CreateTransaction(ctx, opening); err != nil {
		return nil, fmt.Errorf("create opening transaction: %w", err)
	}
	return wallet, nil
}

// GetBetByID returns one bet, owner-checked
func (s *service) GetBetByID(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error) {
	bet, err := s.repo.GetBetByID(ctx, betID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get bet %s: %w", betID, err)
	}
	if bet.UserID != userID {
		return nil, models.ErrForbidden
	}
	return ToBetResponse(bet), nil
}

// GetUserBets returns the user's bets, filtered and paginated
func (s *service) GetUserBets(ctx context.Context, userID uuid.UUID, filters *BetFilters) (*BetListResponse, error) {
	if filters == nil {
		filters = &BetFilters{}
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PerPage < 1 {
		filters.PerPage = s.config.DefaultPerPage
	}
	if filters.PerPage > s.config.MaxPerPage {
		filters.PerPage = s.config.MaxPerPage
	}

	bets, total, err := s.repo.GetBetsByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("list bets for user %s: %w", userID, err)
	}

	responses := make([]BetResponse, 0, len(bets))
	for i := range bets {
		responses = append(responses, *ToBetResponse(&bets[i]))
	}

	return &BetListResponse{
		Bets:    responses,
		Total:   total,
		Page:    filters.Page,
		PerPage: filters.PerPage,
	}, nil
}

// GetBetsForMatch returns the user's bets riding on one match
func (s *service) GetBetsForMatch(ctx context.Context, userID, matchID uuid.UUID) ([]BetResponse, error) {
	bets, err := s.repo.GetBetsForMatch(ctx, userID, matchID)
	if err != nil {
		return nil, fmt.Errorf("list bets for match %s: %w", matchID, err)
	}

	responses := make([]BetResponse, 0, len(bets))
	for i := range bets {
		responses = append(responses, *ToBetResponse(&bets[i]))
	}
	return responses, nil
}

// GetUserBetStats returns the user's aggregate betting record
func (s *service) GetUserBetStats(ctx context.Context, userID uuid.UUID) (*BetStats, error) {
	return s.repo.GetUserBetStats(ctx, userID)
}
