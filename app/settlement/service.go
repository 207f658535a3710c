package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/app/betting"
	"github.com/matchday/oddsbook/internal/logger"
	"github.com/matchday/oddsbook/models"
)

type service struct {
	db        *gorm.DB
	repo      Repository
	config    *Config
	logger    logger.Logger
	validator *validator.Validate
}

// NewService creates a new settlement service
func NewService(db *gorm.DB, repo Repository, config *Config, log logger.Logger) Service {
	return &service{
		db:        db,
		repo:      repo,
		config:    config,
		logger:    log,
		validator: validator.New(),
	}
}

// SettleMatch records the final score and grades every pending bet touching
// the match. Redelivering the same result is safe: the status-gated updates
// turn the second pass into a no-op.
func (s *service) SettleMatch(ctx context.Context, matchID uuid.UUID, req *RecordResultRequest) (*SettlementReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	match, err := s.recordResult(ctx, matchID, req)
	if err != nil {
		return nil, err
	}

	report, err := s.settlePendingBets(ctx, match)
	if err != nil {
		return nil, err
	}

	s.logger.Info("match settled", map[string]interface{}{
		"match_id":      match.ID.String(),
		"home_score":    req.HomeScore,
		"away_score":    req.AwayScore,
		"bets_examined": report.BetsExamined,
		"bets_settled":  report.BetsSettled,
	})
	return report, nil
}

// VoidMatch abandons a match: every pending leg on it goes void and fully
// resolved bets are refunded or re-graded with the void legs at price 1.0.
func (s *service) VoidMatch(ctx context.Context, matchID uuid.UUID) (*SettlementReport, error) {
	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get match %s: %w", matchID, err)
	}
	if match.IsFinal() {
		return nil, models.ErrMatchAlreadyFinal
	}

	if !match.IsVoided() {
		match.Status = models.MatchStatusVoided
		if err := s.repo.UpdateMatch(ctx, match); err != nil {
			return nil, fmt.Errorf("void match %s: %w", matchID, err)
		}
	}

	report, err := s.settlePendingBets(ctx, match)
	if err != nil {
		return nil, err
	}

	s.logger.Info("match voided", map[string]interface{}{
		"match_id":      match.ID.String(),
		"bets_examined": report.BetsExamined,
		"bets_settled":  report.BetsSettled,
	})
	return report, nil
}

// recordResult moves the match to completed with the submitted score. A
// match that is already final with the same score passes through so the
// settlement pass can be retried.
func (s *service) recordResult(ctx context.Context, matchID uuid.UUID, req *RecordResultRequest) (*models.Match, error) {
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
	if match.IsFinal() {
		if *match.HomeScore != req.HomeScore || *match.AwayScore != req.AwayScore {
			return nil, models.ErrMatchAlreadyFinal
		}
		return match, nil
	}

	home, away := req.HomeScore, req.AwayScore
	match.HomeScore = &home
	match.AwayScore = &away
	match.Status = models.MatchStatusCompleted
	if err := match.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("record result for match %s: %w", matchID, err)
	}
	return match, nil
}

// settlePendingBets runs the per-bet settlement loop. Each bet settles in
// its own transaction so one failure never blocks the rest of the batch.
func (s *service) settlePendingBets(ctx context.Context, match *models.Match) (*SettlementReport, error) {
	bets, err := s.repo.GetPendingBetsForMatch(ctx, match.ID, s.config.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("load pending bets for match %s: %w", match.ID, err)
	}

	report := &SettlementReport{MatchID: match.ID}
	for i := range bets {
		bet := &bets[i]
		report.BetsExamined++

		settled, legsResolved, err := s.settleBet(ctx, match, bet)
		report.LegsResolved += legsResolved
		if err != nil {
			s.logger.Error(err, map[string]interface{}{
				"bet_id":   bet.ID.String(),
				"match_id": match.ID.String(),
			})
			report.Failures = append(report.Failures, SettlementFailure{
				BetID: bet.ID,
				Error: err.Error(),
			})
			continue
		}
		if settled {
			report.BetsSettled++
		} else {
			report.BetsStillOpen++
		}
	}
	return report, nil
}

// settleBet resolves the bet's legs on this match and, once every leg is
// terminal, pays it out. Everything runs in one transaction.
func (s *service) settleBet(ctx context.Context, match *models.Match, bet *models.Bet) (settled bool, legsResolved int, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		resolved, resolveErr := s.resolveLegs(ctx, repoTx, match, bet)
		if resolveErr != nil {
			return resolveErr
		}
		legsResolved = resolved

		if !bet.AllLegsResolved() {
			return nil
		}

		done, payErr := s.executePayout(ctx, repoTx, match, bet)
		if payErr != nil {
			return payErr
		}
		settled = done
		return nil
	})
	return settled, legsResolved, err
}

// resolveLegs grades every pending leg of the bet that was struck on this
// match. Legs on other matches keep whatever status they already have.
func (s *service) resolveLegs(ctx context.Context, repoTx Repository, match *models.Match, bet *models.Bet) (int, error) {
	resolved := 0
	for i := range bet.Legs {
		leg := &bet.Legs[i]
		if leg.MatchID != match.ID || !leg.IsPending() {
			continue
		}

		status, err := ResolveLeg(leg, match)
		if err != nil {
			return resolved, fmt.Errorf("resolve leg %s: %w", leg.ID, err)
		}

		ok, err := repoTx.ResolveLeg(ctx, leg.ID, status)
		if err != nil {
			return resolved, fmt.Errorf("persist leg %s: %w", leg.ID, err)
		}
		if ok {
			leg.Status = status
			resolved++
		}
	}
	return resolved, nil
}

// executePayout settles the bet record, writes the audit settlement and, for
// winning and voided bets, credits the wallet through the ledger. The
// status-gated bet update makes a concurrent duplicate pass a clean no-op.
func (s *service) executePayout(ctx context.Context, repoTx Repository, match *models.Match, bet *models.Bet) (bool, error) {
	ticket, err := betting.TicketFromBet(bet)
	if err != nil {
		return false, fmt.Errorf("rebuild ticket for bet %s: %w", bet.ID, err)
	}

	statuses := make([]models.LegStatus, len(bet.Legs))
	for i := range bet.Legs {
		statuses[i] = bet.Legs[i].Status
	}
	payout := ticket.SettledPayout(statuses)
	status := betStatusFor(bet.Legs, payout.GreaterThan(decimal.Zero))

	if err := bet.Settle(status, payout); err != nil {
		return false, err
	}
	ok, err := repoTx.SettleBet(ctx, bet)
	if err != nil {
		return false, fmt.Errorf("settle bet %s: %w", bet.ID, err)
	}
	if !ok {
		// another pass already settled and paid this bet
		return false, nil
	}

	record := s.settlementRecord(match, bet, payout)
	if err := repoTx.CreateSettlement(ctx, record); err != nil {
		return false, fmt.Errorf("create settlement for bet %s: %w", bet.ID, err)
	}

	if payout.GreaterThan(decimal.Zero) {
		if err := s.creditPayout(ctx, repoTx, bet, record, payout); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *service) settlementRecord(match *models.Match, bet *models.Bet, payout decimal.Decimal) *models.BetSettlement {
	switch bet.Status {
	case models.BetStatusWon:
		return models.CreateWinSettlement(bet.ID, bet.UserID, match.ID, bet.TotalStake, payout)
	case models.BetStatusVoid:
		return models.CreateRefundSettlement(bet.ID, bet.UserID, match.ID, bet.TotalStake)
	default:
		return models.CreateLossSettlement(bet.ID, bet.UserID, match.ID, bet.TotalStake)
	}
}

// creditPayout moves the payout onto the wallet under a row lock and links
// the ledger transaction back to the settlement record.
func (s *service) creditPayout(ctx context.Context, repoTx Repository, bet *models.Bet, record *models.BetSettlement, payout decimal.Decimal) error {
	wallet, err := repoTx.GetUserWalletForUpdate(ctx, bet.UserID)
	if err != nil {
		return fmt.Errorf("get wallet for bet %s payout: %w", bet.ID, err)
	}

	var ledgerTx *models.Transaction
	if bet.Status == models.BetStatusVoid {
		ledgerTx = models.CreateBetRefundTransaction(bet.UserID, wallet.ID, payout, wallet.Balance, bet.ID)
	} else {
		ledgerTx = models.CreatePayoutTransaction(bet.UserID, wallet.ID, payout, wallet.Balance, record.ID)
	}
	if err := repoTx.CreateTransaction(ctx, ledgerTx); err != nil {
		return fmt.Errorf("create payout ledger transaction: %w", err)
	}

	if err := wallet.Credit(payout); err != nil {
		return fmt.Errorf("credit wallet for bet %s: %w", bet.ID, err)
	}
	if err := repoTx.UpdateWallet(ctx, wallet); err != nil {
		return fmt.Errorf("update wallet for bet %s: %w", bet.ID, err)
	}

	record.TransactionID = &ledgerTx.ID
	return repoTx.UpdateSettlement(ctx, record)
}
