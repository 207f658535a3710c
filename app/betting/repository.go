package betting

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matchday/oddsbook/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new betting repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// CreateBet persists a bet together with its legs
func (r *repository) CreateBet(ctx context.Context, bet *models.Bet) error {
	return r.db.WithContext(ctx).Create(bet).Error
}

// GetBetByID returns a bet by ID with its legs
func (r *repository) GetBetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	var bet models.Bet
	err := r.db.WithContext(ctx).
		Preload("Legs").
		Where("id = ?", id).
		First(&bet).Error
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// GetBetsByUser returns paginated bets for a user with filters
func (r *repository) GetBetsByUser(ctx context.Context, userID uuid.UUID, filters *BetFilters) ([]models.Bet, int64, error) {
	var bets []models.Bet
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Bet{}).Where("user_id = ?", userID)
	query = r.applyBetFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = r.applyBetSorting(query, filters)
	query = r.applyBetPagination(query, filters)
	query = query.Preload("Legs")

	err := query.Find(&bets).Error
	return bets, total, err
}

// GetBetsForMatch returns a user's bets that have a leg on the match,
// any status, legs preloaded.
func (r *repository) GetBetsForMatch(ctx context.Context, userID, matchID uuid.UUID) ([]models.Bet, error) {
	var bets []models.Bet
	err := r.db.WithContext(ctx).
		Preload("Legs").
		Where("user_id = ? AND id IN (?)", userID,
			r.db.Model(&models.BetLeg{}).Select("bet_id").Where("match_id = ?", matchID)).
		Order("created_at DESC").
		Find(&bets).Error
	return bets, err
}

// GetUserBetStats aggregates a user's betting record
func (r *repository) GetUserBetStats(ctx context.Context, userID uuid.UUID) (*BetStats, error) {
	type row struct {
		Status      models.BetStatus
		Count       int64
		TotalStake  decimal.Decimal
		TotalPayout decimal.Decimal
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Bet{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_stake), 0) AS total_stake, COALESCE(SUM(payout), 0) AS total_payout").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &BetStats{
		TotalStaked: decimal.Zero,
		TotalPayout: decimal.Zero,
	}
	for _, agg := range rows {
		stats.TotalBets += agg.Count
		stats.TotalStaked = stats.TotalStaked.Add(agg.TotalStake)
		stats.TotalPayout = stats.TotalPayout.Add(agg.TotalPayout)
		switch agg.Status {
		case models.BetStatusPending:
			stats.PendingBets = agg.Count
		case models.BetStatusWon:
			stats.WonBets = agg.Count
		case models.BetStatusLost:
			stats.LostBets = agg.Count
		case models.BetStatusVoid:
			stats.VoidBets = agg.Count
		}
	}

	stats.NetProfit = stats.TotalPayout.Sub(stats.TotalStaked)
	settled := stats.WonBets + stats.LostBets
	if settled > 0 {
		stats.HitRate = decimal.NewFromInt(stats.WonBets).
			Div(decimal.NewFromInt(settled)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	} else {
		stats.HitRate = decimal.Zero
	}
	return stats, nil
}

// GetMatchesByIDs returns the requested matches keyed by ID
func (r *repository) GetMatchesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID]*models.Match, len(matches))
	for i := range matches {
		result[matches[i].ID] = &matches[i]
	}
	return result, nil
}

// GetOddsLinesForMatches returns every stored odds line for the matches
func (r *repository) GetOddsLinesForMatches(ctx context.Context, matchIDs []uuid.UUID) ([]models.OddsLine, error) {
	var lines []models.OddsLine
	err := r.db.WithContext(ctx).
		Where("match_id IN ?", matchIDs).
		Find(&lines).Error
	return lines, err
}

// GetUserWalletForUpdate loads the user's wallet under a row lock so a
// concurrent placement cannot double-spend the balance.
func (r *repository) GetUserWalletForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// CreateWallet persists a fresh wallet on first touch
func (r *repository) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

// UpdateWallet saves a wallet
func (r *repository) UpdateWallet(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Save(wallet).Error
}

// CreateTransaction records a wallet movement
func (r *repository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// UpdateTransaction saves a transaction
func (r *repository) UpdateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

func (r *repository) applyBetFilters(query *gorm.DB, filters *BetFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Structure != nil {
		query = query.Where("structure = ?", *filters.Structure)
	}
	if filters.MatchID != nil {
		query = query.Where("id IN (?)",
			r.db.Model(&models.BetLeg{}).Select("bet_id").Where("match_id = ?", *filters.MatchID))
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}

func (r *repository) applyBetSorting(query *gorm.DB, filters *BetFilters) *gorm.DB {
	sortBy := "created_at"
	sortOrder := "DESC"
	if filters != nil {
		switch filters.SortBy {
		case "total_stake", "payout", "created_at":
			sortBy = filters.SortBy
		}
		if filters.SortOrder == "asc" {
			sortOrder = "ASC"
		}
	}
	return query.Order(sortBy + " " + sortOrder)
}

func (r *repository) applyBetPagination(query *gorm.DB, filters *BetFilters) *gorm.DB {
	page, perPage := 1, 20
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PerPage > 0 {
			perPage = filters.PerPage
		}
	}
	return query.Offset((page - 1) * perPage).Limit(perPage)
}
