package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/internal/validator"
)

// BetStructure represents how the legs of a bet combine into a payout
type BetStructure string

const (
	BetStructureSingle      BetStructure = "single"
	BetStructureAccumulator BetStructure = "accumulator"
	BetStructureSystem      BetStructure = "system"
)

// BetStatus represents the settlement state of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
	BetStatusVoid    BetStatus = "void"
)

// LegStatus represents the settlement state of a single leg
type LegStatus string

const (
	LegStatusPending LegStatus = "pending"
	LegStatusWon     LegStatus = "won"
	LegStatusLost    LegStatus = "lost"
	LegStatusVoid    LegStatus = "void"
)

// ParseSystemSpec parses a "k/n" system specification. k is the number of
// legs per combination and n the total number of legs; 1 <= k < n.
func ParseSystemSpec(spec string, numLegs int) (k int, err error) {
	parts := strings.Split(spec, "/")
	if len(parts) != 2 {
		return 0, ErrInvalidSystemSpec
	}
	k, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidSystemSpec
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidSystemSpec
	}
	if n != numLegs || k < 1 || k >= n {
		return 0, ErrInvalidSystemSpec
	}
	return k, nil
}

// FormatSystemSpec renders a "k/n" system specification string.
func FormatSystemSpec(k, n int) string {
	return fmt.Sprintf("%d/%d", k, n)
}

// Bet represents a placed wager: one or more legs combined under a structure
type Bet struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_bets_user" json:"user_id"`
	Structure       BetStructure    `gorm:"type:varchar(20);not null" json:"structure"`
	SystemSpec      string          `gorm:"type:varchar(10)" json:"system_spec,omitempty"`
	TotalStake      decimal.Decimal `gorm:"type:decimal(20,2);not null;check:total_stake > 0" json:"total_stake"`
	PotentialPayout decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"potential_payout"`
	Payout          decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"payout"`
	Status          BetStatus       `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TransactionID   uuid.UUID       `gorm:"type:uuid;not null" json:"transaction_id"`
	SettledAt       *time.Time      `gorm:"type:timestamptz" json:"settled_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Legs        []BetLeg     `gorm:"foreignKey:BetID" json:"legs,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID" json:"-"`
}

// TableName specifies the table name for Bet model
func (*Bet) TableName() string {
	return "bets"
}

// BeforeCreate sets up the model before creation
func (b *Bet) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the bet is still awaiting settlement
func (b *Bet) IsPending() bool {
	return b.Status == BetStatusPending
}

// IsSettled checks if the bet has reached a terminal state
func (b *Bet) IsSettled() bool {
	return b.Status != BetStatusPending
}

// AllLegsResolved reports whether no leg is still pending.
func (b *Bet) AllLegsResolved() bool {
	for i := range b.Legs {
		if b.Legs[i].Status == LegStatusPending {
			return false
		}
	}
	return len(b.Legs) > 0
}

// Settle moves the bet to a terminal state with the computed payout.
// A zero payout settles as lost, a payout equal to the stake on an
// all-void bet settles as void, anything else as won.
func (b *Bet) Settle(status BetStatus, payout decimal.Decimal) error {
	if !b.IsPending() {
		return ErrBetAlreadySettled
	}
	if status == BetStatusPending {
		return ErrInvalidBetStructure
	}

	now := time.Now()
	b.Status = status
	b.Payout = payout
	b.SettledAt = &now

	return nil
}

// GetProfitLoss calculates the profit or loss for this bet
func (b *Bet) GetProfitLoss() decimal.Decimal {
	if !b.IsSettled() {
		return decimal.Zero
	}
	return b.Payout.Sub(b.TotalStake)
}

// Validate performs structural validation on the bet and its legs
func (b *Bet) Validate() error {
	if b.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if b.TotalStake.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStake
	}
	if len(b.Legs) == 0 {
		return ErrInvalidBetStructure
	}

	switch b.Structure {
	case BetStructureSingle:
		if len(b.Legs) != 1 {
			return ErrInvalidBetStructure
		}
	case BetStructureAccumulator:
		if len(b.Legs) < 2 {
			return ErrInvalidBetStructure
		}
	case BetStructureSystem:
		if len(b.Legs) < 3 {
			return ErrInvalidBetStructure
		}
		if _, err := ParseSystemSpec(b.SystemSpec, len(b.Legs)); err != nil {
			return err
		}
	default:
		return ErrInvalidBetStructure
	}

	matchIDs := make([]uuid.UUID, 0, len(b.Legs))
	for i := range b.Legs {
		leg := &b.Legs[i]
		if err := leg.Validate(); err != nil {
			return err
		}
		matchIDs = append(matchIDs, leg.MatchID)
	}
	if !validator.NoDuplicates(matchIDs) {
		return ErrDuplicateLegMatch
	}
	return nil
}

// BetLeg is one selection inside a bet: a market outcome on a match at the
// price quoted when the bet was placed.
type BetLeg struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BetID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_bet_legs_bet" json:"bet_id"`
	MatchID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_bet_legs_match" json:"match_id"`
	Market           BetMarket       `gorm:"type:varchar(30);not null" json:"market"`
	Outcome          string          `gorm:"type:varchar(10);not null" json:"outcome"`
	PriceAtPlacement decimal.Decimal `gorm:"type:decimal(10,2);not null;check:price_at_placement > 1" json:"price_at_placement"`
	Status           LegStatus       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SettledAt        *time.Time      `gorm:"type:timestamptz" json:"settled_at"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	Match *Match `gorm:"foreignKey:MatchID" json:"match,omitempty"`
}

// TableName specifies the table name for BetLeg model
func (*BetLeg) TableName() string {
	return "bet_legs"
}

// BeforeCreate sets up the model before creation
func (l *BetLeg) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the leg is still awaiting resolution
func (l *BetLeg) IsPending() bool {
	return l.Status == LegStatusPending
}

// Resolve moves the leg to a terminal state.
func (l *BetLeg) Resolve(status LegStatus) error {
	if !l.IsPending() {
		return ErrLegAlreadySettled
	}
	if status == LegStatusPending {
		return ErrInvalidBetStructure
	}

	now := time.Now()
	l.Status = status
	l.SettledAt = &now

	return nil
}

// EffectivePrice returns the price a leg contributes to a combination
// payout. Void legs contribute 1.0 so they neither win nor lose money.
func (l *BetLeg) EffectivePrice() decimal.Decimal {
	if l.Status == LegStatusVoid {
		return decimal.NewFromInt(1)
	}
	return l.PriceAtPlacement
}

// Validate performs validation on a single leg
func (l *BetLeg) Validate() error {
	if l.MatchID == uuid.Nil {
		return ErrInvalidMatchID
	}
	if !ValidMarket(l.Market) {
		return ErrInvalidMarket
	}
	if !ValidOutcome(l.Market, l.Outcome) {
		return ErrInvalidOutcome
	}
	if l.PriceAtPlacement.LessThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidPrice
	}
	return nil
}
