package suites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/matchday/oddsbook/models"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// PostgresContainer wraps a throwaway postgres instance for one test suite.
type PostgresContainer struct {
	testcontainers.Container
	ConnectionString string
}

func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	const port = "5432/tcp"

	dbURL := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	}

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17.5-alpine3.21",
		ExposedPorts: []string{port},
		Cmd:          []string{"postgres", "-c", "fsync=off"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_USER":     "testuser",
		},
		WaitingFor: wait.ForSQL(port, "postgres", dbURL).
			WithStartupTimeout(30 * time.Second).
			WithQuery("SELECT 1"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &PostgresContainer{
		Container:        container,
		ConnectionString: dbURL(host, mappedPort),
	}, nil
}

// RepositoryTestSuite runs the module migrations against a containerized
// postgres and wipes the tables between tests. Embed it and use the seed
// helpers to arrange fixtures, wallets and bets.
type RepositoryTestSuite struct {
	suite.Suite
	Container *PostgresContainer
	DB        *gorm.DB
	sqlDB     *sql.DB
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.T().Helper()

	if testing.Short() {
		s.T().Skip("Skipping database integration tests in short mode")
	}

	ctx := context.Background()
	container, err := NewPostgresContainer(ctx)
	if err != nil {
		s.T().Fatalf("Failed to create postgres container: %v", err)
	}
	s.Container = container

	sqlDB, err := sql.Open("postgres", container.ConnectionString)
	if err != nil {
		s.T().Fatalf("Failed to open sql connection: %v", err)
	}
	s.sqlDB = sqlDB
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		s.T().Fatalf("Failed to ping database: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		s.T().Fatalf("Failed to open gorm connection: %v", err)
	}
	s.DB = gormDB

	if err := s.runMigrations(); err != nil {
		s.T().Fatalf("Failed to run migrations: %v", err)
	}

	s.T().Cleanup(func() {
		if s.sqlDB != nil {
			_ = s.sqlDB.Close()
		}
		if s.Container != nil {
			_ = s.Container.Terminate(context.Background())
		}
	})
}

func (s *RepositoryTestSuite) runMigrations() error {
	path := findMigrationsPath()
	if path == "" {
		return errors.New("migrations directory not found")
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", path), s.Container.ConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// findMigrationsPath walks up to the module root and returns its
// migrations directory.
func findMigrationsPath() string {
	wd, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return filepath.Join(wd, "migrations")
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return ""
		}
		wd = parent
	}
}

// BeforeTest wipes the domain tables so every test starts from an empty book.
func (s *RepositoryTestSuite) BeforeTest(_, _ string) {
	if s.DB == nil {
		return
	}
	// child tables first, FK order
	for _, table := range []string{
		"bet_settlements", "bet_legs", "bets", "transactions", "wallets", "odds_lines", "matches",
	} {
		s.DB.Exec(fmt.Sprintf(`DELETE FROM %q`, table))
	}
}

func (s *RepositoryTestSuite) CountRecords(table string) int64 {
	var c int64
	s.DB.Table(table).Count(&c)
	return c
}

// SeedMatch inserts a fixture. A past kickoff with scores set makes it
// completed; pass nil scores for a scheduled one.
func (s *RepositoryTestSuite) SeedMatch(kickoff time.Time, status models.MatchStatus, homeScore, awayScore *int) *models.Match {
	match := &models.Match{
		HomeTeamID: uuid.New(),
		AwayTeamID: uuid.New(),
		HomeTeam:   "Home FC",
		AwayTeam:   "Away FC",
		KickoffAt:  kickoff,
		Status:     status,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
	}
	s.Require().NoError(s.DB.Create(match).Error)
	return match
}

// SeedWallet inserts a wallet holding the given balance.
func (s *RepositoryTestSuite) SeedWallet(userID uuid.UUID, balance decimal.Decimal) *models.Wallet {
	wallet := &models.Wallet{
		UserID:       userID,
		CurrencyCode: models.DefaultCurrencyCode,
		Balance:      balance,
	}
	s.Require().NoError(s.DB.Create(wallet).Error)
	return wallet
}

// SeedOddsLine inserts one stored price for a match.
func (s *RepositoryTestSuite) SeedOddsLine(matchID uuid.UUID, market models.BetMarket, outcome string, price decimal.Decimal, generatedAt time.Time) *models.OddsLine {
	line := &models.OddsLine{
		MatchID:            matchID,
		Market:             market,
		Outcome:            outcome,
		Price:              price,
		ImpliedProbability: decimal.NewFromInt(1).Div(price).Round(4),
		Margin:             decimal.NewFromFloat(0.05),
		GeneratedAt:        generatedAt,
	}
	s.Require().NoError(s.DB.Create(line).Error)
	return line
}

// SeedPlacedBet inserts a pending single on the match, with the wallet
// debit transaction the bets table references.
func (s *RepositoryTestSuite) SeedPlacedBet(wallet *models.Wallet, matchID uuid.UUID, outcome string, stake, price decimal.Decimal) *models.Bet {
	ledgerTx := models.CreateBetTransaction(wallet.UserID, wallet.ID, stake, wallet.Balance, uuid.Nil)
	s.Require().NoError(s.DB.Create(ledgerTx).Error)

	bet := &models.Bet{
		UserID:          wallet.UserID,
		Structure:       models.BetStructureSingle,
		TotalStake:      stake,
		PotentialPayout: stake.Mul(price).Round(2),
		Status:          models.BetStatusPending,
		TransactionID:   ledgerTx.ID,
		Legs: []models.BetLeg{{
			MatchID:          matchID,
			Market:           models.Market1X2,
			Outcome:          outcome,
			PriceAtPlacement: price,
			Status:           models.LegStatusPending,
		}},
	}
	s.Require().NoError(s.DB.Create(bet).Error)
	return bet
}
