package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/matchday/oddsbook/app"
	"github.com/matchday/oddsbook/app/api"
	"github.com/matchday/oddsbook/app/betting"
	"github.com/matchday/oddsbook/app/database"
	"github.com/matchday/oddsbook/app/odds"
	"github.com/matchday/oddsbook/app/settlement"
	"github.com/matchday/oddsbook/app/wallet"
	"github.com/matchday/oddsbook/internal/cache"
	"github.com/matchday/oddsbook/internal/deps"
	"github.com/matchday/oddsbook/internal/logger"
	"github.com/matchday/oddsbook/internal/router"
	"github.com/matchday/oddsbook/models"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	appLogger := logger.NewZeroLogger()
	oddsCache := newOddsCache()

	container := deps.NewContainer(db, appLogger, oddsCache)

	r := gin.Default()
	r.Use(api.CorsMiddleware())
	r.GET("/api/v1/healthz", api.HealthCheck)

	mounter := router.NewMounter(container)

	// Odds and matches are readable without a caller identity; odds
	// generation is an operator surface in front of the same module.
	mounter.Public(r).
		Mount(func(g *gin.RouterGroup, c *deps.Container) {
			odds.Init(g, odds.Dependencies{
				DB:        c.DB,
				Config:    &cfg.Odds,
				OddsCache: c.OddsCache,
				Logger:    c.Logger,
			})
		}).
		Mount(func(g *gin.RouterGroup, c *deps.Container) {
			settlement.Init(g, settlement.Dependencies{
				DB:     c.DB,
				Config: &cfg.Settlement,
				Logger: c.Logger,
			})
		})

	// Bets and wallets act on behalf of the caller the proxy identified
	mounter.Identified(r, api.UserIdentity()).
		Mount(func(g *gin.RouterGroup, c *deps.Container) {
			betting.Init(g, betting.Dependencies{
				DB:     c.DB,
				Config: &cfg.Betting,
				Logger: c.Logger,
			})
		}).
		Mount(func(g *gin.RouterGroup, c *deps.Container) {
			wallet.Init(g, wallet.Dependencies{DB: c.DB})
		})

	addr := fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	appLogger.Info("starting server", map[string]interface{}{
		"addr": addr,
		"env":  cfg.Env,
	})
	if err := r.Run(addr); err != nil {
		log.Fatal("Server failed:", err)
	}
}

// newOddsCache picks the cache backend from the environment: redis when an
// address is configured, in-process memory otherwise.
func newOddsCache() cache.Cache[*models.OddsSet] {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return cache.NewCache[*models.OddsSet](cache.RedisBackend, &cache.RedisOptions{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
	}
	return cache.NewCache[*models.OddsSet](cache.MemoryBackend)
}
