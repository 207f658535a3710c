package odds

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/internal/cache"
	"github.com/matchday/oddsbook/internal/logger"
	"github.com/matchday/oddsbook/models"
)

// Dependencies represent the dependencies needed for the odds module
type Dependencies struct {
	DB        *gorm.DB
	Config    *Config
	OddsCache cache.Cache[*models.OddsSet]
	Logger    logger.Logger
}

func Init(r *gin.RouterGroup, deps Dependencies) {
	if deps.Config == nil {
		deps.Config = GetDefaultConfig()
	}
	if deps.OddsCache == nil {
		deps.OddsCache = cache.NewCache[*models.OddsSet](cache.MemoryBackend)
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNullLogger()
	}

	repo := NewRepository(deps.DB)
	engine := NewPricingEngine(deps.Config)
	analyzer := NewFormAnalyzer(deps.Config)

	srvs := NewService(repo, deps.Config, engine, analyzer, deps.OddsCache, deps.Logger)

	handler := NewHandler(srvs)

	matchGroup := r.Group("/matches")
	matchGroup.POST("", handler.CreateMatch)
	matchGroup.GET("", handler.ListUpcomingMatches)
	matchGroup.GET("/priced", handler.ListMatchesWithOdds)
	matchGroup.GET("/:id", handler.GetMatch)
	matchGroup.GET("/:id/odds", handler.GetMatchOdds)
	matchGroup.POST("/:id/odds", handler.GenerateOdds)

	oddsGroup := r.Group("/admin/odds")
	oddsGroup.POST("/generate", handler.GenerateUpcomingOdds)

	teamGroup := r.Group("/teams")
	teamGroup.GET("/:team_id/form", handler.GetTeamForm)
}
