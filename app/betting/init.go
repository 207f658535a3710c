package betting

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/internal/logger"
)

// Dependencies represent the dependencies needed for the betting module
type Dependencies struct {
	DB     *gorm.DB
	Config *Config
	Logger logger.Logger
}

func Init(r *gin.RouterGroup, deps Dependencies) {
	if deps.Config == nil {
		deps.Config = GetDefaultConfig()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNullLogger()
	}

	repo := NewRepository(deps.DB)

	srvs := NewService(deps.DB, repo, deps.Config, deps.Logger)

	handler := NewHandler(srvs)

	betsGroup := r.Group("/bets")
	betsGroup.POST("", handler.PlaceBet)
	betsGroup.GET("", handler.GetMyBets)
	betsGroup.GET("/stats", handler.GetMyStats)
	betsGroup.GET("/match/:match_id", handler.GetMyBetsForMatch)
	betsGroup.GET("/:id", handler.GetBetByID)
}
