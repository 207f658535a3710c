package wallet

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies represent the dependencies needed for the wallet module
type Dependencies struct {
	DB *gorm.DB
}

func Init(r *gin.RouterGroup, deps Dependencies) {
	repo := NewRepository(deps.DB)

	srv := NewService(repo, deps.DB)

	handler := NewHandler(srv)

	walletGroup := r.Group("/wallet")
	walletGroup.GET("", handler.GetMyWallet)
	walletGroup.POST("/deposit", handler.Deposit)
	walletGroup.POST("/withdraw", handler.Withdraw)
	walletGroup.GET("/transactions", handler.GetMyTransactions)
}
