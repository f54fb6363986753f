package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trayd-platform/trayd_service/internal/api/handlers"
	"github.com/trayd-platform/trayd_service/internal/api/middleware"
	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	"github.com/trayd-platform/trayd_service/internal/infrastructure/config"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Core     *handlers.CoreHandler
	Wallet   *handlers.WalletHandler
	Funding  *handlers.FundingHandler
	Purchase *handlers.PurchaseHandler
	Report   *handlers.ReportHandler
	Team     *handlers.TeamHandler
	Profile  *handlers.ProfileHandler
}

// Setup builds the router with the full middleware chain and all routes.
func Setup(cfg *config.Config, h Handlers, log *logger.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// "walletcategory" rejects unknown bucket names at bind time
		_ = v.RegisterValidation("walletcategory", func(fl validator.FieldLevel) bool {
			return entities.WalletCategory(fl.Field().String()).IsValid()
		})
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Metrics(),
		middleware.RateLimit(cfg.Server.RateLimitPerMin),
	)

	router.GET("/health", h.Core.Health)
	router.GET("/ready", h.Core.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Authentication(cfg.JWT))
	{
		wallets := v1.Group("/wallets")
		{
			wallets.GET("", h.Wallet.GetWallets)
			wallets.POST("/transfer", h.Wallet.Transfer)
			wallets.POST("/withdraw", h.Wallet.Withdraw)
			wallets.GET("/transfers", h.Wallet.GetTransferHistory)
			wallets.GET("/withdrawals", h.Wallet.GetWithdrawalHistory)
		}

		funding := v1.Group("/funding")
		{
			funding.POST("/deposits", h.Funding.Deposit)
			funding.GET("/deposits", h.Funding.GetDepositHistory)
			funding.GET("/income", h.Funding.GetIncomeFeed)
		}

		packages := v1.Group("/packages")
		{
			packages.GET("", h.Purchase.ListPackages)
			packages.POST("/purchase", h.Purchase.Purchase)
			packages.GET("/history", h.Purchase.GetPurchaseHistory)
			packages.GET("/active-total", h.Purchase.GetActiveTotal)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/income/:type", h.Report.GetIncomeReport)
			reports.GET("/trading-activity", h.Report.GetTradingActivity)
		}

		team := v1.Group("/team")
		{
			team.GET("/referrals", h.Team.GetDirectReferrals)
			team.GET("/genealogy", h.Team.GetGenealogy)
		}

		v1.GET("/profile", h.Profile.GetProfile)
		v1.PATCH("/profile", h.Profile.UpdateProfile)
	}

	return router
}
