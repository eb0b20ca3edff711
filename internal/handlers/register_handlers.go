package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fintelis/erp_backend/cmd/docs"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/middleware"
	"github.com/fintelis/erp_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, services)

	// Authenticated API
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (disabled in production)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Company-scoped entities sit behind the scope
// middleware; user and company management only need authentication.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.UserSvc)
	registerCompanyRoutes(v1, services.CompanySvc)

	scoped := v1.Group("", middleware.CompanyScopeMiddleware())
	registerContactRoutes(scoped, services.ContactSvc)
	registerBankAccountRoutes(scoped, services.BankAccountSvc)
	registerCategoryRoutes(scoped, services.CategorySvc)
	registerTransactionRoutes(scoped, services.LedgerSvc)
	registerSettlementRoutes(scoped, services.SettlementSvc)
	registerRecurringRoutes(scoped, services.RecurrenceSvc)
	registerStockRoutes(scoped, services.StockSvc)
	registerNotificationRoutes(scoped, services.NotificationSvc)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
