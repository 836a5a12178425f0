package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/config"
	"github.com/sangkips/pos-api/internal/presentation/http/handler"
	"github.com/sangkips/pos-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product     *handler.ProductHandler
	Transaction *handler.TransactionHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg         *config.Config
	Logger      *zap.Logger
	RateLimiter *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	pos := router.Group("")
	if deps.RateLimiter != nil {
		pos.Use(deps.RateLimiter.Middleware())
	}
	registerPOSRoutes(pos, h)

	return router
}

func registerPOSRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/lookup", h.Product.Lookup)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.Transaction.Create)
		transactions.GET("/:id", h.Transaction.Get)
	}
}
