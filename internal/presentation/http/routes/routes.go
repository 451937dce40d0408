package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/config"
	domainRepo "github.com/sangkips/gopos-api/internal/domain/repository"
	"github.com/sangkips/gopos-api/internal/domain/policy"
	"github.com/sangkips/gopos-api/internal/presentation/http/handler"
	"github.com/sangkips/gopos-api/internal/presentation/http/middleware"
	"github.com/sangkips/gopos-api/pkg/utils"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sangkips/gopos-api/docs"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Item     *handler.ItemHandler
	Modifier *handler.ModifierHandler
	Order    *handler.OrderHandler
	Report   *handler.ReportHandler
	Client   *handler.ClientHandler
	Employee *handler.EmployeeHandler
	Printer  *handler.PrinterHandler
	Health   *handler.HealthHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.UseJSONFieldNames()

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfigFor(
			deps.Cfg.RateLimit.Requests,
			deps.Cfg.RateLimit.Duration,
		))
	}

	router.GET("/health", h.Health.Check)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health.Check)

		// Public routes, limited per client IP
		public := api.Group("")
		public.Use(rateLimiter.Middleware())
		public.POST("/login", h.Auth.Login)
		public.POST("/refresh", h.Auth.RefreshToken)

		// Protected routes, limited per tenant
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	can := middleware.Authorize

	rg.GET("/me", h.Auth.Me)
	rg.PUT("/me/password", h.Auth.ChangePassword)

	// Everything below works inside the caller's tenant
	tenant := rg.Group("")
	tenant.Use(middleware.RequireTenant())

	categories := tenant.Group("/categories")
	{
		categories.GET("", can(policy.ActionRead, policy.ResourceCatalog), h.Category.List)
		categories.POST("", can(policy.ActionCreate, policy.ResourceCatalog), h.Category.Create)
		categories.PUT("/:id", can(policy.ActionUpdate, policy.ResourceCatalog), h.Category.Update)
		categories.DELETE("/:id", can(policy.ActionDelete, policy.ResourceCatalog), h.Category.Delete)
	}

	items := tenant.Group("/items")
	{
		items.GET("", can(policy.ActionRead, policy.ResourceCatalog), h.Item.List)
		items.GET("/:id", can(policy.ActionRead, policy.ResourceCatalog), h.Item.Get)
		items.POST("", can(policy.ActionCreate, policy.ResourceCatalog), h.Item.Create)
		items.PUT("/:id", can(policy.ActionUpdate, policy.ResourceCatalog), h.Item.Update)
		items.PUT("/:id/stock", can(policy.ActionUpdate, policy.ResourceCatalog), h.Item.UpdateStock)
		items.DELETE("/:id", can(policy.ActionDelete, policy.ResourceCatalog), h.Item.Delete)
	}

	modifiers := tenant.Group("/modifiers")
	{
		modifiers.GET("", can(policy.ActionRead, policy.ResourceCatalog), h.Modifier.List)
		modifiers.POST("", can(policy.ActionCreate, policy.ResourceCatalog), h.Modifier.Create)
		modifiers.PUT("/:id", can(policy.ActionUpdate, policy.ResourceCatalog), h.Modifier.Update)
		modifiers.DELETE("/:id", can(policy.ActionDelete, policy.ResourceCatalog), h.Modifier.Delete)
	}

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	orders := tenant.Group("/orders")
	{
		orders.POST("", can(policy.ActionCreate, policy.ResourceOrders), idempotency, h.Order.Create)
		orders.GET("", can(policy.ActionRead, policy.ResourceOrders), h.Order.List)
		orders.GET("/:id", can(policy.ActionRead, policy.ResourceOrders), h.Order.Get)
		orders.POST("/:id/return-item", can(policy.ActionReturn, policy.ResourceOrders), h.Order.ReturnItems)
		orders.POST("/:id/refund", can(policy.ActionRefund, policy.ResourceOrders), h.Order.Refund)
		orders.POST("/:id/return", can(policy.ActionRefund, policy.ResourceOrders), h.Order.Refund)
		orders.POST("/:id/print", can(policy.ActionPrint, policy.ResourceOrders), h.Printer.PrintOrder)
	}

	tenant.GET("/orders-list", can(policy.ActionRead, policy.ResourceReports), h.Report.OrdersList)
	tenant.GET("/sales-report", can(policy.ActionRead, policy.ResourceReports), h.Report.SalesReport)

	employees := tenant.Group("/employees")
	{
		employees.GET("", can(policy.ActionRead, policy.ResourceEmployees), h.Employee.List)
		employees.POST("", can(policy.ActionCreate, policy.ResourceEmployees), h.Employee.Create)
		employees.PUT("/:id", can(policy.ActionUpdate, policy.ResourceEmployees), h.Employee.Update)
		employees.DELETE("/:id", can(policy.ActionDelete, policy.ResourceEmployees), h.Employee.Delete)
	}

	clients := rg.Group("/clients")
	{
		clients.GET("", can(policy.ActionRead, policy.ResourceClients), h.Client.List)
		clients.POST("", can(policy.ActionCreate, policy.ResourceClients), h.Client.Create)
		clients.PUT("/:id", can(policy.ActionUpdate, policy.ResourceClients), h.Client.Update)
		clients.PUT("/:id/reset-password", can(policy.ActionUpdate, policy.ResourceClients), h.Client.ResetPassword)
		clients.DELETE("/:id", can(policy.ActionDelete, policy.ResourceClients), h.Client.Delete)
	}

	rg.GET("/printer/status", can(policy.ActionRead, policy.ResourcePrinter), h.Printer.GetStatus)
}
