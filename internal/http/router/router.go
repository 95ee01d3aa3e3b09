package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokohub/rfq-backend/internal/config"
	"github.com/sokohub/rfq-backend/internal/http/handlers"
	"github.com/sokohub/rfq-backend/internal/http/middleware"
	v2handler "github.com/sokohub/rfq-backend/internal/interface/http/handler"
	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	rfqHandler *handlers.RFQHandler,
	quoteHandler *handlers.QuoteHandler,
	comparisonHandler *handlers.ComparisonHandler,
	vendorHandler *handlers.VendorHandler,
	notificationHandler *handlers.NotificationHandler,
	mediaHandler *handlers.MediaHandler,
	statsHandler *handlers.StatsHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	wsHandler *handlers.WSHandler,
	tokenManager *service.TokenManager,
	// Clean Architecture слой
	v2QuoteHandler *v2handler.QuoteHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/sessions", authHandler.ListSessions)
		protectedAuth.DELETE("/sessions/:id", authHandler.DeleteSession)
	}

	// Публичные маршруты
	api.GET("/rfqs", rfqHandler.ListPublic)
	api.GET("/ws", wsHandler.Handle)
	api.GET("/vendors/:id", middleware.UUIDValidator("id"), vendorHandler.Get)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/stats", statsHandler.GetMyStats)

		protected.POST("/rfqs", rfqHandler.Create)
		protected.GET("/rfqs/my", rfqHandler.ListMy)
		protected.GET("/rfqs/:id", middleware.UUIDValidator("id"), rfqHandler.Get)
		protected.PUT("/rfqs/:id", middleware.UUIDValidator("id"), rfqHandler.Update)
		protected.DELETE("/rfqs/:id", middleware.UUIDValidator("id"), rfqHandler.Delete)
		protected.POST("/rfqs/:id/close", middleware.UUIDValidator("id"), rfqHandler.Close)

		// Страница сравнения котировок и экспорт
		protected.GET("/rfqs/:id/comparison", middleware.UUIDValidator("id"), comparisonHandler.Get)
		protected.GET("/rfqs/:id/export/csv", middleware.UUIDValidator("id"), comparisonHandler.ExportCSV)
		protected.GET("/rfqs/:id/export/pdf", middleware.UUIDValidator("id"), comparisonHandler.ExportPDF)

		// Котировки
		protected.POST("/rfqs/:id/quotes", middleware.UUIDValidator("id"), quoteHandler.Submit)
		protected.GET("/quotes/my", quoteHandler.ListMy)
		protected.PUT("/quotes/:id", middleware.UUIDValidator("id"), quoteHandler.UpdateMy)
		protected.POST("/quotes/:id/accept", middleware.UUIDValidator("id"), comparisonHandler.Accept)
		protected.POST("/quotes/:id/reject", middleware.UUIDValidator("id"), comparisonHandler.Reject)
		protected.POST("/quotes/:id/assign", middleware.UUIDValidator("id"), comparisonHandler.Assign)

		// Проекты
		protected.GET("/projects", comparisonHandler.Projects)
		protected.GET("/projects/:id", middleware.UUIDValidator("id"), comparisonHandler.GetProject)

		// Карточка поставщика
		protected.GET("/vendors/me", vendorHandler.GetMy)
		protected.PUT("/vendors/me", vendorHandler.UpdateMy)

		// Уведомления
		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread/count", notificationHandler.CountUnread)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.DELETE("/notifications/:id", middleware.UUIDValidator("id"), notificationHandler.Delete)

		// Файлы
		protected.POST("/media", mediaHandler.Upload)
		protected.DELETE("/media/:id", middleware.UUIDValidator("id"), mediaHandler.Delete)
	}

	// Админские маршруты
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireRole(models.RoleAdmin))
	{
		admin.PUT("/vendors/:id/rating", middleware.UUIDValidator("id"), vendorHandler.SetRating)
		admin.PUT("/vendors/:id/verified", middleware.UUIDValidator("id"), vendorHandler.SetVerified)
	}

	// === Clean Architecture endpoints ===
	v2 := api.Group("/v2")
	v2.Use(middleware.AuthMiddleware(tokenManager))
	{
		v2.GET("/rfqs/:id/comparison", middleware.UUIDValidator("id"), v2QuoteHandler.GetComparison)
		v2.PUT("/quotes/:id/status", middleware.UUIDValidator("id"), v2QuoteHandler.UpdateQuoteStatus)
		v2.POST("/quotes/:id/assign", middleware.UUIDValidator("id"), v2QuoteHandler.AssignJob)
	}

	return r
}
