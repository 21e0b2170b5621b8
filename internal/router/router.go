package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "focusbot/docs"
	"focusbot/internal/handler"
	"focusbot/internal/middleware"
	"focusbot/internal/service"
)

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Session  *handler.SessionHandler
	Chat     *handler.ChatHandler
	Document *handler.DocumentHandler
	Currency *handler.CurrencyHandler
	Video    *handler.VideoHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(sessionSvc service.SessionService, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public routes
	v1.POST("/sessions", h.Session.Create)
	v1.GET("/currencies", h.Currency.List)
	v1.POST("/currencies/convert", h.Currency.Convert)
	v1.GET("/videos/embed", h.Video.Embed)

	// Session-scoped routes - require a valid session token
	scoped := v1.Group("")
	scoped.Use(middleware.SessionMiddleware(sessionSvc))

	scoped.DELETE("/sessions", h.Session.End)

	chat := scoped.Group("/chat")
	chat.POST("/messages", h.Chat.Send)
	chat.GET("/messages", h.Chat.History)
	chat.DELETE("/messages", h.Chat.Clear)
	chat.GET("/export", h.Chat.Export)

	docs := scoped.Group("/documents")
	docs.POST("", h.Document.Upload)
	docs.GET("/current", h.Document.Current)
	docs.GET("/current/pages/:index", h.Document.Page)
	docs.POST("/current/summary", h.Document.Summarize)
	docs.GET("/current/summary.txt", h.Document.DownloadSummary)
	docs.POST("/current/questions", h.Document.Ask)

	return r
}
