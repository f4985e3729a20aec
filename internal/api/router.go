package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crmlite/crm-api/internal/api/handler"
	"github.com/crmlite/crm-api/internal/api/middleware"
	"github.com/crmlite/crm-api/internal/core/service"
	crmmongo "github.com/crmlite/crm-api/internal/infrastructure/db/mongo"
	crmredis "github.com/crmlite/crm-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Dependencies ---
	userRepo := crmmongo.NewUserRepository(db)
	clientRepo := crmmongo.NewClientRepository(db)
	noteRepo := crmmongo.NewNoteRepository(db)
	guard := crmredis.NewSubmissionGuard(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, tokenTTL, log)
	clientService := service.NewClientService(clientRepo, noteRepo, userRepo, guard, log)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	noteHandler := handler.NewNoteHandler(clientService)

	// --- Auth routes (no token required) ---
	e.POST("/auth/signup", authHandler.Register)
	e.POST("/auth/register", authHandler.Register) // legacy alias
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := e.Group("", middleware.Auth(jwtSecret))
	authed.GET("/me", authHandler.Me)
	authed.GET("/clients", clientHandler.List)
	authed.POST("/clients", clientHandler.Create)
	authed.GET("/clients/:id", clientHandler.Get)
	authed.PUT("/clients/:id", clientHandler.Update)
	authed.DELETE("/clients/:id", clientHandler.Deactivate)
	authed.GET("/clients/:id/notes", noteHandler.List)
	authed.POST("/clients/:id/notes", noteHandler.Create)
	authed.DELETE("/clients/:id/notes/:noteId", noteHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
