package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workplace-hq/workplace-api/internal/api/handler"
	"github.com/workplace-hq/workplace-api/internal/api/middleware"
	"github.com/workplace-hq/workplace-api/internal/core/ports"
	"github.com/workplace-hq/workplace-api/internal/core/service"
	"github.com/workplace-hq/workplace-api/internal/core/token"
	mongodb "github.com/workplace-hq/workplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/workplace-hq/workplace-api/internal/infrastructure/db/redis"
)

// Dependencies carries the infrastructure the router composes the
// service graph from. Media and Cleaner are injected ready-built so
// their lifecycles stay with main.
type Dependencies struct {
	DB      *mongo.Database
	Redis   *redis.Client
	Media   ports.MediaStore
	Cleaner service.BlobCleaner
	Tokens  *token.Issuer
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("workplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	placeRepo := mongodb.NewPlaceRepository(deps.DB)
	placeCache := redisdb.NewPlaceCache(deps.Redis)

	authService := service.NewAuthService(userRepo, deps.Tokens, deps.Log)
	placeService := service.NewPlaceService(placeRepo, deps.Media, placeCache, deps.Cleaner, deps.Log)

	userHandler := handler.NewUserHandler(authService)
	placeHandler := handler.NewPlaceHandler(placeService)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- User routes ---
	e.POST("/users/register", userHandler.Register)
	e.POST("/users/login", userHandler.Login)
	e.POST("/users/refresh", userHandler.Refresh)
	e.GET("/users/me", userHandler.Me, authMiddleware)
	e.PUT("/users/update", userHandler.Update)
	e.DELETE("/users/:email", userHandler.Delete)
	e.GET("/users", userHandler.GetAll)
	e.GET("/users/:id", userHandler.GetByID)

	// --- Place routes ---
	e.POST("/places", placeHandler.Create)
	e.GET("/places", placeHandler.GetAll)
	e.GET("/places/:id", placeHandler.GetByID)
	e.DELETE("/places/:id", placeHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
