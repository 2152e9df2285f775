package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookstoreapp/bookstore-api/internal/api/handler"
	"github.com/bookstoreapp/bookstore-api/internal/api/middleware"
	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
	"github.com/bookstoreapp/bookstore-api/internal/core/service"
	"github.com/bookstoreapp/bookstore-api/internal/infrastructure/config"
	mongodb "github.com/bookstoreapp/bookstore-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookstoreapp/bookstore-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/bookstoreapp/bookstore-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Token-issuance configuration is validated here, once, before the server
// starts accepting requests.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bookstore"))

	// --- Dependencies ---
	issuer, err := service.NewTokenIssuer(cfg.JWT.Key, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Duration())
	if err != nil {
		return nil, err
	}

	hasher := service.NewBcryptHasher()
	cache := redisdb.NewCache(rdb)

	userRepo := mongodb.NewUserRepository(db)
	authorRepo := mongodb.NewAuthorRepository(db)
	bookRepo := mongodb.NewBookRepository(db)

	authService := service.NewAuthService(userRepo, hasher, issuer, audit, cfg.JWT.DefaultRole, log)
	authorService := service.NewAuthorService(authorRepo, bookRepo, cache, log)
	bookService := service.NewBookService(bookRepo, authorRepo, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	authorHandler := handler.NewAuthorHandler(authorService)
	bookHandler := handler.NewBookHandler(bookService)

	authRequired := middleware.Auth(cfg.JWT.Key, cfg.JWT.Issuer, cfg.JWT.Audience)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Catalog routes (reads need a valid token, writes need Admin) ---
	v1 := e.Group("/v1", authRequired)

	v1.GET("/authors", authorHandler.List)
	v1.GET("/authors/:id", authorHandler.Get)
	v1.POST("/authors", authorHandler.Create, adminOnly)
	v1.PUT("/authors/:id", authorHandler.Update, adminOnly)
	v1.DELETE("/authors/:id", authorHandler.Delete, adminOnly)

	v1.GET("/books", bookHandler.List)
	v1.GET("/books/:id", bookHandler.Get)
	v1.POST("/books", bookHandler.Create, adminOnly)
	v1.PUT("/books/:id", bookHandler.Update, adminOnly)
	v1.DELETE("/books/:id", bookHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
