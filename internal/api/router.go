package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aldodev/portfolio-api/internal/api/handler"
	"github.com/aldodev/portfolio-api/internal/api/middleware"
	"github.com/aldodev/portfolio-api/internal/core/domain"
	"github.com/aldodev/portfolio-api/internal/core/ports"
	"github.com/aldodev/portfolio-api/internal/core/service"
	"github.com/aldodev/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/aldodev/portfolio-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when the session registry runs in memory.
func NewRouter(db *mongo.Database, rdb *redis.Client, registry ports.SessionRegistry, assets ports.AssetDispatcher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portfolio"))

	// --- Dependencies ---
	creds := mongodb.NewCredentialStore(db)
	settings := mongodb.NewSettingsRepository(db)
	personals := mongodb.NewPersonalRepository(db)
	commissions := mongodb.NewCommissionRepository(db)

	authService := service.NewAuthService(creds, registry)
	galleryService := service.NewGalleryService(personals, commissions, assets, log)

	authHandler := handler.NewAuthHandler(authService, int(cfg.Session.IdleTimeout.Seconds()))
	galleryHandler := handler.NewGalleryHandler(galleryService)
	adminHandler := handler.NewAdminHandler(galleryService, settings, cfg.Cloudinary)

	requireSession := middleware.Session(registry)

	// The maintenance gate runs on everything; its own exclusion policy
	// keeps the login surface, auth API, static assets, and probes open.
	e.Use(middleware.Maintenance(settings, registry, log))

	// --- Auth surface ---
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.POST("/api/auth/validate-password", authHandler.ValidatePassword)
	e.POST("/api/auth/change-password", authHandler.ChangePassword, requireSession)
	e.POST("/api/auth/change-pin", authHandler.ChangePin, requireSession)
	// Maintenance toggle lives under /api/auth so it stays reachable while
	// the gate is active.
	e.GET("/api/auth/maintenance", adminHandler.GetMaintenance, requireSession)
	e.PUT("/api/auth/maintenance", adminHandler.UpdateMaintenance, requireSession)

	// --- Admin API ---
	e.GET("/api/admin/session", authHandler.SessionInfo, requireSession)
	e.GET("/api/admin/stats", adminHandler.Stats, requireSession)
	e.POST("/api/admin/update-wm", adminHandler.UpdateWatermark, requireSession)
	e.DELETE("/api/admin/bulk-delete", adminHandler.BulkDelete, requireSession)

	// --- Public config ---
	e.GET("/api/wm-config", adminHandler.GetWatermark)
	e.GET("/api/config", adminHandler.UploadConfig)

	// --- Gallery ---
	registerGallery(e, galleryHandler, "/api/personals", domain.CategoryPersonal, requireSession)
	registerGallery(e, galleryHandler, "/api/commissions", domain.CategoryCommission, requireSession)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// registerGallery wires one gallery collection: public reads, gated writes.
func registerGallery(e *echo.Echo, h *handler.GalleryHandler, prefix, category string, requireSession echo.MiddlewareFunc) {
	e.GET(prefix, h.List(category))
	e.GET(prefix+"/:id", h.Get(category))
	e.POST(prefix, h.Create(category), requireSession)
	e.PUT(prefix+"/:id", h.Update(category), requireSession)
	e.DELETE(prefix+"/:id", h.Delete(category), requireSession)
}
