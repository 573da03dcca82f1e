// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/aerogym/go-registration-backend/internal/config"
	"github.com/aerogym/go-registration-backend/internal/domain"
	"github.com/aerogym/go-registration-backend/internal/http/handlers"
	"github.com/aerogym/go-registration-backend/internal/http/middleware"
	"github.com/aerogym/go-registration-backend/internal/registry"
	"github.com/aerogym/go-registration-backend/internal/repo"
	"github.com/aerogym/go-registration-backend/internal/services"
	"github.com/aerogym/go-registration-backend/internal/warmup"
)

// localPersonShim adapts the repository free functions to the service-layer
// contracts. This keeps services decoupled from the concrete repo package
// while reusing existing functions.
type localPersonShim struct{}

// ListLocalPersons proxies repo.ListLocalPersons.
func (localPersonShim) ListLocalPersons(ctx context.Context, db *gorm.DB, kind domain.PersonKind, country string) ([]domain.LocalPerson, error) {
	return repo.ListLocalPersons(ctx, db, kind, country)
}

// GetLocalByExternalID proxies repo.GetLocalByExternalID.
func (localPersonShim) GetLocalByExternalID(ctx context.Context, db *gorm.DB, kind domain.PersonKind, externalID string) (*domain.LocalPerson, error) {
	return repo.GetLocalByExternalID(ctx, db, kind, externalID)
}

// CreateLocalPerson proxies repo.CreateLocalPerson.
func (localPersonShim) CreateLocalPerson(ctx context.Context, db *gorm.DB, p *domain.LocalPerson) (*domain.LocalPerson, error) {
	return repo.CreateLocalPerson(ctx, db, p)
}

// UpdateLocalPerson proxies repo.UpdateLocalPerson.
func (localPersonShim) UpdateLocalPerson(ctx context.Context, db *gorm.DB, p *domain.LocalPerson) error {
	return repo.UpdateLocalPerson(ctx, db, p)
}

// DeleteLocalPerson proxies repo.DeleteLocalPerson.
func (localPersonShim) DeleteLocalPerson(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteLocalPerson(ctx, db, id)
}

// registrationShim adapts registration and tournament repository functions to
// the services.RegistrationStore and services.TournamentStore contracts.
type registrationShim struct{}

// CreateRegistration proxies repo.CreateRegistration.
func (registrationShim) CreateRegistration(ctx context.Context, db *gorm.DB, reg *domain.Registration) (*domain.Registration, error) {
	return repo.CreateRegistration(ctx, db, reg)
}

// CountRegistrationsBucket proxies repo.CountRegistrationsBucket.
func (registrationShim) CountRegistrationsBucket(ctx context.Context, db *gorm.DB, tournamentID, country string, category domain.Category, choreoType domain.ChoreographyType) (int64, error) {
	return repo.CountRegistrationsBucket(ctx, db, tournamentID, country, category, choreoType)
}

// CountRegistrations proxies repo.CountRegistrations.
func (registrationShim) CountRegistrations(ctx context.Context, db *gorm.DB, tournamentID string) (int64, error) {
	return repo.CountRegistrations(ctx, db, tournamentID)
}

// ListRegistrationsPage proxies repo.ListRegistrationsPage.
func (registrationShim) ListRegistrationsPage(ctx context.Context, db *gorm.DB, tournamentID string, offset, limit int) ([]domain.Registration, error) {
	return repo.ListRegistrationsPage(ctx, db, tournamentID, offset, limit)
}

// GetTournament proxies repo.GetTournament.
func (registrationShim) GetTournament(ctx context.Context, db *gorm.DB, id string) (*domain.Tournament, error) {
	return repo.GetTournament(ctx, db, id)
}

// CreateTournament proxies repo.CreateTournament.
func (registrationShim) CreateTournament(ctx context.Context, db *gorm.DB, t *domain.Tournament) (*domain.Tournament, error) {
	return repo.CreateTournament(ctx, db, t)
}

// ListTournaments proxies repo.ListTournaments.
func (registrationShim) ListTournaments(ctx context.Context, db *gorm.DB) ([]domain.Tournament, error) {
	return repo.ListTournaments(ctx, db)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), compression and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip compression (rosters are large JSON arrays)
//  8. Rate limiter (per IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, reg *registry.Service, sched *warmup.Scheduler, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compress responses; roster listings run to hundreds of records
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 8) Token-bucket rate limiter per IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (flag-gated; docs package registered by cmd/server)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← registry/repo/db
	peopleSvc := services.NewPeopleService(db, reg, localPersonShim{})
	localSvc := services.NewLocalPersonService(db, localPersonShim{}, reg)
	tournamentSvc := services.NewTournamentService(db, registrationShim{})
	regSvc := services.NewRegistrationService(db, peopleSvc, registrationShim{})
	h := handlers.New(peopleSvc, localSvc, tournamentSvc, regSvc, reg, reg, sched)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// People (merged rosters + local overrides)
		api.GET("/people/:kind", h.ListPeople)
		api.POST("/people/:kind", h.CreateLocalPerson)
		api.GET("/people/:kind/:id", h.GetPerson)
		api.PUT("/people/:kind/:id", h.UpdateLocalPerson)
		api.DELETE("/people/:kind/:id", h.DeleteLocalPerson)
		api.GET("/people/:kind/:id/image", h.GetPersonImage)

		// Tournaments
		api.POST("/tournaments", h.CreateTournament)
		api.GET("/tournaments", h.ListTournaments)
		api.GET("/tournaments/:id", h.GetTournament)

		// Registrations
		api.POST("/tournaments/:id/registrations", h.CreateRegistration)
		api.GET("/tournaments/:id/registrations", h.ListRegistrations)

		// Admin: cache + warmup
		api.GET("/admin/cache", h.CacheStats)
		api.DELETE("/admin/cache", h.ClearCache)
		api.POST("/admin/warmup", h.TriggerWarmup)
		api.GET("/admin/warmup", h.WarmupStatus)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
