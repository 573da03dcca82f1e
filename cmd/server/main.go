// Command server runs the tournament registration HTTP API.
//
// Startup order matters: configuration first, then logging, tracing, the
// database, the registry client stack, and finally the HTTP server. The
// warmup scheduler is launched on its own goroutine after the registry is
// ready and is stopped through the same context that drives graceful
// shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aerogym/go-registration-backend/internal/cache"
	"github.com/aerogym/go-registration-backend/internal/config"
	"github.com/aerogym/go-registration-backend/internal/fig"
	httpapi "github.com/aerogym/go-registration-backend/internal/http"
	"github.com/aerogym/go-registration-backend/internal/observability"
	"github.com/aerogym/go-registration-backend/internal/registry"
	"github.com/aerogym/go-registration-backend/internal/repo"
	"github.com/aerogym/go-registration-backend/internal/sysutil"
	"github.com/aerogym/go-registration-backend/internal/warmup"

	_ "github.com/aerogym/go-registration-backend/docs"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title           Tournament Registration API
// @version         1.0
// @description     Reference-data synchronization and tournament registration for aerobic gymnastics.
// @BasePath        /api/v1
func main() {
	// Best effort; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shCtx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing not enabled")
		}
	}

	// Registry stack: raw clients, TTL cache, synchronizer.
	client := fig.NewClient(fig.Options{
		BaseURL:          cfg.FIG.BaseURL,
		AthletesEndpoint: cfg.FIG.AthletesEndpoint,
		CoachesEndpoint:  cfg.FIG.CoachesEndpoint,
		JudgesEndpoint:   cfg.FIG.JudgesEndpoint,
		Discipline:       cfg.FIG.Discipline,
		Timeout:          cfg.FIG.Timeout,
	})
	images := fig.NewImageClient(cfg.FIG.ImageBaseURL, cfg.FIG.Timeout)
	store := cache.New(nil)
	reg := registry.NewService(client, images, store, registry.Options{
		RosterTTL:    cfg.Cache.RosterTTL,
		ImageTTL:     cfg.Cache.ImageTTL,
		ImageBaseURL: cfg.FIG.ImageBaseURL,
	})

	sched := warmup.New(reg, warmup.Options{
		Interval:   cfg.Warmup.Interval,
		ImageLimit: cfg.Warmup.ImageLimit,
		ImagePause: cfg.Warmup.ImagePause,
		ImageBurst: cfg.Warmup.ImageBurst,
	}, log.With().Str("component", "warmup").Logger())
	if cfg.Warmup.Enabled {
		go sched.Start(ctx)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, reg, sched, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// setupLogging configures the global zerolog logger from config. Pretty
// output is for local development only; production stays JSON.
func setupLogging(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
