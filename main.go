package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoyChela/Epidemiology/internal/config"
	"github.com/JoyChela/Epidemiology/internal/database"
	"github.com/JoyChela/Epidemiology/internal/logger"
	"github.com/JoyChela/Epidemiology/internal/router"
)

// newServer wraps handler in an http.Server using the configured port and timeouts.
func newServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.ListenPort,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func main() {
	seed := flag.Bool("seed", false, "populate an empty database with sample data and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := logger.New(config.Default().Log)
		bootLog.Fatal().Err(err).Msg("could not load config")
	}
	log := logger.New(cfg.Log)

	db, err := database.InitDB(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("could not connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db, cfg.Enrollment.Uniqueness); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("enrollment_uniqueness", cfg.Enrollment.Uniqueness).Msg("schema up to date")

	if *seed {
		if err := database.Seed(db, rand.New(rand.NewSource(time.Now().UnixNano())), log); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
		log.Info().Msg("database seeding completed")
		return
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := newServer(cfg.Server, router.New(cfg, db, log))

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
