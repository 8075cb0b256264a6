package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/celerix-dev/celerix-hrms/internal/api"
	"github.com/celerix-dev/celerix-hrms/internal/app"
	"github.com/celerix-dev/celerix-hrms/internal/config"
	"github.com/celerix-dev/celerix-hrms/internal/logger"
	"github.com/celerix-dev/celerix-hrms/internal/server"
	"github.com/celerix-dev/celerix-hrms/internal/storage"
	"github.com/celerix-dev/celerix-hrms/internal/vault"
)

func main() {
	cfg, err := config.Load(os.Getenv("HRMS_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	lg := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})

	if len(os.Args) > 1 && os.Args[1] == "migrate-storage" {
		if len(os.Args) < 3 {
			lg.Fatal().Msg("usage: hrmsd migrate-storage <srcDir>")
		}
		if err := migrateStorage(cfg, os.Args[2], lg); err != nil {
			lg.Fatal().Err(err).Msg("storage migration failed")
		}
		lg.Info().Str("from", os.Args[2]).Str("to", cfg.Storage.DataDir).Msg("storage migrated")
		return
	}

	lg.Info().Str("env", cfg.Env).Str("storage", cfg.Storage.Driver).Msg("starting HRMS daemon")

	// 1. Application state, loaded from storage or seeded
	a, err := app.Open(cfg.Storage, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to initialize persistence")
	}
	if cfg.Storage.EncryptionKey != "" {
		lg.Info().Msg("state encrypted at rest")
	}
	snap := a.HR.Snapshot()
	lg.Info().Int("employees", len(snap.Employees)).Int("attendance", len(snap.Attendance)).Msg("state loaded")

	// 2. HTTP API
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(&api.Handler{Service: a, Sessions: a.Auth}, lg)

	// 3. TLS
	if cfg.HTTP.TLS {
		cert, err := vault.GenerateSelfSignedCert(cfg.HTTP.Host)
		if err != nil {
			lg.Fatal().Err(err).Msg("failed to generate TLS certificate")
		}
		router.SetCertificate(cert)
	} else {
		lg.Warn().Msg("TLS disabled (HRMS_TLS=false)")
	}

	// 4. Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		lg.Info().Msg("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Shutdown(ctx); err != nil {
			lg.Error().Err(err).Msg("shutdown incomplete")
		}
	}()

	// 5. Serve
	if err := router.Listen(cfg.HTTP.Addr()); err != nil {
		lg.Fatal().Err(err).Msg("HTTP server failed")
	}
	lg.Info().Msg("stopped")
}

// migrateStorage copies the plaintext blob in srcDir into the configured
// storage, sealing it when an encryption key is set.
func migrateStorage(cfg *config.Config, srcDir string, lg zerolog.Logger) error {
	if cfg.Storage.Driver != config.DriverFile {
		return errors.New("migrate-storage needs the file storage driver")
	}
	src, err := storage.NewFileMedium(srcDir)
	if err != nil {
		return err
	}
	dst, err := app.OpenPersistence(cfg.Storage, lg)
	if err != nil {
		return err
	}
	return storage.Migrate(storage.NewPersistence(src, cfg.Storage.Key, lg), dst, cfg.Storage.SchemaVersion)
}
