package sdk

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/celerix-dev/celerix-hrms/internal/app"
	"github.com/celerix-dev/celerix-hrms/internal/config"
)

var (
	_ Service = (*app.App)(nil)
	_ Service = (*Client)(nil)
)

// New initializes a service based on the environment. An empty dataDir uses
// the configured data directory.
// It returns the interface, so the caller doesn't care if it's local or remote.
func New(dataDir string) (Service, error) {
	// 1. Prefer a running daemon
	if remoteAddr := os.Getenv("HRMS_ADDR"); remoteAddr != "" {
		client, err := Connect(remoteAddr)
		if err == nil {
			return client, nil
		}
		log.Warn().Err(err).Str("addr", remoteAddr).Msg("daemon unreachable, using embedded store")
	}

	// 2. Fallback to embedded mode
	return Open(dataDir)
}

// Open returns an embedded service over the daemon's configuration (.env,
// hrms.yaml and HRMS_* variables), so both read the same schema version,
// storage key and encryption key. A non-empty dataDir replaces the
// configured directory.
func Open(dataDir string) (Service, error) {
	cfg, err := config.Load(os.Getenv("HRMS_CONFIG"))
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	cfg.Storage.Driver = config.DriverFile

	return app.Open(cfg.Storage, log.Logger)
}
