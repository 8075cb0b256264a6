package app

import (
	"github.com/rs/zerolog"

	"github.com/celerix-dev/celerix-hrms/internal/config"
	"github.com/celerix-dev/celerix-hrms/internal/storage"
)

// OpenPersistence builds the configured medium, sealed when an encryption key
// is set. The none driver returns nil, which keeps all state in memory.
func OpenPersistence(cfg config.StorageConfig, log zerolog.Logger) (*storage.Persistence, error) {
	var medium storage.Medium
	switch cfg.Driver {
	case config.DriverNone:
		return nil, nil
	case config.DriverMemory:
		medium = storage.NewMemoryMedium()
	default:
		fm, err := storage.NewFileMedium(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		medium = fm
	}

	if cfg.EncryptionKey != "" {
		sealed, err := storage.NewSealedMedium(medium, []byte(cfg.EncryptionKey))
		if err != nil {
			return nil, err
		}
		medium = sealed
	}
	return storage.NewPersistence(medium, cfg.Key, log), nil
}

// Open builds the application over the configured storage and schema version,
// the same way for the daemon and for embedded clients.
func Open(cfg config.StorageConfig, log zerolog.Logger) (*App, error) {
	p, err := OpenPersistence(cfg, log)
	if err != nil {
		return nil, err
	}
	return New(Options{Persister: p, Version: cfg.SchemaVersion, Logger: log}), nil
}
