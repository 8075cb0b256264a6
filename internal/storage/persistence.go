package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultKey is the single key the HR state is stored under.
const DefaultKey = "hrms-demo-state"

// Persistence pins a medium and the key of the one blob it manages.
// A nil *Persistence, or one without a medium, behaves as unavailable storage.
type Persistence struct {
	Medium Medium
	Key    string
	log    zerolog.Logger
}

// NewPersistence wraps m. An empty key selects DefaultKey.
func NewPersistence(m Medium, key string, log zerolog.Logger) *Persistence {
	if key == "" {
		key = DefaultKey
	}
	return &Persistence{
		Medium: m,
		Key:    key,
		log:    log.With().Str("component", "storage").Str("key", key).Logger(),
	}
}

func (p *Persistence) available() bool {
	return p != nil && p.Medium != nil
}

type envelope[T any] struct {
	Version int `json:"version"`
	Data    T   `json:"data"`
}

type rawEnvelope struct {
	Version *int            `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Load returns the stored payload if it was saved under version.
// Any other outcome returns fallback unchanged and writes nothing.
func Load[T any](p *Persistence, version int, fallback T) T {
	data, err := Read[T](p, version)
	if err != nil {
		if p.available() {
			ev := p.log.Warn()
			if errors.Is(err, ErrKeyNotFound) {
				ev = p.log.Debug()
			}
			ev.Err(err).Int("version", version).Msg("using fallback state")
		}
		return fallback
	}
	return data
}

// Read is Load with the reason for a rejected blob reported to the caller.
func Read[T any](p *Persistence, version int) (T, error) {
	var zero T
	if !p.available() {
		return zero, ErrStorageUnavailable
	}

	raw, err := p.Medium.Get(p.Key)
	if err != nil {
		return zero, err
	}
	if len(raw) == 0 {
		return zero, ErrKeyNotFound
	}

	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if env.Version == nil {
		return zero, fmt.Errorf("%w: missing version", ErrMalformedState)
	}
	if *env.Version != version {
		return zero, fmt.Errorf("%w: version %d, want %d", ErrMalformedState, *env.Version, version)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return zero, fmt.Errorf("%w: missing data", ErrMalformedState)
	}

	var data T
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return data, nil
}

// Save overwrites the blob with {version, data}.
func Save[T any](p *Persistence, version int, data T) error {
	if !p.available() {
		return ErrStorageUnavailable
	}

	b, err := json.Marshal(envelope[T]{Version: version, Data: data})
	if err != nil {
		return err
	}
	if err := p.Medium.Set(p.Key, b); err != nil {
		return fmt.Errorf("storage: write %s: %w", p.Key, err)
	}
	p.log.Debug().Int("version", version).Int("bytes", len(b)).Msg("state saved")
	return nil
}

// Migrate copies an accepted blob from src to dst, for example from a
// plaintext directory into a sealed one.
func Migrate(src, dst *Persistence, version int) error {
	data, err := Read[json.RawMessage](src, version)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return fmt.Errorf("%w: nothing stored under %s", ErrMalformedState, src.Key)
		}
		return err
	}
	return Save(dst, version, data)
}
