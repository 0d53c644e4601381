package narrowphase

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DefaultWorkers = 1

// Config holds the settings of a Collider. Tolerances are package constants of
// gjk, penetration and advance; they are not configurable so that every replica
// computes the same results.
type Config struct {
	// Workers is the number of goroutines used by NarrowPhase and
	// NarrowPhaseGeometry.
	Workers int
	// Logger receives fail-safe events at debug level. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns a single-worker configuration with a no-op logger.
func DefaultConfig() Config {
	return Config{Workers: DefaultWorkers, Logger: zap.NewNop()}
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Collider runs intersection queries. It holds no mutable state and is safe for
// concurrent use.
type Collider struct {
	workers int
	logger  *zap.Logger
}

func NewCollider(cfg Config) (*Collider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid collider config")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collider{workers: cfg.Workers, logger: logger}, nil
}
