package mot

import (
	"math"

	"github.com/pkg/errors"
)

// Config holds tracker parameters. It is fixed at construction time.
type Config struct {
	// Max number of consecutive frames a track may stay unmatched before removal. Default 8
	MaxMissed int
	// Max distance (pixels) between predicted track center and detection center. Default 120.0
	MaxDist float64
	// Min IoU between track box and detection box. Default 0.03
	MinIoU float64
	// Number of frames after a loss during which new identities are suppressed. Default 3
	FreezeWindow int
	// Number of recent centers kept per track. Default 15
	MaxHistory int
	// Assignment algorithm. Default JonkerVolgenant
	Algorithm MatchingAlgorithm
	// Goroutines used for cost matrix construction. Default 1 (sequential)
	CostWorkers int
}

// DefaultConfig returns default tracker parameters
func DefaultConfig() Config {
	return Config{
		MaxMissed:    8,
		MaxDist:      120.0,
		MinIoU:       0.03,
		FreezeWindow: 3,
		MaxHistory:   DefaultMaxHistory,
		Algorithm:    MatchingAlgorithmJonkerVolgenant,
		CostWorkers:  1,
	}
}

// Validate checks parameter ranges
func (cfg Config) Validate() error {
	if cfg.MaxMissed < 1 {
		return errors.Wrapf(ErrInvalidConfig, "max missed must be >= 1, got %d", cfg.MaxMissed)
	}
	if !(cfg.MaxDist > 0) || math.IsInf(cfg.MaxDist, 0) {
		return errors.Wrapf(ErrInvalidConfig, "max distance must be positive and finite, got %v", cfg.MaxDist)
	}
	if !(cfg.MinIoU >= 0 && cfg.MinIoU < 1) {
		return errors.Wrapf(ErrInvalidConfig, "min IoU must be in [0, 1), got %v", cfg.MinIoU)
	}
	if cfg.FreezeWindow < 0 {
		return errors.Wrapf(ErrInvalidConfig, "freeze window must be >= 0, got %d", cfg.FreezeWindow)
	}
	if cfg.MaxHistory < 1 {
		return errors.Wrapf(ErrInvalidConfig, "max history must be >= 1, got %d", cfg.MaxHistory)
	}
	if cfg.Algorithm > MatchingAlgorithmGreedy {
		return errors.Wrapf(ErrInvalidConfig, "unknown matching algorithm %d", cfg.Algorithm)
	}
	if cfg.CostWorkers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "cost workers must be >= 0, got %d", cfg.CostWorkers)
	}
	return nil
}
