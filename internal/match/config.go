package match

import (
	"fmt"

	"crate/internal/shared"
)

// Default configuration values, on a 0-100 score scale.
const (
	DefaultAutoThreshold   = 90.0
	DefaultReviewThreshold = 75.0
	DefaultTitleWeight     = 0.5
	DefaultArtistWeight    = 0.3
	DefaultAlbumWeight     = 0.2
	DefaultMaxCandidates   = 40
	DefaultMaxAlternates   = 5
	DefaultScoreEpsilon    = 1.5
	DefaultWorkers         = 4
)

// Config carries every knob a matching run depends on. It is passed
// explicitly into Match so concurrent runs with different settings cannot
// interfere; nothing is read from process-wide state.
type Config struct {
	AutoThreshold   float64
	ReviewThreshold float64

	TitleWeight  float64
	ArtistWeight float64
	AlbumWeight  float64

	MaxCandidates int
	MaxAlternates int
	ScoreEpsilon  float64
	Workers       int

	// Similarity defaults to Levenshtein-based EdlibSimilarity when nil.
	Similarity Similarity
}

// DefaultConfig returns the built-in matching configuration.
func DefaultConfig() Config {
	return Config{
		AutoThreshold:   DefaultAutoThreshold,
		ReviewThreshold: DefaultReviewThreshold,
		TitleWeight:     DefaultTitleWeight,
		ArtistWeight:    DefaultArtistWeight,
		AlbumWeight:     DefaultAlbumWeight,
		MaxCandidates:   DefaultMaxCandidates,
		MaxAlternates:   DefaultMaxAlternates,
		ScoreEpsilon:    DefaultScoreEpsilon,
		Workers:         DefaultWorkers,
	}
}

// FromSettings builds a Config from the TOML matching section, filling
// zero values with defaults.
func FromSettings(mc shared.MatchingConfig) Config {
	cfg := DefaultConfig()
	if mc.AutoThreshold > 0 {
		cfg.AutoThreshold = mc.AutoThreshold
	}
	if mc.ReviewThreshold > 0 {
		cfg.ReviewThreshold = mc.ReviewThreshold
	}
	if mc.TitleWeight > 0 || mc.ArtistWeight > 0 || mc.AlbumWeight > 0 {
		cfg.TitleWeight = mc.TitleWeight
		cfg.ArtistWeight = mc.ArtistWeight
		cfg.AlbumWeight = mc.AlbumWeight
	}
	if mc.MaxCandidates > 0 {
		cfg.MaxCandidates = mc.MaxCandidates
	}
	if mc.MaxAlternates > 0 {
		cfg.MaxAlternates = mc.MaxAlternates
	}
	if mc.ScoreEpsilon > 0 {
		cfg.ScoreEpsilon = mc.ScoreEpsilon
	}
	if mc.Workers > 0 {
		cfg.Workers = mc.Workers
	}
	return cfg
}

// Validate fails fast on configurations that cannot produce meaningful
// results. It must be called (and pass) before any matching work begins.
func (c Config) Validate() error {
	if c.AutoThreshold < c.ReviewThreshold {
		return fmt.Errorf("%w: auto threshold %.1f below review threshold %.1f",
			shared.ErrInvalidThresholds, c.AutoThreshold, c.ReviewThreshold)
	}
	if c.AutoThreshold < 0 || c.AutoThreshold > 100 || c.ReviewThreshold < 0 {
		return fmt.Errorf("%w: thresholds must lie in [0, 100]", shared.ErrInvalidThresholds)
	}
	if c.TitleWeight < 0 || c.ArtistWeight < 0 || c.AlbumWeight < 0 {
		return fmt.Errorf("%w: weights cannot be negative", shared.ErrInvalidWeights)
	}
	if c.TitleWeight+c.ArtistWeight+c.AlbumWeight <= 0 {
		return fmt.Errorf("%w: weights sum to zero", shared.ErrInvalidWeights)
	}
	return nil
}

// withDefaults fills unset runtime knobs so callers can pass a partially
// populated Config.
func (c Config) withDefaults() Config {
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = DefaultMaxCandidates
	}
	if c.MaxAlternates <= 0 {
		c.MaxAlternates = DefaultMaxAlternates
	}
	if c.ScoreEpsilon <= 0 {
		c.ScoreEpsilon = DefaultScoreEpsilon
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Similarity == nil {
		c.Similarity = NewSimilarity()
	}
	return c
}
