package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library     LibraryConfig     `toml:"library"`
	Database    DatabaseConfig    `toml:"database"`
	Matching    MatchingConfig    `toml:"matching"`
	Export      ExportConfig      `toml:"export"`
	Credentials CredentialsConfig `toml:"credentials"`
}

// LibraryConfig contains local collection settings.
type LibraryConfig struct {
	Root string `toml:"root"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// MatchingConfig contains playlist matching thresholds and weights on a 0-100 score scale.
type MatchingConfig struct {
	AutoThreshold   float64 `toml:"auto_threshold"`
	ReviewThreshold float64 `toml:"review_threshold"`
	TitleWeight     float64 `toml:"title_weight"`
	ArtistWeight    float64 `toml:"artist_weight"`
	AlbumWeight     float64 `toml:"album_weight"`
	MaxCandidates   int     `toml:"max_candidates"`
	MaxAlternates   int     `toml:"max_alternates"`
	ScoreEpsilon    float64 `toml:"score_epsilon"`
	Workers         int     `toml:"workers"`
}

// ExportConfig contains defaults for playlist export.
type ExportConfig struct {
	IncludeReview    bool `toml:"include_review"`
	CommentUnmatched bool `toml:"comment_unmatched"`
}

// CredentialsConfig contains provider-specific credentials.
type CredentialsConfig struct {
	Qobuz QobuzConfig `toml:"qobuz"`
	Tidal TidalConfig `toml:"tidal"`
}

// QobuzConfig contains Qobuz API credentials.
type QobuzConfig struct {
	AppID     string `toml:"app_id"`
	UserToken string `toml:"user_token"`
}

// TidalConfig contains Tidal API credentials.
type TidalConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
