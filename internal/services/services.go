// package services defines interface Provider for interacting with HTTP APIs
//
// Qobuz, Tidal
package services

import (
	"context"
)

// Provider defines the interface for streaming catalog providers that can
// be searched for track metadata. Download execution and interactive auth
// flows live outside this boundary.
type Provider interface {
	// SearchTracks searches the provider catalog by free-text query.
	SearchTracks(ctx context.Context, query string, limit int) ([]Track, error)

	// Track retrieves a single track's metadata by provider ID.
	Track(ctx context.Context, id string) (*Track, error)

	// Name returns the provider name (e.g. "Qobuz", "Tidal")
	Name() string
}

// Track represents catalog track metadata from any provider
type Track struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	Duration int    // Duration in seconds
	ISRC     string // International Standard Recording Code for matching
}
