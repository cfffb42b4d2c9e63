package library

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"crate/internal/match"
	"crate/internal/models"
	"crate/internal/repositories"
)

// Stats summarizes one indexing run.
type Stats struct {
	Scanned   int
	Added     int
	Updated   int
	Unchanged int
	Pruned    int
	Failed    int
}

// Indexer performs incremental scans of the library root into the track
// repository. Unchanged files (same path and content hash) are skipped,
// changed files re-read, and index rows whose file disappeared are pruned.
type Indexer struct {
	repo   *repositories.TrackRepository
	logger *log.Logger

	// Injection points for tests; default to the real implementations.
	readMeta func(path string) (models.TrackMeta, error)
	hashFile func(path string) (string, error)
}

// NewIndexer creates an Indexer over the given repository.
func NewIndexer(repo *repositories.TrackRepository, logger *log.Logger) *Indexer {
	return &Indexer{
		repo:     repo,
		logger:   logger,
		readMeta: ReadMeta,
		hashFile: HashFile,
	}
}

// Index scans root and reconciles the repository with what is on disk.
// Individual file failures are logged and counted, not fatal.
func (ix *Indexer) Index(ctx context.Context, root string) (*Stats, error) {
	paths, err := ScanPaths(root)
	if err != nil {
		return nil, err
	}

	existing, err := ix.repo.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	byPath := make(map[string]*models.LibraryTrack, len(existing))
	for _, track := range existing {
		byPath[track.Path()] = track
	}

	stats := &Stats{Scanned: len(paths)}
	seen := make(map[string]bool, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		seen[path] = true

		hash, err := ix.hashFile(path)
		if err != nil {
			ix.logger.Warn("failed to hash file", "path", path, "error", err)
			stats.Failed++
			continue
		}

		current := byPath[path]
		if current != nil && current.Hash() == hash {
			stats.Unchanged++
			continue
		}

		meta, err := ix.readMeta(path)
		if err != nil {
			ix.logger.Warn("failed to read tags", "path", path, "error", err)
			stats.Failed++
			continue
		}
		meta.Hash = hash

		normTitle := match.Normalize(meta.Title)
		normArtist := match.Normalize(meta.Artist)

		if current == nil {
			track := models.NewLibraryTrack(0, meta, normTitle, normArtist)
			if err := ix.repo.Create(track); err != nil {
				ix.logger.Warn("failed to index track", "path", path, "error", err)
				stats.Failed++
				continue
			}
			stats.Added++
			continue
		}

		current.SetMeta(meta, normTitle, normArtist)
		if err := ix.repo.Update(current); err != nil {
			ix.logger.Warn("failed to update track", "path", path, "error", err)
			stats.Failed++
			continue
		}
		stats.Updated++
	}

	// Prune rows whose file no longer exists.
	for path, track := range byPath {
		if seen[path] {
			continue
		}
		if err := ix.repo.Delete(track.ID()); err != nil {
			ix.logger.Warn("failed to prune track", "path", path, "error", err)
			stats.Failed++
			continue
		}
		stats.Pruned++
	}

	return stats, nil
}
