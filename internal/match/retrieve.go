package match

import (
	"sort"
	"strings"

	"crate/internal/models"
)

// CandidateIndex is the read-only view of the library the matcher queries.
// Both methods must return deterministically ordered results for a given
// library state; tie-break reproducibility depends on it. The index is
// treated as an immutable snapshot for the duration of one matching run.
type CandidateIndex interface {
	// QueryCandidates returns tracks whose normalized title or artist
	// contains any of the given tokens.
	QueryCandidates(tokens []string) ([]*models.LibraryTrack, error)

	// All returns every track, the fallback when token filtering finds nothing.
	All() ([]*models.LibraryTrack, error)
}

// ISRCIndex is optionally implemented by indexes that can resolve a track
// directly by its ISRC, allowing matching to skip fuzzy scoring entirely.
// A miss is reported as shared.ErrTrackNotFound; any other error is a
// query failure.
type ISRCIndex interface {
	GetByISRC(isrc string) (*models.LibraryTrack, error)
}

// retrieve narrows the library to a bounded candidate set for one entry.
// Tracks sharing at least one normalized token with the entry's title or
// artist are fetched first; an empty result falls back to a full scan.
// Candidates are ranked by cheap token overlap and truncated to
// cfg.MaxCandidates so full scoring cost stays bounded per entry.
func retrieve(entry NormalizedEntry, index CandidateIndex, cfg Config) ([]*models.LibraryTrack, error) {
	tokens := entryTokens(entry)

	tracks, err := index.QueryCandidates(tokens)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		tracks, err = index.All()
		if err != nil {
			return nil, err
		}
	}
	if len(tracks) <= cfg.MaxCandidates {
		return tracks, nil
	}

	type ranked struct {
		track   *models.LibraryTrack
		overlap int
	}
	rankedTracks := make([]ranked, len(tracks))
	for i, track := range tracks {
		rankedTracks[i] = ranked{track: track, overlap: tokenOverlap(tokens, track)}
	}

	// Stable sort keeps index order among equal overlaps, so truncation is
	// deterministic.
	sort.SliceStable(rankedTracks, func(i, j int) bool {
		return rankedTracks[i].overlap > rankedTracks[j].overlap
	})

	capped := make([]*models.LibraryTrack, cfg.MaxCandidates)
	for i := range capped {
		capped[i] = rankedTracks[i].track
	}
	return capped, nil
}

func entryTokens(entry NormalizedEntry) []string {
	seen := map[string]bool{}
	var tokens []string
	for _, token := range entry.TitleTokens {
		if !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	for _, token := range entry.ArtistTokens {
		if !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func tokenOverlap(tokens []string, track *models.LibraryTrack) int {
	overlap := 0
	for _, token := range tokens {
		if strings.Contains(track.NormTitle(), token) || strings.Contains(track.NormArtist(), token) {
			overlap++
		}
	}
	return overlap
}
