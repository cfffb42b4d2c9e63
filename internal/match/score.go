package match

import (
	"crate/internal/models"
	"crate/internal/playlist"
)

// Candidate pairs a normalized entry with one library track and the scores
// computed between them. Candidates are transient; only the chosen one and
// the retained alternates survive into the match result.
type Candidate struct {
	Track *models.LibraryTrack

	// Score is the weighted aggregate on a 0-100 scale.
	Score float64

	// Per-field similarities in [0, 1]. A field absent from the entry is
	// excluded from the aggregate and left at zero here.
	TitleScore  float64
	ArtistScore float64
	AlbumScore  float64

	// DurationDelta is the absolute difference between the entry's stated
	// duration and the track's, when both are known. Used only for
	// tie-breaking, never in the aggregate.
	DurationDelta playlist.Opt[int]
}

// scoreCandidate computes the deterministic weighted score between an entry
// and a track. Fields the entry lacks are excluded and the remaining
// weights renormalized, so an absent album never counts as a zero-similarity
// match.
func scoreCandidate(entry NormalizedEntry, track *models.LibraryTrack, cfg Config) Candidate {
	sim := cfg.Similarity
	cand := Candidate{Track: track}

	normTitle := track.NormTitle()
	if normTitle == "" {
		normTitle = Normalize(track.Title())
	}

	cand.TitleScore = tokenSetSimilarity(sim, entry.Title, normTitle)
	weightSum := cfg.TitleWeight
	weighted := cfg.TitleWeight * cand.TitleScore

	if artist, ok := entry.Artist.Get(); ok {
		normArtist := track.NormArtist()
		if normArtist == "" {
			normArtist = Normalize(track.Artist())
		}
		cand.ArtistScore = tokenSetSimilarity(sim, artist, normArtist)
		weightSum += cfg.ArtistWeight
		weighted += cfg.ArtistWeight * cand.ArtistScore
	}

	if album, ok := entry.Album.Get(); ok {
		cand.AlbumScore = tokenSetSimilarity(sim, album, Normalize(track.Album()))
		weightSum += cfg.AlbumWeight
		weighted += cfg.AlbumWeight * cand.AlbumScore
	}

	if weightSum > 0 {
		cand.Score = weighted / weightSum * 100
	}

	if wanted, ok := entry.Entry.Duration.Get(); ok && track.Duration() > 0 {
		delta := wanted - track.Duration()
		if delta < 0 {
			delta = -delta
		}
		cand.DurationDelta = playlist.Some(delta)
	}

	return cand
}
