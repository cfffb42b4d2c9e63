package models

import (
	"fmt"
	"time"
)

// TrackMeta holds the raw tag fields extracted from an audio file.
type TrackMeta struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	TrackNumber int
	DiscNumber  int
	Duration    int // seconds
	ISRC        string
	Hash        string
}

// LibraryTrack represents one canonical indexed audio file.
//
// Matching consumes LibraryTrack read-only; only the library indexer
// creates or mutates instances.
type LibraryTrack struct {
	id         string
	sequence   int
	meta       TrackMeta
	normTitle  string
	normArtist string
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

// NewLibraryTrack creates a LibraryTrack from extracted tag metadata.
// The normalized title/artist are stored alongside the raw fields so
// candidate queries never re-normalize at read time.
func NewLibraryTrack(sequence int, meta TrackMeta, normTitle, normArtist string) *LibraryTrack {
	now := time.Now()
	return &LibraryTrack{
		sequence:   sequence,
		meta:       meta,
		normTitle:  normTitle,
		normArtist: normArtist,
		createdAt:  now,
		updatedAt:  now,
	}
}

// RestoreLibraryTrack reconstructs a LibraryTrack from persisted columns.
func RestoreLibraryTrack(id string, sequence int, meta TrackMeta, normTitle, normArtist string, createdAt, updatedAt time.Time, deletedAt *time.Time) *LibraryTrack {
	return &LibraryTrack{
		id:         id,
		sequence:   sequence,
		meta:       meta,
		normTitle:  normTitle,
		normArtist: normArtist,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		deletedAt:  deletedAt,
	}
}

func (t *LibraryTrack) ID() string           { return t.id }
func (t *LibraryTrack) Sequence() int        { return t.sequence }
func (t *LibraryTrack) Path() string         { return t.meta.Path }
func (t *LibraryTrack) Title() string        { return t.meta.Title }
func (t *LibraryTrack) Artist() string       { return t.meta.Artist }
func (t *LibraryTrack) Album() string        { return t.meta.Album }
func (t *LibraryTrack) AlbumArtist() string  { return t.meta.AlbumArtist }
func (t *LibraryTrack) TrackNumber() int     { return t.meta.TrackNumber }
func (t *LibraryTrack) DiscNumber() int      { return t.meta.DiscNumber }
func (t *LibraryTrack) Duration() int        { return t.meta.Duration }
func (t *LibraryTrack) ISRC() string         { return t.meta.ISRC }
func (t *LibraryTrack) Hash() string         { return t.meta.Hash }
func (t *LibraryTrack) NormTitle() string    { return t.normTitle }
func (t *LibraryTrack) NormArtist() string   { return t.normArtist }
func (t *LibraryTrack) CreatedAt() time.Time { return t.createdAt }
func (t *LibraryTrack) UpdatedAt() time.Time { return t.updatedAt }
func (t *LibraryTrack) DeletedAt() *time.Time { return t.deletedAt }

// Meta returns a copy of the raw tag metadata.
func (t *LibraryTrack) Meta() TrackMeta { return t.meta }

// SetID assigns the generated identifier. Called once by the repository on create.
func (t *LibraryTrack) SetID(id string) { t.id = id }

// SetMeta replaces the tag metadata along with its normalized forms.
func (t *LibraryTrack) SetMeta(meta TrackMeta, normTitle, normArtist string) {
	t.meta = meta
	t.normTitle = normTitle
	t.normArtist = normArtist
}

// SetUpdatedAt records the modification time.
func (t *LibraryTrack) SetUpdatedAt(ts time.Time) { t.updatedAt = ts }

// Validate checks the track's required fields.
func (t *LibraryTrack) Validate() error {
	if t.meta.Path == "" {
		return fmt.Errorf("track path is required")
	}
	if t.meta.Title == "" {
		return fmt.Errorf("track title is required")
	}
	if t.meta.Duration < 0 {
		return fmt.Errorf("track duration cannot be negative")
	}
	return nil
}
