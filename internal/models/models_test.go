package models

import (
	"testing"
	"time"
)

func TestLibraryTrack(t *testing.T) {
	meta := TrackMeta{
		Path:     "/music/killing_mood/dancing.flac",
		Title:    "Dancing With The Damned",
		Artist:   "Killing Mood",
		Album:    "First Light",
		Duration: 214,
		ISRC:     "USABC2400001",
		Hash:     "abc123",
	}

	t.Run("NewLibraryTrack", func(t *testing.T) {
		track := NewLibraryTrack(7, meta, "dancing with the damned", "killing mood")

		if track.Sequence() != 7 {
			t.Errorf("expected sequence 7, got %d", track.Sequence())
		}
		if track.Title() != meta.Title || track.Artist() != meta.Artist {
			t.Errorf("unexpected tags: %s by %s", track.Title(), track.Artist())
		}
		if track.NormTitle() != "dancing with the damned" {
			t.Errorf("unexpected normalized title %q", track.NormTitle())
		}
		if track.ID() != "" {
			t.Error("ID should be empty until the repository assigns it")
		}
		if track.CreatedAt().IsZero() || track.UpdatedAt().IsZero() {
			t.Error("timestamps should be initialized")
		}
		if track.DeletedAt() != nil {
			t.Error("new tracks should not be deleted")
		}
	})

	t.Run("RestoreLibraryTrack", func(t *testing.T) {
		created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		deleted := created.Add(time.Hour)

		track := RestoreLibraryTrack("id-1", 3, meta, "dancing with the damned", "killing mood", created, created, &deleted)

		if track.ID() != "id-1" {
			t.Errorf("unexpected ID %q", track.ID())
		}
		if !track.CreatedAt().Equal(created) {
			t.Errorf("unexpected created_at %v", track.CreatedAt())
		}
		if track.DeletedAt() == nil || !track.DeletedAt().Equal(deleted) {
			t.Error("deleted_at should round-trip")
		}
	})

	t.Run("SetMeta", func(t *testing.T) {
		track := NewLibraryTrack(1, meta, "dancing with the damned", "killing mood")

		updated := meta
		updated.Album = "Second Sight"
		track.SetMeta(updated, "dancing with the damned", "killing mood")

		if track.Album() != "Second Sight" {
			t.Errorf("unexpected album %q", track.Album())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		valid := NewLibraryTrack(1, meta, "", "")
		if err := valid.Validate(); err != nil {
			t.Errorf("valid track should pass: %v", err)
		}

		noPath := NewLibraryTrack(1, TrackMeta{Title: "x"}, "", "")
		if err := noPath.Validate(); err == nil {
			t.Error("missing path should fail validation")
		}

		noTitle := NewLibraryTrack(1, TrackMeta{Path: "/x"}, "", "")
		if err := noTitle.Validate(); err == nil {
			t.Error("missing title should fail validation")
		}

		negative := NewLibraryTrack(1, TrackMeta{Path: "/x", Title: "x", Duration: -1}, "", "")
		if err := negative.Validate(); err == nil {
			t.Error("negative duration should fail validation")
		}
	})
}
