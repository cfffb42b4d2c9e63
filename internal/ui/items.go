package ui

import (
	"fmt"

	"crate/internal/match"
	"crate/internal/shared"
)

// resultItem is a review-classified match result shown in the main list.
type resultItem struct {
	index  int // position in the full result slice
	result match.Result
}

func (i resultItem) Title() string {
	status := statusGlyph(i.result.Classification)
	if artist, ok := i.result.Entry.Artist.Get(); ok {
		return fmt.Sprintf("%s %s - %s", status, artist, i.result.Entry.Title)
	}
	return fmt.Sprintf("%s %s", status, i.result.Entry.Title)
}

func (i resultItem) Description() string {
	if i.result.Track == nil {
		return "no track selected"
	}
	return fmt.Sprintf("%.1f  %s", i.result.Score, i.result.Track.Path())
}

func (i resultItem) FilterValue() string { return i.result.Entry.Title }

func statusGlyph(c match.Classification) string {
	switch c {
	case match.ClassAuto:
		return "✓"
	case match.ClassReview:
		return "?"
	default:
		return "✗"
	}
}

// candidateItem is one selectable candidate in the per-entry view.
type candidateItem struct {
	candidate match.Candidate
	proposed  bool
}

func (i candidateItem) Title() string {
	marker := " "
	if i.proposed {
		marker = "*"
	}
	track := i.candidate.Track
	if track.Artist() != "" {
		return fmt.Sprintf("%s %s - %s", marker, track.Artist(), track.Title())
	}
	return fmt.Sprintf("%s %s", marker, track.Title())
}

func (i candidateItem) Description() string {
	track := i.candidate.Track
	return fmt.Sprintf("%.1f  %s  %s", i.candidate.Score, shared.FormatDuration(track.Duration()), track.Path())
}

func (i candidateItem) FilterValue() string { return i.candidate.Track.Title() }
