package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"crate/internal/match"
	"crate/internal/models"
	"crate/internal/playlist"
)

func reviewTrack(title, artist string, duration int) *models.LibraryTrack {
	return models.NewLibraryTrack(0, models.TrackMeta{
		Path:     "/music/" + artist + "/" + title + ".flac",
		Title:    title,
		Artist:   artist,
		Duration: duration,
	}, title, artist)
}

func reviewResults() []match.Result {
	proposed := reviewTrack("stay", "alpha", 198)
	alternate := reviewTrack("stay", "beta", 180)

	return []match.Result{
		{
			Entry:          playlist.Entry{Title: "Dancing With The Damned", Line: 1},
			Classification: match.ClassAuto,
			Track:          reviewTrack("dancing with the damned", "killing mood", 214),
			Score:          100,
		},
		{
			Entry:          playlist.Entry{Title: "Stay", Line: 2},
			Classification: match.ClassReview,
			Track:          proposed,
			Score:          82.4,
			Alternates:     []match.Candidate{{Track: alternate, Score: 80.1}},
		},
		{
			Entry:          playlist.Entry{Title: "Nothing Like This", Line: 3},
			Classification: match.ClassUnmatched,
		},
	}
}

// sized returns a model after the initial window size message, the way the
// program delivers it before any key input.
func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func keyPress(m Model, r rune) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(Model)
}

func TestNewModel(t *testing.T) {
	m := NewModel(reviewResults())

	items := m.resultList.Items()
	if len(items) != 1 {
		t.Fatalf("only review-classified results belong in the list, got %d items", len(items))
	}

	item, ok := items[0].(resultItem)
	if !ok {
		t.Fatal("unexpected item type")
	}
	if item.index != 1 {
		t.Errorf("item should point at its position in the full slice, got %d", item.index)
	}
	if item.result.Entry.Title != "Stay" {
		t.Errorf("unexpected item %q", item.result.Entry.Title)
	}
}

func TestInitialWindowSize(t *testing.T) {
	// The program sends a WindowSizeMsg before any key input; both lists
	// must survive being resized before a result was ever opened.
	m := sized(NewModel(reviewResults()))

	if m.width != 80 || m.height != 24 {
		t.Errorf("expected 80x24, got %dx%d", m.width, m.height)
	}
	if m.View() == "" {
		t.Error("expected a rendered view after the initial resize")
	}
}

func TestReviewDecisions(t *testing.T) {
	t.Run("accept promotes to auto", func(t *testing.T) {
		m := sized(NewModel(reviewResults()))

		m = keyPress(m, 'a')

		results := m.Results()
		if results[1].Classification != match.ClassAuto {
			t.Errorf("expected auto after accept, got %s", results[1].Classification)
		}
		if results[1].Track == nil {
			t.Error("accepting must keep the proposed track")
		}
		if len(m.resultList.Items()) != 0 {
			t.Error("decided entries should leave the review list")
		}
	})

	t.Run("reject marks unmatched", func(t *testing.T) {
		m := sized(NewModel(reviewResults()))

		m = keyPress(m, 'u')

		results := m.Results()
		if results[1].Classification != match.ClassUnmatched {
			t.Errorf("expected unmatched after reject, got %s", results[1].Classification)
		}
		if results[1].Track != nil {
			t.Error("rejecting must clear the track")
		}
	})

	t.Run("selecting an alternate replaces the match", func(t *testing.T) {
		m := sized(NewModel(reviewResults()))

		// Open the candidate view, move past the proposed track, select.
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(Model)
		if m.view != CandidateView {
			t.Fatalf("expected candidate view, got %v", m.view)
		}
		if len(m.candList.Items()) != 2 {
			t.Fatalf("expected proposed plus one alternate, got %d", len(m.candList.Items()))
		}

		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(Model)
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(Model)

		if m.view != ResultListView {
			t.Errorf("selection should return to the result list")
		}
		results := m.Results()
		if results[1].Classification != match.ClassAuto {
			t.Errorf("expected auto after selection, got %s", results[1].Classification)
		}
		if results[1].Track.Artist() != "beta" {
			t.Errorf("expected the alternate track, got %s", results[1].Track.Artist())
		}
	})

	t.Run("escape returns without deciding", func(t *testing.T) {
		m := sized(NewModel(reviewResults()))

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(Model)
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = updated.(Model)

		if m.view != ResultListView {
			t.Error("escape should return to the result list")
		}
		if m.Results()[1].Classification != match.ClassReview {
			t.Error("escape must not change the classification")
		}
	})

	t.Run("quit produces the quit command", func(t *testing.T) {
		m := sized(NewModel(reviewResults()))

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		if cmd == nil {
			t.Fatal("expected a quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}
