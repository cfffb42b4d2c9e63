package match

import (
	"reflect"
	"testing"

	"crate/internal/playlist"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Dancing With The Damned", "dancing with the damned"},
		{"trims and collapses whitespace", "  Dancing   With  The Damned ", "dancing with the damned"},
		{"strips diacritics", "Beyoncé Dvořák", "beyonce dvorak"},
		{"removes parenthesized text", "My Song (Live at the Forum)", "my song"},
		{"removes bracketed text", "My Song [2019 Remaster]", "my song"},
		{"removes feat annotation", "My Song feat. Someone Else", "my song someone else"},
		{"removes featuring annotation", "My Song featuring Someone", "my song someone"},
		{"removes remastered annotation", "My Song Remastered", "my song"},
		{"removes radio edit annotation", "My Song radio edit", "my song"},
		{"folds punctuation to spaces", "AC/DC - Back-In_Black", "ac dc back in black"},
		{"combined annotations", "When You Were My Baby (feat. X) [Remastered]", "when you were my baby"},
		{"empty input", "", ""},
		{"punctuation only", "-/-", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("The Killing-Mood (Live)")
	want := []string{"the", "killing", "mood"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestNormalizeEntry(t *testing.T) {
	t.Run("normalizes present fields", func(t *testing.T) {
		entry := playlist.Entry{
			Title:  "Dancing With The Damned (Live)",
			Artist: playlist.Some("Killing Mood"),
			Album:  playlist.Some("First Light"),
		}

		ne := NormalizeEntry(entry)

		if ne.Title != "dancing with the damned" {
			t.Errorf("expected normalized title, got %q", ne.Title)
		}

		artist, ok := ne.Artist.Get()
		if !ok || artist != "killing mood" {
			t.Errorf("expected normalized artist, got %q (present=%v)", artist, ok)
		}

		album, ok := ne.Album.Get()
		if !ok || album != "first light" {
			t.Errorf("expected normalized album, got %q (present=%v)", album, ok)
		}

		if !reflect.DeepEqual(ne.TitleTokens, []string{"dancing", "with", "the", "damned"}) {
			t.Errorf("unexpected title tokens: %v", ne.TitleTokens)
		}
		if !reflect.DeepEqual(ne.ArtistTokens, []string{"killing", "mood"}) {
			t.Errorf("unexpected artist tokens: %v", ne.ArtistTokens)
		}
	})

	t.Run("absent fields stay absent", func(t *testing.T) {
		ne := NormalizeEntry(playlist.Entry{Title: "Solo"})

		if ne.Artist.IsSet() {
			t.Error("artist should stay absent")
		}
		if ne.Album.IsSet() {
			t.Error("album should stay absent")
		}
	})

	t.Run("fields normalizing to empty become absent", func(t *testing.T) {
		entry := playlist.Entry{
			Title:  "Solo",
			Artist: playlist.Some("-"),
			Album:  playlist.Some("   "),
		}

		ne := NormalizeEntry(entry)

		if ne.Artist.IsSet() {
			t.Error("artist of punctuation only should be treated as absent")
		}
		if ne.Album.IsSet() {
			t.Error("blank album should be treated as absent")
		}
	})
}
