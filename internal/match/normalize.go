package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"crate/internal/playlist"
)

// stripMarks decomposes characters and drops combining marks, so "Beyoncé"
// and "Beyonce" normalize identically.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	bracketRe    = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	annotationRe = regexp.MustCompile(`\b(original mix|album version|radio edit|feat|featuring|remastered|extended)\b\.?`)
	punctRe      = regexp.MustCompile(`[-_/,:;~]+`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// Normalize folds a raw title/artist/album string into its canonical
// comparison form: lower-cased, diacritics stripped, bracketed and
// annotation text removed, punctuation folded to spaces, whitespace
// collapsed.
func Normalize(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(stripMarks, t); err == nil {
		t = folded
	}
	t = bracketRe.ReplaceAllString(t, " ")
	t = annotationRe.ReplaceAllString(t, " ")
	t = punctRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(t, " "))
}

// Tokens splits a string into its normalized case-folded words.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// NormalizedEntry is a playlist entry after text normalization, derived
// deterministically and never mutated.
type NormalizedEntry struct {
	Entry playlist.Entry

	Title  string
	Artist playlist.Opt[string]
	Album  playlist.Opt[string]

	TitleTokens  []string
	ArtistTokens []string
}

// NormalizeEntry derives the normalized form of a playlist entry. Optional
// fields that normalize to nothing (e.g. an artist of "-") are treated as
// absent so they never drag scores toward zero.
func NormalizeEntry(e playlist.Entry) NormalizedEntry {
	ne := NormalizedEntry{Entry: e, Title: Normalize(e.Title)}
	ne.TitleTokens = strings.Fields(ne.Title)

	if artist, ok := e.Artist.Get(); ok {
		if n := Normalize(artist); n != "" {
			ne.Artist = playlist.Some(n)
			ne.ArtistTokens = strings.Fields(n)
		}
	}
	if album, ok := e.Album.Get(); ok {
		if n := Normalize(album); n != "" {
			ne.Album = playlist.Some(n)
		}
	}

	return ne
}
