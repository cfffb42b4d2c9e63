// package export serializes match results to playlist and report formats
package export

import (
	"fmt"
	"strings"
	"time"

	"crate/internal/match"
	"crate/internal/playlist"
	"crate/internal/shared"
)

// Format identifies a supported export format.
type Format string

const (
	FormatM3U  Format = "m3u"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name from the CLI.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatM3U:
		return FormatM3U, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, name)
	}
}

// Options controls export behavior. The zero value includes only
// auto-classified entries and omits unmatched ones.
type Options struct {
	// IncludeReview also emits review-classified entries into playlist
	// formats (they are always present in the JSON report).
	IncludeReview bool

	// CommentUnmatched emits unmatched entries as comment lines in M3U
	// output instead of dropping them.
	CommentUnmatched bool

	// Diagnostics are parse problems carried into the JSON report.
	Diagnostics []playlist.Diagnostic

	// ExportedAt stamps the JSON report when non-zero. Left zero, the
	// report contains no timestamp so repeated exports of the same results
	// are byte-identical.
	ExportedAt time.Time
}

// Export serializes an ordered result sequence into the requested format.
// It never re-runs matching; this is a pure serialization step, and the
// same results with the same options always produce identical bytes.
func Export(results []match.Result, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatM3U:
		return exportM3U(results, opts)
	case FormatJSON:
		return exportJSON(results, opts)
	case FormatCSV:
		return exportCSV(results, opts)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// included reports whether a result belongs in playlist-style output.
func included(result match.Result, opts Options) bool {
	switch result.Classification {
	case match.ClassAuto:
		return true
	case match.ClassReview:
		return opts.IncludeReview
	default:
		return false
	}
}

// displayTitle renders "Artist - Title" for a result, preferring the
// matched track's tags over the raw entry.
func displayTitle(result match.Result) string {
	if result.Track != nil {
		if artist := result.Track.Artist(); artist != "" {
			return artist + " - " + result.Track.Title()
		}
		return result.Track.Title()
	}
	if artist, ok := result.Entry.Artist.Get(); ok {
		return artist + " - " + result.Entry.Title
	}
	return result.Entry.Title
}
