package export

import (
	"bytes"
	"fmt"

	"crate/internal/match"
)

// exportM3U writes an extended M3U playlist. Matched entries resolve to
// their library file paths; unmatched entries are dropped or commented per
// the options.
func exportM3U(results []match.Result, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("#EXTM3U\n")

	for _, result := range results {
		if !included(result, opts) {
			if opts.CommentUnmatched && result.Classification == match.ClassUnmatched {
				fmt.Fprintf(&buf, "# unmatched: %s\n", displayTitle(result))
			}
			continue
		}
		if result.Track == nil {
			continue
		}

		duration := result.Track.Duration()
		if duration <= 0 {
			duration = -1
		}
		fmt.Fprintf(&buf, "#EXTINF:%d,%s\n", duration, displayTitle(result))
		buf.WriteString(result.Track.Path())
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}
