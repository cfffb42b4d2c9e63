package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"crate/internal/match"
)

// exportCSV writes one flat row per result, including unmatched entries,
// so the file doubles as a simple review worksheet.
func exportCSV(results []match.Result, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Line", "Title", "Artist", "Classification", "Score", "Path"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range results {
		path := ""
		if result.Track != nil {
			path = result.Track.Path()
		}
		record := []string{
			strconv.Itoa(result.Entry.Line),
			result.Entry.Title,
			result.Entry.Artist.Or(""),
			string(result.Classification),
			strconv.FormatFloat(roundScore(result.Score), 'f', 2, 64),
			path,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
