package export

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"crate/internal/match"
	"crate/internal/playlist"
)

// Report is the structured JSON artifact, the primary input to a human
// review step.
type Report struct {
	ExportedAt string                `json:"exported_at,omitempty"`
	Summary    ReportSummary         `json:"summary"`
	Results    []ReportResult        `json:"results"`
	Problems   []playlist.Diagnostic `json:"diagnostics,omitempty"`
}

// ReportSummary counts results per classification.
type ReportSummary struct {
	Total     int `json:"total"`
	Auto      int `json:"auto"`
	Review    int `json:"review"`
	Unmatched int `json:"unmatched"`
}

// ReportEntry echoes the original playlist reference.
type ReportEntry struct {
	Line     int    `json:"line"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Album    string `json:"album,omitempty"`
	Duration int    `json:"duration,omitempty"`
	ISRC     string `json:"isrc,omitempty"`
	Source   string `json:"source,omitempty"`
}

// ReportTrack describes a chosen or alternate library track.
type ReportTrack struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Album    string `json:"album,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// ReportAlternate is a non-chosen candidate retained for review.
type ReportAlternate struct {
	Score float64     `json:"score"`
	Track ReportTrack `json:"track"`
}

// ReportResult is the outcome for one entry.
type ReportResult struct {
	Entry          ReportEntry       `json:"entry"`
	Classification string            `json:"classification"`
	Score          float64           `json:"score"`
	Track          *ReportTrack      `json:"track,omitempty"`
	Alternates     []ReportAlternate `json:"alternates,omitempty"`
}

// BuildReport assembles the report structure without serializing it.
func BuildReport(results []match.Result, opts Options) Report {
	report := Report{
		Results:  make([]ReportResult, 0, len(results)),
		Problems: opts.Diagnostics,
	}
	if !opts.ExportedAt.IsZero() {
		report.ExportedAt = opts.ExportedAt.UTC().Format(time.RFC3339)
	}

	report.Summary.Total = len(results)
	for _, result := range results {
		switch result.Classification {
		case match.ClassAuto:
			report.Summary.Auto++
		case match.ClassReview:
			report.Summary.Review++
		default:
			report.Summary.Unmatched++
		}

		rr := ReportResult{
			Entry:          buildEntry(result.Entry),
			Classification: string(result.Classification),
			Score:          roundScore(result.Score),
		}
		if result.Track != nil {
			track := buildTrack(result)
			rr.Track = &track
		}
		for _, alt := range result.Alternates {
			rr.Alternates = append(rr.Alternates, ReportAlternate{
				Score: roundScore(alt.Score),
				Track: ReportTrack{
					ID:       alt.Track.ID(),
					Path:     alt.Track.Path(),
					Title:    alt.Track.Title(),
					Artist:   alt.Track.Artist(),
					Album:    alt.Track.Album(),
					Duration: alt.Track.Duration(),
				},
			})
		}

		report.Results = append(report.Results, rr)
	}

	return report
}

func exportJSON(results []match.Result, opts Options) ([]byte, error) {
	report := BuildReport(results, opts)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

func buildEntry(entry playlist.Entry) ReportEntry {
	return ReportEntry{
		Line:     entry.Line,
		Title:    entry.Title,
		Artist:   entry.Artist.Or(""),
		Album:    entry.Album.Or(""),
		Duration: entry.Duration.Or(0),
		ISRC:     entry.ISRC.Or(""),
		Source:   entry.Source,
	}
}

func buildTrack(result match.Result) ReportTrack {
	return ReportTrack{
		ID:       result.Track.ID(),
		Path:     result.Track.Path(),
		Title:    result.Track.Title(),
		Artist:   result.Track.Artist(),
		Album:    result.Track.Album(),
		Duration: result.Track.Duration(),
	}
}

// roundScore limits scores to two decimals so report output stays stable
// across float formatting quirks.
func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
