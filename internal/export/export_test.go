package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"crate/internal/match"
	"crate/internal/models"
	"crate/internal/playlist"
	"crate/internal/shared"
)

func testResults() []match.Result {
	auto := models.NewLibraryTrack(1, models.TrackMeta{
		Path:     "/music/killing_mood/dancing.flac",
		Title:    "Dancing With The Damned",
		Artist:   "Killing Mood",
		Album:    "First Light",
		Duration: 214,
	}, "dancing with the damned", "killing mood")
	auto.SetID("track-1")

	review := models.NewLibraryTrack(2, models.TrackMeta{
		Path:     "/music/alpha/stay.mp3",
		Title:    "Stay",
		Artist:   "Alpha",
		Duration: 198,
	}, "stay", "alpha")
	review.SetID("track-2")

	alternate := models.NewLibraryTrack(3, models.TrackMeta{
		Path:     "/music/beta/stay.mp3",
		Title:    "Stay",
		Artist:   "Beta",
		Duration: 180,
	}, "stay", "beta")
	alternate.SetID("track-3")

	return []match.Result{
		{
			Entry: playlist.Entry{
				Title:  "Dancing With The Damned",
				Artist: playlist.Some("Killing Mood"),
				Line:   1,
			},
			Classification: match.ClassAuto,
			Track:          auto,
			Score:          100,
		},
		{
			Entry:          playlist.Entry{Title: "Stay", Line: 2},
			Classification: match.ClassReview,
			Track:          review,
			Score:          82.4567,
			Alternates:     []match.Candidate{{Track: alternate, Score: 80.1}},
		},
		{
			Entry:          playlist.Entry{Title: "Nothing Like This", Line: 3},
			Classification: match.ClassUnmatched,
		},
	}
}

func TestParseExportFormat(t *testing.T) {
	for _, name := range []string{"m3u", "JSON", "Csv"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", name, err)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestExportM3U(t *testing.T) {
	t.Run("auto entries only by default", func(t *testing.T) {
		out, err := Export(testResults(), FormatM3U, Options{})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		content := string(out)
		if !strings.HasPrefix(content, "#EXTM3U\n") {
			t.Error("missing #EXTM3U header")
		}
		if !strings.Contains(content, "#EXTINF:214,Killing Mood - Dancing With The Damned\n/music/killing_mood/dancing.flac\n") {
			t.Errorf("auto entry missing or malformed:\n%s", content)
		}
		if strings.Contains(content, "/music/alpha/stay.mp3") {
			t.Error("review entry should be excluded by default")
		}
		if strings.Contains(content, "Nothing Like This") {
			t.Error("unmatched entry should be dropped by default")
		}
	})

	t.Run("include review and comment unmatched", func(t *testing.T) {
		out, err := Export(testResults(), FormatM3U, Options{IncludeReview: true, CommentUnmatched: true})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		content := string(out)
		if !strings.Contains(content, "/music/alpha/stay.mp3") {
			t.Error("review entry should be included")
		}
		if !strings.Contains(content, "# unmatched: Nothing Like This\n") {
			t.Errorf("unmatched entry should appear as a comment:\n%s", content)
		}
	})

	t.Run("export is idempotent", func(t *testing.T) {
		results := testResults()
		opts := Options{IncludeReview: true, CommentUnmatched: true}

		first, err := Export(results, FormatM3U, opts)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		second, err := Export(results, FormatM3U, opts)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		if !bytes.Equal(first, second) {
			t.Error("repeated exports should be byte-identical")
		}
	})
}

func TestExportJSON(t *testing.T) {
	t.Run("report structure", func(t *testing.T) {
		out, err := Export(testResults(), FormatJSON, Options{
			Diagnostics: []playlist.Diagnostic{{Line: 4, Reason: playlist.MissingTitle}},
		})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		var report Report
		if err := json.Unmarshal(out, &report); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}

		if report.Summary.Total != 3 || report.Summary.Auto != 1 || report.Summary.Review != 1 || report.Summary.Unmatched != 1 {
			t.Errorf("unexpected summary: %+v", report.Summary)
		}
		if len(report.Results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(report.Results))
		}

		reviewResult := report.Results[1]
		if reviewResult.Score != 82.46 {
			t.Errorf("score should round to two decimals, got %f", reviewResult.Score)
		}
		if reviewResult.Track == nil || reviewResult.Track.ID != "track-2" {
			t.Error("review result should carry its proposed track")
		}
		if len(reviewResult.Alternates) != 1 || reviewResult.Alternates[0].Track.ID != "track-3" {
			t.Errorf("unexpected alternates: %+v", reviewResult.Alternates)
		}

		if report.Results[2].Track != nil {
			t.Error("unmatched result should carry no track")
		}
		if len(report.Problems) != 1 {
			t.Errorf("diagnostics should be carried into the report, got %d", len(report.Problems))
		}
		if report.ExportedAt != "" {
			t.Error("report should omit the timestamp unless one is set")
		}
	})

	t.Run("timestamp only when set", func(t *testing.T) {
		stamp := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
		out, err := Export(testResults(), FormatJSON, Options{ExportedAt: stamp})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		var report Report
		if err := json.Unmarshal(out, &report); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if report.ExportedAt != "2026-03-14T09:26:53Z" {
			t.Errorf("unexpected timestamp %q", report.ExportedAt)
		}
	})

	t.Run("export is idempotent", func(t *testing.T) {
		results := testResults()

		first, err := Export(results, FormatJSON, Options{})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		second, err := Export(results, FormatJSON, Options{})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		if !bytes.Equal(first, second) {
			t.Error("repeated exports should be byte-identical")
		}
	})
}

func TestExportCSV(t *testing.T) {
	out, err := Export(testResults(), FormatCSV, Options{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "Line,Title,Artist,Classification,Score,Path" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "1,Dancing With The Damned,Killing Mood,auto,100.00,/music/killing_mood/dancing.flac" {
		t.Errorf("unexpected auto row %q", lines[1])
	}
	if !strings.Contains(lines[3], "unmatched") {
		t.Errorf("unmatched entries belong in CSV output, got %q", lines[3])
	}
	if !strings.HasSuffix(lines[3], ",") {
		t.Errorf("unmatched row should have an empty path, got %q", lines[3])
	}
}
