package playlist

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"crate/internal/shared"
)

// Format identifies a supported playlist file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatM3U  Format = "m3u"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
)

// DetectFormat infers the playlist format from a file name.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".m3u", ".m3u8":
		return FormatM3U, nil
	case ".csv":
		return FormatCSV, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, name)
	}
}

// ParseFile reads and parses a playlist file, detecting the format from its extension.
func ParseFile(path string) ([]Entry, []Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read playlist: %w", err)
	}
	return Parse(filepath.Base(path), data)
}

// Parse parses raw playlist content. The name is used for format detection
// and entry source attribution. Entry order follows file order. Malformed
// individual records are collected as diagnostics; only an unrecognized
// format is fatal.
func Parse(name string, data []byte) ([]Entry, []Diagnostic, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, nil, err
	}

	switch format {
	case FormatJSON:
		return parseJSON(name, data)
	case FormatM3U:
		return parseM3U(name, data)
	case FormatCSV:
		return parseCSV(name, data)
	default:
		return parseText(name, data)
	}
}

// jsonKeys maps recognized JSON keys onto entry fields. Unrecognized keys
// are ignored.
var jsonTitleKeys = []string{"title", "track", "name", "song"}

func parseJSON(name string, data []byte) ([]Entry, []Diagnostic, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("%w: not valid JSON: %v", shared.ErrUnsupportedFormat, err)
	}

	source := "json: " + name
	var entries []Entry
	var diags []Diagnostic

	// Accepted shapes: a bare array of track objects, an object with a
	// "tracks" array, or a single track object.
	var records []any
	switch v := root.(type) {
	case []any:
		records = v
	case map[string]any:
		if tracks, ok := v["tracks"].([]any); ok {
			records = tracks
		} else {
			records = []any{v}
		}
	default:
		return nil, nil, fmt.Errorf("%w: JSON root must be an array or object", shared.ErrUnsupportedFormat)
	}

	for i, record := range records {
		obj, ok := record.(map[string]any)
		if !ok {
			diags = append(diags, Diagnostic{Line: i + 1, Reason: BadRecord, Detail: "not an object"})
			continue
		}

		entry := Entry{Line: i + 1, Source: source}
		for _, key := range jsonTitleKeys {
			if s := stringValue(obj[key]); s != "" {
				entry.Title = s
				break
			}
		}
		if entry.Title == "" {
			diags = append(diags, Diagnostic{Line: i + 1, Reason: MissingTitle})
			continue
		}

		if s := stringValue(obj["artist"]); s != "" {
			entry.Artist = Some(s)
		}
		if s := stringValue(obj["album"]); s != "" {
			entry.Album = Some(s)
		}
		if s := stringValue(obj["isrc"]); s != "" {
			entry.ISRC = Some(s)
		}
		if d, ok := durationValue(obj); ok {
			entry.Duration = Some(d)
		}

		entries = append(entries, entry)
	}

	return entries, diags, nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func durationValue(obj map[string]any) (int, bool) {
	if ms, ok := obj["duration_ms"].(float64); ok && ms > 0 {
		return int(ms / 1000), true
	}
	if s, ok := obj["duration"].(float64); ok && s > 0 {
		return int(s), true
	}
	if s, ok := obj["duration"].(string); ok {
		if d, err := parseDuration(s); err == nil {
			return d, true
		}
	}
	return 0, false
}

func parseM3U(name string, data []byte) ([]Entry, []Diagnostic, error) {
	source := "m3u: " + name
	var entries []Entry
	var diags []Diagnostic

	// Duration and "Artist - Title" from the EXTINF directive preceding a
	// path line; reset after each consumed path.
	var pending *Entry

	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		lineNo := i + 1
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#EXTINF") {
			rest, ok := strings.CutPrefix(line, "#EXTINF:")
			if !ok {
				diags = append(diags, Diagnostic{Line: lineNo, Reason: BadRecord, Detail: "malformed EXTINF"})
				continue
			}

			durPart, info, found := strings.Cut(rest, ",")
			if !found {
				diags = append(diags, Diagnostic{Line: lineNo, Reason: BadRecord, Detail: "EXTINF missing display title"})
				continue
			}

			entry := Entry{Line: lineNo, Source: source}
			if dur, err := strconv.Atoi(strings.TrimSpace(durPart)); err == nil && dur > 0 {
				entry.Duration = Some(dur)
			}

			if artist, title, ok := strings.Cut(info, " - "); ok {
				entry.Title = strings.TrimSpace(title)
				if a := strings.TrimSpace(artist); a != "" {
					entry.Artist = Some(a)
				}
			} else {
				entry.Title = strings.TrimSpace(info)
			}

			if entry.Title == "" {
				diags = append(diags, Diagnostic{Line: lineNo, Reason: MissingTitle})
				continue
			}
			pending = &entry
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		// A path line. Use the pending EXTINF entry when present, else
		// derive a title from the file name.
		if pending != nil {
			entries = append(entries, *pending)
			pending = nil
			continue
		}

		base := filepath.Base(line)
		title := strings.TrimSuffix(base, filepath.Ext(base))
		if title == "" {
			diags = append(diags, Diagnostic{Line: lineNo, Reason: MissingTitle, Detail: line})
			continue
		}
		entries = append(entries, Entry{Title: title, Line: lineNo, Source: source})
	}

	// Trailing EXTINF without a path still describes a track.
	if pending != nil {
		entries = append(entries, *pending)
	}

	return entries, diags, nil
}

// csvSynonyms maps canonical fields to case-insensitive header names.
var csvSynonyms = map[string][]string{
	"title":    {"title", "track", "song", "name", "track name"},
	"artist":   {"artist", "artists", "performer", "artist name"},
	"album":    {"album", "release", "album name"},
	"duration": {"duration", "duration_s", "length", "time"},
	"isrc":     {"isrc"},
}

func parseCSV(name string, data []byte) ([]Entry, []Diagnostic, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: not valid CSV: %v", shared.ErrUnsupportedFormat, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	// Header-driven column mapping with recognized synonyms.
	columns := map[string]int{}
	for i, header := range records[0] {
		h := strings.ToLower(strings.TrimSpace(header))
		for field, synonyms := range csvSynonyms {
			for _, syn := range synonyms {
				if h == syn {
					if _, taken := columns[field]; !taken {
						columns[field] = i
					}
				}
			}
		}
	}

	source := "csv: " + name
	cell := func(row []string, field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var entries []Entry
	var diags []Diagnostic
	for i, row := range records[1:] {
		lineNo := i + 2

		entry := Entry{Line: lineNo, Source: source}
		entry.Title = cell(row, "title")
		if entry.Title == "" {
			diags = append(diags, Diagnostic{Line: lineNo, Reason: MissingTitle})
			continue
		}

		if v := cell(row, "artist"); v != "" {
			entry.Artist = Some(v)
		}
		if v := cell(row, "album"); v != "" {
			entry.Album = Some(v)
		}
		if v := cell(row, "isrc"); v != "" {
			entry.ISRC = Some(v)
		}
		if v := cell(row, "duration"); v != "" {
			if d, err := parseDuration(v); err == nil {
				entry.Duration = Some(d)
			} else {
				diags = append(diags, Diagnostic{Line: lineNo, Reason: BadDuration, Detail: v})
			}
		}

		entries = append(entries, entry)
	}

	return entries, diags, nil
}

// sniffDelimiter picks the delimiter with the highest count in the header
// line, preferring comma on ties.
func sniffDelimiter(data []byte) rune {
	header, _, _ := bytes.Cut(data, []byte("\n"))
	best, bestCount := ',', bytes.Count(header, []byte(","))
	for _, candidate := range []rune{';', '\t'} {
		if n := bytes.Count(header, []byte(string(candidate))); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func parseText(name string, data []byte) ([]Entry, []Diagnostic, error) {
	source := "txt: " + name
	var entries []Entry

	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := Entry{Line: i + 1, Source: source}
		if artist, title, ok := strings.Cut(line, " - "); ok {
			entry.Title = strings.TrimSpace(title)
			if a := strings.TrimSpace(artist); a != "" {
				entry.Artist = Some(a)
			}
		} else {
			entry.Title = line
		}

		if entry.Title == "" {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil, nil
}

// parseDuration accepts bare seconds ("214") or clock form ("3:34", "1:02:55").
func parseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		d, err := strconv.Atoi(s)
		if err != nil || d < 0 {
			return 0, fmt.Errorf("invalid duration: %q", s)
		}
		return d, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration: %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}
