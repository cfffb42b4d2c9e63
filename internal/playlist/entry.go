// package playlist parses external playlist files into ordered track entries
package playlist

import "fmt"

// Opt is an optional field value that distinguishes "absent" from "empty".
//
// Parsed playlist records frequently omit artist, album or duration; an
// absent field must never be conflated with an empty string when scoring.
type Opt[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Opt[T] { return Opt[T]{value: v, ok: true} }

// None returns an absent value.
func None[T any]() Opt[T] { return Opt[T]{} }

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) { return o.value, o.ok }

// IsSet reports whether the value is present.
func (o Opt[T]) IsSet() bool { return o.ok }

// Or returns the value when present, otherwise the fallback.
func (o Opt[T]) Or(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// Entry is one requested track from an input playlist, in playlist order.
// Entries are created once during parsing and never mutated afterwards.
type Entry struct {
	Title    string
	Artist   Opt[string]
	Album    Opt[string]
	Duration Opt[int] // seconds
	ISRC     Opt[string]
	Line     int    // 1-based position in the source file, for diagnostics
	Source   string // e.g. "m3u: mix.m3u8"
}

// Reason classifies a per-entry parse failure.
type Reason string

const (
	MissingTitle Reason = "missing_title"
	BadRecord    Reason = "bad_record"
	BadDuration  Reason = "bad_duration"
)

// Diagnostic records a non-fatal parse problem attached to a source line.
// Diagnostics are collected and reported alongside successfully parsed
// entries; they never abort the batch.
type Diagnostic struct {
	Line   int    `json:"line"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("line %d: %s", d.Line, d.Reason)
	}
	return fmt.Sprintf("line %d: %s (%s)", d.Line, d.Reason, d.Detail)
}
