// Package match implements the playlist-to-library matching engine.
//
// The pipeline per entry is: normalize the entry text, retrieve a bounded
// candidate set from the library index, score each candidate with a
// field-weighted token-set similarity, then classify the entry as auto,
// review, or unmatched against configured thresholds. Every step is a pure
// function of its inputs, so a run is fully deterministic for a fixed
// library snapshot and configuration.
package match
