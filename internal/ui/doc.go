// Package ui implements the interactive review step for match results.
//
// Review-classified entries are listed with their proposed track and
// alternates; the user accepts, reassigns, or rejects each one before the
// final export.
package ui
