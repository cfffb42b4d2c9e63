// Package repositories implements sqlite-backed persistence for the
// library index. TrackRepository doubles as the read-only accessor the
// matching engine queries for candidates.
package repositories
