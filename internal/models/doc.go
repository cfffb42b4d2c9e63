// Package models contains persistent entity definitions and the
// generic repository contract they are stored through.
package models
