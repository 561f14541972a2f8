// Package model defines the data structures for coverage records.
package model

import "fmt"

// Path represents a file system path.
type Path string

// Position is a single point in a source file. Lines are 1-indexed, columns
// are 0-indexed.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is a half-open source span between two positions. Ranges are value
// types and never mutated once built.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange builds a range from start/end line and column numbers.
func NewRange(startLine, startColumn, endLine, endColumn int) Range {
	return Range{
		Start: Position{Line: startLine, Column: startColumn},
		End:   Position{Line: endLine, Column: endColumn},
	}
}

// Key returns the identity key for this range. Two independently produced
// records index the same construct under arbitrary integers, so merging joins
// entries on this location-derived key instead of the stored index.
func (r Range) Key() string {
	return fmt.Sprintf("%d|%d|%d|%d", r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}
