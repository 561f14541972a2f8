package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeKey(t *testing.T) {
	r := NewRange(2, 1, 2, 50)

	assert.Equal(t, "2|1|2|50", r.Key())
}

func TestRangeKey_StructurallyEqualRangesShareKey(t *testing.T) {
	first := NewRange(1, 0, 3, 100)
	second := Range{
		Start: Position{Line: 1, Column: 0},
		End:   Position{Line: 3, Column: 100},
	}

	assert.Equal(t, first, second)
	assert.Equal(t, first.Key(), second.Key())
}

func TestFunctionKey_IgnoresNameAndLine(t *testing.T) {
	loc := NewRange(1, 1, 1, 50)
	first := Function{Name: "foobar", Line: 1, Loc: loc}
	second := Function{Name: "renamed", Line: 99, Loc: loc}

	assert.Equal(t, first.Key(), second.Key())
}

func TestBranchKey_UsesFirstPathOnly(t *testing.T) {
	first := BranchFromLine(BranchIf, 2, []Range{NewRange(2, 1, 2, 20), NewRange(2, 50, 2, 100)})
	second := BranchFromLine(BranchSwitch, 7, []Range{NewRange(2, 1, 2, 20), NewRange(9, 0, 9, 10), NewRange(10, 0, 10, 4)})

	assert.Equal(t, first.Key(), second.Key())
}

func TestBranchStartLine(t *testing.T) {
	withLine := BranchFromLine(BranchIf, 2, []Range{NewRange(2, 1, 2, 20)})
	line, ok := withLine.StartLine()
	assert.True(t, ok)
	assert.Equal(t, 2, line)

	withLoc := BranchFromLoc(BranchIf, NewRange(5, 10, 5, 40), []Range{NewRange(5, 10, 5, 40)})
	line, ok = withLoc.StartLine()
	assert.True(t, ok)
	assert.Equal(t, 5, line)

	// Explicit line wins over the fallback range.
	both := BranchFromLoc(BranchIf, NewRange(5, 10, 5, 40), []Range{NewRange(5, 10, 5, 40)})
	seven := 7
	both.Line = &seven
	line, ok = both.StartLine()
	assert.True(t, ok)
	assert.Equal(t, 7, line)

	neither := Branch{Type: BranchIf, Locations: []Range{NewRange(1, 0, 1, 1)}}
	_, ok = neither.StartLine()
	assert.False(t, ok)
}
