package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covfold/internal/model"
)

func TestCoverageMap_AddKeepsItsOwnCopy(t *testing.T) {
	aggregate := NewCoverageMap()

	fc := baseRecord()
	fc.S.Set(0, 1)
	require.NoError(t, aggregate.AddFileCoverage(fc))

	// Mutating the caller's record afterwards must not leak in.
	fc.S.Set(0, 99)

	held, ok := aggregate.FileCoverageFor("/path/to/file")
	require.True(t, ok)

	hit, _ := held.S.Get(0)
	assert.Equal(t, 1, hit)
}

func TestCoverageMap_SamePathMergesDifferentPathsCoexist(t *testing.T) {
	aggregate := NewCoverageMap()

	first := baseRecord()
	first.S.Set(0, 1)
	require.NoError(t, aggregate.AddFileCoverage(first))

	second := shiftedRecord()
	second.S.Set(1, 2)
	require.NoError(t, aggregate.AddFileCoverage(second))

	other := baseRecord()
	other.Path = "/path/to/other"
	require.NoError(t, aggregate.AddFileCoverage(other))

	assert.Equal(t, []m.Path{"/path/to/file", "/path/to/other"}, aggregate.Files())

	held, ok := aggregate.FileCoverageFor("/path/to/file")
	require.True(t, ok)

	// first's index 0 and second's index 1 name the same statement.
	hit, _ := held.S.Get(0)
	assert.Equal(t, 3, hit)
	assert.Equal(t, 4, held.StatementMap.Len())
}

func TestCoverageMap_Merge(t *testing.T) {
	left := NewCoverageMap()
	fc := baseRecord()
	fc.S.Set(0, 1)
	require.NoError(t, left.AddFileCoverage(fc))

	right := NewCoverageMap()
	fc = baseRecord()
	fc.S.Set(0, 2)
	require.NoError(t, right.AddFileCoverage(fc))
	fc = baseRecord()
	fc.Path = "/path/to/other"
	require.NoError(t, right.AddFileCoverage(fc))

	require.NoError(t, left.Merge(right))

	assert.Len(t, left.Files(), 2)

	held, _ := left.FileCoverageFor("/path/to/file")
	hit, _ := held.S.Get(0)
	assert.Equal(t, 3, hit)
}

func TestCoverageMap_Summarize(t *testing.T) {
	aggregate := NewCoverageMap()

	covered := baseRecord()
	covered.S.Set(0, 1)
	covered.S.Set(1, 1)
	covered.S.Set(2, 1)
	covered.S.Set(3, 1)
	covered.F.Set(0, 1)
	covered.B.Set(0, []int{1, 1})
	require.NoError(t, aggregate.AddFileCoverage(covered))

	untouched := baseRecord()
	untouched.Path = "/path/to/other"
	require.NoError(t, aggregate.AddFileCoverage(untouched))

	total, err := aggregate.Summarize()
	require.NoError(t, err)

	assert.Equal(t, m.NewTotals(8, 4), total.Statements)
	assert.Equal(t, m.NewTotals(4, 2), total.Lines)
	assert.Equal(t, m.NewTotals(2, 1), total.Functions)
	assert.Equal(t, m.NewTotals(4, 2), total.Branches)
	assert.Nil(t, total.BranchesTrue)
}

func TestCoverageMap_SummarizeEmpty(t *testing.T) {
	total, err := NewCoverageMap().Summarize()
	require.NoError(t, err)

	assert.Equal(t, EmptySummary(), total)
}
