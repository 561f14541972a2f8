package domain

import (
	"fmt"
	"sort"

	m "github.com/mouse-blink/covfold/internal/model"
)

// CoverageMap aggregates file coverage records keyed by path. Its single
// aggregation rule is merge-or-insert: a record for a known path merges into
// the one already held, a new path is inserted as a copy.
//
// Records for different paths are independent; callers may populate several
// CoverageMaps concurrently and Merge them afterwards, but a single
// CoverageMap is not safe for concurrent mutation.
type CoverageMap struct {
	files map[m.Path]*m.FileCoverage
}

// NewCoverageMap creates an empty aggregate.
func NewCoverageMap() *CoverageMap {
	return &CoverageMap{files: make(map[m.Path]*m.FileCoverage)}
}

// AddFileCoverage merges fc into the aggregate. The aggregate keeps its own
// copy; the caller's record is never retained or mutated.
func (c *CoverageMap) AddFileCoverage(fc *m.FileCoverage) error {
	existing, ok := c.files[fc.Path]
	if !ok {
		c.files[fc.Path] = fc.Clone()
		return nil
	}

	if err := Merge(existing, fc); err != nil {
		return fmt.Errorf("merge record for %s: %w", fc.Path, err)
	}

	return nil
}

// Merge folds every record of other into this aggregate.
func (c *CoverageMap) Merge(other *CoverageMap) error {
	for _, path := range other.Files() {
		if err := c.AddFileCoverage(other.files[path]); err != nil {
			return err
		}
	}

	return nil
}

// Files returns the tracked paths in sorted order.
func (c *CoverageMap) Files() []m.Path {
	paths := make([]m.Path, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths
}

// FileCoverageFor returns the record held for path.
func (c *CoverageMap) FileCoverageFor(path m.Path) (*m.FileCoverage, bool) {
	fc, ok := c.files[path]
	return fc, ok
}

// Summarize derives the whole-tree summary by adding up every file's totals.
func (c *CoverageMap) Summarize() (m.Summary, error) {
	total := EmptySummary()

	for _, path := range c.Files() {
		summary, err := Summarize(c.files[path])
		if err != nil {
			return m.Summary{}, err
		}

		total = total.Add(summary)
	}

	return total, nil
}
