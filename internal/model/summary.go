package model

// Percent computes covered/total as a percentage. An empty category has
// nothing to measure and counts as fully covered, so a zero total yields 100
// rather than a division fault.
func Percent(covered, total int) float64 {
	if total == 0 {
		return 100.0
	}

	return float64(covered) / float64(total) * 100.0
}

// Totals holds the covered/total counts and percentage for one coverage
// category. Skipped is always 0 here; it exists for wire compatibility with
// reporters that support pragma-skipped constructs.
type Totals struct {
	Total   int     `json:"total"`
	Covered int     `json:"covered"`
	Skipped int     `json:"skipped"`
	Pct     float64 `json:"pct"`
}

// NewTotals builds Totals with the percentage filled in.
func NewTotals(total, covered int) Totals {
	return Totals{Total: total, Covered: covered, Pct: Percent(covered, total)}
}

// Add combines two totals and recomputes the percentage.
func (t Totals) Add(other Totals) Totals {
	merged := Totals{
		Total:   t.Total + other.Total,
		Covered: t.Covered + other.Covered,
		Skipped: t.Skipped + other.Skipped,
	}
	merged.Pct = Percent(merged.Covered, merged.Total)

	return merged
}

// Summary is an immutable snapshot of a record's totals per category. It does
// not track later changes to the record it was derived from.
type Summary struct {
	Lines      Totals `json:"lines"`
	Statements Totals `json:"statements"`
	Functions  Totals `json:"functions"`
	Branches   Totals `json:"branches"`
	// BranchesTrue is only present for records that track branch truthiness.
	BranchesTrue *Totals `json:"branchesTrue,omitempty"`
}

// Add combines two summaries category by category. A truthiness total is
// present in the result when either side carries one.
func (s Summary) Add(other Summary) Summary {
	merged := Summary{
		Lines:      s.Lines.Add(other.Lines),
		Statements: s.Statements.Add(other.Statements),
		Functions:  s.Functions.Add(other.Functions),
		Branches:   s.Branches.Add(other.Branches),
	}

	switch {
	case s.BranchesTrue != nil && other.BranchesTrue != nil:
		combined := s.BranchesTrue.Add(*other.BranchesTrue)
		merged.BranchesTrue = &combined
	case s.BranchesTrue != nil:
		combined := *s.BranchesTrue
		merged.BranchesTrue = &combined
	case other.BranchesTrue != nil:
		combined := *other.BranchesTrue
		merged.BranchesTrue = &combined
	}

	return merged
}

// CoverageByLine is the per-line view of branch coverage: how many of the
// paths recorded on a line were taken.
type CoverageByLine struct {
	Covered int     `json:"covered"`
	Total   int     `json:"total"`
	Pct     float64 `json:"coverage"`
}
