package domain

import (
	"fmt"

	m "github.com/mouse-blink/covfold/internal/model"
	pkg "github.com/mouse-blink/covfold/pkg"
)

// LineCoverage computes hit counts keyed by source line from statement
// coverage. Several statements can share a line; the line gets the maximum
// count among them, not the sum.
func LineCoverage(fc *m.FileCoverage) (pkg.IntMap[int], error) {
	var lines pkg.IntMap[int]

	err := fc.S.Range(func(index, count int) error {
		loc, ok := fc.StatementMap.Get(index)
		if !ok {
			return fmt.Errorf("%w: statement index %d in %s", ErrMissingDescriptor, index, fc.Path)
		}

		line := loc.Start.Line
		if previous, ok := lines.Get(line); !ok || previous < count {
			lines.Set(line, count)
		}

		return nil
	})
	if err != nil {
		return pkg.IntMap[int]{}, err
	}

	return lines, nil
}

// UncoveredLines returns the line numbers whose best statement count is zero.
func UncoveredLines(fc *m.FileCoverage) ([]int, error) {
	lines, err := LineCoverage(fc)
	if err != nil {
		return nil, err
	}

	var uncovered []int

	_ = lines.Range(func(line, hits int) error {
		if hits == 0 {
			uncovered = append(uncovered, line)
		}

		return nil
	})

	return uncovered, nil
}

// BranchCoverageByLine groups the per-path hit counts of every branch by the
// line the branch is reported under, then reduces each line's flat bucket of
// counts to covered/total/percentage.
func BranchCoverageByLine(fc *m.FileCoverage) (pkg.IntMap[m.CoverageByLine], error) {
	var buckets pkg.IntMap[[]int]

	err := fc.BranchMap.Range(func(index int, branch m.Branch) error {
		line, ok := branch.StartLine()
		if !ok {
			return fmt.Errorf("%w: branch index %d in %s", ErrNoBranchLine, index, fc.Path)
		}

		counts, ok := fc.B.Get(index)
		if !ok {
			return fmt.Errorf("%w: branch index %d in %s", ErrMissingDescriptor, index, fc.Path)
		}

		existing, _ := buckets.Get(line)
		buckets.Set(line, append(existing, counts...))

		return nil
	})
	if err != nil {
		return pkg.IntMap[m.CoverageByLine]{}, err
	}

	var byLine pkg.IntMap[m.CoverageByLine]

	_ = buckets.Range(func(line int, counts []int) error {
		covered := 0

		for _, count := range counts {
			if count > 0 {
				covered++
			}
		}

		byLine.Set(line, m.CoverageByLine{
			Covered: covered,
			Total:   len(counts),
			Pct:     m.Percent(covered, len(counts)),
		})

		return nil
	})

	return byLine, nil
}

// ResetHits zeroes every count in place, keeping all descriptor maps intact.
// Lets a caller re-measure without re-instrumenting.
func ResetHits(fc *m.FileCoverage) {
	_ = fc.S.Range(func(index, _ int) error {
		fc.S.Set(index, 0)
		return nil
	})

	_ = fc.F.Range(func(index, _ int) error {
		fc.F.Set(index, 0)
		return nil
	})

	zeroCounts := func(_ int, counts []int) error {
		for i := range counts {
			counts[i] = 0
		}

		return nil
	}

	_ = fc.B.Range(zeroCounts)

	if fc.BT != nil {
		_ = fc.BT.Range(zeroCounts)
	}
}

// Summarize derives the per-category totals snapshot for one record.
func Summarize(fc *m.FileCoverage) (m.Summary, error) {
	lines, err := LineCoverage(fc)
	if err != nil {
		return m.Summary{}, err
	}

	summary := m.Summary{
		Lines:      simpleTotals(lines),
		Statements: simpleTotals(fc.S),
		Functions:  simpleTotals(fc.F),
		Branches:   branchTotals(fc.B),
	}

	if fc.BT != nil {
		truthiness := branchTotals(*fc.BT)
		summary.BranchesTrue = &truthiness
	}

	return summary, nil
}

// EmptySummary is the summary of nothing: zero totals in every category,
// conventionally 100% covered.
func EmptySummary() m.Summary {
	return m.Summary{
		Lines:      m.NewTotals(0, 0),
		Statements: m.NewTotals(0, 0),
		Functions:  m.NewTotals(0, 0),
		Branches:   m.NewTotals(0, 0),
	}
}

func simpleTotals(hits pkg.IntMap[int]) m.Totals {
	covered := 0

	_ = hits.Range(func(_, count int) error {
		if count > 0 {
			covered++
		}

		return nil
	})

	return m.NewTotals(hits.Len(), covered)
}

// branchTotals counts paths, not branches: every recorded path contributes to
// the denominator.
func branchTotals(hits pkg.IntMap[[]int]) m.Totals {
	total := 0
	covered := 0

	_ = hits.Range(func(_ int, counts []int) error {
		total += len(counts)

		for _, count := range counts {
			if count > 0 {
				covered++
			}
		}

		return nil
	})

	return m.NewTotals(total, covered)
}
