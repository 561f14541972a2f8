// Package domain implements the coverage merge engine and its derived views.
package domain

import (
	"errors"
	"fmt"

	m "github.com/mouse-blink/covfold/internal/model"
	pkg "github.com/mouse-blink/covfold/pkg"
)

// ErrMissingDescriptor reports a hit map entry whose index has no matching
// descriptor. The record pair was mismatched upstream; nothing is skipped.
var ErrMissingDescriptor = errors.New("hit count without matching descriptor")

// ErrNoBranchLine reports a branch descriptor that carries neither an
// explicit line nor a location range.
var ErrNoBranchLine = errors.New("branch has neither line nor location")

// Merge combines src into dst in place. Records are joined construct by
// construct on location identity, not on the stored indices, so records
// produced by independent instrumentation runs merge correctly. Indices are
// reassigned densely afterwards and carry no meaning across merges.
//
// A src placeholder (all=true) carries no detail and is discarded. A dst
// placeholder is replaced wholesale by a copy of src.
//
// Merge holds no locks; callers must not merge into the same record from two
// goroutines at once. dst is unchanged when an error is returned.
func Merge(dst, src *m.FileCoverage) error {
	if src.All {
		return nil
	}

	if dst.All {
		*dst = *src.Clone()
		return nil
	}

	statementHits, statementMap, err := mergeScalar(dst.S, dst.StatementMap, src.S, src.StatementMap, m.Range.Key)
	if err != nil {
		return fmt.Errorf("merge statements for %s: %w", dst.Path, err)
	}

	fnHits, fnMap, err := mergeScalar(dst.F, dst.FnMap, src.F, src.FnMap, m.Function.Key)
	if err != nil {
		return fmt.Errorf("merge functions for %s: %w", dst.Path, err)
	}

	branchHits, branchMap, err := mergeVector(dst.B, dst.BranchMap, src.B, src.BranchMap)
	if err != nil {
		return fmt.Errorf("merge branches for %s: %w", dst.Path, err)
	}

	// Truthiness counters merge only when both sides track them; a dst-only
	// map is deliberately left as it is. Keys are resolved against the
	// already-merged branch map.
	var truthinessHits *pkg.IntMap[[]int]

	if dst.BT != nil && src.BT != nil {
		merged, _, err := mergeVector(*dst.BT, branchMap, *src.BT, src.BranchMap)
		if err != nil {
			return fmt.Errorf("merge branch truthiness for %s: %w", dst.Path, err)
		}

		truthinessHits = &merged
	}

	dst.S = statementHits
	dst.StatementMap = statementMap
	dst.F = fnHits
	dst.FnMap = fnMap
	dst.B = branchHits
	dst.BranchMap = branchMap

	if truthinessHits != nil {
		dst.BT = truthinessHits
	}

	return nil
}

type scalarEntry[D any] struct {
	hits int
	item D
}

// mergeScalar joins two (hit map, descriptor map) pairs on the descriptor
// identity key. Counts under the same key are summed; the first-seen
// descriptor wins. The result is re-indexed from 0.
func mergeScalar[D any](
	firstHits pkg.IntMap[int], firstMap pkg.IntMap[D],
	secondHits pkg.IntMap[int], secondMap pkg.IntMap[D],
	itemKey func(D) string,
) (pkg.IntMap[int], pkg.IntMap[D], error) {
	working := pkg.NewMap[string, scalarEntry[D]]()

	err := firstHits.Range(func(index, hits int) error {
		item, ok := firstMap.Get(index)
		if !ok {
			return fmt.Errorf("%w: index %d", ErrMissingDescriptor, index)
		}

		working.Set(itemKey(item), scalarEntry[D]{hits: hits, item: item})

		return nil
	})
	if err != nil {
		return pkg.IntMap[int]{}, pkg.IntMap[D]{}, err
	}

	err = secondHits.Range(func(index, hits int) error {
		item, ok := secondMap.Get(index)
		if !ok {
			return fmt.Errorf("%w: index %d", ErrMissingDescriptor, index)
		}

		key := itemKey(item)
		if existing, ok := working.Get(key); ok {
			existing.hits += hits
			working.Set(key, existing)
		} else {
			working.Set(key, scalarEntry[D]{hits: hits, item: item})
		}

		return nil
	})
	if err != nil {
		return pkg.IntMap[int]{}, pkg.IntMap[D]{}, err
	}

	var (
		mergedHits pkg.IntMap[int]
		mergedMap  pkg.IntMap[D]
		next       int
	)

	_ = working.Range(func(_ string, entry scalarEntry[D]) error {
		mergedHits.Set(next, entry.hits)
		mergedMap.Set(next, entry.item)
		next++

		return nil
	})

	return mergedHits, mergedMap, nil
}

type vectorEntry struct {
	hits []int
	item m.Branch
}

// mergeVector is the branch flavor of mergeScalar: values are per-path count
// lists. When the incoming list is longer, the existing one is zero-extended
// first, then counts are added position by position. Two branches sharing an
// identity key but disagreeing on path structure are added positionally
// without validation.
func mergeVector(
	firstHits pkg.IntMap[[]int], firstMap pkg.IntMap[m.Branch],
	secondHits pkg.IntMap[[]int], secondMap pkg.IntMap[m.Branch],
) (pkg.IntMap[[]int], pkg.IntMap[m.Branch], error) {
	working := pkg.NewMap[string, vectorEntry]()

	err := firstHits.Range(func(index int, hits []int) error {
		item, ok := firstMap.Get(index)
		if !ok {
			return fmt.Errorf("%w: index %d", ErrMissingDescriptor, index)
		}

		working.Set(item.Key(), vectorEntry{hits: append([]int(nil), hits...), item: item})

		return nil
	})
	if err != nil {
		return pkg.IntMap[[]int]{}, pkg.IntMap[m.Branch]{}, err
	}

	err = secondHits.Range(func(index int, hits []int) error {
		item, ok := secondMap.Get(index)
		if !ok {
			return fmt.Errorf("%w: index %d", ErrMissingDescriptor, index)
		}

		key := item.Key()

		existing, ok := working.Get(key)
		if !ok {
			working.Set(key, vectorEntry{hits: append([]int(nil), hits...), item: item})
			return nil
		}

		for len(existing.hits) < len(hits) {
			existing.hits = append(existing.hits, 0)
		}

		for i, count := range hits {
			existing.hits[i] += count
		}

		working.Set(key, existing)

		return nil
	})
	if err != nil {
		return pkg.IntMap[[]int]{}, pkg.IntMap[m.Branch]{}, err
	}

	var (
		mergedHits pkg.IntMap[[]int]
		mergedMap  pkg.IntMap[m.Branch]
		next       int
	)

	_ = working.Range(func(_ string, entry vectorEntry) error {
		mergedHits.Set(next, entry.hits)
		mergedMap.Set(next, entry.item)
		next++

		return nil
	})

	return mergedHits, mergedMap, nil
}
