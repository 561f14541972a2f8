package model

import (
	"encoding/json"

	pkg "github.com/mouse-blink/covfold/pkg"
)

// FileCoverage is the per-file coverage record exchanged with instrumentation
// front ends and reporters. Field names are the wire contract and must not
// change. All maps preserve insertion order; the merge engine depends on it.
//
// Hit maps (S, F, B, BT) share keys with their descriptor maps. A hit entry
// without a matching descriptor means the record was corrupted upstream.
type FileCoverage struct {
	// All marks a "fully covered, no detail" placeholder. When set, the
	// remaining fields are not representative of the file's real data.
	All          bool                 `json:"all,omitempty"`
	Path         Path                 `json:"path"`
	StatementMap pkg.IntMap[Range]    `json:"statementMap"`
	FnMap        pkg.IntMap[Function] `json:"fnMap"`
	BranchMap    pkg.IntMap[Branch]   `json:"branchMap"`
	S            pkg.IntMap[int]      `json:"s"`
	F            pkg.IntMap[int]      `json:"f"`
	B            pkg.IntMap[[]int]    `json:"b"`
	// BT holds branch truthiness counters and is only present when the
	// front end tracks logical short-circuit evaluation.
	BT *pkg.IntMap[[]int] `json:"bT,omitempty"`
	// InputSourceMap is carried through untouched for downstream remappers.
	InputSourceMap json.RawMessage `json:"inputSourceMap,omitempty"`
}

// NewFileCoverage creates an empty record for path. When trackLogic is true
// the record carries a branch truthiness hit map.
func NewFileCoverage(path Path, trackLogic bool) *FileCoverage {
	fc := &FileCoverage{Path: path}
	if trackLogic {
		fc.BT = &pkg.IntMap[[]int]{}
	}

	return fc
}

// Clone returns a deep copy of the record.
func (fc *FileCoverage) Clone() *FileCoverage {
	clone := &FileCoverage{
		All:          fc.All,
		Path:         fc.Path,
		StatementMap: cloneIntMap(fc.StatementMap, nil),
		FnMap:        cloneIntMap(fc.FnMap, nil),
		BranchMap:    cloneIntMap(fc.BranchMap, cloneBranch),
		S:            cloneIntMap(fc.S, nil),
		F:            cloneIntMap(fc.F, nil),
		B:            cloneIntMap(fc.B, cloneCounts),
	}

	if fc.BT != nil {
		bt := cloneIntMap(*fc.BT, cloneCounts)
		clone.BT = &bt
	}

	if fc.InputSourceMap != nil {
		clone.InputSourceMap = append(json.RawMessage(nil), fc.InputSourceMap...)
	}

	return clone
}

// cloneIntMap copies an ordered map. copyValue may be nil for value types
// that need no deep copy.
func cloneIntMap[V any](m pkg.IntMap[V], copyValue func(V) V) pkg.IntMap[V] {
	var clone pkg.IntMap[V]

	_ = m.Range(func(key int, value V) error {
		if copyValue != nil {
			value = copyValue(value)
		}

		clone.Set(key, value)

		return nil
	})

	return clone
}

func cloneCounts(counts []int) []int {
	return append([]int(nil), counts...)
}

func cloneBranch(branch Branch) Branch {
	clone := branch
	clone.Locations = append([]Range(nil), branch.Locations...)

	if branch.Line != nil {
		line := *branch.Line
		clone.Line = &line
	}

	if branch.Loc != nil {
		loc := *branch.Loc
		clone.Loc = &loc
	}

	return clone
}
