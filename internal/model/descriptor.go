package model

// BranchType categorizes how a branch was introduced in the source.
type BranchType string

const (
	// BranchIf represents if/else branches.
	BranchIf BranchType = "if"
	// BranchBinaryExpr represents short-circuiting logical expressions.
	BranchBinaryExpr BranchType = "binary-expr"
	// BranchCondExpr represents ternary conditional expressions.
	BranchCondExpr BranchType = "cond-expr"
	// BranchSwitch represents switch/case arms.
	BranchSwitch BranchType = "switch"
	// BranchDefaultArg represents default argument initializers.
	BranchDefaultArg BranchType = "default-arg"
)

// Function describes one instrumented function declaration. Name and Line are
// informational; merging identifies a function by Loc alone.
type Function struct {
	Name string `json:"name"`
	Decl Range  `json:"decl"`
	Line int    `json:"line"`
	Loc  Range  `json:"loc"`
}

// Key returns the function's merge identity key.
func (f Function) Key() string {
	return f.Loc.Key()
}

// Branch describes one instrumented branch and the location of each of its
// paths. Line is optional; when absent, Loc's start line stands in for it.
// Merging identifies a branch by the location of its first path only.
type Branch struct {
	Type      BranchType `json:"type"`
	Line      *int       `json:"line,omitempty"`
	Loc       *Range     `json:"loc,omitempty"`
	Locations []Range    `json:"locations"`
}

// BranchFromLine builds a branch with an explicit line number.
func BranchFromLine(branchType BranchType, line int, locations []Range) Branch {
	return Branch{Type: branchType, Line: &line, Locations: locations}
}

// BranchFromLoc builds a branch whose line is derived from a range, the
// layout cobertura-style branch maps use.
func BranchFromLoc(branchType BranchType, loc Range, locations []Range) Branch {
	return Branch{Type: branchType, Loc: &loc, Locations: locations}
}

// Key returns the branch's merge identity key.
func (b Branch) Key() string {
	return b.Locations[0].Key()
}

// StartLine returns the line this branch is reported under: the explicit line
// if set, otherwise the start line of Loc. The second return is false when
// neither is present, which callers must treat as corrupted input.
func (b Branch) StartLine() (int, bool) {
	if b.Line != nil {
		return *b.Line, true
	}

	if b.Loc != nil {
		return b.Loc.Start.Line, true
	}

	return 0, false
}
