// Package controller provides output adapters for displaying coverage results.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "github.com/mouse-blink/covfold/internal/model"
)

// FileSummary pairs a file path with its per-category totals.
type FileSummary struct {
	Path    m.Path
	Summary m.Summary
}

// FileDetail extends FileSummary with the file's uncovered line numbers.
type FileDetail struct {
	Path           m.Path
	Summary        m.Summary
	UncoveredLines []int
}

// CheckFailure describes one coverage category that fell below its threshold.
type CheckFailure struct {
	Category  string
	Actual    float64
	Threshold float64
}

// UI defines the interface for displaying coverage results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplaySummary shows the per-file coverage table and the grand total.
	DisplaySummary(ctx context.Context, files []FileSummary, total m.Summary) error
	// DisplayDetails shows per-file coverage including uncovered lines.
	DisplayDetails(ctx context.Context, files []FileDetail, total m.Summary) error
	// DisplayCheckResult reports threshold check failures; an empty slice
	// means every category passed.
	DisplayCheckResult(ctx context.Context, failures []CheckFailure) error
	// DisplayMergeInfo summarizes a completed merge run.
	DisplayMergeInfo(ctx context.Context, shardFiles int, mergedFiles int, output m.Path)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
