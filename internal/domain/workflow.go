package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/covfold/internal/adapter"
	"github.com/mouse-blink/covfold/internal/controller"
	m "github.com/mouse-blink/covfold/internal/model"
)

// ErrCheckFailed is returned by Check when any category is below its
// threshold.
var ErrCheckFailed = errors.New("coverage thresholds not met")

// MergeArgs configures the merge workflow.
type MergeArgs struct {
	// Reports is the directory holding shard_* subdirectories produced by
	// parallel workers.
	Reports m.Path
	// Output is the merged coverage map document to write.
	Output m.Path
}

// ReportArgs configures the report workflow.
type ReportArgs struct {
	Coverage m.Path
}

// Thresholds holds the minimum acceptable percentage per category. A zero
// threshold disables the check for that category.
type Thresholds struct {
	Lines      float64
	Statements float64
	Functions  float64
	Branches   float64
}

// CheckArgs configures the threshold check workflow.
type CheckArgs struct {
	Coverage   m.Path
	Thresholds Thresholds
}

// ViewArgs configures the detail view workflow.
type ViewArgs struct {
	Coverage m.Path
}

// Workflow ties the coverage store, the merge engine, and the UI together.
type Workflow interface {
	Merge(ctx context.Context, args MergeArgs) error
	Report(ctx context.Context, args ReportArgs) error
	Check(ctx context.Context, args CheckArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	store adapter.CoverageStore
	ui    controller.UI
}

// NewWorkflow creates a Workflow using the provided dependencies.
func NewWorkflow(store adapter.CoverageStore, ui controller.UI) Workflow {
	return &workflow{store: store, ui: ui}
}

// Merge loads every shard document concurrently, folds all records into one
// aggregate, and writes the merged document. Decoding runs in parallel;
// merging itself is serialized because records for the same path must never
// be merged concurrently.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	shardFiles, err := w.store.FindShardFiles(args.Reports)
	if err != nil {
		return fmt.Errorf("find shard files: %w", err)
	}

	if len(shardFiles) == 0 {
		slog.Warn("no shard files found", "reports", args.Reports)
	}

	loaded := make([][]*m.FileCoverage, len(shardFiles))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for i, shardFile := range shardFiles {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			records, err := w.store.LoadCoverageMap(shardFile)
			if err != nil {
				return err
			}

			loaded[i] = records

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("load shard files: %w", err)
	}

	merged := NewCoverageMap()

	for _, records := range loaded {
		for _, record := range records {
			if err := merged.AddFileCoverage(record); err != nil {
				return err
			}
		}
	}

	paths := merged.Files()

	records := make([]*m.FileCoverage, 0, len(paths))

	for _, path := range paths {
		fc, _ := merged.FileCoverageFor(path)
		records = append(records, fc)
	}

	if err := w.store.SaveCoverageMap(args.Output, records); err != nil {
		return fmt.Errorf("save merged coverage: %w", err)
	}

	slog.Info("merged coverage", "shards", len(shardFiles), "files", len(paths), "output", args.Output)
	w.ui.DisplayMergeInfo(ctx, len(shardFiles), len(paths), args.Output)

	return nil
}

// Report displays the per-file summary table for a merged coverage document.
func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	coverage, err := w.loadAggregate(args.Coverage)
	if err != nil {
		return err
	}

	files, total, err := summarizeFiles(coverage)
	if err != nil {
		return err
	}

	return w.ui.DisplaySummary(ctx, files, total)
}

// Check verifies the aggregate summary against per-category thresholds.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	coverage, err := w.loadAggregate(args.Coverage)
	if err != nil {
		return err
	}

	total, err := coverage.Summarize()
	if err != nil {
		return err
	}

	checks := []struct {
		category  string
		actual    float64
		threshold float64
	}{
		{"lines", total.Lines.Pct, args.Thresholds.Lines},
		{"statements", total.Statements.Pct, args.Thresholds.Statements},
		{"functions", total.Functions.Pct, args.Thresholds.Functions},
		{"branches", total.Branches.Pct, args.Thresholds.Branches},
	}

	var failures []controller.CheckFailure

	for _, check := range checks {
		if check.threshold > 0 && check.actual < check.threshold {
			failures = append(failures, controller.CheckFailure{
				Category:  check.category,
				Actual:    check.actual,
				Threshold: check.threshold,
			})
		}
	}

	if err := w.ui.DisplayCheckResult(ctx, failures); err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %d categories below threshold", ErrCheckFailed, len(failures))
	}

	return nil
}

// View displays per-file summaries together with uncovered lines.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	coverage, err := w.loadAggregate(args.Coverage)
	if err != nil {
		return err
	}

	summaries, total, err := summarizeFiles(coverage)
	if err != nil {
		return err
	}

	details := make([]controller.FileDetail, 0, len(summaries))

	for _, summary := range summaries {
		fc, _ := coverage.FileCoverageFor(summary.Path)

		uncovered, err := UncoveredLines(fc)
		if err != nil {
			return err
		}

		details = append(details, controller.FileDetail{
			Path:           summary.Path,
			Summary:        summary.Summary,
			UncoveredLines: uncovered,
		})
	}

	return w.ui.DisplayDetails(ctx, details, total)
}

func (w *workflow) loadAggregate(path m.Path) (*CoverageMap, error) {
	records, err := w.store.LoadCoverageMap(path)
	if err != nil {
		return nil, fmt.Errorf("load coverage: %w", err)
	}

	coverage := NewCoverageMap()

	for _, record := range records {
		if err := coverage.AddFileCoverage(record); err != nil {
			return nil, err
		}
	}

	return coverage, nil
}

func summarizeFiles(coverage *CoverageMap) ([]controller.FileSummary, m.Summary, error) {
	total := EmptySummary()

	paths := coverage.Files()
	files := make([]controller.FileSummary, 0, len(paths))

	for _, path := range paths {
		fc, _ := coverage.FileCoverageFor(path)

		summary, err := Summarize(fc)
		if err != nil {
			return nil, m.Summary{}, err
		}

		files = append(files, controller.FileSummary{Path: path, Summary: summary})
		total = total.Add(summary)
	}

	return files, total, nil
}
