package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/covfold/internal/model"
)

const (
	lowWatermark  = 50.0
	highWatermark = 80.0
)

var (
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a new SimpleUI. Percentage coloring is disabled when
// color is false (non-TTY output).
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// DisplaySummary prints the per-file coverage table with a grand-total footer.
func (s *SimpleUI) DisplaySummary(ctx context.Context, files []FileSummary, total m.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Printf("\n%s", s.renderSummaryTable(files, total))

	return nil
}

// DisplayDetails prints the summary table followed by each file's uncovered
// lines.
func (s *SimpleUI) DisplayDetails(ctx context.Context, files []FileDetail, total m.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	summaries := make([]FileSummary, 0, len(files))
	for _, file := range files {
		summaries = append(summaries, FileSummary{Path: file.Path, Summary: file.Summary})
	}

	s.cmd.Printf("\n%s", s.renderSummaryTable(summaries, total))

	for _, file := range files {
		if len(file.UncoveredLines) == 0 {
			continue
		}

		s.cmd.Printf("%s: uncovered lines %s\n", file.Path, formatLineList(file.UncoveredLines))
	}

	return nil
}

// DisplayCheckResult prints one line per failed category, or a pass notice.
func (s *SimpleUI) DisplayCheckResult(ctx context.Context, failures []CheckFailure) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(failures) == 0 {
		s.cmd.Println("Coverage check passed")
		return nil
	}

	for _, failure := range failures {
		s.cmd.Printf(
			"Coverage for %s (%.2f%%) does not meet threshold (%.2f%%)\n",
			failure.Category, failure.Actual, failure.Threshold,
		)
	}

	return nil
}

// DisplayMergeInfo prints a one-line merge report.
func (s *SimpleUI) DisplayMergeInfo(ctx context.Context, shardFiles int, mergedFiles int, output m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.cmd.Printf("Merged %d shard file(s) covering %d source file(s) into %s\n", shardFiles, mergedFiles, output)
}

func (s *SimpleUI) renderSummaryTable(files []FileSummary, total m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Lines", "Stmts", "Funcs", "Branches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, file := range files {
		table.Append([]string{
			string(file.Path),
			s.formatPct(file.Summary.Lines.Pct),
			s.formatPct(file.Summary.Statements.Pct),
			s.formatPct(file.Summary.Functions.Pct),
			s.formatPct(file.Summary.Branches.Pct),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		s.formatPct(total.Lines.Pct),
		s.formatPct(total.Statements.Pct),
		s.formatPct(total.Functions.Pct),
		s.formatPct(total.Branches.Pct),
	})

	table.Render()

	return tableBuffer.String()
}

// formatPct renders a percentage with two decimal places, colored by the
// usual coverage watermarks when coloring is on.
func (s *SimpleUI) formatPct(pct float64) string {
	text := fmt.Sprintf("%.2f%%", pct)

	if !s.color {
		return text
	}

	switch {
	case pct < lowWatermark:
		return lowStyle.Render(text)
	case pct < highWatermark:
		return mediumStyle.Render(text)
	default:
		return highStyle.Render(text)
	}
}

func formatLineList(lines []int) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, strconv.Itoa(line))
	}

	return strings.Join(parts, ", ")
}
