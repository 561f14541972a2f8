package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "github.com/mouse-blink/covfold/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplaySummary shows the per-file table in a scrollable view.
func (t *TUI) DisplaySummary(ctx context.Context, files []FileSummary, total m.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var content strings.Builder

	content.WriteString(renderTUITable(files, total))

	return t.show("Coverage Summary", content.String())
}

// DisplayDetails shows the per-file table followed by each file's uncovered
// lines in a scrollable view.
func (t *TUI) DisplayDetails(ctx context.Context, files []FileDetail, total m.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	summaries := make([]FileSummary, 0, len(files))
	for _, file := range files {
		summaries = append(summaries, FileSummary{Path: file.Path, Summary: file.Summary})
	}

	var content strings.Builder

	content.WriteString(renderTUITable(summaries, total))
	content.WriteString("\n")

	for _, file := range files {
		if len(file.UncoveredLines) == 0 {
			continue
		}

		fmt.Fprintf(&content, "%s: uncovered lines %s\n", file.Path, formatLineList(file.UncoveredLines))
	}

	return t.show("Coverage Details", content.String())
}

// DisplayCheckResult prints check failures; never interactive.
func (t *TUI) DisplayCheckResult(ctx context.Context, failures []CheckFailure) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(failures) == 0 {
		_, err := fmt.Fprintln(t.output, "Coverage check passed")
		return err
	}

	for _, failure := range failures {
		_, err := fmt.Fprintf(
			t.output,
			"Coverage for %s (%.2f%%) does not meet threshold (%.2f%%)\n",
			failure.Category, failure.Actual, failure.Threshold,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// DisplayMergeInfo prints a one-line merge report.
func (t *TUI) DisplayMergeInfo(ctx context.Context, shardFiles int, mergedFiles int, output m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	fmt.Fprintf(t.output, "Merged %d shard file(s) covering %d source file(s) into %s\n", shardFiles, mergedFiles, output)
}

func renderTUITable(files []FileSummary, total m.Summary) string {
	ui := SimpleUI{color: true}
	return ui.renderSummaryTable(files, total)
}

// show prints content directly when it fits the terminal, otherwise hands it
// to a scrollable Bubble Tea viewport.
func (t *TUI) show(title, content string) error {
	width, height := 0, 0

	if f, ok := t.output.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	contentLines := strings.Count(content, "\n") + 1
	if height == 0 || contentLines < height-viewportChromeLines {
		_, err := fmt.Fprint(t.output, content)
		return err
	}

	model := newViewportModel(title, content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}

	return nil
}

// viewportChromeLines is the space reserved for the title and help rows.
const viewportChromeLines = 3

type viewportModel struct {
	title    string
	viewport viewport.Model
}

func newViewportModel(title, content string, width, height int) viewportModel {
	vp := viewport.New(width, max(height-viewportChromeLines, 1))
	vp.SetContent(content)

	return viewportModel{title: title, viewport: vp}
}

func (vm viewportModel) Init() tea.Cmd {
	return nil
}

func (vm viewportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		vm.viewport.Width = msg.Width
		vm.viewport.Height = max(msg.Height-viewportChromeLines, 1)

		return vm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return vm, tea.Quit
		}
	}

	var cmd tea.Cmd
	vm.viewport, cmd = vm.viewport.Update(msg)

	return vm, cmd
}

func (vm viewportModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(vm.title))
	b.WriteString("\n")
	b.WriteString(vm.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ scroll · q quit"))

	return b.String()
}
