package controller

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_FallsBackToPlainOutput(t *testing.T) {
	out := &bytes.Buffer{}
	tui := NewTUI(out)

	// A plain writer has no terminal size, so content is printed directly.
	files := []FileSummary{{Path: "/src/a.js", Summary: sampleSummary()}}
	require.NoError(t, tui.DisplaySummary(context.Background(), files, sampleSummary()))

	assert.Contains(t, out.String(), "/src/a.js")
	assert.Contains(t, out.String(), "Total Files 1")
}

func TestTUI_DisplayDetailsListsUncoveredLines(t *testing.T) {
	out := &bytes.Buffer{}
	tui := NewTUI(out)

	files := []FileDetail{{Path: "/src/a.js", Summary: sampleSummary(), UncoveredLines: []int{3, 7}}}
	require.NoError(t, tui.DisplayDetails(context.Background(), files, sampleSummary()))

	assert.Contains(t, out.String(), "/src/a.js: uncovered lines 3, 7")
}

func TestTUI_DisplayCheckResult(t *testing.T) {
	out := &bytes.Buffer{}
	tui := NewTUI(out)

	require.NoError(t, tui.DisplayCheckResult(context.Background(), nil))
	assert.Contains(t, out.String(), "Coverage check passed")
}

func TestViewportModel_QuitKeys(t *testing.T) {
	quitKeys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}

	for _, key := range quitKeys {
		t.Run(key.String(), func(t *testing.T) {
			model := newViewportModel("title", "content", 80, 24)

			_, cmd := model.Update(key)

			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestViewportModel_ResizeTracksWindow(t *testing.T) {
	model := newViewportModel("title", "content", 80, 24)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	vm, ok := updated.(viewportModel)
	require.True(t, ok)
	assert.Equal(t, 120, vm.viewport.Width)
	assert.Equal(t, 40-viewportChromeLines, vm.viewport.Height)
}
