package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/covfold/internal/domain"
	m "github.com/mouse-blink/covfold/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse per-file coverage including uncovered lines",
		Long:  "Browse per-file coverage summaries and uncovered lines from a merged coverage document.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			coveragePath := m.Path(viper.GetString(coverageFlagName))

			viewWorkflow := domain.NewWorkflow(coverageStore, viewUI)

			return viewWorkflow.View(context.Background(), domain.ViewArgs{Coverage: coveragePath})
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
