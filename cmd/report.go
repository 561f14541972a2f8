package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/covfold/internal/domain"
	m "github.com/mouse-blink/covfold/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the per-file coverage summary table",
		Long:  "Print line, statement, function, and branch coverage per file from a merged coverage document.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			coveragePath := m.Path(viper.GetString(coverageFlagName))
			return workflow.Report(context.Background(), domain.ReportArgs{Coverage: coveragePath})
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
