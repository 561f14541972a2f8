package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/covfold/internal/domain"
	m "github.com/mouse-blink/covfold/internal/model"
)

var mergeReportsDirFlag string
var mergeOutputFlag string

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge sharded coverage documents into a single document",
		Long: `Merge coverage documents from shard_* subdirectories of the reports
directory into a single coverage document.

` + shardLayoutHelp,
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			output := m.Path(viper.GetString(outputFlagName))
			if output == "" {
				output = m.Path(viper.GetString(coverageFlagName))
			}

			return workflow.Merge(context.Background(), domain.MergeArgs{
				Reports: m.Path(viper.GetString(reportsFlagName)),
				Output:  output,
			})
		},
	}

	cmd.Flags().StringVarP(&mergeReportsDirFlag, reportsFlagName, "r", viper.GetString(reportsFlagName), "directory containing shard_* subdirectories")
	bindFlagToConfig(cmd.Flags().Lookup(reportsFlagName), reportsFlagName)

	cmd.Flags().StringVarP(&mergeOutputFlag, outputFlagName, "o", "", "output document (defaults to --coverage)")
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputFlagName)

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
