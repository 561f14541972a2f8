package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/covfold/internal/domain"
	m "github.com/mouse-blink/covfold/internal/model"
)

var checkLinesFlag float64
var checkStatementsFlag float64
var checkFunctionsFlag float64
var checkBranchesFlag float64

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail when coverage is below the configured thresholds",
		Long: `Check the merged coverage document against per-category minimum
percentages. A zero threshold disables the check for that category.`,
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.Check(context.Background(), domain.CheckArgs{
				Coverage: m.Path(viper.GetString(coverageFlagName)),
				Thresholds: domain.Thresholds{
					Lines:      viper.GetFloat64(checkLinesKey),
					Statements: viper.GetFloat64(checkStatementsKey),
					Functions:  viper.GetFloat64(checkFunctionsKey),
					Branches:   viper.GetFloat64(checkBranchesKey),
				},
			})
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&checkLinesFlag, checkLinesFlagName, viper.GetFloat64(checkLinesKey), "minimum line coverage percentage")
	bindFlagToConfig(cmd.Flags().Lookup(checkLinesFlagName), checkLinesKey)

	cmd.Flags().Float64Var(&checkStatementsFlag, checkStatementsFlagName, viper.GetFloat64(checkStatementsKey), "minimum statement coverage percentage")
	bindFlagToConfig(cmd.Flags().Lookup(checkStatementsFlagName), checkStatementsKey)

	cmd.Flags().Float64Var(&checkFunctionsFlag, checkFunctionsFlagName, viper.GetFloat64(checkFunctionsKey), "minimum function coverage percentage")
	bindFlagToConfig(cmd.Flags().Lookup(checkFunctionsFlagName), checkFunctionsKey)

	cmd.Flags().Float64Var(&checkBranchesFlag, checkBranchesFlagName, viper.GetFloat64(checkBranchesKey), "minimum branch coverage percentage")
	bindFlagToConfig(cmd.Flags().Lookup(checkBranchesFlagName), checkBranchesKey)
}
