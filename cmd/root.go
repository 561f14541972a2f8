// Package cmd provides the root command and CLI setup for covfold.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mouse-blink/covfold/internal/adapter"
	"github.com/mouse-blink/covfold/internal/controller"
	"github.com/mouse-blink/covfold/internal/domain"
)

var coverageStore adapter.CoverageStore
var ui controller.UI
var viewUI controller.UI
var workflow domain.Workflow

// coverageFileFlag is a root-level flag naming the merged coverage document
// that report/check/view read and merge writes by default.
var coverageFileFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	coverageStore = adapter.NewCoverageStore()
	ui = controller.NewSimpleUI(rootCmd, controller.IsTTY(os.Stdout))

	if controller.IsTTY(os.Stdout) {
		viewUI = controller.NewTUI(os.Stdout)
	} else {
		viewUI = ui
	}

	workflow = domain.NewWorkflow(coverageStore, ui)
}

const shardLayoutHelp = `Coverage documents are JSON objects keyed by source file path, one record
per file (the layout instrumenters emit as coverage-final.json). Parallel
workers drop their documents into shard_* subdirectories of the reports
directory; merge folds them into a single document.`

const rootLongDescription = `Covfold reconciles coverage measurements produced by parallel test workers,
repeated runs, or re-instrumented builds into one consistent report. Records
for the same file are merged by source location, so documents with different
counter indices combine correctly.

` + shardLayoutHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "covfold",
		Short: "Merge and report code coverage records",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&coverageFileFlag, coverageFlagName, "c",
			viper.GetString(coverageFlagName),
			"merged coverage document to read or write",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(coverageFlagName), coverageFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
