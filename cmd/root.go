// Package cmd provides the root command and CLI setup for owngrep.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"owngrep.dev/pkg/owngrep/internal/adapter"
	"owngrep.dev/pkg/owngrep/internal/controller"
	"owngrep.dev/pkg/owngrep/internal/domain"
	m "owngrep.dev/pkg/owngrep/internal/model"
)

var fsAdapter adapter.SourceFS
var reportStore adapter.ReportStore
var auditWorkflow domain.Workflow

// rootFlag is the directory to scan. Required; an empty value fails the run.
var rootFlag string

// queryFlag is the literal substring searched for in every scanned file.
var queryFlag string

// codeownersFlag is the ownership-rules file, resolved relative to the root.
var codeownersFlag string

// outFlag is the results directory, resolved against the working directory.
var outFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFS()
	reportStore = adapter.NewCSVReportStore()
	auditWorkflow = domain.NewWorkflow(fsAdapter, reportStore)
}

const rootLongDescription = `Owngrep scans a source tree for a literal query string, attributes every
matching file to the ownership rules of a CODEOWNERS-style file, and writes
per-owner CSV reports with match counts and locations.

Meant for codebase auditing, e.g. "who owns the files still referencing
deprecated API X". A file matching several ownership patterns is attributed
once per matching rule, so counts reflect rule coverage.`

// rootCmd represents the base command; running it executes the audit.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "owngrep",
		Short:        "Attribute query matches to code owners",
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			manifest, reports, err := auditWorkflow.Audit(domain.AuditArgs{
				Root:       m.Path(rootFlag),
				Codeowners: m.Path(viper.GetString(codeownersFlagName)),
				Query:      queryFlag,
				Out:        m.Path(viper.GetString(outFlagName)),
			})
			if err != nil {
				return err
			}

			ui := controller.NewSimpleUI(cmd)
			if err := ui.DisplaySummary(manifest, reports); err != nil {
				return err
			}

			cmd.Printf("\nreports written to %s\n", viper.GetString(outFlagName))

			return nil
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rootFlag, rootFlagName, "r", "", "root directory to scan (required)")
	cmd.Flags().StringVarP(&queryFlag, queryFlagName, "q", "", "literal substring to search for")

	cmd.PersistentFlags().
		StringVarP(
			&codeownersFlag, codeownersFlagName, "c",
			viper.GetString(codeownersFlagName),
			"ownership-rules file, resolved relative to the root",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(codeownersFlagName), codeownersFlagName)

	cmd.PersistentFlags().
		StringVarP(
			&outFlag, outFlagName, "o",
			viper.GetString(outFlagName),
			"output directory for the CSV reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outFlagName), outFlagName)
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
