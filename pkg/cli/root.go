// Package cli wires spec.md §6's four subcommands (describe, review,
// check-reviewed, healthcheck) over the pipeline/provider/config
// packages, following the teacher's cobra root-command conventions
// (command groups, a persistent verbose flag, a console-formatted
// version template).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/montagne-dev/lampe/pkg/console"
)

// version is set at build time (teacher convention: "Build-time
// variables set by GoReleaser").
var version = "dev"

// NewRootCommand builds the lampe root cobra command and all four
// subcommands.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "lampe",
		Short:   "Generate pull request descriptions and reviews from an LLM driven over a git diff",
		Version: version,
		Long: `lampe inspects a pull request's diff, drives an LLM over it, and delivers a
generated description or review back to a hosting platform (or the console).

Common tasks:
  lampe describe --repo . --base main --head HEAD
  lampe review --repo . --base main --head HEAD --review-depth standard
  lampe check-reviewed --repo . --pr 42
  lampe healthcheck`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	root.AddGroup(&cobra.Group{ID: "artifacts", Title: "Artifact Commands:"})
	root.AddGroup(&cobra.Group{ID: "diagnostics", Title: "Diagnostics Commands:"})

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose (DEBUG-gated) logging")
	root.SetOut(os.Stderr)
	root.SetVersionTemplate(fmt.Sprintf("%s\n", console.FormatInfoMessage("lampe version {{.Version}}")))

	root.AddCommand(newDescribeCommand())
	root.AddCommand(newReviewCommand())
	root.AddCommand(newCheckReviewedCommand())
	root.AddCommand(newHealthcheckCommand())

	return root
}

// Execute runs the root command and returns a process exit code
// (spec.md §6's exit-code contract, enforced per-subcommand via
// cobra.Command.RunE errors rather than direct os.Exit calls inside
// handlers).
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		console.Error("%v", err)
		return 1
	}
	return 0
}

// warnIfVerboseIneffective notes that --verbose only helps when DEBUG is
// also exported before the process starts: pkg/logger reads DEBUG once
// at package initialization, before any cobra flag is parsed.
func warnIfVerboseIneffective(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose && os.Getenv("DEBUG") == "" {
		console.Warning("--verbose has no effect unless DEBUG is also set in the environment, e.g. DEBUG=* lampe %s --verbose", cmd.Name())
	}
}
