// Package cli provides the command-line interface for slotmap.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/slotmap/internal/cli/commands"
	"github.com/ccollicutt/slotmap/internal/logging"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the root command with args and returns the exit code.
func ExecuteArgs(args []string) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slotmap",
		Short: "Count weekly class occupancy across program timetables",
		Long: `slotmap reads a directory of program timetables (PDF or text), extracts
the weekday time slots each program has classes in, and counts them over a
weekly grid of 30-minute blocks from 08:30 to 22:30, Monday to Friday.

The result is written as an annotated heatmap image and a spreadsheet, so
the busiest times of the week can be seen at a glance.

Lines are read as follows:
  - a line mentioning a weekday starts that day's section
  - a line with two "H:MM am|pm" times is a class occupying every
    30-minute block from its start up to its end`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(commands.LogLevelFlag, logging.DefaultLevel,
		"Log level for diagnostics on stderr (debug|info|warn|error)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
