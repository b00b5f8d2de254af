package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/slotmap/internal/logging"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// LogLevelFlag is the persistent root flag read by newLogger.
const LogLevelFlag = "log-level"

// newLogger builds the stderr logger from the inherited --log-level flag.
// Commands run without a root (as in tests) get the default level.
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	level := logging.DefaultLevel
	if f := cmd.Flags().Lookup(LogLevelFlag); f != nil {
		level = f.Value.String()
	}
	return logging.New(level, cmd.ErrOrStderr())
}
