package cmd

import (
	"fmt"
	"os"

	"booktracker/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the booktracker binary; the server and maintenance tasks hang off it.
var RootCmd = &cobra.Command{
	Use:   "booktracker",
	Short: "Personal library backend",
	Long: `booktracker keeps track of the books you own and read.

Books, authors, series, tags and reading status history are served through a
token-authenticated REST API. The same binary migrates the schema, manages
users, exports libraries to object storage and audits data integrity.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}
	reportFailure(err)
	os.Exit(1)
}

// reportFailure prints err through a console logger. Configuration may be
// the thing that failed, so it does not read the application config.
func reportFailure(err error) {
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
}
