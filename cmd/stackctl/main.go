package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess     = 0
	ExitConfigError = 1 // bad config or missing environment file
	ExitStepFailed  = 2 // a fatal lifecycle step failed (build, start, backup)
	ExitUnhealthy   = 3 // deployment completed but the health probe failed
	ExitLocked      = 4 // another run holds the deployment lock
)

// exitError carries an explicit process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

// =============================================================================
// Root Command
// =============================================================================

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stackctl",
		Short:         "Deployment sequencer for the session-guard bot stack",
		Long:          "stackctl tears down, rebuilds, starts, and verifies the containerized bot stack,\nreporting success or escalating to diagnostic log output on failure.",
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(newDeployCmd())
	root.AddCommand(newUpdateCmd())
	root.AddCommand(newSeedCmd())

	return root
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			if exit.err != nil {
				fmt.Fprintf(os.Stderr, "stackctl: %v\n", exit.err)
			}
			return exit.code
		}
		fmt.Fprintf(os.Stderr, "stackctl: %v\n", err)
		return ExitConfigError
	}
	return ExitSuccess
}
