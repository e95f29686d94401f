// Acinfinity-ctl is a command-line client for AC Infinity UIS grow-tent
// controllers.
//
// It talks to the vendor's cloud API, keeping a local snapshot of controller
// and port state, and provides commands to inspect telemetry, change port
// mode settings and controller calibration, and watch live readings in a
// terminal dashboard.
//
// Usage:
//
//	acinfinity-ctl [command] [flags]
//
// See 'acinfinity-ctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tentlab/acinfinity/internal/logging"
	"github.com/tentlab/acinfinity/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "acinfinity-ctl",
	Short: "AC Infinity UIS Controller Client",
	Long: `A command-line client for AC Infinity UIS grow-tent controllers.

Reads telemetry and settings through the vendor's cloud API and provides
commands to inspect controllers and ports, change mode settings, and watch
live readings in a terminal dashboard.`,
	Version: version.Version,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("acinfinity-ctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
