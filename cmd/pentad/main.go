// Pentad is the control daemon for the penta SATA HAT.
//
// It drives the PWM fan from CPU and drive temperatures, decodes the top
// board button into page/fan/power actions, and cycles system status pages
// on the 128x32 OLED.
//
// Usage:
//
//	pentad run [flags]
//
// See 'pentad run --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pentahat/pentad/internal/config"
	"github.com/pentahat/pentad/internal/daemon"
	"github.com/pentahat/pentad/internal/logging"
	"github.com/pentahat/pentad/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pentad",
	Short: "Penta SATA HAT control daemon",
	Long: `Control daemon for the penta SATA HAT top board.

Runs the temperature-driven fan loop, decodes the push button into
configured actions, and shows system status pages on the OLED. Hardware
that is not fitted (button, display) is detected at startup and skipped;
only the fan is required.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run command and flags
var (
	configPath string
	logLevel   string
	buttonPin  string
	fanPin     string
	resetPin   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the HAT control daemon",
	Long: `Start the fan, button and display loops.

The configuration file is optional: a missing file runs with the documented
defaults. Malformed values fall back per key; out-of-order fan thresholds
revert as a group.`,
	Example: `  # Run with the default configuration path
  pentad run

  # Run with a custom config and verbose logging
  pentad run --config ./pentad.conf --log-level debug

  # Override a pin assignment for a different carrier revision
  pentad run --fan-pin GPIO13`,
	RunE: runDaemon,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $PENTAD_LOG_LEVEL or info")
	runCmd.Flags().StringVar(&buttonPin, "button-pin", daemon.DefaultButtonPin, "Button GPIO, by periph name")
	runCmd.Flags().StringVar(&fanPin, "fan-pin", daemon.DefaultFanPin, "Fan PWM GPIO, by periph name")
	runCmd.Flags().StringVar(&resetPin, "reset-pin", daemon.DefaultResetPin, "Display reset GPIO, by periph name")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	d := daemon.New(cfg, daemon.Options{
		ButtonPin: buttonPin,
		FanPin:    fanPin,
		ResetPin:  resetPin,
	})
	return d.Run()
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pentad %s\n", version.Full())
	},
}
