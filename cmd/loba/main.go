package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yakschuss/loba/internal/diag"
	"github.com/yakschuss/loba/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "loba",
	Short: "Call-site tracing for quick print debugging",
	Long: `loba prints numbered timestamps and labelled values tagged with the
calling type, method and source location. This command runs a demo and
shows how the nearest .loba config resolves.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// main registers subcommands and persistent flags and executes the root
// command. Errors are reported through the diagnostics logger and exit 1.
func main() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize trace output (auto|on|off); overrides the config file")
	rootCmd.PersistentFlags().String("config", "", "path to a .loba.toml or .loba.yaml file (default: search upwards)")
	rootCmd.PersistentFlags().String("output", "", "trace destination (stdout|stderr|path); overrides the config file")
	rootCmd.PersistentFlags().Bool("production-ok", false, "trace even when the run mode is production")

	if err := rootCmd.Execute(); err != nil {
		diag.Logger().Error("command failed", "err", err)
		os.Exit(1)
	}
}
