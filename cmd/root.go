package cmd

import (
	"fmt"
	"os"

	"github.com/melodypapa/autosar-calltree/analytics"
	"github.com/melodypapa/autosar-calltree/output"
	"github.com/spf13/cobra"
)

var (
	verboseFlag bool
	Version     = "0.3.0"
	GitCommit   = "HEAD"
)

var rootCmd = &cobra.Command{
	Use:   "calltree",
	Short: "AUTOSAR call-tree analyzer | build, trace, and search ECU function call graphs",
	Long: `calltree builds a function database from AUTOSAR C sources, traces the
call tree reachable from a root function, and detects circular dependencies.

Learn more: https://github.com/melodypapa/autosar-calltree`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics") //nolint:all
		verboseFlag, _ = cmd.Flags().GetBool("verbose")             //nolint:all
		analytics.LoadEnvFile()
		analytics.Init(disableMetrics)
		analytics.SetVersion(Version)

		// Show banner for help command
		if cmd.Name() == "help" || (len(os.Args) == 1 || (len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h"))) {
			noBanner, _ := cmd.Flags().GetBool("no-banner")
			logger := output.NewLogger(output.VerbosityNormal)
			if output.ShouldShowBanner(logger.IsTTY(), noBanner) {
				output.PrintBanner(logger.GetWriter(), Version, "", output.DefaultBannerOptions())
			} else if logger.IsTTY() && !noBanner {
				fmt.Fprintln(os.Stderr, output.GetCompactBanner(Version))
				fmt.Fprintln(os.Stderr)
			}
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "Disable metrics collection")
	rootCmd.PersistentFlags().Bool("verbose", false, "Show progress and statistics")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Disable startup banner")
}
