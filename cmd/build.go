package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/melodypapa/autosar-calltree/analytics"
	"github.com/melodypapa/autosar-calltree/internal/config"
	"github.com/melodypapa/autosar-calltree/modulemap"
	"github.com/melodypapa/autosar-calltree/output"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Scan a source tree and populate the function database",
	Long: `Build walks a source directory for *.c files, parses every function
declaration with the AUTOSAR and plain-C parsers, and reports the resulting
function, file and static-function counts and the number of per-file parse
errors (listed individually with --verbose).

Examples:
  # Build the database for an ECU source tree
  calltree build --source /srv/ecu-src

  # Build with a module-mapping file and persist the result to the cache
  calltree build --source /srv/ecu-src --config modules.yaml --use-cache`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		startTime := time.Now()
		sourceDir, _ := cmd.Flags().GetString("source")
		configPath, _ := cmd.Flags().GetString("config")
		useCache, _ := cmd.Flags().GetBool("use-cache")
		debug, _ := cmd.Flags().GetBool("debug")
		failOnStr, _ := cmd.Flags().GetString("fail-on")

		analytics.ReportEventWithProperties(analytics.BuildStarted, map[string]interface{}{
			"has_config": configPath != "",
			"use_cache":  useCache,
		})

		if sourceDir == "" {
			analytics.ReportEventWithProperties(analytics.BuildFailed, map[string]interface{}{"error_type": "validation"})
			return fmt.Errorf("--source flag is required")
		}

		verbosity := output.VerbosityNormal
		if debug {
			verbosity = output.VerbosityDebug
		} else if verboseFlag {
			verbosity = output.VerbosityVerbose
		}
		logger := output.NewLogger(verbosity)

		noBanner, _ := cmd.Flags().GetBool("no-banner")
		if output.ShouldShowBanner(logger.IsTTY(), noBanner) {
			output.PrintBanner(logger.GetWriter(), Version, sourceDir, output.DefaultBannerOptions())
		} else if logger.IsTTY() && !noBanner {
			fmt.Fprintln(logger.GetWriter(), output.GetCompactBanner(Version))
		}

		failOn := output.ParseFailOn(failOnStr)
		if len(failOn) > 0 {
			if err := output.ValidateFailOnCategories(failOn); err != nil {
				return err
			}
		}

		var mapper *modulemap.Mapper
		if configPath != "" {
			cfg, err := config.Load(configPath)
			if err != nil {
				analytics.ReportEventWithProperties(analytics.BuildFailed, map[string]interface{}{"error_type": "config"})
				return fmt.Errorf("failed to load module map: %w", err)
			}
			mapper = modulemap.New(cfg)
		}

		db, err := loadOrBuildDatabase(sourceDir, mapper, useCache, logger)
		if err != nil {
			analytics.ReportEventWithProperties(analytics.BuildFailed, map[string]interface{}{"error_type": "build"})
			return err
		}

		stats := db.Statistics()
		fmt.Printf("%d functions found across %d files (%d static, %d parse errors)\n",
			stats.FunctionsFound, stats.FilesScanned, stats.StaticCount, len(stats.ParseErrors))
		if logger.IsVerbose() {
			for _, name := range stats.ParseErrors {
				logger.Warning("parse error: %s", name)
			}
			logger.Statistic("build completed in %s", time.Since(startTime))
		}

		analytics.ReportEventWithProperties(analytics.BuildCompleted, map[string]interface{}{
			"duration_ms":    time.Since(startTime).Milliseconds(),
			"function_count": stats.FunctionsFound,
			"parse_errors":   len(stats.ParseErrors),
		})

		failOnSet := make(map[string]bool, len(failOn))
		for _, category := range failOn {
			failOnSet[category] = true
		}
		if failOnSet["parse-errors"] && len(stats.ParseErrors) > 0 {
			os.Exit(int(output.ExitCodeFlagged))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("source", "s", "", "Path to the source directory to scan (required)")
	buildCmd.Flags().String("config", "", "Path to a module-mapping YAML file")
	buildCmd.Flags().Bool("use-cache", false, "Load from and save to the function database cache")
	buildCmd.Flags().Bool("debug", false, "Show per-file parse progress")
	buildCmd.Flags().String("fail-on", "", "Fail with exit code 1 when a named category is non-empty (parse-errors)")
	buildCmd.MarkFlagRequired("source") //nolint:errcheck
}
