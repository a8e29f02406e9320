package cmd

import (
	"fmt"
	"os"

	"github.com/melodypapa/autosar-calltree/analytics"
	"github.com/melodypapa/autosar-calltree/internal/config"
	"github.com/melodypapa/autosar-calltree/modulemap"
	"github.com/melodypapa/autosar-calltree/output"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [pattern]",
	Short: "Search the function database by substring and export matches as CSV",
	Long: `Search builds the function database (or loads it from cache), matches
function names against pattern (a case-insensitive substring, empty
matches everything), and writes the results as CSV.

Examples:
  # List every function whose name contains "COM_"
  calltree search COM_ --source /srv/ecu-src

  # Export the whole database
  calltree search "" --source /srv/ecu-src --out functions.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := args[0]
		sourceDir, _ := cmd.Flags().GetString("source")
		configPath, _ := cmd.Flags().GetString("config")
		useCache, _ := cmd.Flags().GetBool("use-cache")
		outFile, _ := cmd.Flags().GetString("out")

		analytics.ReportEventWithProperties(analytics.SearchStarted, map[string]interface{}{
			"has_pattern": pattern != "",
		})

		if sourceDir == "" {
			return fmt.Errorf("--source flag is required")
		}

		logger := output.NewLogger(output.VerbosityNormal)
		if verboseFlag {
			logger = output.NewLogger(output.VerbosityVerbose)
		}

		var mapper *modulemap.Mapper
		if configPath != "" {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load module map: %w", err)
			}
			mapper = modulemap.New(cfg)
		}

		db, err := loadOrBuildDatabase(sourceDir, mapper, useCache, logger)
		if err != nil {
			return err
		}

		matches := db.Search(pattern)

		var outputWriter *os.File
		if outFile != "" {
			outputWriter, err = os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create output file %s: %w", outFile, err)
			}
			defer outputWriter.Close()
		}

		var formatter *output.CSVFormatter
		if outputWriter != nil {
			formatter = output.NewCSVFormatterWithWriter(outputWriter)
		} else {
			formatter = output.NewCSVFormatter()
		}
		if err := formatter.Format(matches); err != nil {
			return fmt.Errorf("failed to format CSV output: %w", err)
		}

		analytics.ReportEventWithProperties(analytics.SearchCompleted, map[string]interface{}{
			"match_count": len(matches),
		})

		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("source", "s", "", "Path to the source directory to scan (required)")
	searchCmd.Flags().String("config", "", "Path to a module-mapping YAML file")
	searchCmd.Flags().Bool("use-cache", false, "Load from and save to the function database cache")
	searchCmd.Flags().String("out", "", "Write output to file instead of stdout")
	searchCmd.MarkFlagRequired("source") //nolint:errcheck
}
