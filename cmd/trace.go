package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/melodypapa/autosar-calltree/analytics"
	"github.com/melodypapa/autosar-calltree/cache"
	"github.com/melodypapa/autosar-calltree/calltree"
	"github.com/melodypapa/autosar-calltree/functiondb"
	"github.com/melodypapa/autosar-calltree/internal/config"
	"github.com/melodypapa/autosar-calltree/modulemap"
	"github.com/melodypapa/autosar-calltree/output"
	"github.com/melodypapa/autosar-calltree/render/sequence"
	"github.com/melodypapa/autosar-calltree/render/uml"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Trace the call tree reachable from a root function",
	Long: `Trace builds the function database (or loads it from cache), then walks
the call tree reachable from --start, detecting recursion, cycles, and
runtime-environment boundaries along the way.

Examples:
  # Trace from a runnable's entry point, printed as text
  calltree trace --source /srv/ecu-src --start Task_10ms

  # Trace to a sequence diagram file
  calltree trace --source /srv/ecu-src --start Task_10ms --format sequence --out trace.seq

  # Fail the run if a cycle is found
  calltree trace --source /srv/ecu-src --start Task_10ms --fail-on cycles`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		startTime := time.Now()
		sourceDir, _ := cmd.Flags().GetString("source")
		start, _ := cmd.Flags().GetString("start")
		maxDepth, _ := cmd.Flags().GetInt("max-depth")
		includeRTE, _ := cmd.Flags().GetBool("include-rte")
		configPath, _ := cmd.Flags().GetString("config")
		useCache, _ := cmd.Flags().GetBool("use-cache")
		formatName, _ := cmd.Flags().GetString("format")
		outFile, _ := cmd.Flags().GetString("out")
		debug, _ := cmd.Flags().GetBool("debug")
		failOnStr, _ := cmd.Flags().GetString("fail-on")

		analytics.ReportEventWithProperties(analytics.TraceStarted, map[string]interface{}{
			"format":      formatName,
			"max_depth":   maxDepth,
			"include_rte": includeRTE,
		})

		if sourceDir == "" || start == "" {
			analytics.ReportEventWithProperties(analytics.TraceFailed, map[string]interface{}{"error_type": "validation"})
			return fmt.Errorf("--source and --start flags are required")
		}

		if formatName != "text" && formatName != "json" && formatName != "sequence" && formatName != "uml" {
			return fmt.Errorf("--format must be 'text', 'json', 'sequence', or 'uml'")
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
				analytics.ReportEventWithProperties(analytics.TraceFailed, map[string]interface{}{"error_type": "config"})
				return fmt.Errorf("failed to load module map: %w", err)
			}
			mapper = modulemap.New(cfg)
		}

		db, err := loadOrBuildDatabase(sourceDir, mapper, useCache, logger)
		if err != nil {
			analytics.ReportEventWithProperties(analytics.TraceFailed, map[string]interface{}{"error_type": "build"})
			return err
		}

		builder := calltree.NewBuilder(db, logger)
		result := builder.Build(start, maxDepth, includeRTE)

		var outputWriter *os.File
		if outFile != "" {
			outputWriter, err = os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create output file %s: %w", outFile, err)
			}
			defer outputWriter.Close()
		}

		switch formatName {
		case "json":
			var formatter *output.JSONFormatter
			if outputWriter != nil {
				formatter = output.NewJSONFormatterWithWriter(outputWriter)
			} else {
				formatter = output.NewJSONFormatter()
			}
			if err := formatter.Format(result, Version); err != nil {
				return fmt.Errorf("failed to format JSON output: %w", err)
			}
		case "sequence":
			rendered := sequence.Render(result)
			if err := writeRendered(outputWriter, rendered); err != nil {
				return err
			}
		case "uml":
			rendered, err := uml.Render(result)
			if err != nil {
				return fmt.Errorf("failed to render UML: %w", err)
			}
			if err := writeRendered(outputWriter, rendered); err != nil {
				return err
			}
		default:
			var formatter *output.TextFormatter
			if outputWriter != nil {
				formatter = output.NewTextFormatterWithWriter(outputWriter, logger)
			} else {
				formatter = output.NewTextFormatter(logger)
			}
			if err := formatter.Format(result); err != nil {
				return fmt.Errorf("failed to format text output: %w", err)
			}
		}

		if outputWriter != nil {
			logger.Progressf("wrote trace output to %s", outFile)
		}

		stats := db.Statistics()
		exitCode := output.DetermineExitCode(result, stats.ParseErrors, failOn, !result.Succeeded())

		analytics.ReportEventWithProperties(analytics.TraceCompleted, map[string]interface{}{
			"duration_ms":  time.Since(startTime).Milliseconds(),
			"nodes":        result.Statistics.TotalNodes,
			"cycles_found": result.Statistics.CyclesFound,
			"exit_code":    int(exitCode),
		})

		if exitCode != output.ExitCodeSuccess {
			os.Exit(int(exitCode))
		}

		return nil
	},
}

func writeRendered(w *os.File, rendered string) error {
	if w != nil {
		_, err := fmt.Fprintln(w, rendered)
		return err
	}
	fmt.Println(rendered)
	return nil
}

// loadOrBuildDatabase loads the function database from the cache when
// --use-cache is set and the cache is valid, otherwise builds it fresh and,
// if --use-cache was requested, persists the result.
func loadOrBuildDatabase(sourceDir string, mapper *modulemap.Mapper, useCache bool, logger *output.Logger) (*functiondb.FunctionDatabase, error) {
	cachePath := cache.DefaultPath(sourceDir)

	if useCache {
		if db, ok := cache.Load(cachePath, sourceDir, mapper, logger); ok {
			return db, nil
		}
	}

	db, err := functiondb.Build(sourceDir, functiondb.BuildOptions{Verbose: logger.IsVerbose(), Sink: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to build function database: %w", err)
	}
	if mapper != nil {
		db.SetMapper(mapper)
	}
	if useCache {
		if err := cache.Save(db, sourceDir, cachePath); err != nil {
			logger.Warning("failed to write cache: %v", err)
		}
	}
	return db, nil
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().StringP("source", "s", "", "Path to the source directory to scan (required)")
	traceCmd.Flags().String("start", "", "Name of the root function to trace from (required)")
	traceCmd.Flags().Int("max-depth", 20, "Maximum call-tree depth")
	traceCmd.Flags().Bool("include-rte", false, "Include RTE (runtime environment) calls in the tree; by default they are omitted")
	traceCmd.Flags().String("config", "", "Path to a module-mapping YAML file")
	traceCmd.Flags().Bool("use-cache", false, "Load from and save to the function database cache")
	traceCmd.Flags().StringP("format", "o", "text", "Output format: text, json, sequence, or uml")
	traceCmd.Flags().String("out", "", "Write output to file instead of stdout")
	traceCmd.Flags().Bool("debug", false, "Show per-file parse and call-tree expansion progress")
	traceCmd.Flags().String("fail-on", "", "Fail with exit code 1 when a named category is non-empty (cycles, parse-errors)")
	traceCmd.MarkFlagRequired("source") //nolint:errcheck
	traceCmd.MarkFlagRequired("start")  //nolint:errcheck
}
