package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/diffnorris/pkg/compare"
	"github.com/sdejongh/diffnorris/pkg/diff"
	"github.com/sdejongh/diffnorris/pkg/logging"
	"github.com/sdejongh/diffnorris/pkg/output"
	"github.com/sdejongh/diffnorris/pkg/scan"
	"github.com/sdejongh/diffnorris/pkg/source"
	"github.com/sdejongh/diffnorris/pkg/storage"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	SubdirLeft   string
	SubdirRight  string
	Include      []string
	Exclude      []string
	Output       string
	CacheDir     string
	ReportFile   string
	ReportFormat string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <left> <right>",
		Short: "Compare two directory trees or repositories",
		Long: `Compare two directory trees file-by-file and report how far they
have drifted apart. Each side is either a local directory or a git/huggingface
repository URL; remote sources are shallow-cloned into a local cache and
reused on subsequent runs.

Only source files with supported extensions take part in the comparison.
Modified files are reported with a line-level similarity ratio, together
with ready-to-run diff commands sorted least-similar first.`,
		Example: `  diffnorris compare ./upstream ./fork
  diffnorris compare https://github.com/user/repo.git ./checkout --subdir-left src
  diffnorris compare dir1/ dir2/ --include '**/*.py' --exclude 'tests/**'`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().StringVar(&compareFlags.SubdirLeft, "subdir-left", "", "subdirectory in the left source")
	cmd.Flags().StringVar(&compareFlags.SubdirRight, "subdir-right", "", "subdirectory in the right source")
	cmd.Flags().StringSliceVar(&compareFlags.Include, "include", []string{}, "glob patterns to include")
	cmd.Flags().StringSliceVar(&compareFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().StringVar(&compareFlags.CacheDir, "cache-dir", "", "cache directory for cloned repositories")
	cmd.Flags().StringVar(&compareFlags.ReportFile, "report-file", "", "write the comparison report to a file")
	cmd.Flags().StringVar(&compareFlags.ReportFormat, "report-format", "human", "report file format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&compareFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&compareFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&compareFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg)

	// Create logger
	logger, err := createLogger(compareFlags.LogFile, compareFlags.LogFormat, compareFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Resolve both sources into local directories
	cache, err := source.NewCache(cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to create clone cache: %w", err)
	}
	resolver := source.NewResolver(cache, logger)

	leftDir, err := resolver.Resolve(ctx, args[0], compareFlags.SubdirLeft)
	if err != nil {
		return fmt.Errorf("failed to resolve left source: %w", err)
	}

	rightDir, err := resolver.Resolve(ctx, args[1], compareFlags.SubdirRight)
	if err != nil {
		return fmt.Errorf("failed to resolve right source: %w", err)
	}

	// Create storage backends
	left, err := storage.NewLocal(leftDir)
	if err != nil {
		return fmt.Errorf("failed to open left tree: %w", err)
	}
	defer left.Close()

	right, err := storage.NewLocal(rightDir)
	if err != nil {
		return fmt.Errorf("failed to open right tree: %w", err)
	}
	defer right.Close()

	// Create scanner
	filter, err := scan.NewFilter(cfg.Scan.Extensions, cfg.Scan.SkipDirs, compareFlags.Include, compareFlags.Exclude)
	if err != nil {
		return err
	}
	scanner := scan.NewScanner(filter, logger)

	// Create compare operation
	operation, err := createCompareOperation(args[0], args[1], leftDir, rightDir)
	if err != nil {
		return fmt.Errorf("failed to create compare operation: %w", err)
	}

	// Create output formatter
	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter()
	default:
		if cfg.Output.Progress && !cfg.Output.Quiet {
			formatter = output.NewProgressFormatter()
		} else {
			formatter = output.NewHumanFormatter()
		}
	}

	// Create comparison engine
	engine := diff.NewEngine(left, right, scanner, compare.NewLineAnalyzer(), formatter, logger, operation)

	// Run comparison
	report, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	// Write report file if requested
	if compareFlags.ReportFile != "" {
		if err := output.WriteReportFile(report, compareFlags.ReportFile, compareFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
	}

	// Exit with appropriate code
	os.Exit(report.Status.ExitCode())
	return nil
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	// If no log file specified, return null logger
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   logFile,
		Format: format,
		Level:  logging.ParseLevel(logLevel),
	})
}
