// Package cmd provides the root command and CLI setup for faultline.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/faultline/internal/adapter"
	"github.com/mouse-blink/faultline/internal/config"
	"github.com/mouse-blink/faultline/internal/controller"
	"github.com/mouse-blink/faultline/internal/domain"
	"github.com/mouse-blink/faultline/internal/logging"
	m "github.com/mouse-blink/faultline/internal/model"
)

// Version is reported by --version.
var Version = "dev"

var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// plan holds everything registered by the embedding program.
var plan domain.Plan

// logCloser releases the debug log file once the command finished.
var logCloser io.Closer

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(reportStore, ui)
}

var testFlags []string
var suiteFlags []string
var leakCheckFlag bool
var leakCheckPassFlag bool
var faultCheckFlag bool
var faultPersistentFlag bool
var fuzzIterationsFlag int
var maxLiveBytesFlag int
var configFlag string
var reportsFlag string
var debugFlag bool
var debugFileFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "faultline",
		Short:   "Run registered unit tests with allocation tracking",
		Long:    rootLongDescription,
		Version: Version,
		Args:    cobra.NoArgs,
		// failing tests already show up in the summary
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&testFlags, "test", "t", nil, "run only tests whose name contains NAME (can be repeated)")
	flags.StringArrayVarP(&suiteFlags, "suite", "s", nil, "run only suites whose path contains NAME (can be repeated)")
	flags.BoolVar(&leakCheckFlag, "leak-check", false, "track allocations and fail tests that leak")
	flags.BoolVar(&leakCheckPassFlag, "leak-check-pass", false, "count allocations without recording them")
	flags.BoolVar(&faultCheckFlag, "fault-check", false, "re-run every test failing each allocation in turn")
	flags.BoolVar(&faultPersistentFlag, "fault-persistent", false, "like --fault-check, but every allocation after the failing one fails too")
	flags.IntVar(&fuzzIterationsFlag, "fuzz-iterations", config.DefaultFuzzIterations, "number of seeds each fuzz test is run with")
	flags.IntVar(&maxLiveBytesFlag, "max-live-bytes", 0, "cap on memory tests may hold at once, 0 for no cap")
	flags.StringVar(&configFlag, "config", "", "TOML configuration file (default "+config.DefaultFile+")")
	flags.StringVar(&reportsFlag, "reports", "", "directory to save per-test reports to")
	flags.BoolVar(&debugFlag, "debug", false, "write debug logs to stderr")
	flags.StringVar(&debugFileFlag, "debug-file", "", "write debug logs to a file")

	return cmd
}

const rootLongDescription = `Faultline runs the unit tests registered by the program it is linked into.

Besides running each test once it can:
  - track every allocation a test makes and fail tests that leak (--leak-check)
  - re-run each test with one allocation failing at a time (--fault-check)
  - sweep fuzz tests over pseudo-random seeds (--fuzz-iterations)

Options are read from .faultline.toml (or --config) and overridden by flags.`

// Execute runs the command line against p and exits non-zero on failure.
func Execute(p domain.Plan) {
	plan = p

	err := rootCmd.Execute()

	if logCloser != nil {
		_ = logCloser.Close()
	}

	if err != nil {
		os.Exit(1)
	}
}

func runPlan(cmd *cobra.Command) error {
	cfg, err := prepare(cmd)
	if err != nil {
		return err
	}

	return workflow.Run(domain.RunArgs{
		Plan:         plan,
		Options:      domain.OptionsFromConfig(cfg),
		MaxLiveBytes: cfg.MaxLiveBytes,
		Reports:      m.Path(cfg.Reports),
	})
}

// prepare resolves the configuration of a command and sets up logging.
func prepare(cmd *cobra.Command) (config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, err
	}

	closer, err := logging.Initialize(cfg.Debug, cfg.DebugFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to initialize logging: %w", err)
	}

	logCloser = closer

	return cfg, nil
}

// loadConfig reads the configuration file and applies the flags that were
// set explicitly on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()

	if flags.Changed("test") {
		cfg.Tests = testFlags
	}

	if flags.Changed("suite") {
		cfg.Suites = suiteFlags
	}

	if flags.Changed("leak-check") {
		cfg.LeakCheck = leakCheckFlag
	}

	if flags.Changed("leak-check-pass") {
		cfg.LeakCheckPass = leakCheckPassFlag
	}

	if flags.Changed("fault-check") {
		cfg.FaultCheck = faultCheckFlag
	}

	if flags.Changed("fault-persistent") {
		cfg.FaultPersistent = faultPersistentFlag
	}

	if flags.Changed("fuzz-iterations") {
		cfg.FuzzIterations = fuzzIterationsFlag
	}

	if flags.Changed("max-live-bytes") {
		cfg.MaxLiveBytes = maxLiveBytesFlag
	}

	if flags.Changed("reports") {
		cfg.Reports = reportsFlag
	}

	if flags.Changed("debug") {
		cfg.Debug = debugFlag
	}

	if flags.Changed("debug-file") {
		cfg.DebugFile = debugFileFlag
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid options: %w", err)
	}

	return cfg, nil
}
