package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/penwyp/go-time-diff/internal/config"
	"github.com/penwyp/go-time-diff/internal/core/clock"
	"github.com/penwyp/go-time-diff/internal/core/segment"
	"github.com/penwyp/go-time-diff/internal/data/input"
	"github.com/penwyp/go-time-diff/internal/presentation/display"
	"github.com/penwyp/go-time-diff/internal/presentation/formatter"
	"github.com/penwyp/go-time-diff/internal/util"
)

// Version is set at build time
var Version = "dev"

type options struct {
	// Thresholds
	low    int
	medium int
	high   int

	// Chapters and timestamps
	resetMark string
	diffMode  string
	fastlane  bool

	// Summary
	summaryLimit  int
	summaryFormat string
	color         string

	// Input
	inputPath string
	follow    bool

	// Config and logging
	configPath string
	debug      bool
	logFile    string
	logFormat  string

	cfg config.Config
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	defaults := config.Default()
	o := &options{}

	cmd := &cobra.Command{
		Use:   "time-diff [flags]",
		Short: "Annotate a log stream with the time spent on each line",
		Long: `time-diff reads lines from stdin and prints each one prefixed with the seconds
elapsed since the previous line and since the start of the current chapter.

A chapter starts at every line matching --reset-mark. When the input ends, the
slowest lines of each chapter and of the whole run are listed, first by
timestamp and then by duration.

Examples:
  cat build.log | time-diff --low 1 --medium 5 --high 10 --reset-mark "Step: "
  fastlane build | time-diff -f                       # fastlane clock and steps
  time-diff --input build.log --follow                # keep reading as the log grows
  make 2>&1 | time-diff --summary-format json         # machine readable summary`,
		Version:       Version,
		Args:          cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return o.resolve(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return o.run(cmd)
		},
	}

	flags := cmd.Flags()

	// Severity thresholds
	flags.IntVarP(&o.low, "low", "l", defaults.Thresholds.Low,
		"Threshold in seconds for low duration color formatting")
	flags.IntVarP(&o.medium, "medium", "m", defaults.Thresholds.Medium,
		"Threshold in seconds for medium duration color formatting")
	flags.IntVarP(&o.high, "high", "h", defaults.Thresholds.High,
		"Threshold in seconds for high duration color formatting")

	// Chapters and timestamps
	flags.StringVarP(&o.resetMark, "reset-mark", "r", "",
		"Regular expression; a matching line starts a new chapter (default: none)")
	flags.StringVarP(&o.diffMode, "diff-mode", "d", string(defaults.DiffMode),
		"Timestamp source (live, fastlane)")
	flags.BoolVarP(&o.fastlane, "fastlane", "f", false,
		`Shortcut for --diff-mode fastlane --reset-mark "Step: "`)

	// Summary
	flags.IntVarP(&o.summaryLimit, "summary-limit", "s", defaults.SummaryLimit,
		"Maximum number of lines per chapter in the summary (0 = no summary)")
	flags.StringVar(&o.summaryFormat, "summary-format", defaults.SummaryFormat,
		"Summary format (text, json, csv)")
	flags.StringVar(&o.color, "color", string(defaults.Color),
		"Color output (always, never, auto)")

	// Input
	flags.StringVarP(&o.inputPath, "input", "i", "",
		`Read from this file instead of stdin ("-" = stdin)`)
	flags.BoolVar(&o.follow, "follow", false,
		"Keep reading the input file as it grows, until interrupted")

	// Config and logging
	flags.StringVar(&o.configPath, "config", "",
		"Config file (TOML, or YAML with a .yaml/.yml extension)")
	flags.BoolVar(&o.debug, "debug", false,
		"Enable debug logging to stderr")
	flags.StringVar(&o.logFile, "log-file", "",
		"Append logs to this file")
	flags.StringVar(&o.logFormat, "log-format", defaults.LogFormat,
		"Log format (text, json)")

	// -h is --high, so help gets no shorthand
	flags.Bool("help", false, "help for time-diff")

	return cmd
}

// resolve layers defaults, the config file and explicitly set flags, then
// validates the result.
func (o *options) resolve(flags *pflag.FlagSet) error {
	cfg := config.Default()

	if o.configPath != "" {
		file, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg.ApplyFile(file)
	}

	if flags.Changed("low") {
		cfg.Thresholds.Low = o.low
	}
	if flags.Changed("medium") {
		cfg.Thresholds.Medium = o.medium
	}
	if flags.Changed("high") {
		cfg.Thresholds.High = o.high
	}
	if flags.Changed("reset-mark") {
		cfg.ResetMark = o.resetMark
	}
	if flags.Changed("diff-mode") {
		cfg.DiffMode = clock.Mode(o.diffMode)
	}
	if flags.Changed("fastlane") {
		cfg.Fastlane = o.fastlane
	}
	if flags.Changed("summary-limit") {
		cfg.SummaryLimit = o.summaryLimit
	}
	if flags.Changed("summary-format") {
		cfg.SummaryFormat = o.summaryFormat
	}
	if flags.Changed("color") {
		cfg.Color = util.ColorMode(o.color)
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	cfg.Input = o.inputPath
	cfg.Follow = o.follow
	cfg.Debug = o.debug

	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

func (o *options) run(cmd *cobra.Command) error {
	cfg := o.cfg

	// Determine log level based on debug flag
	logLevel := "info"
	if cfg.Debug {
		logLevel = "debug"
	}
	logFormat, _ := util.ParseLogFormat(cfg.LogFormat)
	logFile := ""
	if cfg.LogFile != "" {
		logFile = config.ExpandPath(cfg.LogFile)
	}
	runID := uuid.NewString()
	if err := util.InitLogger(logLevel, logFile, cfg.Debug, logFormat, util.Field{Key: "run_id", Value: runID}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer util.CloseLogger()

	util.LogDebugf("Config: thresholds=%d/%d/%d mode=%s reset=%q limit=%d format=%s",
		cfg.Thresholds.Low, cfg.Thresholds.Medium, cfg.Thresholds.High,
		cfg.DiffMode, cfg.ResetMark, cfg.SummaryLimit, cfg.SummaryFormat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// Only a followed file needs interrupting; stdin ends with its writer.
	if cfg.Follow {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	source, err := clock.New(cfg.DiffMode)
	if err != nil {
		return err
	}

	in, err := input.Open(ctx, cfg.Input, cfg.Follow, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	out := cmd.OutOrStdout()
	palette := util.PaletteFor(cfg.Color, outputFile(out))

	engineCfg := segment.Config{
		Source:       source,
		Thresholds:   cfg.Thresholds,
		SummaryLimit: cfg.SummaryLimit,
		Renderer:     display.NewAnnotator(out, cfg.Thresholds, palette),
	}
	if pattern := cfg.ResetPattern(); pattern != nil {
		engineCfg.Matcher = pattern
	}

	started := time.Now()
	chapters, err := segment.NewEngine(engineCfg).Run(ctx, in)
	if err != nil {
		return err
	}

	if !cfg.SummaryEnabled() {
		util.LogDebug("Summary disabled")
		return nil
	}

	f, err := formatter.New(cfg.SummaryFormat, cfg.Thresholds, palette)
	if err != nil {
		return err
	}
	if err := f.Format(out, chapters); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	util.LogInfof("Run finished in %s", util.FormatDuration(time.Since(started)))
	return nil
}

// outputFile returns w as a file when it is one, for terminal detection
func outputFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
