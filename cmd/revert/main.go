// Package main is the entry point for revert, an undo/redo playground over
// a single line of text.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/dshills/revert/internal/config"
	"github.com/dshills/revert/internal/history"
	"github.com/dshills/revert/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	ConfigPath string
	ScriptPath string
	LogLevel   string
	Initial    string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(config.WithPath(opts.ConfigPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	logger := newLogger(os.Stderr, cfg.Logging.SlogLevel())

	policy, err := config.HistoryPolicy[string](cfg.History)
	if err != nil {
		logger.Error("invalid history policy", "err", err)
		return 1
	}
	hist, err := history.NewRedoable(opts.Initial, history.WithPolicy(policy))
	if err != nil {
		logger.Error("failed to create history", "err", err)
		return 1
	}
	defer hist.Dispose()

	logger.Debug("history ready",
		"policy", policy.Name(),
		"capacity", policy.Capacity(),
		"mode", hist.Mode())

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.ScriptPath != "" {
		return runScript(ctx, logger, hist, opts.ScriptPath)
	}

	s := newSession(hist, logger)
	if err := s.run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("session ended", "err", err)
		return 1
	}
	return 0
}

// newLogger returns a text logger whose records carry a per-run id.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run", uuid.NewString())
}

func runScript(ctx context.Context, logger *slog.Logger, hist *history.Redoable[string], path string) int {
	runner, err := script.NewRunner(hist)
	if err != nil {
		logger.Error("failed to start script runner", "err", err)
		return 1
	}
	defer runner.Close()

	logger.Debug("running script", "path", path)
	if err := runner.RunFile(ctx, path); err != nil {
		logger.Error("script failed", "path", path, "err", err)
		return 1
	}

	logger.Debug("script finished",
		"value", hist.Get(),
		"saves", hist.Saves(),
		"edits", hist.Edits())
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Run a Lua script instead of the interactive prompt")
	flag.StringVar(&opts.ScriptPath, "s", "", "Run a Lua script (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides configuration")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "revert - undo/redo history over a line of text\n\n")
		fmt.Fprintf(os.Stderr, "Usage: revert [options] [initial text]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  revert hello                Start the prompt with \"hello\"\n")
		fmt.Fprintf(os.Stderr, "  revert -c revert.toml       Use the policy from a config file\n")
		fmt.Fprintf(os.Stderr, "  revert -s edits.lua         Drive the history from Lua\n")
		fmt.Fprintf(os.Stderr, "  REVERT_POLICY=ring REVERT_CAPACITY=8 revert\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("revert %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.LogLevel = strings.ToLower(opts.LogLevel)
	opts.Initial = strings.Join(flag.Args(), " ")
	return opts
}
