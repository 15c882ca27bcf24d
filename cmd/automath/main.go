// Package main is the entry point for the automath editor session runner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/automath/internal/clipboard"
	"github.com/dshills/automath/internal/config"
	"github.com/dshills/automath/internal/editor"
	"github.com/dshills/automath/internal/export"
	"github.com/dshills/automath/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath  string
	ScriptPath  string
	OutputPath  string
	Format      string
	LogLevel    string
	Interactive bool
	Watch       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logOut := io.Writer(os.Stderr)
	var prompt *repl
	if opts.Interactive {
		if prompt, err = newREPL(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logOut = prompt.Stderr()
	}
	logger := logging.New(logOut, "automath", logging.WithLevel(logging.ParseLevel(level)))

	ed := editor.New(editor.Options{
		Math:    cfg.Math,
		MaxUndo: cfg.History.MaxEntries,
		Logger:  logger,
	})
	// Ensure cleanup on all exit paths
	defer ed.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Watch {
		w, err := config.NewWatcher(opts.ConfigPath, func(c config.Config) {
			if err := ed.SetMathOptions(c.Math); err != nil {
				logger.Warn("apply reloaded math options: %v", err)
				return
			}
			_ = ed.SetMaxUndo(c.History.MaxEntries)
			if opts.LogLevel == "" {
				logger.SetLevel(logging.ParseLevel(c.Logging.Level))
			}
			logger.Info("config reloaded from %s", opts.ConfigPath)
		}, config.WithErrorHandler(func(err error) {
			logger.Warn("config watch: %v", err)
		}))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		defer w.Close()
	}

	var outFile *os.File
	out := io.Writer(os.Stdout)
	if opts.OutputPath != "" {
		if outFile, err = os.Create(opts.OutputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		out = outFile
	}

	r := newRunner(ed, os.Stdout, format)
	err = session(ctx, opts, prompt, r)
	if err == nil {
		r.out = out
		if err = r.export(format); err != nil {
			err = fmt.Errorf("writing output: %w", err)
		}
	}
	if outFile != nil {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// session feeds the editor from the selected input and waits for pending
// conversions to finish.
func session(ctx context.Context, opts options, prompt *repl, r *runner) error {
	switch {
	case opts.Interactive:
		prompt.Run(ctx, r)

	case opts.ScriptPath != "":
		script, err := LoadScript(opts.ScriptPath)
		if err != nil {
			return err
		}
		if err := r.runScript(ctx, script); err != nil {
			return err
		}

	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		if err := r.ed.Paste(clipboard.Markdown(string(data))); err != nil && !errors.Is(err, clipboard.ErrNoContent) {
			return err
		}
	}
	return r.settle(ctx)
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "YAML script of editor steps to run")
	flag.StringVar(&opts.OutputPath, "o", "", "Write the final document to this file")
	flag.StringVar(&opts.Format, "format", "markdown", "Output format (markdown, html, text, cbor)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Interactive, "i", false, "Start an interactive session")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the config file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "automath - converts pasted TeX equations into math nodes\n\n")
		fmt.Fprintf(os.Stderr, "Usage: automath [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echo '$$x^2$$' | automath            Paste stdin and print markdown\n")
		fmt.Fprintf(os.Stderr, "  automath -script demo.yaml -format html\n")
		fmt.Fprintf(os.Stderr, "  automath -i -c automath.toml -watch\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("automath %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if err := opts.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return opts
}

func (o options) validate() error {
	switch o.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", o.LogLevel)
	}
	if o.Watch && o.ConfigPath == "" {
		return errors.New("-watch requires -config")
	}
	return nil
}
