// Package main implements install-deps, which checks and installs the
// external binaries sqlihunt runs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sqlihunt/cmd/install-deps/installer"
	"sqlihunt/internal/platform/logx"

	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

const (
	version = "1.0.0"
	appName = "sqlihunt dependency installer"
)

type options struct {
	ConfigPath  string
	InstallDir  string
	Tools       []string
	CheckOnly   bool
	Force       bool
	Jobs        int
	Quiet       bool
	Verbose     bool
	ShowVersion bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if opts.ShowVersion {
		fmt.Printf("%s v%s\n", appName, version)
		return 0
	}

	level := logx.LevelWarn
	if opts.Verbose {
		level = logx.LevelDebug
	}
	logger := logx.NewWithLevel(level)
	if opts.Quiet {
		pterm.DisableOutput()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := installer.LoadConfig(opts.ConfigPath)
	if err != nil {
		logger.Err(err, "config", opts.ConfigPath)
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	tools, err := cfg.Select(opts.Tools)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	mgr, err := installer.NewManager(installer.Options{
		Config:     cfg,
		InstallDir: opts.InstallDir,
		Workers:    opts.Jobs,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var results []installer.Result
	if opts.CheckOnly {
		results = mgr.Check(ctx, tools)
		installer.Report(os.Stderr, "Dependency check", results, opts.Quiet)
	} else {
		results = mgr.Install(ctx, tools, opts.Force)
		installer.Report(os.Stderr, "Dependency install", results, opts.Quiet)
		if !installer.InPath(mgr.InstallDir(), os.Getenv("PATH")) {
			pterm.Warning.Printfln("%s is not in PATH; add it so sqlihunt can find the tools", mgr.InstallDir())
		}
	}

	if n := installer.Missing(results); n > 0 {
		logger.Warn("required tools unavailable", "count", n)
		return 1
	}
	return 0
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("install-deps", pflag.ContinueOnError)

	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "Dependencies file (default: built-in list)")
	fs.StringVar(&opts.InstallDir, "dir", "", "Directory for go-installed binaries (overrides config)")
	fs.StringSliceVar(&opts.Tools, "tool", nil, "Only handle these tools (repeatable or comma-separated)")
	fs.BoolVar(&opts.CheckOnly, "check", false, "Only check tools, do not install")
	fs.BoolVar(&opts.Force, "force", false, "Reinstall tools that are already present")
	fs.IntVarP(&opts.Jobs, "jobs", "j", 2, "Tools handled in parallel")
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "Print only problems")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Debug logging")
	fs.BoolVarP(&opts.ShowVersion, "version", "v", false, "Show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", appName, version)
		fmt.Fprintf(os.Stderr, "USAGE:\n  install-deps [flags]\n\nFLAGS:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEXAMPLES:\n")
		fmt.Fprintf(os.Stderr, "  install-deps --check\n")
		fmt.Fprintf(os.Stderr, "  install-deps --tool sqlmap,katana --force\n")
		fmt.Fprintf(os.Stderr, "  install-deps --dir /usr/local/bin\n")
	}

	err := fs.Parse(args)
	return opts, err
}
