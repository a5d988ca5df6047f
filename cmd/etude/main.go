// Package main is the entry point for the etude buffer tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/dshills/etudes/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var errorColor = color.New(color.FgRed, color.Bold)

func main() {
	os.Exit(run())
}

func run() int {
	opts, args, code := parseFlags()
	if code >= 0 {
		return code
	}
	if len(args) < 2 {
		flag.Usage()
		return 2
	}
	path, command, cmdArgs := args[0], args[1], args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(opts)
	if err != nil {
		printError("failed to initialize: %v", err)
		return 1
	}

	status := execute(ctx, application, path, command, cmdArgs, stdout())
	if err := application.Close(); err != nil {
		printError("%v", err)
		status = 1
	}
	return status
}

func execute(ctx context.Context, application *app.Application, path, command string, args []string, out io.Writer) int {
	if err := application.Open(path); err != nil {
		printError("%v", err)
		return 1
	}

	if err := application.Exec(ctx, command, args, out); err != nil {
		printError("%v", err)
		if errors.Is(err, app.ErrUsage) || errors.Is(err, app.ErrUnknownCommand) {
			return 2
		}
		return 1
	}
	return 0
}

// stdout escapes NUL padding when writing to a terminal.
func stdout() io.Writer {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return &nulEscaper{w: os.Stdout}
	}
	return os.Stdout
}

func printError(format string, args ...any) {
	_, _ = errorColor.Fprint(os.Stderr, "Error: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// parseFlags returns the options, the positional arguments, and an exit
// code >= 0 when the program should stop immediately.
func parseFlags() (app.Options, []string, int) {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Kind, "kind", "", "Buffer kind (mapped, memory, paged, empty)")
	flag.StringVar(&opts.Kind, "k", "", "Buffer kind (shorthand)")
	flag.StringVar(&opts.Capacity, "capacity", "", "Buffer capacity, e.g. 4096 or 64KiB")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "etude - fixed-capacity text buffer tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: etude [options] <path> <command> [args...]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		for _, usage := range app.Commands() {
			fmt.Fprintf(os.Stderr, "  %s\n", usage)
		}
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  etude notes.txt insert 0 hello       Write at offset 0\n")
		fmt.Fprintf(os.Stderr, "  etude -capacity 1MiB big.txt info    Create or inspect a 1 MiB buffer\n")
		fmt.Fprintf(os.Stderr, "  etude -k paged data.bin run edit.lua Run a script against a paged buffer\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		return opts, nil, 0
	}

	if showVersion {
		fmt.Printf("etude %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, nil, 0
	}

	if opts.Capacity != "" {
		if _, err := humanize.ParseBytes(opts.Capacity); err != nil {
			printError("invalid capacity %q: %v", opts.Capacity, err)
			return opts, nil, 2
		}
	}

	switch strings.ToLower(opts.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		printError("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
		return opts, nil, 2
	}

	return opts, flag.Args(), -1
}
