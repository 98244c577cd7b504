// Package cmd implements the CLI command structure for taskmgr.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmgr/internal/config"
	"github.com/nibzard/taskmgr/internal/logging"
	"github.com/nibzard/taskmgr/internal/menu"
	"github.com/nibzard/taskmgr/internal/store"
	"github.com/nibzard/taskmgr/internal/todo"
	"github.com/nibzard/taskmgr/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env is the process environment a command runs against.
type env struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	store  *store.Store
	logger *log.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Run executes the taskmgr CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskmgr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	cfg := cws.Config
	logger, closer, err := logging.New(stderr, cfg.LoggingOptions())
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closer.Close()
	for _, key := range cws.UnknownKeys {
		logger.Warn("Unknown config key", "key", key)
	}

	e := &env{
		cws:    cws,
		cfg:    cfg,
		store:  store.New(cfg.TaskFile, store.WithSchema(cfg.SchemaFile), store.WithLogger(logger)),
		logger: logger,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "menu" as default
	subcommand := "menu"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "menu":
		return menuCommand(ctx, e, remainingArgs)
	case "ls":
		return lsCommand(e, remainingArgs)
	case "tui":
		return tuiCommand(ctx, e, remainingArgs)
	case "doctor":
		return doctorCommand(e, remainingArgs)
	case "config":
		return configCommand(e, remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// menuCommand runs the interactive menu loop.
func menuCommand(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("taskmgr menu", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	list := e.store.Load(e.cfg.Scheme())
	m := menu.New(e.stdin, e.stdout, list, e.store, menu.WithLogger(e.logger))
	return m.Run(ctx)
}

// lsCommand lists tasks in the menu's line format.
func lsCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("taskmgr ls", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	statusFilter := fs.String("status", "", "Filter by status (all|incomplete|completed)")
	keyword := fs.String("search", "", "Only show tasks whose description contains this keyword")

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 1 && *statusFilter == "" {
		*statusFilter = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	status, err := todo.ParseStatus(*statusFilter)
	if err != nil {
		return err
	}

	tasks, err := readTasks(e.store)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	list := todo.NewList(tasks, e.cfg.Scheme())
	if *keyword != "" {
		list = todo.NewList(list.Search(*keyword), e.cfg.Scheme())
	}
	matches := list.Filter(status)

	if len(matches) == 0 {
		if len(tasks) == 0 {
			fmt.Fprintln(e.stdout, "No tasks available.")
		} else {
			fmt.Fprintln(e.stdout, "No matching tasks found.")
		}
		return nil
	}
	for _, t := range matches {
		fmt.Fprintln(e.stdout, t.String())
	}
	return nil
}

// tuiCommand launches the read-only terminal viewer.
func tuiCommand(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("taskmgr tui", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	refresh := fs.Duration("refresh", time.Second, "Reload interval")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	load := func() ([]todo.Task, error) {
		return readTasks(e.store)
	}
	return ui.RunTUI(ctx, load, e.store.Path(), ui.WithRefreshInterval(*refresh))
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("taskmgr config", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	example := fs.Bool("example", false, "Print an example config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Fprint(e.stdout, config.ExampleConfig())
		return nil
	}

	configFile := e.cws.GetConfigFile()
	if configFile == "" {
		configFile = "(none)"
	}
	fmt.Fprintf(e.stdout, "Config file: %s\n", configFile)
	fmt.Fprintf(e.stdout, "Project root: %s\n\n", e.cfg.ProjectRoot)
	for _, field := range config.Fields() {
		value := e.cfg.Value(field)
		if value == "" {
			value = `""`
		}
		fmt.Fprintf(e.stdout, "  %-15s %s (%s)\n", field, value, e.cws.Sources[field])
	}
	return nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskmgr version %s\n", Version)
	return nil
}

// readTasks reads the task file strictly. A missing file is an empty list.
func readTasks(st *store.Store) ([]todo.Task, error) {
	tasks, err := st.Read()
	if errors.Is(err, os.ErrNotExist) {
		return []todo.Task{}, nil
	}
	return tasks, err
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskmgr - An interactive task list manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskmgr [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu          Run the interactive menu (default command)")
	fmt.Fprintln(w, "  ls [status]   List tasks")
	fmt.Fprintln(w, "  tui           Launch the read-only terminal viewer")
	fmt.Fprintln(w, "  doctor        Check config and task file validity")
	fmt.Fprintln(w, "  config        Show the effective configuration")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (all|incomplete|completed)")
	fmt.Fprintln(w, "  -search string")
	fmt.Fprintln(w, "        Only show tasks whose description contains this keyword")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options (use with 'tui' command):")
	fmt.Fprintln(w, "  -refresh duration")
	fmt.Fprintln(w, "        Reload interval (default 1s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    List tasks found in the task file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
}
