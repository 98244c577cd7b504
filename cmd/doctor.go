package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/nibzard/taskmgr/internal/todo"
)

// doctorCommand checks config and task file validity.
func doctorCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("taskmgr doctor", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	out := e.stdout
	cfg := e.cfg

	fmt.Fprintln(out, "taskmgr Doctor")
	fmt.Fprintln(out, "==============")
	fmt.Fprintln(out)

	allOK := true

	// Config
	fmt.Fprintln(out, "Config:")
	if file := e.cws.GetConfigFile(); file != "" {
		fmt.Fprintf(out, "  ✅ File: %s\n", file)
	} else {
		fmt.Fprintln(out, "  ✅ File: none (using defaults)")
	}
	for _, key := range e.cws.UnknownKeys {
		fmt.Fprintf(out, "  ⚠️  Unknown key: %s\n", key)
	}
	fmt.Fprintf(out, "  ✅ ID scheme: %s\n", cfg.IDScheme)
	fmt.Fprintf(out, "  ✅ Logging: %s (%s)\n", cfg.LogLevel, cfg.LogFormat)
	fmt.Fprintln(out)

	// Schema file
	if cfg.SchemaFile != "" {
		fmt.Fprintf(out, "Schema file: %s\n", cfg.SchemaFile)
		if info, err := os.Stat(cfg.SchemaFile); err != nil {
			fmt.Fprintf(out, "  ❌ Error: %v\n", err)
			allOK = false
		} else if info.IsDir() {
			fmt.Fprintln(out, "  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Fprintln(out, "  ✅ OK")
		}
		fmt.Fprintln(out)
	}

	// Task file
	taskPath := e.store.Path()
	fmt.Fprintf(out, "Task file: %s\n", taskPath)
	info, err := os.Stat(taskPath)
	switch {
	case err != nil && os.IsNotExist(err):
		fmt.Fprintln(out, "  ⚠️  Not found (will be created on first change)")
	case err != nil:
		fmt.Fprintf(out, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(out, "  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Fprintln(out, "  ✅ OK")
		if !checkTaskFile(e, *verbose) {
			allOK = false
		}
	}
	fmt.Fprintln(out)

	if allOK {
		fmt.Fprintln(out, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(out, "⚠️  Some checks failed. taskmgr will start with an empty list.")
	return fmt.Errorf("doctor checks failed")
}

// checkTaskFile validates the task file contents and reports problems.
func checkTaskFile(e *env, verbose bool) bool {
	out := e.stdout
	tasks, result, err := e.store.Inspect()
	if result != nil {
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  ⚠️  %s\n", w)
		}
	}

	var shapeErr *todo.ShapeError
	switch {
	case errors.As(err, &shapeErr):
		fmt.Fprintln(out, "  ❌ Validation failed:")
		for _, ve := range shapeErr.Result.Errors {
			fmt.Fprintf(out, "     - %v\n", ve)
		}
		return false
	case err != nil:
		fmt.Fprintf(out, "  ❌ Load error: %v\n", err)
		return false
	}

	fmt.Fprintf(out, "  ✅ Valid (%s schema)\n", schemaLabel(result))
	if dups := duplicateIDs(tasks); len(dups) > 0 {
		fmt.Fprintf(out, "  ⚠️  Duplicate IDs: %v (toggle, remove and update act on the first match)\n", dups)
	}
	if verbose {
		fmt.Fprintf(out, "  Tasks: %d\n", len(tasks))
		for _, t := range tasks {
			fmt.Fprintf(out, "    - %s\n", t)
		}
	}
	return true
}

func schemaLabel(result *todo.ValidationResult) string {
	if result == nil || result.Schema == "" {
		return "embedded"
	}
	return result.Schema
}

// duplicateIDs returns IDs used by more than one task, ascending.
func duplicateIDs(tasks []todo.Task) []int {
	seen := make(map[int]int, len(tasks))
	for _, t := range tasks {
		seen[t.ID]++
	}
	var dups []int
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Ints(dups)
	return dups
}
