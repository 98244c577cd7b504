// Package store persists the task list as one JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmgr/internal/logging"
	"github.com/nibzard/taskmgr/internal/todo"
)

// Store reads and writes the whole task file at once.
type Store struct {
	path       string
	schemaPath string
	logger     *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSchema validates the file against an external JSON Schema.
func WithSchema(path string) Option {
	return func(s *Store) { s.schemaPath = path }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Store for the task file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Read loads tasks from disk. A missing file yields an error wrapping
// fs.ErrNotExist; a file of the wrong shape yields a *todo.ShapeError.
func (s *Store) Read() ([]todo.Task, error) {
	tasks, _, err := s.read()
	return tasks, err
}

// Inspect is Read plus the validation result, for diagnostics.
// The result is nil when the file could not be read or is not JSON.
func (s *Store) Inspect() ([]todo.Task, *todo.ValidationResult, error) {
	return s.read()
}

func (s *Store) read() ([]todo.Task, *todo.ValidationResult, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("read task file: %w", err)
	}

	tasks, result, err := todo.Parse(data, todo.ValidationOptions{SchemaPath: s.schemaPath})
	if result != nil {
		for _, w := range result.Warnings {
			s.logger.Warn("Task file schema", "path", s.path, "warning", w)
		}
	}
	if err != nil {
		return nil, result, err
	}
	return tasks, result, nil
}

// Load returns the stored tasks as a list. A missing file is an empty list.
// Any other failure is logged and also yields an empty list.
func (s *Store) Load(scheme todo.IDScheme) *todo.List {
	tasks, err := s.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("No task file yet", "path", s.path)
		} else {
			s.logger.Error("Error reading the tasks file", "path", s.path, "err", err)
		}
		return todo.NewList(nil, scheme)
	}
	s.logger.Debug("Loaded tasks", "path", s.path, "count", len(tasks))
	return todo.NewList(tasks, scheme)
}

// Write overwrites the task file with tasks, 2-space indented.
func (s *Store) Write(tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

// Save is Write that logs failures instead of returning them.
func (s *Store) Save(tasks []todo.Task) {
	if err := s.Write(tasks); err != nil {
		s.logger.Error("Error saving the tasks file", "path", s.path, "err", err)
		return
	}
	s.logger.Debug("Saved tasks", "path", s.path, "count", len(tasks))
}
