package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskmgr/internal/utils"
)

const embeddedSchemaURL = "tasks.schema.json"

// taskFileSchema describes the task file: an array of tasks.
const taskFileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "taskmgr task file",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "description", "completed"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "description": {"type": "string", "minLength": 1},
      "completed": {"type": "boolean"}
    }
  }
}`

var (
	embeddedOnce   sync.Once
	embeddedSchema *jsonschema.Schema
	embeddedErr    error
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is an optional JSON Schema file replacing the embedded one.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	// Schema is the schema that was applied: "embedded" or a file path.
	Schema string
}

// ShapeError reports decoded JSON that is not a valid task file.
type ShapeError struct {
	Result *ValidationResult
}

func (e *ShapeError) Error() string {
	if e.Result == nil || len(e.Result.Errors) == 0 {
		return "task file does not match schema"
	}
	return fmt.Sprintf("task file does not match schema: %v", e.Result.Errors[0])
}

// Parse decodes and validates task file contents.
// The ValidationResult is nil when data is not JSON at all.
func Parse(data []byte, opts ValidationOptions) ([]Task, *ValidationResult, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse task file: %w", err)
	}

	result := Validate(raw, opts)
	if !result.Valid {
		return nil, result, &ShapeError{Result: result}
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, result, fmt.Errorf("parse task file: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, result, nil
}

// Validate checks a decoded JSON value against the task file schema.
func Validate(raw any, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema, source, warning := resolveSchema(opts.SchemaPath)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if schema == nil {
		// The embedded schema failed to compile; nothing can be checked.
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: embeddedErr})
		return result
	}
	result.Schema = source

	if err := schema.Validate(raw); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return raw, nil
}

// resolveSchema returns the external schema when it compiles, else the
// embedded one. The warning explains a fallback.
func resolveSchema(path string) (*jsonschema.Schema, string, string) {
	var warning string
	if path != "" {
		schema, err := compileFile(path)
		if err == nil {
			return schema, path, ""
		}
		warning = fmt.Sprintf("%v; using embedded schema", err)
	}

	embeddedOnce.Do(func() {
		embeddedSchema, embeddedErr = jsonschema.CompileString(embeddedSchemaURL, taskFileSchema)
	})
	if embeddedErr != nil {
		return nil, "", warning
	}
	return embeddedSchema, "embedded", warning
}

func compileFile(path string) (*jsonschema.Schema, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %w", err)
	}
	return schema, nil
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
