// Package todo holds the task list and the operations on it.
//
// The task file (tasks.json) is a JSON array of tasks:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Buy milk",
//	    "completed": false
//	  }
//	]
//
// # Validation
//
// Decoded file contents are checked against an embedded JSON Schema
// (draft 2020-12) before they are turned into tasks. A different schema can be
// supplied through ValidationOptions.SchemaPath; when it cannot be compiled the
// embedded schema is used and a warning is recorded.
//
// # Task IDs
//
// IDs are assigned by an IDScheme:
//
//   - "length": number of existing tasks + 1. Removing a task and then
//     creating one can reuse an ID that is still in the list.
//   - "max": highest existing ID + 1.
//
// # File Format
//
// When writing task files the store uses:
//   - 2-space indentation
//   - Trailing newline
//   - "[]" for an empty list
package todo
