package todo

import (
	"fmt"
	"strings"
)

// List is the ordered, in-memory task collection for a session.
// Order is insertion order.
type List struct {
	tasks  []Task
	scheme IDScheme
}

// NewList wraps tasks in a List. The slice is copied.
func NewList(tasks []Task, scheme IDScheme) *List {
	if scheme == "" {
		scheme = IDSchemeLength
	}
	l := &List{scheme: scheme, tasks: make([]Task, len(tasks))}
	copy(l.tasks, tasks)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Scheme returns the list's ID scheme.
func (l *List) Scheme() IDScheme {
	return l.scheme
}

// All returns a copy of the tasks in order. It never returns nil.
func (l *List) All() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Create appends a new incomplete task.
func (l *List) Create(description string) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, ErrEmptyDescription
	}
	task := Task{
		ID:          l.scheme.Next(l.tasks),
		Description: description,
	}
	l.tasks = append(l.tasks, task)
	return task, nil
}

// FindByID returns the first task with id, or false.
func (l *List) FindByID(id int) (Task, bool) {
	if i := l.index(id); i >= 0 {
		return l.tasks[i], true
	}
	return Task{}, false
}

// Update replaces the description of the task with id.
func (l *List) Update(id int, description string) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	if strings.TrimSpace(description) == "" {
		return Task{}, ErrEmptyDescription
	}
	l.tasks[i].Description = description
	return l.tasks[i], nil
}

// Remove deletes the task with id. Later tasks keep their IDs.
func (l *List) Remove(id int) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	removed := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return removed, nil
}

// Toggle flips the completion flag of the task with id.
func (l *List) Toggle(id int) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return l.tasks[i], nil
}

// Search returns tasks whose description contains keyword, ignoring case.
// An empty keyword matches every task.
func (l *List) Search(keyword string) []Task {
	needle := strings.ToLower(keyword)
	var matches []Task
	for _, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Description), needle) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Filter returns tasks matching status, in order.
func (l *List) Filter(status Status) []Task {
	var matches []Task
	for _, t := range l.tasks {
		if status.Matches(t) {
			matches = append(matches, t)
		}
	}
	return matches
}

func (l *List) index(id int) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int) error {
	return fmt.Errorf("task %d: %w", id, ErrNotFound)
}
