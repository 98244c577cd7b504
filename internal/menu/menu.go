// Package menu runs the interactive numbered-menu loop over a task list.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmgr/internal/logging"
	"github.com/nibzard/taskmgr/internal/todo"
)

// State is the menu loop state.
type State int

const (
	// AwaitingChoice is the initial state: the menu is shown and a choice is read.
	AwaitingChoice State = iota
	// Terminated is the final state.
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingChoice:
		return "awaiting-choice"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Choice is a top-level menu option.
type Choice int

const (
	ChoiceCreate Choice = iota + 1
	ChoiceView
	ChoiceToggle
	ChoiceRemove
	ChoiceUpdate
	ChoiceSearch
	ChoiceExit
)

var choiceLabels = map[Choice]string{
	ChoiceCreate: "Create a new task",
	ChoiceView:   "View all tasks",
	ChoiceToggle: "Toggle task completion",
	ChoiceRemove: "Remove a task",
	ChoiceUpdate: "Update task description",
	ChoiceSearch: "Search tasks",
	ChoiceExit:   "Exit",
}

// Label returns the text shown for c in the menu.
func (c Choice) Label() string {
	return choiceLabels[c]
}

// ParseChoice parses a menu choice: exactly one digit 1-7 after
// surrounding whitespace is trimmed.
func ParseChoice(s string) (Choice, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 || s[0] < '1' || s[0] > '7' {
		return 0, false
	}
	return Choice(s[0] - '0'), true
}

// Saver persists the whole task list. Failures are the saver's concern.
type Saver interface {
	Save(tasks []todo.Task)
}

// Option configures a Menu.
type Option func(*Menu)

// WithLogger sets the logger for debug diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(m *Menu) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Menu is the interactive loop. It owns no tasks: the list is the caller's.
type Menu struct {
	in     io.Reader
	out    io.Writer
	list   *todo.List
	store  Saver
	logger *log.Logger

	lines *lineReader
	state State
}

// New returns a Menu reading choices from in and writing to out.
func New(in io.Reader, out io.Writer, list *todo.List, store Saver, opts ...Option) *Menu {
	m := &Menu{
		in:     in,
		out:    out,
		list:   list,
		store:  store,
		logger: logging.Discard(),
		state:  AwaitingChoice,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current loop state.
func (m *Menu) State() State {
	return m.state
}

// Run shows the menu and handles choices until Exit, end of input, or ctx
// cancellation. Exit and end of input return nil; cancellation returns
// ctx.Err().
func (m *Menu) Run(ctx context.Context) error {
	if m.state == Terminated {
		return nil
	}
	m.lines = newLineReader(m.in)
	defer m.lines.close()

	for m.state == AwaitingChoice {
		m.showMenu()
		line, err := m.ask(ctx, "Choose an option: ")
		if err != nil {
			return m.stop(err)
		}
		if err := m.dispatch(ctx, line); err != nil {
			return m.stop(err)
		}
	}
	return nil
}

func (m *Menu) stop(err error) error {
	m.state = Terminated
	if errors.Is(err, io.EOF) {
		m.logger.Debug("Input closed")
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		m.logger.Debug("Menu interrupted")
		return err
	}
	return fmt.Errorf("read input: %w", err)
}

func (m *Menu) showMenu() {
	m.println("\n--- Task Manager ---")
	for c := ChoiceCreate; c <= ChoiceExit; c++ {
		m.printf("%d. %s\n", int(c), c.Label())
	}
}

func (m *Menu) dispatch(ctx context.Context, line string) error {
	choice, ok := ParseChoice(line)
	if !ok {
		m.println("Invalid choice. Please try again.")
		return nil
	}

	switch choice {
	case ChoiceCreate:
		return m.create(ctx)
	case ChoiceView:
		m.view()
	case ChoiceToggle:
		return m.toggle(ctx)
	case ChoiceRemove:
		return m.remove(ctx)
	case ChoiceUpdate:
		return m.update(ctx)
	case ChoiceSearch:
		return m.search(ctx)
	case ChoiceExit:
		m.println("Task Manager closed.")
		m.state = Terminated
	}
	return nil
}

func (m *Menu) create(ctx context.Context) error {
	description, err := m.ask(ctx, "Enter task description: ")
	if err != nil {
		return err
	}
	task, err := m.list.Create(description)
	if err != nil {
		m.println("Task description cannot be empty.")
		return nil
	}
	m.save()
	m.logger.Debug("Task created", "id", task.ID)
	m.printf("Task '%s' created successfully.\n", task.Description)
	return nil
}

func (m *Menu) view() {
	tasks := m.list.All()
	if len(tasks) == 0 {
		m.println("No tasks available.")
		return
	}
	m.println("\nTask List:")
	m.printTasks(tasks)
}

func (m *Menu) toggle(ctx context.Context) error {
	input, err := m.ask(ctx, "Enter task ID to toggle completion: ")
	if err != nil {
		return err
	}
	id, ok := parseID(input)
	if !ok {
		m.notFound(input)
		return nil
	}
	task, err := m.list.Toggle(id)
	if err != nil {
		m.notFound(input)
		return nil
	}
	m.save()
	m.logger.Debug("Task toggled", "id", task.ID, "completed", task.Completed)
	m.printf("Task ID %s marked as %s.\n", strings.TrimSpace(input), task.StatusLabel())
	return nil
}

func (m *Menu) remove(ctx context.Context) error {
	input, err := m.ask(ctx, "Enter task ID to remove: ")
	if err != nil {
		return err
	}
	id, ok := parseID(input)
	if !ok {
		m.notFound(input)
		return nil
	}
	task, err := m.list.Remove(id)
	if err != nil {
		m.notFound(input)
		return nil
	}
	m.save()
	m.logger.Debug("Task removed", "id", task.ID)
	m.printf("Task ID %s removed successfully.\n", strings.TrimSpace(input))
	return nil
}

func (m *Menu) update(ctx context.Context) error {
	input, err := m.ask(ctx, "Enter task ID to update: ")
	if err != nil {
		return err
	}
	id, ok := parseID(input)
	if ok {
		_, ok = m.list.FindByID(id)
	}
	if !ok {
		m.notFound(input)
		return nil
	}

	description, err := m.ask(ctx, "Enter new description: ")
	if err != nil {
		return err
	}
	task, err := m.list.Update(id, description)
	switch {
	case errors.Is(err, todo.ErrEmptyDescription):
		m.println("New description cannot be empty.")
		return nil
	case err != nil:
		m.notFound(input)
		return nil
	}
	m.save()
	m.logger.Debug("Task updated", "id", task.ID)
	m.printf("Task ID %s updated successfully.\n", strings.TrimSpace(input))
	return nil
}

func (m *Menu) search(ctx context.Context) error {
	keyword, err := m.ask(ctx, "Enter keyword to search: ")
	if err != nil {
		return err
	}
	results := m.list.Search(keyword)
	if len(results) == 0 {
		m.println("No matching tasks found.")
		return nil
	}
	m.println("\nSearch Results:")
	m.printTasks(results)
	return nil
}

func (m *Menu) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	return m.lines.next(ctx)
}

func (m *Menu) save() {
	if m.store != nil {
		m.store.Save(m.list.All())
	}
}

func (m *Menu) notFound(input string) {
	m.printf("Task with ID %s not found.\n", strings.TrimSpace(input))
}

func (m *Menu) printTasks(tasks []todo.Task) {
	for _, t := range tasks {
		m.println(t.String())
	}
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return id, true
}
