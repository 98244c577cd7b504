// Package ui provides the optional read-only terminal viewer.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskmgr/internal/todo"
)

// Loader returns the current tasks from storage.
type Loader func() ([]todo.Task, error)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	refresh time.Duration
}

// WithRefreshInterval sets how often the task file is re-read.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// RunTUI starts the viewer for the task file at taskPath.
func RunTUI(ctx context.Context, load Loader, taskPath string, opts ...TUIOption) error {
	c := &tuiConfig{refresh: time.Second}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(load, taskPath, c.refresh)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	load         Loader
	taskPath     string
	tickInterval time.Duration

	tasks   []todo.Task
	loaded  bool
	loadErr error

	filter    todo.Status
	keyword   string // applied search keyword
	query     string // search input being typed
	searching bool
	showHelp  bool
}

type tickMsg time.Time

func newTUIModel(load Loader, taskPath string, interval time.Duration) *tuiModel {
	return &tuiModel{
		load:         load,
		taskPath:     taskPath,
		tickInterval: interval,
		filter:       todo.StatusAll,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "a":
			m.filter = todo.StatusAll
		case "i":
			m.filter = todo.StatusIncomplete
		case "c":
			m.filter = todo.StatusCompleted
		case "/":
			m.searching = true
			m.query = m.keyword
		case "x":
			m.keyword = ""
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.keyword = m.query
		m.searching = false
	case tea.KeyEsc:
		m.query = ""
		m.searching = false
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if !m.loaded {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.tasks)
	writeFilters(&b, m.filter, m.keyword)
	writeTasks(&b, m.visible())
	if m.searching {
		b.WriteString(fmt.Sprintf("Search: %s_\n\n", m.query))
	}
	b.WriteString(fmt.Sprintf("Task File: %s\n\n", m.taskPath))
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	tasks, err := m.load()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	m.loaded = true
	m.tasks = tasks
}

// visible returns the tasks passing both the status filter and the keyword.
func (m *tuiModel) visible() []todo.Task {
	list := todo.NewList(m.tasks, "")
	if m.keyword != "" {
		list = todo.NewList(list.Search(m.keyword), "")
	}
	return list.Filter(m.filter)
}

func writeTitle(b *strings.Builder) {
	title := "Task Manager"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, tasks []todo.Task) {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	b.WriteString(fmt.Sprintf("  Total: %d  Incomplete: %d  Completed: %d\n\n",
		len(tasks), len(tasks)-completed, completed))
}

func writeFilters(b *strings.Builder, filter todo.Status, keyword string) {
	if filter != todo.StatusAll {
		b.WriteString(fmt.Sprintf("Filter: %s (a to clear)\n", filter))
	}
	if keyword != "" {
		b.WriteString(fmt.Sprintf("Search: %q (x to clear)\n", keyword))
	}
	if filter != todo.StatusAll || keyword != "" {
		b.WriteString("\n")
	}
}

func writeTasks(b *strings.Builder, tasks []todo.Task) {
	b.WriteString("Tasks\n\n")
	if len(tasks) == 0 {
		b.WriteString("  No tasks to show.\n\n")
		return
	}
	for _, t := range tasks {
		b.WriteString(formatTask(t))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload the task file\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  a            Show all tasks\n")
	b.WriteString("  i            Show incomplete tasks\n")
	b.WriteString("  c            Show completed tasks\n")
	b.WriteString("  /            Search (enter to apply, esc to cancel)\n")
	b.WriteString("  x            Clear search\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

func formatTask(t todo.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("  [%s] %3d  %s", mark, t.ID, t.Description)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
