// Package ui provides the terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Bearcry55/rtodo/internal/config"
	"github.com/Bearcry55/rtodo/internal/form"
	"github.com/Bearcry55/rtodo/internal/store"
	"github.com/Bearcry55/rtodo/internal/task"
	"github.com/Bearcry55/rtodo/internal/view"
)

// Option configures the TUI model.
type Option func(*Model)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithNotice seeds the status line, for boundary messages like a
// corrupt task file found at startup.
func WithNotice(msg string) Option {
	return func(m *Model) {
		m.status = msg
		m.statusIsErr = true
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, st *store.Store, logger *log.Logger, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("rtodo requires a TTY")
	}
	model := New(cfg, st, logger, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the Bubble Tea model for the whole session. The store owns
// the tasks and the selection; the model owns the sort mode, the
// projection for the current frame, and any open form.
type Model struct {
	cfg    *config.Config
	store  *store.Store
	logger *log.Logger
	now    func() time.Time

	sortMode view.SortMode
	proj     view.Projection
	form     *form.Form

	status      string
	statusIsErr bool
}

// New builds the model and computes the first frame's projection.
func New(cfg *config.Config, st *store.Store, logger *log.Logger, opts ...Option) *Model {
	m := &Model{
		cfg:      cfg,
		store:    st,
		logger:   logger,
		now:      time.Now,
		sortMode: view.SortCreatedDate,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reproject()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.form != nil {
			return m.updateForm(key)
		}
		return m.updateList(key)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var teaCmd tea.Cmd

	switch cmd := listCommand(msg); cmd {
	case CmdQuit:
		return m, tea.Quit
	case CmdMoveSelectionUp:
		m.store.MoveSelection(-1)
	case CmdMoveSelectionDown:
		m.store.MoveSelection(1)
	case CmdToggleComplete:
		m.toggleSelected()
	case CmdDelete:
		m.deleteSelected()
	case CmdStartAdd:
		m.form = form.NewAdd()
		m.setInfo("New task")
		teaCmd = textinput.Blink
	case CmdStartEdit:
		teaCmd = m.startEdit()
	case CmdSortByCreated, CmdSortByTarget, CmdSortByCompletion:
		mode, _ := sortModeFor(cmd)
		m.sortMode = mode
		m.setInfo("Sorted by " + mode.Label())
	}

	m.reproject()
	return m, teaCmd
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch formCommand(msg) {
	case CmdQuit:
		return m, tea.Quit
	case CmdCancelForm:
		m.form = nil
		m.setInfo("Cancelled")
	case CmdFocusNextField:
		m.form.NextField()
	case CmdFocusPrevField:
		m.form.PrevField()
	case CmdSubmitForm:
		m.submitForm()
	default:
		return m, m.form.Update(msg)
	}

	m.reproject()
	return m, nil
}

// selectedID resolves the highlighted display row to a task id.
func (m *Model) selectedID() (int, bool) {
	i := m.store.Selection()
	if i < 0 || i >= len(m.proj.Rows) {
		return 0, false
	}
	return m.proj.Rows[i].Task.ID, true
}

func (m *Model) toggleSelected() {
	id, ok := m.selectedID()
	if !ok {
		m.setInfo("No task selected")
		return
	}
	if err := m.store.Toggle(id); !m.reportStoreErr("toggle", id, err) {
		m.setInfo("Toggled")
		m.logger.Info("task toggled", "id", id)
	}
}

func (m *Model) deleteSelected() {
	id, ok := m.selectedID()
	if !ok {
		m.setInfo("No task selected")
		return
	}
	if err := m.store.Delete(id); !m.reportStoreErr("delete", id, err) {
		m.setInfo("Deleted")
		m.logger.Info("task deleted", "id", id)
	}
}

func (m *Model) startEdit() tea.Cmd {
	id, ok := m.selectedID()
	if !ok {
		m.setInfo("No task selected")
		return nil
	}
	t, err := m.store.Get(id)
	if err != nil {
		m.reportStoreErr("edit", id, err)
		return nil
	}
	m.form = form.NewEdit(t)
	m.setInfo(fmt.Sprintf("Editing task %d", id))
	return textinput.Blink
}

// submitForm applies the draft. On a ValidationError the form stays
// open with the draft intact; otherwise the draft is discarded even
// when the flush failed, because the mutation itself stands.
func (m *Model) submitForm() {
	title, description, target, err := m.form.Values()
	if err != nil {
		m.setError(err.Error())
		return
	}

	var id int
	if m.form.Mode() == form.ModeEdit {
		id = m.form.EditID()
		err = m.store.Edit(id, title, description, target)
	} else {
		id, err = m.store.Add(title, description, target)
	}

	var vErr *task.ValidationError
	if errors.As(err, &vErr) {
		m.setError(vErr.Error())
		return
	}

	m.form = nil
	if !m.reportStoreErr("save", id, err) {
		m.setInfo("Saved")
		m.logger.Info("task saved", "id", id, "title", title)
	}
}

// reportStoreErr surfaces a store error on the status line and in the
// session log. Returns false when err is nil. An IOError means the
// mutation applied but the flush failed; nothing here is fatal.
func (m *Model) reportStoreErr(op string, id int, err error) bool {
	if err == nil {
		return false
	}

	var nfErr *task.NotFoundError
	var ioErr *task.IOError
	switch {
	case errors.As(err, &nfErr):
		m.setError(fmt.Sprintf("task %d no longer exists", nfErr.ID))
		m.logger.Warn("stale task id", "op", op, "id", nfErr.ID)
	case errors.As(err, &ioErr):
		m.setError("save failed: changes are kept in memory for this session")
		m.logger.Error("flush failed", "op", op, "id", id, "err", ioErr.Err)
	default:
		m.setError(err.Error())
		m.logger.Error("operation failed", "op", op, "id", id, "err", err)
	}
	return true
}

func (m *Model) setInfo(msg string) {
	m.status = msg
	m.statusIsErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusIsErr = true
}

// reproject recomputes the frame's display order and re-clamps the
// store selection against it.
func (m *Model) reproject() {
	m.proj = view.Project(m.store.Tasks(), m.sortMode, m.now())
	m.store.ClampSelection(len(m.proj.Rows))
}

func (m *Model) View() string {
	var b strings.Builder
	m.writeProgress(&b)
	m.writeList(&b)
	if m.form != nil {
		m.writeForm(&b)
	}
	m.writeStatus(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *Model) writeProgress(b *strings.Builder) {
	b.WriteString(titleStyle.Render("rtodo") + "\n\n")

	stats := m.proj.Stats
	const width = 30
	filled := int(stats.Ratio()*width + 0.5)
	bar := barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
	fmt.Fprintf(b, "%s %d/%d tasks completed\n\n", bar, stats.Completed, stats.Total)
}

func (m *Model) writeList(b *strings.Builder) {
	fmt.Fprintf(b, "%s\n", headerStyle.Render(fmt.Sprintf(
		"%-4s %-28s %-30s %-12s %s", "", "Title", "Description", "Target", "Status")))
	b.WriteString(headerStyle.Render("sorted by "+m.sortMode.Label()) + "\n\n")

	if len(m.proj.Rows) == 0 {
		b.WriteString("No tasks yet. Press n to add one.\n\n")
		return
	}

	selected := m.store.Selection()
	for i, row := range m.proj.Rows {
		marker := "  "
		if i == selected && m.form == nil {
			marker = "> "
		}

		check := "[ ]"
		if row.Task.Completed {
			check = "[x]"
		}
		target := ""
		if row.Task.TargetDate != nil {
			target = row.Task.TargetDate.String()
		}

		line := fmt.Sprintf("%s%s %-28s %-30s %-12s %s",
			marker, check,
			truncate(row.Task.Title, 28),
			truncate(row.Task.Description, 30),
			target,
			statusWord(row.Class),
		)

		style := rowStyle(row.Class)
		if i == selected && m.form == nil {
			style = selectedStyle
		}
		b.WriteString(style.Render(line) + "\n")
	}
	b.WriteString("\n")
}

func (m *Model) writeForm(b *strings.Builder) {
	name := "Add Task"
	if m.form.Mode() == form.ModeEdit {
		name = fmt.Sprintf("Edit Task %d", m.form.EditID())
	}
	b.WriteString(titleStyle.Render(name) + "\n\n")

	for _, field := range []form.Field{form.FieldTitle, form.FieldDescription, form.FieldTargetDate} {
		label := field.Label()
		if field == m.form.Focus() {
			label = focusedLabelStyle.Render("> " + label)
		} else {
			label = "  " + label
		}
		fmt.Fprintf(b, "%s\n  %s\n", label, m.form.FieldView(field))
	}
	b.WriteString(helpStyle.Render("tab/shift+tab switch field | enter save | esc cancel") + "\n\n")
}

func (m *Model) writeStatus(b *strings.Builder) {
	if m.status == "" {
		return
	}
	style := helpStyle
	if m.statusIsErr {
		style = errorStyle
	}
	b.WriteString(style.Render(m.status) + "\n")
}

func (m *Model) writeFooter(b *strings.Builder) {
	b.WriteString(helpStyle.Render("q quit | up/down move | space toggle | n new | e edit | d delete") + "\n")
	b.WriteString(helpStyle.Render("sort: s created | t target | c completion") + "\n")
}

func rowStyle(class task.ColorClass) lipgloss.Style {
	switch class {
	case task.ClassComplete:
		return completeStyle
	case task.ClassOverdue:
		return overdueStyle
	default:
		return normalStyle
	}
}

func statusWord(class task.ColorClass) string {
	switch class {
	case task.ClassComplete:
		return "done"
	case task.ClassOverdue:
		return "overdue"
	default:
		return "open"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
