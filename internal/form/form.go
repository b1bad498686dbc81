// Package form holds the transient draft state for adding or editing
// a task. A form never touches the store: the UI applies its values on
// submit and discards it, or discards it outright on cancel.
package form

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bearcry55/rtodo/internal/task"
)

// Field identifies one of the three draft inputs.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldTargetDate
	fieldCount
)

// Label returns the field's display name.
func (f Field) Label() string {
	switch f {
	case FieldDescription:
		return "Description"
	case FieldTargetDate:
		return "Target date (YYYY-MM-DD)"
	default:
		return "Title"
	}
}

// Mode says whether submitting applies an add or an edit.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

// Form is a draft for one task plus a focus cursor that cycles over
// the fields, wrapping at both ends.
type Form struct {
	mode   Mode
	editID int
	focus  Field
	inputs [fieldCount]textinput.Model
}

func newForm() *Form {
	f := &Form{}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = Field(i).Label()
		in.CharLimit = 256
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[FieldTitle].Focus()
	return f
}

// NewAdd returns an empty draft for a new task.
func NewAdd() *Form {
	return newForm()
}

// NewEdit returns a draft seeded from an existing task.
func NewEdit(t task.Task) *Form {
	f := newForm()
	f.mode = ModeEdit
	f.editID = t.ID
	f.inputs[FieldTitle].SetValue(t.Title)
	f.inputs[FieldDescription].SetValue(t.Description)
	if t.TargetDate != nil {
		f.inputs[FieldTargetDate].SetValue(t.TargetDate.String())
	}
	return f
}

// Mode reports whether the form is an add or an edit draft.
func (f *Form) Mode() Mode {
	return f.mode
}

// EditID returns the id being edited. Meaningful only in ModeEdit.
func (f *Form) EditID() int {
	return f.editID
}

// Focus returns the currently focused field.
func (f *Form) Focus() Field {
	return f.focus
}

// NextField moves focus forward, wrapping to the title after the
// target date.
func (f *Form) NextField() {
	f.setFocus(Field((int(f.focus) + 1) % int(fieldCount)))
}

// PrevField moves focus backward, wrapping to the target date before
// the title.
func (f *Form) PrevField() {
	f.setFocus(Field((int(f.focus) + int(fieldCount) - 1) % int(fieldCount)))
}

func (f *Form) setFocus(field Field) {
	f.inputs[f.focus].Blur()
	f.focus = field
	f.inputs[f.focus].Focus()
}

// Update routes a message to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// FieldView renders one input for the form view.
func (f *Form) FieldView(field Field) string {
	return f.inputs[field].View()
}

// Values returns the trimmed drafts and the parsed optional target
// date. A non-empty but unparseable date is a ValidationError; the
// caller keeps the form open so the user can fix it.
func (f *Form) Values() (title, description string, target *task.Date, err error) {
	title = strings.TrimSpace(f.inputs[FieldTitle].Value())
	description = strings.TrimSpace(f.inputs[FieldDescription].Value())

	raw := strings.TrimSpace(f.inputs[FieldTargetDate].Value())
	if raw == "" {
		return title, description, nil, nil
	}
	d, perr := task.ParseDate(raw)
	if perr != nil {
		return title, description, nil, &task.ValidationError{
			Field: "target_date",
			Err:   errors.New("expected YYYY-MM-DD"),
		}
	}
	return title, description, &d, nil
}
