// Package store owns the in-memory task collection during a session.
//
// Every mutation flushes the full collection through a Saver. A flush
// failure is reported to the caller as an IOError but the mutation
// stands: for the running session, memory is the source of truth.
package store

import (
	"errors"
	"strings"
	"time"

	"github.com/Bearcry55/rtodo/internal/task"
)

// Saver persists a snapshot of the collection. *storage.Store
// satisfies it.
type Saver interface {
	Save(tasks []task.Task) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is the single source of truth for the task collection. The
// slice order is the canonical persisted order; display ordering is
// derived elsewhere and never written back.
type Store struct {
	tasks     []task.Task
	nextID    int
	selection int
	saver     Saver
	now       func() time.Time
}

// New builds a store over a loaded collection. The next id is one past
// the highest id seen, so deleted ids are never reused.
func New(tasks []task.Task, saver Saver, opts ...Option) *Store {
	s := &Store{
		tasks:     tasks,
		nextID:    1,
		selection: -1,
		saver:     saver,
		now:       time.Now,
	}
	for _, t := range tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	if len(tasks) > 0 {
		s.selection = 0
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns a snapshot of the collection in canonical order.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (task.Task, error) {
	i := s.find(id)
	if i < 0 {
		return task.Task{}, &task.NotFoundError{ID: id}
	}
	return s.tasks[i], nil
}

// Add appends a new open task and flushes. An empty or blank title is
// a ValidationError. When the returned error is an IOError the task
// was still added; only the flush failed.
func (s *Store) Add(title, description string, target *task.Date) (int, error) {
	if err := validateTitle(title); err != nil {
		return 0, err
	}

	t := task.Task{
		ID:          s.nextID,
		Title:       strings.TrimSpace(title),
		Description: description,
		TargetDate:  cloneDate(target),
		CreatedAt:   s.now(),
		Completed:   false,
	}
	s.tasks = append(s.tasks, t)
	s.nextID++
	if s.selection < 0 {
		s.selection = 0
	}
	return t.ID, s.flush()
}

// Edit replaces the mutable fields of an existing task and flushes.
// ID, CreatedAt, and Completed are never touched.
func (s *Store) Edit(id int, title, description string, target *task.Date) error {
	i := s.find(id)
	if i < 0 {
		return &task.NotFoundError{ID: id}
	}
	if err := validateTitle(title); err != nil {
		return err
	}

	s.tasks[i].Title = strings.TrimSpace(title)
	s.tasks[i].Description = description
	s.tasks[i].TargetDate = cloneDate(target)
	return s.flush()
}

// Toggle flips a task's completed flag and flushes.
func (s *Store) Toggle(id int) error {
	i := s.find(id)
	if i < 0 {
		return &task.NotFoundError{ID: id}
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.flush()
}

// Delete removes a task, compacts the collection, and flushes. The
// selection is pulled back so it never points past the new end.
func (s *Store) Delete(id int) error {
	i := s.find(id)
	if i < 0 {
		return &task.NotFoundError{ID: id}
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if len(s.tasks) == 0 {
		s.selection = -1
	} else if s.selection >= len(s.tasks) {
		s.selection = len(s.tasks) - 1
	}
	return s.flush()
}

// Selection returns the highlighted index into the displayed sequence,
// or -1 when the collection is empty.
func (s *Store) Selection() int {
	return s.selection
}

// MoveSelection moves the highlight by delta rows, wrapping at both
// ends the way the list view navigates.
func (s *Store) MoveSelection(delta int) {
	n := len(s.tasks)
	if n == 0 {
		s.selection = -1
		return
	}
	if s.selection < 0 {
		s.selection = 0
		return
	}
	s.selection = ((s.selection+delta)%n + n) % n
}

// ClampSelection bounds the highlight against the current displayed
// length. Called once per frame after the projection is rebuilt.
func (s *Store) ClampSelection(displayed int) {
	if displayed <= 0 {
		s.selection = -1
		return
	}
	if s.selection < 0 {
		s.selection = 0
	}
	if s.selection >= displayed {
		s.selection = displayed - 1
	}
}

func (s *Store) find(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// flush persists a snapshot. Any saver failure surfaces as an IOError
// without rolling back the in-memory mutation.
func (s *Store) flush() error {
	if s.saver == nil {
		return nil
	}
	err := s.saver.Save(s.Tasks())
	if err == nil {
		return nil
	}
	var ioErr *task.IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &task.IOError{Err: err}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &task.ValidationError{Field: "title", Err: errors.New("must not be empty")}
	}
	return nil
}

func cloneDate(d *task.Date) *task.Date {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}
