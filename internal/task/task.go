// Package task defines the task record shared by the store, the
// persistence layer, and the view projection.
package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire encoding for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component. It marshals to and
// from the fixed "2006-01-02" encoding so persisted files stay stable
// across versions.
type Date struct {
	time.Time
}

// NewDate builds a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON decodes a "2006-01-02" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task represents a single to-do item. ID and CreatedAt are set once
// at creation and never change; Completed flips only via the store's
// toggle operation.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TargetDate  *Date     `json:"target_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Completed   bool      `json:"completed"`
}

// Overdue reports whether the task's target date is strictly before
// now's calendar day while the task is still open. Tasks without a
// target date are never overdue.
func (t *Task) Overdue(now time.Time) bool {
	if t.Completed || t.TargetDate == nil {
		return false
	}
	return t.TargetDate.Time.Before(DateOf(now).Time)
}

// ColorClass is the display classification derived per task.
type ColorClass string

const (
	ClassNormal   ColorClass = "normal"
	ClassOverdue  ColorClass = "overdue"
	ClassComplete ColorClass = "complete"
)

// Class returns the display classification for the task at the given
// instant: complete wins over overdue, everything else is normal.
func (t *Task) Class(now time.Time) ColorClass {
	switch {
	case t.Completed:
		return ClassComplete
	case t.Overdue(now):
		return ClassOverdue
	default:
		return ClassNormal
	}
}
