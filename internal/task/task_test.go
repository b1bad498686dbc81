package task

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 14)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2026-03-14"` {
		t.Errorf("encoding: got %s, want %q", data, "2026-03-14")
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Time.Equal(d.Time) {
		t.Errorf("round trip: got %v, want %v", back, d)
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	tests := []string{`"14-03-2026"`, `"yesterday"`, `42`, `""`}
	for _, raw := range tests {
		var d Date
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			t.Errorf("Unmarshal(%s): expected error", raw)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-29")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2026-08-29" {
		t.Errorf("String: got %s", d.String())
	}

	if _, err := ParseDate("not a date"); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestOverdueAndClass(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 30, 0, 0, time.UTC)
	yesterday := NewDate(2026, time.June, 14)
	today := NewDate(2026, time.June, 15)
	tomorrow := NewDate(2026, time.June, 16)

	tests := []struct {
		name    string
		task    Task
		overdue bool
		class   ColorClass
	}{
		{"no target date", Task{Title: "a"}, false, ClassNormal},
		{"target yesterday, open", Task{Title: "a", TargetDate: &yesterday}, true, ClassOverdue},
		{"target today, open", Task{Title: "a", TargetDate: &today}, false, ClassNormal},
		{"target tomorrow, open", Task{Title: "a", TargetDate: &tomorrow}, false, ClassNormal},
		{"target yesterday, completed", Task{Title: "a", TargetDate: &yesterday, Completed: true}, false, ClassComplete},
		{"completed, no target", Task{Title: "a", Completed: true}, false, ClassComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.overdue {
				t.Errorf("Overdue: got %v, want %v", got, tt.overdue)
			}
			if got := tt.task.Class(now); got != tt.class {
				t.Errorf("Class: got %v, want %v", got, tt.class)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	nf := &NotFoundError{ID: 7}
	if nf.Error() != "task 7 not found" {
		t.Errorf("NotFoundError message: got %q", nf.Error())
	}

	ve := &ValidationError{Field: "title", Err: errFixture("must not be empty")}
	if ve.Error() != "title: must not be empty" {
		t.Errorf("ValidationError message: got %q", ve.Error())
	}
	if ve.Unwrap() == nil {
		t.Error("ValidationError should unwrap")
	}
}

type errFixture string

func (e errFixture) Error() string { return string(e) }
