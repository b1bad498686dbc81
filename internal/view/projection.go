// Package view derives the displayed ordering and summary statistics
// from a task snapshot. It never mutates the store's collection: the
// projection is a permutation computed over a copy, once per frame.
package view

import (
	"sort"
	"time"

	"github.com/Bearcry55/rtodo/internal/task"
)

// SortMode selects the display ordering. It is session state only and
// is never persisted.
type SortMode string

const (
	SortCreatedDate SortMode = "created"
	SortTargetDate  SortMode = "target"
	SortCompletion  SortMode = "completion"
)

// Label returns the human-readable name shown in the list header.
func (m SortMode) Label() string {
	switch m {
	case SortTargetDate:
		return "target date"
	case SortCompletion:
		return "completion"
	default:
		return "created date"
	}
}

// Row is one displayed task with its derived color class.
type Row struct {
	Task  task.Task
	Class task.ColorClass
}

// Stats summarizes completion across the whole collection.
type Stats struct {
	Completed int
	Total     int
}

// Ratio returns completed/total, and 0 for an empty collection.
func (s Stats) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// Projection is what the renderer consumes for one frame.
type Projection struct {
	Mode  SortMode
	Rows  []Row
	Stats Stats
}

// Project computes the display-ordered rows and stats for one frame.
// Sorting is stable: equal keys keep their canonical relative order.
func Project(tasks []task.Task, mode SortMode, now time.Time) Projection {
	sorted := make([]task.Task, len(tasks))
	copy(sorted, tasks)

	less := lessFunc(mode)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j])
	})

	p := Projection{
		Mode: mode,
		Rows: make([]Row, len(sorted)),
	}
	for i := range sorted {
		p.Rows[i] = Row{Task: sorted[i], Class: sorted[i].Class(now)}
		p.Stats.Total++
		if sorted[i].Completed {
			p.Stats.Completed++
		}
	}
	return p
}

func lessFunc(mode SortMode) func(a, b *task.Task) bool {
	switch mode {
	case SortTargetDate:
		return lessByTargetDate
	case SortCompletion:
		return lessByCompletion
	default:
		return lessByCreated
	}
}

func lessByCreated(a, b *task.Task) bool {
	return a.CreatedAt.Before(b.CreatedAt)
}

// lessByTargetDate orders dated tasks ascending and places undated
// tasks after every dated one, ties broken by creation time.
func lessByTargetDate(a, b *task.Task) bool {
	switch {
	case a.TargetDate == nil && b.TargetDate == nil:
		return lessByCreated(a, b)
	case a.TargetDate == nil:
		return false
	case b.TargetDate == nil:
		return true
	case a.TargetDate.Time.Equal(b.TargetDate.Time):
		return lessByCreated(a, b)
	default:
		return a.TargetDate.Time.Before(b.TargetDate.Time)
	}
}

// lessByCompletion orders open tasks before completed ones, ties
// broken by creation time.
func lessByCompletion(a, b *task.Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	return lessByCreated(a, b)
}
