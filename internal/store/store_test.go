package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bearcry55/rtodo/internal/task"
)

// recordingSaver captures every flushed snapshot.
type recordingSaver struct {
	saves [][]task.Task
	fail  error
}

func (r *recordingSaver) Save(tasks []task.Task) error {
	r.saves = append(r.saves, tasks)
	return r.fail
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	saver := &recordingSaver{}
	s := New(nil, saver)

	id1, err := s.Add("first", "", nil)
	require.NoError(t, err)
	id2, err := s.Add("second", "", nil)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, s.Len())
	assert.Len(t, saver.saves, 2, "every mutation flushes")
}

func TestAddValidatesTitle(t *testing.T) {
	s := New(nil, &recordingSaver{})

	for _, title := range []string{"", "   ", "\t"} {
		_, err := s.Add(title, "whatever", nil)
		var vErr *task.ValidationError
		require.ErrorAs(t, err, &vErr, "title %q", title)
		assert.Equal(t, "title", vErr.Field)
	}
	assert.Equal(t, 0, s.Len())
}

func TestAddSetsCreationState(t *testing.T) {
	now := time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)
	s := New(nil, &recordingSaver{}, WithClock(fixedClock(now)))

	due := task.NewDate(2026, time.May, 10)
	id, err := s.Add("  Buy milk  ", "2 liters", &due)
	require.NoError(t, err)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2 liters", got.Description)
	assert.False(t, got.Completed)
	assert.True(t, got.CreatedAt.Equal(now))
	require.NotNil(t, got.TargetDate)
	assert.True(t, got.TargetDate.Time.Equal(due.Time))
}

func TestEditKeepsImmutableFields(t *testing.T) {
	now := time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)
	s := New(nil, &recordingSaver{}, WithClock(fixedClock(now)))

	id, err := s.Add("before", "old", nil)
	require.NoError(t, err)
	require.NoError(t, s.Toggle(id))

	due := task.NewDate(2026, time.June, 1)
	require.NoError(t, s.Edit(id, "after", "new", &due))

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "new", got.Description)
	assert.True(t, got.CreatedAt.Equal(now), "created_at never changes")
	assert.True(t, got.Completed, "edit never touches completed")
}

func TestEditValidation(t *testing.T) {
	s := New(nil, &recordingSaver{})
	id, err := s.Add("keep me", "", nil)
	require.NoError(t, err)

	var vErr *task.ValidationError
	require.ErrorAs(t, s.Edit(id, "  ", "", nil), &vErr)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Title, "rejected edit must not apply")
}

func TestOperationsOnMissingID(t *testing.T) {
	s := New(nil, &recordingSaver{})
	id, err := s.Add("short-lived", "", nil)
	require.NoError(t, err)
	require.NoError(t, s.Delete(id))

	var nfErr *task.NotFoundError
	assert.ErrorAs(t, s.Toggle(id), &nfErr)
	assert.ErrorAs(t, s.Edit(id, "x", "", nil), &nfErr)
	assert.ErrorAs(t, s.Delete(id), &nfErr)
	_, err = s.Get(id)
	assert.ErrorAs(t, err, &nfErr)
}

func TestDeletedIDsAreNeverReused(t *testing.T) {
	s := New(nil, &recordingSaver{})

	id1, err := s.Add("a", "", nil)
	require.NoError(t, err)
	id2, err := s.Add("b", "", nil)
	require.NoError(t, err)
	require.NoError(t, s.Delete(id2))

	id3, err := s.Add("c", "", nil)
	require.NoError(t, err)
	assert.Greater(t, id3, id2)
	assert.NotEqual(t, id1, id3)
}

func TestNextIDFromLoadedCollection(t *testing.T) {
	loaded := []task.Task{
		{ID: 2, Title: "two", CreatedAt: time.Now()},
		{ID: 9, Title: "nine", CreatedAt: time.Now()},
	}
	s := New(loaded, &recordingSaver{})

	id, err := s.Add("next", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 10, id)
}

func TestToggle(t *testing.T) {
	s := New(nil, &recordingSaver{})
	id, err := s.Add("flip me", "", nil)
	require.NoError(t, err)

	require.NoError(t, s.Toggle(id))
	got, _ := s.Get(id)
	assert.True(t, got.Completed)

	require.NoError(t, s.Toggle(id))
	got, _ = s.Get(id)
	assert.False(t, got.Completed)
}

func TestFlushFailureKeepsMutation(t *testing.T) {
	saver := &recordingSaver{fail: errors.New("disk full")}
	s := New(nil, saver)

	id, err := s.Add("kept in memory", "", nil)
	var ioErr *task.IOError
	require.ErrorAs(t, err, &ioErr)

	// Memory remains authoritative for the session.
	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "kept in memory", got.Title)

	require.ErrorAs(t, s.Toggle(id), &ioErr)
	got, _ = s.Get(id)
	assert.True(t, got.Completed)
}

func TestFlushReceivesSnapshot(t *testing.T) {
	saver := &recordingSaver{}
	s := New(nil, saver)

	_, err := s.Add("a", "", nil)
	require.NoError(t, err)
	require.Len(t, saver.saves, 1)

	// Mutating the flushed slice must not reach the store.
	saver.saves[0][0].Title = "tampered"
	got, _ := s.Get(saver.saves[0][0].ID)
	assert.Equal(t, "a", got.Title)
}

func TestSelectionBookkeeping(t *testing.T) {
	s := New(nil, &recordingSaver{})
	assert.Equal(t, -1, s.Selection(), "empty store has no selection")

	s.MoveSelection(1)
	assert.Equal(t, -1, s.Selection())

	var ids []int
	for _, title := range []string{"a", "b", "c"} {
		id, err := s.Add(title, "", nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, 0, s.Selection(), "first add selects the first row")

	s.MoveSelection(1)
	s.MoveSelection(1)
	assert.Equal(t, 2, s.Selection())
	s.MoveSelection(1)
	assert.Equal(t, 0, s.Selection(), "wraps past the end")
	s.MoveSelection(-1)
	assert.Equal(t, 2, s.Selection(), "wraps past the start")

	// Deleting the last task pulls the selection back.
	require.NoError(t, s.Delete(ids[2]))
	assert.Equal(t, 1, s.Selection())

	s.ClampSelection(1)
	assert.Equal(t, 0, s.Selection())

	require.NoError(t, s.Delete(ids[0]))
	require.NoError(t, s.Delete(ids[1]))
	assert.Equal(t, -1, s.Selection(), "selection undefined once empty")
}

func TestTasksReturnsCopy(t *testing.T) {
	s := New(nil, &recordingSaver{})
	id, err := s.Add("original", "", nil)
	require.NoError(t, err)

	snapshot := s.Tasks()
	snapshot[0].Title = "tampered"

	got, _ := s.Get(id)
	assert.Equal(t, "original", got.Title)
}
