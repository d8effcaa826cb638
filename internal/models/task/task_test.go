package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("done").Valid())
}

func TestNew_SkipsEmptyOptions(t *testing.T) {
	deadline := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)

	got := New(
		WithTodo("write report"),
		WithDescription(""),
		WithOwner("u1"),
		WithStatus(""),
		WithDeadline(&deadline),
	)

	assert.Equal(t, "write report", got.Todo)
	assert.Empty(t, got.Description)
	assert.Equal(t, "u1", got.Owner)
	assert.Empty(t, got.Status)
	if assert.NotNil(t, got.Deadline) {
		assert.True(t, got.Deadline.Equal(deadline))
		assert.NotSame(t, &deadline, got.Deadline)
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2030, 1, 2, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Task{Status: StatusDoing, Deadline: &past}).Overdue(now))
	assert.False(t, (&Task{Status: StatusComplete, Deadline: &past}).Overdue(now))
	assert.False(t, (&Task{Status: StatusTodo, Deadline: &future}).Overdue(now))
	assert.False(t, (&Task{Status: StatusTodo}).Overdue(now))
}

func TestClone_CopiesDeadline(t *testing.T) {
	d := time.Now()
	orig := &Task{ID: "1", Deadline: &d}

	c := orig.Clone()
	*c.Deadline = d.Add(time.Hour)

	assert.True(t, orig.Deadline.Equal(d))
}

func TestParseDeadline(t *testing.T) {
	got, err := ParseDeadline("2030-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), *got)

	got, err = ParseDeadline("2030-05-01T10:00:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Hour())

	got, err = ParseDeadline("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDeadline("01.05.2030")
	assert.Error(t, err)
}
