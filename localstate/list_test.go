package localstate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type row struct {
	ID   string
	Name string
}

func newList() *List[row] {
	return New(func(r row) string { return r.ID })
}

func TestApplyInOrder(t *testing.T) {
	l := newList()
	assert.True(t, l.Apply(l.Begin(), Refresh([]row{{"1", "a"}, {"2", "b"}})))
	assert.True(t, l.Apply(l.Begin(), Insert(row{"3", "c"})))
	assert.True(t, l.Apply(l.Begin(), Replace(row{"1", "A"})))
	assert.True(t, l.Apply(l.Begin(), Remove[row]("2")))

	want := []row{{"3", "c"}, {"1", "A"}}
	if diff := cmp.Diff(want, l.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, l.Dropped())
}

func TestStaleRowResponseDropped(t *testing.T) {
	l := newList()
	l.Apply(l.Begin(), Refresh([]row{{"1", "a"}}))

	slow := l.Begin()
	fast := l.Begin()
	assert.True(t, l.Apply(fast, Replace(row{"1", "new"})))
	assert.False(t, l.Apply(slow, Replace(row{"1", "old"})))

	got, ok := l.Get("1")
	assert.True(t, ok)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, 1, l.Dropped())
}

func TestStaleRefreshDropped(t *testing.T) {
	l := newList()
	refresh := l.Begin()
	insert := l.Begin()
	assert.True(t, l.Apply(insert, Insert(row{"9", "fresh"})))
	assert.False(t, l.Apply(refresh, Refresh([]row{{"1", "a"}})))

	if diff := cmp.Diff([]row{{"9", "fresh"}}, l.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestRowOpOlderThanRefreshDropped(t *testing.T) {
	l := newList()
	remove := l.Begin()
	refresh := l.Begin()
	assert.True(t, l.Apply(refresh, Refresh([]row{{"1", "a"}})))
	assert.False(t, l.Apply(remove, Remove[row]("1")))
	assert.Len(t, l.Items(), 1)
}

func TestIndependentRowsDoNotConflict(t *testing.T) {
	l := newList()
	l.Apply(l.Begin(), Refresh([]row{{"1", "a"}, {"2", "b"}}))

	first := l.Begin()
	second := l.Begin()
	assert.True(t, l.Apply(second, Replace(row{"2", "B"})))
	assert.True(t, l.Apply(first, Replace(row{"1", "A"})))

	want := []row{{"1", "A"}, {"2", "B"}}
	if diff := cmp.Diff(want, l.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertExistingIDMovesToFront(t *testing.T) {
	l := newList()
	l.Apply(l.Begin(), Refresh([]row{{"1", "a"}, {"2", "b"}}))
	l.Apply(l.Begin(), Insert(row{"2", "b2"}))

	want := []row{{"2", "b2"}, {"1", "a"}}
	if diff := cmp.Diff(want, l.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestItemsIsACopy(t *testing.T) {
	l := newList()
	l.Apply(l.Begin(), Refresh([]row{{"1", "a"}}))
	items := l.Items()
	items[0].Name = "changed"
	got, _ := l.Get("1")
	assert.Equal(t, "a", got.Name)
}
