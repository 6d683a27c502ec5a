package cache

import (
	"sync"

	"rent-server/entities"
)

// Row constrains T to entities whose pointer carries the owner-scoping
// accessors.
type Row[T any] interface {
	*T
	entities.Scoped
}

// Table is an owner-scoped, in-memory list of rows, newest first. A user
// seen for the first time starts with a private copy of the seed rows.
type Table[T any, P Row[T]] struct {
	mu    sync.RWMutex
	rows  map[string][]T // map[userID][]rows
	seed  []T
	stats tableStats
}

type tableStats struct {
	inserts, updates, deletes int
}

// cloner is implemented by rows holding slices, so copies never share a
// backing array.
type cloner[T any] interface {
	Clone() T
}

func clone[T any, P Row[T]](row T) T {
	if c, ok := any(P(&row)).(cloner[T]); ok {
		return c.Clone()
	}
	return row
}

func NewTable[T any, P Row[T]](seed ...T) *Table[T, P] {
	return &Table[T, P]{
		rows: make(map[string][]T),
		seed: seed,
	}
}

// scope returns the caller's rows, copying the seed in on first use.
// Callers must hold the write lock.
func (t *Table[T, P]) scope(userID string) []T {
	rows, ok := t.rows[userID]
	if ok {
		return rows
	}
	rows = make([]T, len(t.seed))
	for i := range t.seed {
		rows[i] = clone[T, P](t.seed[i])
		P(&rows[i]).SetUserID(userID)
	}
	t.rows[userID] = rows
	return rows
}

// List returns a copy of the user's rows.
func (t *Table[T, P]) List(userID string) []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := t.scope(userID)
	out := make([]T, len(rows))
	for i := range rows {
		out[i] = clone[T, P](rows[i])
	}
	return out
}

// Get returns a copy of the row with the given id.
func (t *Table[T, P]) Get(userID, id string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, row := range t.scope(userID) {
		if P(&row).GetID() == id {
			return clone[T, P](row), true
		}
	}
	var zero T
	return zero, false
}

// Insert stamps the row with an id, timestamps and owner, and puts it first.
func (t *Table[T, P]) Insert(userID string, row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := P(row)
	p.SetUserID(userID)
	p.Touch()
	rows := t.scope(userID)
	t.rows[userID] = append([]T{clone[T, P](*row)}, rows...)
	t.stats.inserts++
}

// Replace swaps the stored row sharing row's id. It reports false when the
// user has no such row.
func (t *Table[T, P]) Replace(userID string, row *T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := P(row)
	rows := t.scope(userID)
	for i := range rows {
		if P(&rows[i]).GetID() != p.GetID() {
			continue
		}
		p.SetUserID(userID)
		p.Touch()
		rows[i] = clone[T, P](*row)
		t.stats.updates++
		return true
	}
	return false
}

// Delete removes the row with the given id.
func (t *Table[T, P]) Delete(userID, id string) bool {
	return t.DeleteWhere(userID, func(row *T) bool { return P(row).GetID() == id }) > 0
}

// DeleteWhere removes every row of the user matching fn and returns how
// many were removed.
func (t *Table[T, P]) DeleteWhere(userID string, fn func(row *T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := t.scope(userID)
	kept := rows[:0:0]
	for i := range rows {
		if fn(&rows[i]) {
			continue
		}
		kept = append(kept, rows[i])
	}
	removed := len(rows) - len(kept)
	t.rows[userID] = kept
	t.stats.deletes += removed
	return removed
}

// Stats returns counters about the table's contents.
func (t *Table[T, P]) Stats() map[string]interface{} {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := 0
	for _, rows := range t.rows {
		total += len(rows)
	}
	return map[string]interface{}{
		"users":   len(t.rows),
		"rows":    total,
		"inserts": t.stats.inserts,
		"updates": t.stats.updates,
		"deletes": t.stats.deletes,
	}
}
