// Package localstate holds client-side copies of server lists and applies
// the results of concurrent requests in order, dropping responses that
// arrive after a newer one already changed the same row or list.
package localstate

import "sync"

type opKind int

const (
	opInsert opKind = iota
	opReplace
	opRemove
	opRefresh
)

// Op is one change to a List, built with Insert, Replace, Remove or Refresh.
type Op[T any] struct {
	kind  opKind
	id    string
	item  T
	items []T
}

func Insert[T any](item T) Op[T] {
	return Op[T]{kind: opInsert, item: item}
}

func Replace[T any](item T) Op[T] {
	return Op[T]{kind: opReplace, item: item}
}

func Remove[T any](id string) Op[T] {
	return Op[T]{kind: opRemove, id: id}
}

// Refresh replaces the whole list with a fresh server snapshot.
func Refresh[T any](items []T) Op[T] {
	return Op[T]{kind: opRefresh, items: items}
}

// List is a sequenced list of rows keyed by id, newest first.
type List[T any] struct {
	key func(T) string

	mu          sync.Mutex
	items       []T
	next        uint64
	lastRefresh uint64
	maxApplied  uint64
	byID        map[string]uint64 // id -> seq of the last op applied to it
	dropped     int
}

func New[T any](key func(T) string) *List[T] {
	return &List[T]{key: key, byID: make(map[string]uint64)}
}

// Begin issues the sequence number for a request about to be sent.
func (l *List[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	return l.next
}

// Apply applies op issued under seq and reports whether it was applied.
// A row op is stale when the row or the whole list was changed by a newer
// request; a refresh is stale when any newer op was applied.
func (l *List[T]) Apply(seq uint64, op Op[T]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if op.kind == opRefresh {
		if seq <= l.maxApplied {
			l.dropped++
			return false
		}
		l.items = append([]T(nil), op.items...)
		l.lastRefresh = seq
		l.maxApplied = seq
		l.byID = make(map[string]uint64)
		return true
	}

	id := op.id
	if op.kind != opRemove {
		id = l.key(op.item)
	}
	if seq <= l.lastRefresh || seq <= l.byID[id] {
		l.dropped++
		return false
	}

	switch op.kind {
	case opInsert:
		l.items = append([]T{op.item}, l.without(id)...)
	case opReplace:
		if i := l.index(id); i >= 0 {
			l.items[i] = op.item
		} else {
			l.items = append([]T{op.item}, l.items...)
		}
	case opRemove:
		l.items = l.without(id)
	}
	l.byID[id] = seq
	if seq > l.maxApplied {
		l.maxApplied = seq
	}
	return true
}

func (l *List[T]) index(id string) int {
	for i := range l.items {
		if l.key(l.items[i]) == id {
			return i
		}
	}
	return -1
}

func (l *List[T]) without(id string) []T {
	out := make([]T, 0, len(l.items))
	for _, item := range l.items {
		if l.key(item) != id {
			out = append(out, item)
		}
	}
	return out
}

// Items returns a copy of the current rows.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

func (l *List[T]) Get(id string) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

// Dropped counts stale responses Apply refused.
func (l *List[T]) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}
