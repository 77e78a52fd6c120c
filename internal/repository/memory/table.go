package memory

import (
	"sort"
	"sync"
	"time"
)

type row[T any] struct {
	seq uint64
	val T
}

// table is a mutex-guarded collection keyed by id. Values are copied on
// the way in and out so callers never share state with the table.
type table[T any] struct {
	mu      sync.RWMutex
	rows    map[string]*row[T]
	seq     uint64
	id      func(*T) string
	created func(*T) time.Time
	clone   func(T) T
}

func newTable[T any](id func(*T) string, created func(*T) time.Time, clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{
		rows:    make(map[string]*row[T]),
		id:      id,
		created: created,
		clone:   clone,
	}
}

func (t *table[T]) insert(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.rows[t.id(&v)] = &row[T]{seq: t.seq, val: t.clone(v)}
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(r.val), true
}

func (t *table[T]) find(match func(*T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.sorted() {
		if match(&r.val) {
			return t.clone(r.val), true
		}
	}
	var zero T
	return zero, false
}

// list returns matching rows newest first. limit <= 0 means no limit.
func (t *table[T]) list(match func(*T) bool, limit int) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0)
	for _, r := range t.sorted() {
		if limit > 0 && len(out) >= limit {
			break
		}
		if match == nil || match(&r.val) {
			out = append(out, t.clone(r.val))
		}
	}
	return out
}

func (t *table[T]) count(match func(*T) bool) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var n int64
	for _, r := range t.rows {
		if match == nil || match(&r.val) {
			n++
		}
	}
	return n
}

func (t *table[T]) update(id string, fn func(T) T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	r.val = t.clone(fn(r.val))
	return t.clone(r.val), true
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// sorted must be called with the lock held.
func (t *table[T]) sorted() []*row[T] {
	rows := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		ci, cj := t.created(&rows[i].val), t.created(&rows[j].val)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return rows[i].seq > rows[j].seq
	})
	return rows
}
