// Package memdb is a process-local table store used when no database is configured.
//
// Every table of a DB shares one RWMutex. Reads run inside View, writes inside Update,
// so a multi-step check-then-insert inside a single Update is atomic with respect to all
// other readers and writers. Table methods must only be called from within those callbacks.
package memdb

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrDuplicateKey    = errors.New("duplicate primary key")
	ErrUniqueViolation = errors.New("unique constraint violation")
)

type DB struct {
	mu       sync.RWMutex
	registry sync.Mutex
	tables   map[string]any
}

var (
	shared     *DB
	sharedOnce sync.Once
)

func New() *DB {
	return &DB{tables: map[string]any{}}
}

// Shared returns the process-wide store so every repository sees the same tables.
func Shared() *DB {
	sharedOnce.Do(func() {
		shared = New()
	})

	return shared
}

// View runs fn under the read lock.
func (db *DB) View(fn func() error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return fn()
}

// Update runs fn under the write lock.
func (db *DB) Update(fn func() error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return fn()
}

type uniqueIndex[T any] struct {
	value func(T) string
	keys  map[string]string
}

type Table[T any] struct {
	name    string
	primary func(T) string
	rows    map[string]T
	order   []string
	indexes map[string]*uniqueIndex[T]
}

// Index declares a unique index. Rows with an empty index value are not indexed.
type Index[T any] struct {
	Name  string
	Value func(T) string
}

// Use returns the table registered under name, creating it with the given unique indexes on
// first use. Registering the same name with another row type panics.
func Use[T any](db *DB, name string, primary func(T) string, uniques ...Index[T]) *Table[T] {
	db.registry.Lock()
	defer db.registry.Unlock()

	if existing, ok := db.tables[name]; ok {
		table, ok := existing.(*Table[T])
		if !ok {
			panic(fmt.Sprintf("memdb: table %q registered with a different row type", name))
		}

		return table
	}

	table := &Table[T]{
		name:    name,
		primary: primary,
		rows:    map[string]T{},
		indexes: map[string]*uniqueIndex[T]{},
	}

	for _, unique := range uniques {
		table.indexes[unique.Name] = &uniqueIndex[T]{value: unique.Value, keys: map[string]string{}}
	}

	db.tables[name] = table

	return table
}

func (t *Table[T]) Insert(row T) error {
	key := t.primary(row)
	if _, ok := t.rows[key]; ok {
		return fmt.Errorf("%w: %s(%s)", ErrDuplicateKey, t.name, key)
	}

	for name, index := range t.indexes {
		indexed := index.value(row)
		if indexed == "" {
			continue
		}

		if _, ok := index.keys[indexed]; ok {
			return fmt.Errorf("%w: %s", ErrUniqueViolation, name)
		}
	}

	for _, index := range t.indexes {
		if indexed := index.value(row); indexed != "" {
			index.keys[indexed] = key
		}
	}

	t.rows[key] = row
	t.order = append(t.order, key)

	return nil
}

func (t *Table[T]) Get(key string) (T, bool) {
	row, ok := t.rows[key]

	return row, ok
}

// Lookup finds a row through a unique index.
func (t *Table[T]) Lookup(index, value string) (T, bool) {
	var zero T

	idx, ok := t.indexes[index]
	if !ok {
		return zero, false
	}

	key, ok := idx.keys[value]
	if !ok {
		return zero, false
	}

	return t.Get(key)
}

// All returns rows in insertion order.
func (t *Table[T]) All() []T {
	rows := make([]T, 0, len(t.order))

	for _, key := range t.order {
		rows = append(rows, t.rows[key])
	}

	return rows
}

// Find returns matching rows in insertion order.
func (t *Table[T]) Find(match func(T) bool) []T {
	rows := []T{}

	for _, key := range t.order {
		if row := t.rows[key]; match(row) {
			rows = append(rows, row)
		}
	}

	return rows
}

// Delete removes matching rows and returns how many were removed.
func (t *Table[T]) Delete(match func(T) bool) int {
	kept := t.order[:0]
	removed := 0

	for _, key := range t.order {
		row := t.rows[key]
		if !match(row) {
			kept = append(kept, key)

			continue
		}

		for _, index := range t.indexes {
			if indexed := index.value(row); indexed != "" && index.keys[indexed] == key {
				delete(index.keys, indexed)
			}
		}

		delete(t.rows, key)

		removed++
	}

	clear(t.order[len(kept):])
	t.order = kept

	return removed
}

func (t *Table[T]) Len() int {
	return len(t.rows)
}
