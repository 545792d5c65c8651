package memdb_test

import (
	"bilateral/infras/memdb"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string
	Owner string
	Note  string
}

func rowKey(r row) string { return r.ID }

func ownerIndex() memdb.Index[row] {
	return memdb.Index[row]{Name: "rows_owner_unique", Value: func(r row) string { return r.Owner }}
}

func TestTable_InsertAndRead(t *testing.T) {
	db := memdb.New()
	table := memdb.Use(db, "rows", rowKey, ownerIndex())

	err := db.Update(func() error {
		require.NoError(t, table.Insert(row{ID: "b", Owner: "o1"}))
		require.NoError(t, table.Insert(row{ID: "a", Owner: "o2"}))
		require.NoError(t, table.Insert(row{ID: "c"}))
		require.NoError(t, table.Insert(row{ID: "d"}))

		return nil
	})
	require.NoError(t, err)

	_ = db.View(func() error {
		assert.Equal(t, 4, table.Len())

		got, ok := table.Get("a")
		assert.True(t, ok)
		assert.Equal(t, "o2", got.Owner)

		_, ok = table.Get("missing")
		assert.False(t, ok)

		byOwner, ok := table.Lookup("rows_owner_unique", "o1")
		assert.True(t, ok)
		assert.Equal(t, "b", byOwner.ID)

		_, ok = table.Lookup("unknown_index", "o1")
		assert.False(t, ok)

		ids := []string{}
		for _, r := range table.All() {
			ids = append(ids, r.ID)
		}

		assert.Equal(t, []string{"b", "a", "c", "d"}, ids)

		return nil
	})
}

func TestTable_InsertConstraints(t *testing.T) {
	db := memdb.New()
	table := memdb.Use(db, "rows", rowKey, ownerIndex())

	_ = db.Update(func() error {
		require.NoError(t, table.Insert(row{ID: "a", Owner: "o1"}))

		err := table.Insert(row{ID: "a", Owner: "o9"})
		assert.ErrorIs(t, err, memdb.ErrDuplicateKey)

		err = table.Insert(row{ID: "b", Owner: "o1"})
		assert.ErrorIs(t, err, memdb.ErrUniqueViolation)

		assert.Equal(t, 1, table.Len())

		return nil
	})
}

func TestTable_DeleteReleasesIndex(t *testing.T) {
	db := memdb.New()
	table := memdb.Use(db, "rows", rowKey, ownerIndex())

	_ = db.Update(func() error {
		require.NoError(t, table.Insert(row{ID: "a", Owner: "o1"}))
		require.NoError(t, table.Insert(row{ID: "b", Owner: "o2"}))
		require.NoError(t, table.Insert(row{ID: "c", Owner: "o3"}))

		removed := table.Delete(func(r row) bool { return r.Owner == "o1" || r.Owner == "o3" })
		assert.Equal(t, 2, removed)

		assert.NoError(t, table.Insert(row{ID: "d", Owner: "o1"}))

		ids := []string{}
		for _, r := range table.Find(func(row) bool { return true }) {
			ids = append(ids, r.ID)
		}

		assert.Equal(t, []string{"b", "d"}, ids)
		assert.Equal(t, 0, table.Delete(func(r row) bool { return r.ID == "zzz" }))

		return nil
	})
}

func TestUse_ReturnsSameTable(t *testing.T) {
	db := memdb.New()

	first := memdb.Use(db, "rows", rowKey)
	second := memdb.Use(db, "rows", rowKey)

	assert.Same(t, first, second)
	assert.Panics(t, func() {
		memdb.Use(db, "rows", func(s string) string { return s })
	})
}

func TestShared_IsSingleton(t *testing.T) {
	assert.Same(t, memdb.Shared(), memdb.Shared())
}

func TestUpdate_PropagatesError(t *testing.T) {
	db := memdb.New()
	boom := errors.New("boom")

	err := db.Update(func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestUpdate_CheckThenInsertIsAtomic(t *testing.T) {
	db := memdb.New()
	table := memdb.Use(db, "rows", rowKey, ownerIndex())

	const workers = 50

	var (
		wg      sync.WaitGroup
		success atomic.Int32
	)

	for i := range workers {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			err := db.Update(func() error {
				if len(table.Find(func(r row) bool { return r.Owner == "shared" })) > 0 {
					return memdb.ErrUniqueViolation
				}

				return table.Insert(row{ID: fmt.Sprintf("r-%d", i), Owner: "shared"})
			})
			if err == nil {
				success.Add(1)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(1), success.Load())

	_ = db.View(func() error {
		assert.Equal(t, 1, table.Len())

		return nil
	})
}
