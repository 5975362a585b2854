// Adapted for feeledger
// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package backend

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guildxyz/feeledger/store"
	"github.com/guildxyz/feeledger/store/database"
)

var testValues = []string{"a", "1251", "\x00123\x00"}

func newTestLDB(t *testing.T) database.Database {
	dir, err := os.MkdirTemp("", "feeledger_ldb_")
	require.Nil(t, err)
	db, err := NewLDBDatabase(filepath.Join(dir, "main"), 0, 0)
	require.Nil(t, err)
	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(dir)
	})
	return db
}

func newTestBDB(t *testing.T) database.Database {
	dir, err := os.MkdirTemp("", "feeledger_bdb_")
	require.Nil(t, err)
	db, err := NewBadgerDatabase(dir)
	require.Nil(t, err)
	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(dir)
	})
	return db
}

func forEachBackend(t *testing.T, fn func(t *testing.T, db database.Database)) {
	t.Run("memdb", func(t *testing.T) { fn(t, NewMemDatabase()) })
	t.Run("leveldb", func(t *testing.T) { fn(t, newTestLDB(t)) })
	t.Run("badgerdb", func(t *testing.T) { fn(t, newTestBDB(t)) })
}

func TestDatabasePutGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db database.Database) {
		assert := assert.New(t)

		for _, v := range testValues {
			assert.Nil(db.Put([]byte(v), []byte(v)))
		}

		for _, v := range testValues {
			data, err := db.Get([]byte(v))
			assert.Nil(err)
			assert.True(bytes.Equal(data, []byte(v)), "got %x want %x", data, v)

			has, err := db.Has([]byte(v))
			assert.Nil(err)
			assert.True(has)
		}

		assert.Nil(db.Put([]byte(testValues[0]), []byte("?")))
		data, err := db.Get([]byte(testValues[0]))
		assert.Nil(err)
		assert.Equal([]byte("?"), data)

		for _, v := range testValues {
			assert.Nil(db.Delete([]byte(v)))
		}
		for _, v := range testValues {
			_, err := db.Get([]byte(v))
			assert.Equal(store.ErrKeyNotFound, err)

			has, err := db.Has([]byte(v))
			assert.Nil(err)
			assert.False(has)
		}
	})
}

func TestDatabaseBatch(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db database.Database) {
		assert := assert.New(t)

		assert.Nil(db.Put([]byte("stale"), []byte("x")))

		batch := db.NewBatch()
		assert.Nil(batch.Put([]byte("k1"), []byte("v1")))
		assert.Nil(batch.Put([]byte("k2"), []byte("v22")))
		assert.Nil(batch.Delete([]byte("stale")))
		assert.Equal(6, batch.ValueSize())

		// Nothing is visible before Write.
		_, err := db.Get([]byte("k1"))
		assert.Equal(store.ErrKeyNotFound, err)

		assert.Nil(batch.Write())
		assert.Equal(0, batch.ValueSize())

		v, err := db.Get([]byte("k2"))
		assert.Nil(err)
		assert.Equal([]byte("v22"), v)
		_, err = db.Get([]byte("stale"))
		assert.Equal(store.ErrKeyNotFound, err)
	})
}

func TestMemDatabaseCopiesValues(t *testing.T) {
	assert := assert.New(t)

	db := NewMemDatabase()
	value := []byte("fee")
	assert.Nil(db.Put([]byte("k"), value))
	value[0] = 'x'

	got, err := db.Get([]byte("k"))
	assert.Nil(err)
	assert.Equal([]byte("fee"), got)
	got[0] = 'y'

	got2, _ := db.Get([]byte("k"))
	assert.Equal([]byte("fee"), got2)
	assert.Equal(1, db.Len())
}

func TestOpen(t *testing.T) {
	assert := assert.New(t)

	dir, err := os.MkdirTemp("", "feeledger_open_")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	for _, kind := range []string{"leveldb", "badgerdb", "memdb"} {
		db, err := Open(kind, filepath.Join(dir, kind), 0, 0)
		require.Nil(t, err, kind)
		assert.Nil(db.Put([]byte("k"), []byte("v")))
		data, err := db.Get([]byte("k"))
		assert.Nil(err)
		assert.Equal([]byte("v"), data)
		db.Close()
	}

	_, err = Open("rocksdb", dir, 0, 0)
	assert.NotNil(err)
}
