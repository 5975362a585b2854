package backend

import (
	"github.com/dgraph-io/badger"

	"github.com/guildxyz/feeledger/store"
	"github.com/guildxyz/feeledger/store/database"
)

var _ database.Database = (*BadgerDatabase)(nil)

// BadgerDatabase a BadgerDB wrapped object.
type BadgerDatabase struct {
	db *badger.DB
}

// NewBadgerDatabase returns a BadgerDB wrapped object.
func NewBadgerDatabase(dirname string) (*BadgerDatabase, error) {
	opts := badger.DefaultOptions(dirname)
	opts.Dir = dirname
	opts.ValueDir = dirname
	opts.Logger = logger
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerDatabase{
		db: db,
	}, nil
}

// Put puts the given key / value to the database
func (db *BadgerDatabase) Put(key []byte, value []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, copyBytes(value))
	})
}

// Has checks if the given key is present in the database
func (db *BadgerDatabase) Has(key []byte) (bool, error) {
	err := db.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound || err == badger.ErrEmptyKey {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Get returns the given key if it's present.
func (db *BadgerDatabase) Get(key []byte) ([]byte, error) {
	var value []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound || err == badger.ErrEmptyKey {
				return store.ErrKeyNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Delete deletes the key from the database
func (db *BadgerDatabase) Delete(key []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (db *BadgerDatabase) Close() {
	if err := db.db.Close(); err != nil {
		logger.Errorf("Failed to close database, err: %v", err)
	}
}

func (db *BadgerDatabase) NewBatch() database.Batch {
	return &badgerdbBatch{db: db.db}
}

type badgerdbBatch struct {
	db     *badger.DB
	writes []kv
	size   int
}

func (b *badgerdbBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, kv{copyBytes(key), copyBytes(value), false})
	b.size += len(value)
	return nil
}

func (b *badgerdbBatch) Delete(key []byte) error {
	b.writes = append(b.writes, kv{copyBytes(key), nil, true})
	b.size++
	return nil
}

// Write commits the batch in one transaction, splitting it only when badger
// reports the transaction as too big.
func (b *badgerdbBatch) Write() error {
	txn := b.db.NewTransaction(true)
	defer func() { txn.Discard() }()

	for _, w := range b.writes {
		err := applyWrite(txn, w)
		if err == badger.ErrTxnTooBig {
			if err = txn.Commit(); err != nil {
				return err
			}
			txn = b.db.NewTransaction(true)
			err = applyWrite(txn, w)
		}
		if err != nil {
			return err
		}
	}

	if err := txn.Commit(); err != nil {
		return err
	}
	b.Reset()
	return nil
}

func applyWrite(txn *badger.Txn, w kv) error {
	if w.del {
		return txn.Delete(w.k)
	}
	return txn.Set(w.k, w.v)
}

func (b *badgerdbBatch) ValueSize() int {
	return b.size
}

func (b *badgerdbBatch) Reset() {
	b.writes = nil
	b.size = 0
}
