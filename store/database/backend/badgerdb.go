package backend

import (
	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"github.com/thetatoken/checkpoint/store"
	"github.com/thetatoken/checkpoint/store/database"
)

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
		return nil, errors.Wrapf(err, "failed to open badger database at %v", dirname)
	}

	mDbOpen.WithLabelValues(driverBadger).Inc()
	return &BadgerDatabase{
		db: db,
	}, nil
}

// Put puts the given key / value to the database
func (db *BadgerDatabase) Put(key []byte, value []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
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
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err == badger.ErrKeyNotFound || err == badger.ErrEmptyKey {
		return store.ErrKeyNotFound
	}
	return err
}

func (db *BadgerDatabase) Close() {
	if err := db.db.Close(); err != nil {
		logger.Errorf("Failed to close badger database, err: %v", err)
		return
	}
	mDbOpen.WithLabelValues(driverBadger).Dec()
}

func (db *BadgerDatabase) NewBatch() database.Batch {
	return &badgerdbBatch{db: db.db}
}

type badgerOp struct {
	key, value []byte
	del        bool
}

type badgerdbBatch struct {
	db   *badger.DB
	ops  []badgerOp
	size int
}

func (b *badgerdbBatch) Put(key, value []byte) error {
	b.ops = append(b.ops, badgerOp{key: key, value: value})
	b.size += len(value)
	return nil
}

func (b *badgerdbBatch) Delete(key []byte) error {
	b.ops = append(b.ops, badgerOp{key: key, del: true})
	b.size++
	return nil
}

// Write commits all operations in a single transaction. A batch that does not
// fit into one transaction fails as a whole.
func (b *badgerdbBatch) Write() error {
	err := b.db.Update(func(txn *badger.Txn) error {
		for _, op := range b.ops {
			var err error
			if op.del {
				err = txn.Delete(op.key)
			} else {
				err = txn.Set(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "badger batch write failed")
	}
	mBatchWrite.WithLabelValues(driverBadger).Inc()
	b.Reset()
	return nil
}

func (b *badgerdbBatch) ValueSize() int {
	return b.size
}

func (b *badgerdbBatch) Reset() {
	b.ops = nil
	b.size = 0
}
