package state

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/ledger/types"
	"github.com/thetatoken/checkpoint/store"
	"github.com/thetatoken/checkpoint/store/database"
)

// DefaultCacheSize is the number of records a StoreView caches by default.
const DefaultCacheSize = 4096

//
// ------------------------- StoreView -------------------------
//

// StoreView reads and writes ledger records. Records are decoded copies:
// callers never share memory with the cache or the database. Writes go
// through a single database batch and the cache is only updated once the
// batch has been written.
type StoreView struct {
	db    database.Database
	cache *lru.Cache // key string -> decoded record
}

// NewStoreView creates an instance of the StoreView
func NewStoreView(db database.Database, cacheSize int) (*StoreView, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &StoreView{db: db, cache: cache}, nil
}

// DB returns the underlying database
func (sv *StoreView) DB() database.Database {
	return sv.db
}

// Get returns the raw value corresponding to the key, or nil if absent
func (sv *StoreView) Get(key common.Bytes) (common.Bytes, error) {
	value, err := sv.db.Get(key)
	if err == store.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read key %v", key)
	}
	return value, nil
}

// GetCheckpoint returns the bounded checkpoint of the account, or nil if the
// account never committed one.
func (sv *StoreView) GetCheckpoint(addr common.Address) (*types.CheckpointRecord, error) {
	key := CheckpointKey(addr)
	if cached, ok := sv.cache.Get(string(key)); ok {
		return cached.(*types.CheckpointRecord).Copy(), nil
	}

	data, err := sv.Get(key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	rec := &types.CheckpointRecord{}
	if err := types.FromBytes(data, rec); err != nil {
		return nil, errors.Wrapf(err, "error reading checkpoint %X", data)
	}
	sv.cache.Add(string(key), rec.Copy())
	return rec, nil
}

// SetCheckpoint atomically replaces the bounded checkpoint of the account.
func (sv *StoreView) SetCheckpoint(addr common.Address, rec *types.CheckpointRecord) error {
	data, err := types.ToBytes(rec)
	if err != nil {
		return errors.Wrapf(err, "error writing checkpoint %v", rec)
	}
	key := CheckpointKey(addr)
	if err := sv.write(key, data); err != nil {
		return err
	}
	sv.cache.Add(string(key), rec.Copy())
	return nil
}

// GetUnboundedCheckpoint returns the unbounded checkpoint of the account, or
// nil if the account never committed one.
func (sv *StoreView) GetUnboundedCheckpoint(addr common.Address) (*types.UnboundedRecord, error) {
	data, err := sv.Get(UnboundedCheckpointKey(addr))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	rec := &types.UnboundedRecord{}
	if err := types.FromBytes(data, rec); err != nil {
		return nil, errors.Wrapf(err, "error reading unbounded checkpoint of %v", addr)
	}
	return rec, nil
}

// SetUnboundedCheckpoint atomically replaces the unbounded checkpoint of the account.
func (sv *StoreView) SetUnboundedCheckpoint(addr common.Address, rec *types.UnboundedRecord) error {
	data, err := types.ToBytes(rec)
	if err != nil {
		return errors.Wrapf(err, "error writing unbounded checkpoint %v", rec)
	}
	return sv.write(UnboundedCheckpointKey(addr), data)
}

func (sv *StoreView) write(key common.Bytes, value common.Bytes) error {
	batch := sv.db.NewBatch()
	if err := batch.Put(key, value); err != nil {
		return errors.Wrapf(err, "failed to stage key %v", key)
	}
	if err := batch.Write(); err != nil {
		return errors.Wrapf(err, "failed to write key %v", key)
	}
	return nil
}
