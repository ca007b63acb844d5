// Package kvstore stores RLP-encoded values in a Database. The node keeps
// its small bookkeeping values here, the persisted block height and the
// account nonces, next to the ledger records.
package kvstore

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/store"
	"github.com/thetatoken/checkpoint/store/database"
)

var _ store.Store = (*KVStore)(nil)

// KVStore is a store.Store over a Database.
type KVStore struct {
	db database.Database
}

// NewKVStore creates a KVStore over db.
func NewKVStore(db database.Database) store.Store {
	return &KVStore{db}
}

// Put RLP-encodes value and writes it under key.
func (kv *KVStore) Put(key common.Bytes, value interface{}) error {
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode value of %q", key)
	}
	return kv.db.Put(key, encoded)
}

// Delete removes key.
func (kv *KVStore) Delete(key common.Bytes) error {
	return kv.db.Delete(key)
}

// Get decodes the value under key into value. A missing key is reported as
// store.ErrKeyNotFound, unwrapped, so callers can compare against it.
func (kv *KVStore) Get(key common.Bytes, value interface{}) error {
	encoded, err := kv.db.Get(key)
	if err != nil {
		return err
	}
	if err := rlp.DecodeBytes(encoded, value); err != nil {
		return errors.Wrapf(err, "failed to decode value of %q", key)
	}
	return nil
}
