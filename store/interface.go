package store

import (
	"errors"

	"github.com/thetatoken/checkpoint/common"
)

// ErrKeyNotFound is returned when a key is absent from the store.
var ErrKeyNotFound = errors.New("key not found")

// Store is the interface for key/value storages.
type Store interface {
	Put(key common.Bytes, value interface{}) error
	Delete(key common.Bytes) error
	Get(key common.Bytes, value interface{}) error
}
