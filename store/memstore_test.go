package store

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nonceEntry struct {
	Nonce  uint64
	Height uint64
}

func TestMemStore(t *testing.T) {
	assert := assert.New(t)

	memstore := NewMemKVStore()

	key, _ := hex.DecodeString("a0")
	memstore.Put(key, "hello!")

	var val string
	err := memstore.Get(key, &val)
	assert.Nil(err)
	assert.Equal("hello!", val)

	memstore.Delete(key)
	var val2 string
	err = memstore.Get(key, &val2)
	assert.Equal(ErrKeyNotFound, err)
}

func TestMemStoreStruct(t *testing.T) {
	assert := assert.New(t)

	memstore := NewMemKVStore()
	key := []byte("ls/nonce/abc")

	assert.Nil(memstore.Put(key, nonceEntry{Nonce: 3, Height: 17}))

	var entry nonceEntry
	assert.Nil(memstore.Get(key, &entry))
	assert.Equal(uint64(3), entry.Nonce)
	assert.Equal(uint64(17), entry.Height)
}
