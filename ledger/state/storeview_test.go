package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/ledger/types"
	"github.com/thetatoken/checkpoint/store/database/backend"
)

func TestStoreViewCheckpointAccess(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	db := backend.NewMemDatabase()
	sv, err := NewStoreView(db, 0)
	require.Nil(err)

	addr := common.HexToAddress("0x2E833968E5bB786Ae419c4d13189fB081Cc43bab")

	rec, err := sv.GetCheckpoint(addr)
	require.Nil(err)
	assert.Nil(rec)

	rec1 := &types.CheckpointRecord{Value: types.BytesToValue([]byte{0xff}), Sequence: 0, CommittedAt: 3}
	require.Nil(sv.SetCheckpoint(addr, rec1))

	rec, err = sv.GetCheckpoint(addr)
	require.Nil(err)
	assert.Equal(rec1, rec)

	// Mutating the returned record must not leak into the view.
	rec.Sequence = 99
	rec, err = sv.GetCheckpoint(addr)
	require.Nil(err)
	assert.Equal(uint64(0), rec.Sequence)

	// A fresh view over the same database sees the persisted record.
	sv2, err := NewStoreView(db, 16)
	require.Nil(err)
	rec, err = sv2.GetCheckpoint(addr)
	require.Nil(err)
	assert.Equal(rec1, rec)

	// Replace, not append.
	rec2 := rec1.Next(types.BytesToValue([]byte{0x01}), 4)
	require.Nil(sv.SetCheckpoint(addr, rec2))
	rec, err = sv.GetCheckpoint(addr)
	require.Nil(err)
	assert.Equal(rec2, rec)
	assert.Equal(1, db.Len())
}

func TestStoreViewUnboundedAccess(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	db := backend.NewMemDatabase()
	sv, err := NewStoreView(db, 0)
	require.Nil(err)

	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")

	rec, err := sv.GetUnboundedCheckpoint(addr)
	require.Nil(err)
	assert.Nil(rec)

	urec := &types.UnboundedRecord{Data: common.Bytes("arbitrary length payload"), Sequence: 0, CommittedAt: 1}
	require.Nil(sv.SetUnboundedCheckpoint(addr, urec))

	rec, err = sv.GetUnboundedCheckpoint(addr)
	require.Nil(err)
	assert.Equal(urec, rec)

	bounded, err := sv.GetCheckpoint(addr)
	require.Nil(err)
	assert.Nil(bounded)
}

func TestStoreViewCorruptedRecord(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	db := backend.NewMemDatabase()
	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")
	require.Nil(db.Put(CheckpointKey(addr), []byte{0xde, 0xad}))

	sv, err := NewStoreView(db, 0)
	require.Nil(err)
	_, err = sv.GetCheckpoint(addr)
	assert.NotNil(err)
}

func TestStateKeys(t *testing.T) {
	assert := assert.New(t)

	addr := common.HexToAddress("0x2E833968E5bB786Ae419c4d13189fB081Cc43bab")
	key := CheckpointKey(addr)
	assert.Equal(len("ls/cp/")+common.AddressLength, len(key))
	assert.NotEqual(key, UnboundedCheckpointKey(addr))

	// Building keys must not alias the prefix.
	other := CheckpointKey(common.HexToAddress("0x1"))
	assert.NotEqual(key, other)
}
