package ledger

import (
	"errors"
	"io/ioutil"
	"os"
	"testing"

	"github.com/holiman/uint256"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/common/result"
	st "github.com/thetatoken/checkpoint/ledger/state"
	"github.com/thetatoken/checkpoint/ledger/types"
	"github.com/thetatoken/checkpoint/store/database"
	"github.com/thetatoken/checkpoint/store/database/backend"
)

var (
	alice = common.HexToAddress("0x2e833968e5bb786ae419c4d13189fb081cc43bab")
	bob   = common.HexToAddress("0x70f587259738cb626a1720af7038b8dcdb6a42a0")
)

func newTestLedger(t *testing.T, policy types.BoundPolicy) (*Ledger, *backend.MemDatabase) {
	db := backend.NewMemDatabase()
	ledger, err := NewLedger(db, policy)
	require.Nil(t, err)
	return ledger, db
}

func value(n uint64) types.Value {
	return types.Value(uint256.NewInt(n).Bytes32())
}

func maxDelta(n uint64) *uint256.Int {
	return uint256.NewInt(n)
}

// snapshot copies every raw entry of the database.
func snapshot(db *backend.MemDatabase) map[string]string {
	ret := make(map[string]string)
	for _, key := range db.Keys() {
		val, _ := db.Get(key)
		ret[string(key)] = string(val)
	}
	return ret
}

func TestFirstCommit(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.BoundPolicy{Cooldown: 10, MaxDelta: maxDelta(1)})

	// The first commit of an account is accepted regardless of the bounds.
	rec, res := ledger.SubmitBounded(alice, value(1000000), 3)
	assert.True(res.IsOK(), res.String())
	assert.Equal(uint64(0), rec.Sequence)
	assert.Equal(uint64(3), rec.CommittedAt)
	assert.Equal(value(1000000), rec.Value)

	latest, res := ledger.ReadLatest(alice)
	assert.True(res.IsOK())
	assert.Equal(rec, latest)
}

func TestSequenceMonotonic(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.DefaultBoundPolicy())

	for i := uint64(0); i < 8; i++ {
		rec, res := ledger.SubmitBounded(alice, value(i*7), 100+i)
		assert.True(res.IsOK(), res.String())
		assert.Equal(i, rec.Sequence)

		latest, _ := ledger.ReadLatest(alice)
		assert.Equal(i, latest.Sequence)
		assert.Equal(value(i*7), latest.Value)
	}

	// Sequences are kept per account.
	rec, res := ledger.SubmitBounded(bob, value(1), 200)
	assert.True(res.IsOK())
	assert.Equal(uint64(0), rec.Sequence)
}

func TestFreshness(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.DefaultBoundPolicy())

	_, res := ledger.SubmitBounded(alice, value(5), 10)
	assert.True(res.IsOK())

	// Same block
	_, res = ledger.SubmitBounded(alice, value(6), 10)
	assert.Equal(result.CodeTooSoon, res.Code)

	// Earlier block
	_, res = ledger.SubmitBounded(alice, value(6), 9)
	assert.Equal(result.CodeTooSoon, res.Code)

	_, res = ledger.SubmitBounded(alice, value(6), 11)
	assert.True(res.IsOK())

	// Another account is not affected by the cooldown of alice.
	_, res = ledger.SubmitBounded(bob, value(6), 11)
	assert.True(res.IsOK())
}

func TestFreshnessCooldown(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.BoundPolicy{Cooldown: 5})

	_, res := ledger.SubmitBounded(alice, value(1), 10)
	assert.True(res.IsOK())

	_, res = ledger.SubmitBounded(alice, value(2), 10)
	assert.Equal(result.CodeTooSoon, res.Code)
	assert.True(res.Code.IsRetryable())

	// A strictly later height is fresh even inside the cooldown window.
	rec, res := ledger.SubmitBounded(alice, value(2), 11)
	assert.True(res.IsOK(), res.String())
	assert.Equal(uint64(1), rec.Sequence)
	assert.Equal(uint64(11), rec.CommittedAt)

	_, res = ledger.SubmitBounded(alice, value(3), 10)
	assert.Equal(result.CodeTooSoon, res.Code)
}

func TestFreshnessZeroCooldown(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.BoundPolicy{Cooldown: 0})

	_, res := ledger.SubmitBounded(alice, value(1), 100)
	assert.True(res.IsOK())
	rec, res := ledger.SubmitBounded(alice, value(2), 100)
	assert.True(res.IsOK())
	assert.Equal(uint64(1), rec.Sequence)

	// Going back in height is still rejected.
	_, res = ledger.SubmitBounded(alice, value(3), 99)
	assert.Equal(result.CodeTooSoon, res.Code)
}

func TestMagnitude(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.BoundPolicy{Cooldown: 1, MaxDelta: maxDelta(10)})

	_, res := ledger.SubmitBounded(alice, value(5), 1)
	assert.True(res.IsOK())

	_, res = ledger.SubmitBounded(alice, value(20), 2)
	assert.Equal(result.CodeOutOfBound, res.Code)

	rec, res := ledger.SubmitBounded(alice, value(12), 2)
	assert.True(res.IsOK())
	assert.Equal(value(12), rec.Value)
	assert.Equal(uint64(1), rec.Sequence)

	// Decreases are bounded the same way.
	_, res = ledger.SubmitBounded(alice, value(1), 3)
	assert.Equal(result.CodeOutOfBound, res.Code)
	_, res = ledger.SubmitBounded(alice, value(2), 3)
	assert.True(res.IsOK())
}

func TestMagnitudeExtremes(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.BoundPolicy{Cooldown: 1, MaxDelta: maxDelta(1)})

	var top types.Value
	for i := range top {
		top[i] = 0xff
	}
	_, res := ledger.SubmitBounded(alice, top, 1)
	assert.True(res.IsOK())

	_, res = ledger.SubmitBounded(alice, value(0), 2)
	assert.Equal(result.CodeOutOfBound, res.Code)

	below := top
	below[types.ValueLength-1] = 0xfe
	_, res = ledger.SubmitBounded(alice, below, 2)
	assert.True(res.IsOK())
}

func TestAscending(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.BoundPolicy{Cooldown: 1, Ascending: true})

	_, res := ledger.SubmitBounded(alice, value(50), 1)
	assert.True(res.IsOK())
	_, res = ledger.SubmitBounded(alice, value(49), 2)
	assert.Equal(result.CodeOutOfBound, res.Code)
	_, res = ledger.SubmitBounded(alice, value(50), 2)
	assert.True(res.IsOK())
	_, res = ledger.SubmitBounded(alice, value(1000), 3)
	assert.True(res.IsOK())
}

func TestCheckOrder(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.BoundPolicy{Cooldown: 1, MaxDelta: maxDelta(10)})

	_, res := ledger.SubmitBounded(alice, value(5), 1)
	assert.True(res.IsOK())

	// Both too soon and out of bound: freshness is reported.
	_, res = ledger.SubmitBounded(alice, value(500), 1)
	assert.Equal(result.CodeTooSoon, res.Code)
}

func TestInvalidCaller(t *testing.T) {
	assert := assert.New(t)

	ledger, db := newTestLedger(t, types.DefaultBoundPolicy())

	_, res := ledger.SubmitBounded(common.Address{}, value(1), 1)
	assert.Equal(result.CodeInvalidCaller, res.Code)
	_, res = ledger.SubmitUnbounded(common.Address{}, []byte("x"), 1)
	assert.Equal(result.CodeInvalidCaller, res.Code)
	_, res = ledger.ReadLatest(common.Address{})
	assert.Equal(result.CodeInvalidCaller, res.Code)
	_, res = ledger.ReadUnbounded(common.Address{})
	assert.Equal(result.CodeInvalidCaller, res.Code)

	assert.Equal(0, db.Len())
}

func TestRejectLeavesLedgerUnchanged(t *testing.T) {
	assert := assert.New(t)

	ledger, db := newTestLedger(t, types.BoundPolicy{Cooldown: 2, MaxDelta: maxDelta(10), Ascending: true})

	_, res := ledger.SubmitBounded(alice, value(100), 10)
	require.True(t, res.IsOK())
	before := snapshot(db)
	latestBefore, _ := ledger.ReadLatest(alice)

	attempts := []struct {
		value  types.Value
		height uint64
		code   result.ErrorCode
	}{
		{value(101), 11, result.CodeTooSoon},
		{value(101), 5, result.CodeTooSoon},
		{value(99), 12, result.CodeOutOfBound},
		{value(111), 12, result.CodeOutOfBound},
	}
	for _, a := range attempts {
		rec, res := ledger.SubmitBounded(alice, a.value, a.height)
		assert.Nil(rec)
		assert.Equal(a.code, res.Code)
		assert.Equal(before, snapshot(db))

		latest, _ := ledger.ReadLatest(alice)
		assert.Equal(latestBefore, latest)
	}
}

func TestReadLatest(t *testing.T) {
	assert := assert.New(t)

	ledger, db := newTestLedger(t, types.DefaultBoundPolicy())

	rec, res := ledger.ReadLatest(alice)
	assert.True(res.IsOK())
	assert.Nil(rec)

	_, res = ledger.SubmitBounded(alice, value(42), 1)
	assert.True(res.IsOK())
	before := snapshot(db)

	first, _ := ledger.ReadLatest(alice)
	second, _ := ledger.ReadLatest(alice)
	assert.Equal(first, second)
	assert.Equal(before, snapshot(db))

	// The returned record does not alias the ledger state.
	first.Sequence = 99
	third, _ := ledger.ReadLatest(alice)
	assert.Equal(uint64(0), third.Sequence)
}

func TestUnbounded(t *testing.T) {
	assert := assert.New(t)

	ledger, _ := newTestLedger(t, types.BoundPolicy{Cooldown: 100, MaxDelta: maxDelta(1)})

	rec, res := ledger.ReadUnbounded(alice)
	assert.True(res.IsOK())
	assert.Nil(rec)

	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}
	rec, res = ledger.SubmitUnbounded(alice, data, 1)
	assert.True(res.IsOK())
	assert.Equal(uint64(0), rec.Sequence)

	// No freshness bound applies to unbounded checkpoints.
	rec, res = ledger.SubmitUnbounded(alice, []byte{}, 1)
	assert.True(res.IsOK())
	assert.Equal(uint64(1), rec.Sequence)

	rec, res = ledger.SubmitUnbounded(alice, data, 1)
	assert.True(res.IsOK())

	latest, res := ledger.ReadUnbounded(alice)
	assert.True(res.IsOK())
	assert.Equal(uint64(2), latest.Sequence)
	assert.Equal(common.Bytes(data), latest.Data)

	// Bounded and unbounded checkpoints are kept apart.
	bounded, _ := ledger.ReadLatest(alice)
	assert.Nil(bounded)
}

func TestPersistence(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir, err := ioutil.TempDir("", "checkpoint_ledger_test")
	require.Nil(err)
	defer os.RemoveAll(dir)

	db, err := backend.NewLDBDatabase(dir, 0, 0)
	require.Nil(err)
	ledger, err := NewLedger(db, types.DefaultBoundPolicy())
	require.Nil(err)

	_, res := ledger.SubmitBounded(alice, value(7), 1)
	require.True(res.IsOK())
	_, res = ledger.SubmitBounded(alice, value(8), 2)
	require.True(res.IsOK())
	_, res = ledger.SubmitUnbounded(bob, []byte("hello"), 2)
	require.True(res.IsOK())
	db.Close()

	db, err = backend.NewLDBDatabase(dir, 0, 0)
	require.Nil(err)
	defer db.Close()
	ledger, err = NewLedger(db, types.DefaultBoundPolicy())
	require.Nil(err)

	rec, res := ledger.ReadLatest(alice)
	assert.True(res.IsOK())
	assert.Equal(value(8), rec.Value)
	assert.Equal(uint64(1), rec.Sequence)
	assert.Equal(uint64(2), rec.CommittedAt)

	// The restored record still gates the next commit.
	_, res = ledger.SubmitBounded(alice, value(9), 2)
	assert.Equal(result.CodeTooSoon, res.Code)

	urec, res := ledger.ReadUnbounded(bob)
	assert.True(res.IsOK())
	assert.Equal(common.Bytes("hello"), urec.Data)
}

//
// ------------------------- Failing database -------------------------
//

var errWriteFailed = errors.New("write failed")

type failingDatabase struct {
	*backend.MemDatabase
	failWrites bool
}

func (db *failingDatabase) NewBatch() database.Batch {
	return &failingBatch{Batch: db.MemDatabase.NewBatch(), db: db}
}

type failingBatch struct {
	database.Batch
	db *failingDatabase
}

func (b *failingBatch) Write() error {
	if b.db.failWrites {
		return errWriteFailed
	}
	return b.Batch.Write()
}

func TestFailedWriteIsInternalError(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	db := &failingDatabase{MemDatabase: backend.NewMemDatabase()}
	ledger, err := NewLedger(db, types.DefaultBoundPolicy())
	require.Nil(err)

	_, res := ledger.SubmitBounded(alice, value(1), 1)
	require.True(res.IsOK())
	before := snapshot(db.MemDatabase)

	db.failWrites = true
	rec, res := ledger.SubmitBounded(alice, value(2), 2)
	assert.Nil(rec)
	assert.Equal(result.CodeInternalError, res.Code)
	assert.Equal(before, snapshot(db.MemDatabase))

	// The cache was not updated either.
	latest, _ := ledger.ReadLatest(alice)
	assert.Equal(value(1), latest.Value)
	assert.Equal(uint64(0), latest.Sequence)

	_, res = ledger.SubmitUnbounded(alice, []byte("x"), 2)
	assert.Equal(result.CodeInternalError, res.Code)

	db.failWrites = false
	rec, res = ledger.SubmitBounded(alice, value(2), 2)
	assert.True(res.IsOK())
	assert.Equal(uint64(1), rec.Sequence)
}

func TestDistance(t *testing.T) {
	assert := assert.New(t)

	d, overflow := distance(uint256.NewInt(3), uint256.NewInt(10))
	assert.False(overflow)
	assert.Equal(uint64(7), d.Uint64())

	d, overflow = distance(uint256.NewInt(10), uint256.NewInt(3))
	assert.False(overflow)
	assert.Equal(uint64(7), d.Uint64())

	max := new(uint256.Int).SetAllOne()
	d, overflow = distance(uint256.NewInt(0), max)
	assert.False(overflow)
	assert.Equal(max, d)
}

func TestPolicyFromConfig(t *testing.T) {
	assert := assert.New(t)

	defer func() {
		viper.Set(common.CfgLedgerCooldown, 1)
		viper.Set(common.CfgLedgerMaxDelta, "")
		viper.Set(common.CfgLedgerAscending, false)
	}()
	viper.Set(common.CfgLedgerCooldown, 3)
	viper.Set(common.CfgLedgerMaxDelta, "0x10")
	viper.Set(common.CfgLedgerAscending, true)

	policy, err := PolicyFromConfig()
	assert.Nil(err)
	assert.Equal(uint64(3), policy.Cooldown)
	assert.Equal(uint64(16), policy.MaxDelta.Uint64())
	assert.True(policy.Ascending)

	viper.Set(common.CfgLedgerMaxDelta, "not a number")
	_, err = PolicyFromConfig()
	assert.NotNil(err)
}

func TestGetState(t *testing.T) {
	assert := assert.New(t)

	ledger, db := newTestLedger(t, types.DefaultBoundPolicy())
	_, res := ledger.SubmitBounded(alice, value(1), 1)
	assert.True(res.IsOK())

	raw, err := ledger.GetState().Get(st.CheckpointKey(alice))
	assert.Nil(err)
	assert.NotNil(raw)
	assert.Equal(db, ledger.GetState().DB())
}
