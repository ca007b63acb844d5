package filter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/common/result"
	"github.com/thetatoken/checkpoint/contract"
	"github.com/thetatoken/checkpoint/rpc"
)

func TestWriteCSV(t *testing.T) {
	assert := assert.New(t)

	alice := common.HexToAddress("0x2e833968e5bb786ae419c4d13189fb081cc43bab")
	txs := []*rpc.TxReceiptResult{
		{From: alice, Method: contract.MethodCheckpointBounded, Argument: []byte{0x45, 0xab}},
		{From: alice, Method: contract.MethodCheckpointUnbounded, Argument: []byte("hi")},
		{From: alice, Method: contract.MethodCheckpointBounded, Argument: []byte{0x01}, Code: int(result.CodeTooSoon)},
		{From: alice, Method: contract.MethodA},
	}

	var buf bytes.Buffer
	count, err := writeCSV(&buf, txs, methodAll, false)
	assert.Nil(err)
	assert.Equal(2, count)
	assert.Equal("sender,argument\n"+
		alice.Hex()+",45ab\n"+
		alice.Hex()+",6869\n", buf.String())

	buf.Reset()
	count, err = writeCSV(&buf, txs, methodBounded, true)
	assert.Nil(err)
	assert.Equal(2, count)

	buf.Reset()
	count, err = writeCSV(&buf, txs, methodUnbounded, false)
	assert.Nil(err)
	assert.Equal(1, count)

	_, err = writeCSV(&buf, txs, "other", false)
	assert.NotNil(err)
}

type listClient struct {
	calls int
	txs   []*rpc.TxReceiptResult
}

func (c *listClient) Call(name string, args interface{}, res interface{}) error {
	c.calls++
	raw, err := json.Marshal(&rpc.ListTransactionsResult{Transactions: c.txs})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, res)
}

func TestExport(t *testing.T) {
	assert := assert.New(t)

	alice := common.HexToAddress("0x2e833968e5bb786ae419c4d13189fb081cc43bab")
	client := &listClient{txs: []*rpc.TxReceiptResult{
		{From: alice, Method: contract.MethodCheckpointBounded, Argument: []byte{0x45, 0xab}},
	}}
	out := filepath.Join(t.TempDir(), "transactions.csv")

	count, err := export(client, out, 100, methodAll, false)
	assert.Nil(err)
	assert.Equal(1, count)
	data, err := os.ReadFile(out)
	assert.Nil(err)
	assert.Equal("sender,argument\n"+alice.Hex()+",45ab\n", string(data))

	// An unknown method filter leaves the previous export in place.
	_, err = export(client, out, 100, "other", false)
	assert.NotNil(err)
	assert.Equal(1, client.calls)
	kept, err := os.ReadFile(out)
	assert.Nil(err)
	assert.Equal(data, kept)
}
