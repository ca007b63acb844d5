package rpc

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thetatoken/checkpoint/common/result"
	"github.com/thetatoken/checkpoint/contract"
	"github.com/thetatoken/checkpoint/crypto"
	"github.com/thetatoken/checkpoint/ledger/types"
	"github.com/thetatoken/checkpoint/node"
	"github.com/thetatoken/checkpoint/store/database/backend"
)

const testChainID = "testnet"

func newTestServer(t *testing.T) (*node.Node, *httptest.Server, Client) {
	n, err := node.NewNode(&node.Params{
		ChainID:       testChainID,
		DB:            backend.NewMemDatabase(),
		Policy:        types.DefaultBoundPolicy(),
		TxHistorySize: 16,
	})
	require.Nil(t, err)

	srv := httptest.NewServer(NewCheckpointRPCServer(n).Handler())
	return n, srv, NewClient(srv.URL + "/rpc")
}

func sendBounded(t *testing.T, client Client, key *crypto.PrivateKey, nonce uint64, hex string) (*SendTxResult, error) {
	value, err := contract.LeftPad32(hex)
	require.Nil(t, err)
	calldata, err := contract.PackBounded(value)
	require.Nil(t, err)

	tx := &crypto.Transaction{ChainID: testChainID, Nonce: nonce, Data: calldata}
	require.Nil(t, crypto.SignTx(tx, key))

	res := &SendTxResult{}
	err = client.Call("SendTx", SendTxArgs{Tx: tx}, res)
	return res, err
}

func TestSendTxAndQuery(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	n, srv, client := newTestServer(t)
	defer srv.Close()

	key, _, err := crypto.TEST_GenerateKeyPairWithSeed("alice")
	require.Nil(err)
	address := key.Address().Hex()

	nonceRes := &GetNonceResult{}
	require.Nil(client.Call("GetNonce", GetNonceArgs{Address: address}, nonceRes))
	assert.Equal(uint64(0), uint64(nonceRes.Nonce))

	cpRes := &GetCheckpointResult{}
	require.Nil(client.Call("GetCheckpoint", GetCheckpointArgs{Address: address}, cpRes))
	assert.Nil(cpRes.Checkpoint)

	sendRes, err := sendBounded(t, client, key, 0, "0x45ab")
	require.Nil(err)
	assert.Equal(uint64(1), uint64(sendRes.BlockHeight))
	assert.Equal(contract.MethodCheckpointBounded, sendRes.Method)
	seq, err := contract.UnpackSequence(contract.MethodCheckpointBounded, sendRes.Output)
	assert.Nil(err)
	assert.Equal(uint64(0), seq)

	cpRes = &GetCheckpointResult{}
	require.Nil(client.Call("GetCheckpoint", GetCheckpointArgs{Address: address}, cpRes))
	require.NotNil(cpRes.Checkpoint)
	assert.Equal(uint64(0), cpRes.Checkpoint.Sequence)
	assert.Equal(uint64(1), cpRes.Checkpoint.CommittedAt)
	assert.Equal(byte(0xab), cpRes.Checkpoint.Value[31])

	aCall, _ := contract.PackA()
	callRes := &CallResult{}
	require.Nil(client.Call("Call", CallArgs{From: address, Data: hexutil.Encode(aCall)}, callRes))
	value, err := contract.UnpackA(callRes.Output)
	assert.Nil(err)
	assert.Equal(cpRes.Checkpoint.Value, value)

	// Rejections carry the ledger result code.
	_, err = sendBounded(t, client, key, 1, "0x45ac")
	require.NotNil(err)
	resErr, ok := err.(*ResultError)
	require.True(ok, err.Error())
	assert.Equal(result.CodeTooSoon, resErr.Result.Code)

	_, err = sendBounded(t, client, key, 1, "0x45ac")
	resErr, ok = err.(*ResultError)
	require.True(ok)
	assert.Equal(result.CodeInvalidNonce, resErr.Result.Code)

	n.Clock.Advance()
	_, err = sendBounded(t, client, key, 2, "0x45ac")
	assert.Nil(err)

	listRes := &ListTransactionsResult{}
	require.Nil(client.Call("ListTransactions", ListTransactionsArgs{Blocks: 100}, listRes))
	require.Equal(3, len(listRes.Transactions))
	assert.Equal(int(result.CodeOK), listRes.Transactions[0].Code)
	assert.Equal(int(result.CodeTooSoon), listRes.Transactions[1].Code)
	assert.Equal(key.Address(), listRes.Transactions[2].From)

	statusRes := &GetStatusResult{}
	require.Nil(client.Call("GetStatus", struct{}{}, statusRes))
	assert.Equal(testChainID, statusRes.ChainID)
	assert.Equal(uint64(2), uint64(statusRes.CurrentHeight))
}

func TestUnboundedQuery(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	_, srv, client := newTestServer(t)
	defer srv.Close()

	key, _, _ := crypto.TEST_GenerateKeyPairWithSeed("alice")
	calldata, err := contract.PackUnbounded([]byte("some data"))
	require.Nil(err)
	tx := &crypto.Transaction{ChainID: testChainID, Data: calldata}
	require.Nil(crypto.SignTx(tx, key))
	require.Nil(client.Call("SendTx", SendTxArgs{Tx: tx}, &SendTxResult{}))

	res := &GetUnboundedCheckpointResult{}
	require.Nil(client.Call("GetUnboundedCheckpoint", GetCheckpointArgs{Address: key.Address().Hex()}, res))
	require.NotNil(res.Checkpoint)
	assert.Equal([]byte("some data"), []byte(res.Checkpoint.Data))
}

func TestInvalidArgs(t *testing.T) {
	assert := assert.New(t)

	_, srv, client := newTestServer(t)
	defer srv.Close()

	err := client.Call("GetCheckpoint", GetCheckpointArgs{Address: "not an address"}, &GetCheckpointResult{})
	assert.NotNil(err)
	_, isResult := err.(*ResultError)
	assert.False(isResult)

	err = client.Call("Call", CallArgs{From: "0x2e833968e5bb786ae419c4d13189fb081cc43bab", Data: "0xdeadbeef"}, &CallResult{})
	resErr, ok := err.(*ResultError)
	if assert.True(ok) {
		assert.Equal(result.CodeUnknownMethod, resErr.Result.Code)
	}

	err = client.Call("SendTx", SendTxArgs{}, &SendTxResult{})
	assert.NotNil(err)
}

func TestNamedParams(t *testing.T) {
	assert := assert.New(t)

	_, srv, _ := newTestServer(t)
	defer srv.Close()

	body, _ := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  MethodPrefix + "GetNonce",
		"params":  map[string]string{"address": "0x2e833968e5bb786ae419c4d13189fb081cc43bab"},
	})
	resp, err := http.Post(srv.URL+"/rpc", "application/json", bytes.NewReader(body))
	assert.Nil(err)
	defer resp.Body.Close()
	raw, _ := ioutil.ReadAll(resp.Body)
	assert.Contains(string(raw), `"nonce":"0"`)
}

func TestDefaultAndMetricsEndpoints(t *testing.T) {
	assert := assert.New(t)

	_, srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	assert.Nil(err)
	raw, _ := ioutil.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(string(raw), "up and running")

	resp, err = http.Get(srv.URL + "/metrics")
	assert.Nil(err)
	raw, _ = ioutil.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Contains(string(raw), "checkpoint_node_height")
}

func TestResultFromErrorCode(t *testing.T) {
	assert := assert.New(t)

	code, ok := ResultFromErrorCode(int(resultError(result.Reject(result.CodeOutOfBound, "x")).Code))
	assert.True(ok)
	assert.Equal(result.CodeOutOfBound, code)

	_, ok = ResultFromErrorCode(int(ErrCodeValidation))
	assert.False(ok)
	_, ok = ResultFromErrorCode(int(ErrCodeInvalidParams))
	assert.False(ok)
}
