package rpc

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/crypto"
)

// ------------------------------- SendTx -----------------------------------

type SendTxArgs struct {
	Tx *crypto.Transaction `json:"tx" validate:"required"`
}

type SendTxResult struct {
	Hash        common.Hash       `json:"hash"`
	BlockHeight common.JSONUint64 `json:"block_height"`
	Method      string            `json:"method"`
	Output      hexutil.Bytes     `json:"output"`
}

// SendTx executes a signed transaction. A rejected call is reported as an
// error carrying the ledger result code.
func (t *CheckpointRPCService) SendTx(_ context.Context, params json.RawMessage) interface{} {
	args := &SendTxArgs{}
	if err := unmarshalParams(params, args); err != nil {
		return invalidParamsError(err)
	}
	if err := t.validate.Struct(args); err != nil {
		return validatorError(err)
	}

	receipt, res := t.node.SubmitTx(args.Tx)
	if res.IsError() {
		return resultError(res)
	}
	return &SendTxResult{
		Hash:        receipt.Hash,
		BlockHeight: common.JSONUint64(receipt.Height),
		Method:      receipt.Method,
		Output:      hexutil.Bytes(receipt.Output),
	}
}

// ------------------------------- Call -----------------------------------

type CallArgs struct {
	From string `json:"from" validate:"required,eth_addr"`
	Data string `json:"data" validate:"required,startswith=0x,hexadecimal"`
}

type CallResult struct {
	Output hexutil.Bytes `json:"output"`
}

// Call runs a view method of the contract without a transaction.
func (t *CheckpointRPCService) Call(_ context.Context, params json.RawMessage) interface{} {
	args := &CallArgs{}
	if err := unmarshalParams(params, args); err != nil {
		return invalidParamsError(err)
	}
	if err := t.validate.Struct(args); err != nil {
		return validatorError(err)
	}

	calldata, err := hexutil.Decode(args.Data)
	if err != nil {
		return invalidParamsError(err)
	}
	output, res := t.node.Call(common.HexToAddress(args.From), calldata)
	if res.IsError() {
		return resultError(res)
	}
	return &CallResult{Output: hexutil.Bytes(output)}
}
