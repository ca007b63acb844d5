package rpc

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/ledger/types"
	"github.com/thetatoken/checkpoint/version"
)

// ------------------------------- GetCheckpoint -----------------------------------

type GetCheckpointArgs struct {
	Address string `json:"address" validate:"required,eth_addr"`
}

type GetCheckpointResult struct {
	Address    common.Address          `json:"address"`
	Checkpoint *types.CheckpointRecord `json:"checkpoint"`
}

// GetCheckpoint returns the latest bounded checkpoint of an account. The
// checkpoint is null if the account never committed one.
func (t *CheckpointRPCService) GetCheckpoint(_ context.Context, params json.RawMessage) interface{} {
	args := &GetCheckpointArgs{}
	if err := unmarshalParams(params, args); err != nil {
		return invalidParamsError(err)
	}
	if err := t.validate.Struct(args); err != nil {
		return validatorError(err)
	}

	address := common.HexToAddress(args.Address)
	rec, res := t.node.Ledger.ReadLatest(address)
	if res.IsError() {
		return resultError(res)
	}
	return &GetCheckpointResult{Address: address, Checkpoint: rec}
}

// ------------------------------- GetUnboundedCheckpoint -----------------------------------

type GetUnboundedCheckpointResult struct {
	Address    common.Address         `json:"address"`
	Checkpoint *types.UnboundedRecord `json:"checkpoint"`
}

// GetUnboundedCheckpoint returns the latest unbounded checkpoint of an account.
func (t *CheckpointRPCService) GetUnboundedCheckpoint(_ context.Context, params json.RawMessage) interface{} {
	args := &GetCheckpointArgs{}
	if err := unmarshalParams(params, args); err != nil {
		return invalidParamsError(err)
	}
	if err := t.validate.Struct(args); err != nil {
		return validatorError(err)
	}

	address := common.HexToAddress(args.Address)
	rec, res := t.node.Ledger.ReadUnbounded(address)
	if res.IsError() {
		return resultError(res)
	}
	return &GetUnboundedCheckpointResult{Address: address, Checkpoint: rec}
}

// ------------------------------- GetStatus -----------------------------------

type GetStatusResult struct {
	ChainID       string            `json:"chain_id"`
	CurrentHeight common.JSONUint64 `json:"current_height"`
	Policy        string            `json:"policy"`
	Version       string            `json:"version"`
	GitHash       string            `json:"git_hash"`
}

// GetStatus reports the chain ID, the block height and the bound policy.
func (t *CheckpointRPCService) GetStatus(_ context.Context, _ json.RawMessage) interface{} {
	return &GetStatusResult{
		ChainID:       t.node.ChainID,
		CurrentHeight: common.JSONUint64(t.node.Height()),
		Policy:        t.node.Ledger.Policy().String(),
		Version:       version.Version,
		GitHash:       version.GitHash,
	}
}

// ------------------------------- GetNonce -----------------------------------

type GetNonceArgs struct {
	Address string `json:"address" validate:"required,eth_addr"`
}

type GetNonceResult struct {
	Nonce common.JSONUint64 `json:"nonce"`
}

// GetNonce returns the nonce the next transaction of the account must carry.
func (t *CheckpointRPCService) GetNonce(_ context.Context, params json.RawMessage) interface{} {
	args := &GetNonceArgs{}
	if err := unmarshalParams(params, args); err != nil {
		return invalidParamsError(err)
	}
	if err := t.validate.Struct(args); err != nil {
		return validatorError(err)
	}

	nonce, err := t.node.GetNonce(common.HexToAddress(args.Address))
	if err != nil {
		logger.Errorf("Failed to load nonce of %v: %v", args.Address, err)
		return internalError(err)
	}
	return &GetNonceResult{Nonce: common.JSONUint64(nonce)}
}

// ------------------------------- ListTransactions -----------------------------------

type ListTransactionsArgs struct {
	Blocks common.JSONUint64 `json:"blocks" validate:"required"`
}

type TxReceiptResult struct {
	Hash        common.Hash       `json:"hash"`
	From        common.Address    `json:"from"`
	Nonce       common.JSONUint64 `json:"nonce"`
	BlockHeight common.JSONUint64 `json:"block_height"`
	Method      string            `json:"method"`
	Argument    hexutil.Bytes     `json:"argument"`
	Code        int               `json:"code"`
	Message     string            `json:"message,omitempty"`
}

type ListTransactionsResult struct {
	CurrentHeight common.JSONUint64  `json:"current_height"`
	Transactions  []*TxReceiptResult `json:"transactions"`
}

// ListTransactions returns the receipts of the transactions executed in
// the last blocks, oldest first.
func (t *CheckpointRPCService) ListTransactions(_ context.Context, params json.RawMessage) interface{} {
	args := &ListTransactionsArgs{}
	if err := unmarshalParams(params, args); err != nil {
		return invalidParamsError(err)
	}
	if err := t.validate.Struct(args); err != nil {
		return validatorError(err)
	}

	ret := &ListTransactionsResult{
		CurrentHeight: common.JSONUint64(t.node.Height()),
		Transactions:  []*TxReceiptResult{},
	}
	for _, receipt := range t.node.RecentTxs(uint64(args.Blocks)) {
		ret.Transactions = append(ret.Transactions, &TxReceiptResult{
			Hash:        receipt.Hash,
			From:        receipt.From,
			Nonce:       common.JSONUint64(receipt.Nonce),
			BlockHeight: common.JSONUint64(receipt.Height),
			Method:      receipt.Method,
			Argument:    hexutil.Bytes(receipt.Argument),
			Code:        int(receipt.Code),
			Message:     receipt.Message,
		})
	}
	return ret
}
