package node

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/common/result"
)

// DefaultTxHistorySize is the number of receipts kept when none is configured.
const DefaultTxHistorySize = 8192

// TxReceipt records the outcome of an executed transaction.
type TxReceipt struct {
	Hash     common.Hash
	From     common.Address
	Nonce    uint64
	Height   uint64
	Method   string
	Argument common.Bytes
	Output   common.Bytes
	Code     result.ErrorCode
	Message  string
}

// Succeeded tells whether the call was accepted by the ledger.
func (r *TxReceipt) Succeeded() bool {
	return r.Code == result.CodeOK
}

// TxHistory keeps the receipts of the most recent transactions.
type TxHistory struct {
	cache *lru.Cache // tx hash -> *TxReceipt
}

// NewTxHistory creates a history bounded to size receipts.
func NewTxHistory(size int) (*TxHistory, error) {
	if size <= 0 {
		size = DefaultTxHistorySize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &TxHistory{cache: cache}, nil
}

// Add records a receipt, evicting the oldest one when full.
func (h *TxHistory) Add(receipt *TxReceipt) {
	h.cache.Add(receipt.Hash, receipt)
}

// Get returns the receipt of a transaction, if still remembered.
func (h *TxHistory) Get(hash common.Hash) (*TxReceipt, bool) {
	v, ok := h.cache.Peek(hash)
	if !ok {
		return nil, false
	}
	return v.(*TxReceipt), true
}

// Since returns, oldest first, the receipts of blocks at or above fromHeight.
func (h *TxHistory) Since(fromHeight uint64) []*TxReceipt {
	ret := []*TxReceipt{}
	for _, key := range h.cache.Keys() {
		v, ok := h.cache.Peek(key)
		if !ok {
			continue
		}
		receipt := v.(*TxReceipt)
		if receipt.Height >= fromHeight {
			ret = append(ret, receipt)
		}
	}
	return ret
}

// Len returns the number of remembered receipts
func (h *TxHistory) Len() int {
	return h.cache.Len()
}
