package node

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/common/result"
	"github.com/thetatoken/checkpoint/common/util"
	"github.com/thetatoken/checkpoint/contract"
	"github.com/thetatoken/checkpoint/crypto"
	ld "github.com/thetatoken/checkpoint/ledger"
	"github.com/thetatoken/checkpoint/ledger/types"
	"github.com/thetatoken/checkpoint/store"
	"github.com/thetatoken/checkpoint/store/database"
	"github.com/thetatoken/checkpoint/store/kvstore"
)

var logger *log.Entry = util.GetLoggerForModule("node")

// NonceKeyPrefix prefixes the keys of account nonces
var NonceKeyPrefix = common.Bytes("ls/nonce/")

func nonceKey(addr common.Address) common.Bytes {
	return append(append(common.Bytes{}, NonceKeyPrefix...), addr[:]...)
}

// Node executes signed transactions against the checkpoint ledger. All
// transactions are serialized: the ledger only ever sees one call at a time.
type Node struct {
	ChainID    string
	Store      store.Store
	Ledger     *ld.Ledger
	Dispatcher *contract.Dispatcher
	Clock      *Clock
	History    *TxHistory

	mu *sync.Mutex

	// Life cycle
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

// Params configures a node
type Params struct {
	ChainID       string
	DB            database.Database
	Policy        types.BoundPolicy
	BlockInterval time.Duration
	TxHistorySize int
}

// ParamsFromConfig fills Params from the config, leaving DB unset.
func ParamsFromConfig() (*Params, error) {
	policy, err := ld.PolicyFromConfig()
	if err != nil {
		return nil, err
	}
	return &Params{
		ChainID:       viper.GetString(common.CfgGenesisChainID),
		Policy:        policy,
		BlockInterval: viper.GetDuration(common.CfgNodeBlockInterval),
		TxHistorySize: viper.GetInt(common.CfgNodeTxHistorySize),
	}, nil
}

// NewNode creates a node over params.DB
func NewNode(params *Params) (*Node, error) {
	kv := kvstore.NewKVStore(params.DB)
	ledger, err := ld.NewLedger(params.DB, params.Policy)
	if err != nil {
		return nil, err
	}
	clock, err := NewClock(kv, params.BlockInterval)
	if err != nil {
		return nil, err
	}
	history, err := NewTxHistory(params.TxHistorySize)
	if err != nil {
		return nil, err
	}

	return &Node{
		ChainID:    params.ChainID,
		Store:      kv,
		Ledger:     ledger,
		Dispatcher: contract.NewDispatcher(ledger),
		Clock:      clock,
		History:    history,
		mu:         &sync.Mutex{},
	}, nil
}

// Start starts sub components and kick off the main loop.
func (n *Node) Start(ctx context.Context) {
	c, cancel := context.WithCancel(ctx)
	n.ctx = c
	n.cancel = cancel

	n.Clock.Start(n.ctx)
	logger.Infof("Node started at height %v, chain %v", n.Clock.Height(), n.ChainID)
}

// Stop notifies all sub components to stop without blocking.
func (n *Node) Stop() {
	n.mu.Lock()
	n.stopped = true
	n.mu.Unlock()

	n.Clock.Stop()
	if n.cancel != nil {
		n.cancel()
	}
}

// Wait blocks until all sub components stop.
func (n *Node) Wait() {
	n.Clock.Wait()
}

// Height returns the current block height
func (n *Node) Height() uint64 {
	return n.Clock.Height()
}

// GetNonce returns the nonce the next transaction of addr must carry.
func (n *Node) GetNonce(addr common.Address) (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.getNonce(addr)
}

func (n *Node) getNonce(addr common.Address) (uint64, error) {
	var nonce uint64
	err := n.Store.Get(nonceKey(addr), &nonce)
	if err == store.ErrKeyNotFound {
		return 0, nil
	}
	return nonce, err
}

// SubmitTx screens a signed transaction and executes its call data at the
// current height. A transaction that passes screening consumes its nonce
// even if the ledger rejects the call; the receipt then carries the reason.
func (n *Node) SubmitTx(tx *crypto.Transaction) (*TxReceipt, result.Result) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return nil, result.Error("node is stopped")
	}

	if res := n.screenTx(tx); res.IsError() {
		mTxs.WithLabelValues(res.Code.String()).Inc()
		return nil, res
	}

	if err := n.Store.Put(nonceKey(tx.From), tx.Nonce+1); err != nil {
		logger.Errorf("Failed to update the nonce of %v: %v", tx.From.Hex(), err)
		return nil, result.Reject(result.CodeInternalError, "failed to update nonce: %v", err)
	}

	height := n.Clock.Height()
	cr, res := n.Dispatcher.Call(tx.From, height, tx.Data)

	receipt := &TxReceipt{
		Hash:    tx.Hash(),
		From:    tx.From,
		Nonce:   tx.Nonce,
		Height:  height,
		Code:    res.Code,
		Message: res.Message,
	}
	if cr != nil {
		receipt.Method = cr.Method
		receipt.Argument = cr.Argument
		receipt.Output = cr.Output
	}
	n.History.Add(receipt)
	mTxs.WithLabelValues(res.Code.String()).Inc()

	logger.WithFields(log.Fields{
		"hash":   receipt.Hash.Hex(),
		"from":   tx.From.Hex(),
		"nonce":  tx.Nonce,
		"height": height,
		"method": receipt.Method,
		"result": res.Code.String(),
	}).Info("Executed transaction")

	return receipt, res
}

func (n *Node) screenTx(tx *crypto.Transaction) result.Result {
	if tx.ChainID != n.ChainID {
		return result.Reject(result.CodeInvalidChainID,
			"wrong chain ID, expected %v, got %v", n.ChainID, tx.ChainID)
	}
	if _, err := crypto.RecoverSender(tx); err != nil {
		return result.Reject(result.CodeUnauthorized, "%v", err)
	}
	expected, err := n.getNonce(tx.From)
	if err != nil {
		logger.Errorf("Failed to load the nonce of %v: %v", tx.From.Hex(), err)
		return result.Reject(result.CodeInternalError, "failed to load nonce: %v", err)
	}
	if tx.Nonce != expected {
		return result.Reject(result.CodeInvalidNonce,
			"invalid nonce, expected %v, got %v", expected, tx.Nonce)
	}
	return result.OK
}

// Call runs a view method of the contract on behalf of from.
func (n *Node) Call(from common.Address, calldata []byte) (common.Bytes, result.Result) {
	cr, res := n.Dispatcher.StaticCall(from, calldata)
	if res.IsError() {
		return nil, res
	}
	return cr.Output, res
}

// RecentTxs returns the receipts of the last blocks, the current one
// included, oldest first.
func (n *Node) RecentTxs(blocks uint64) []*TxReceipt {
	height := n.Clock.Height()
	from := uint64(0)
	if height > blocks {
		from = height - blocks
	}
	return n.History.Since(from)
}
