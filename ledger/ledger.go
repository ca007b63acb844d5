package ledger

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/common/result"
	"github.com/thetatoken/checkpoint/common/util"
	st "github.com/thetatoken/checkpoint/ledger/state"
	"github.com/thetatoken/checkpoint/ledger/types"
	"github.com/thetatoken/checkpoint/store/database"
)

var logger *log.Entry = util.GetLoggerForModule("ledger")

// Ledger is the checkpoint ledger. It keeps the latest checkpoint of every
// account and accepts a new one only if it satisfies the bound policy.
//
// Every call runs to completion under the ledger lock, and a call either
// replaces the record of its account or leaves the ledger untouched.
type Ledger struct {
	mu     *sync.Mutex
	state  *st.StoreView
	policy types.BoundPolicy
}

// NewLedger creates a ledger over the given database.
func NewLedger(db database.Database, policy types.BoundPolicy) (*Ledger, error) {
	sv, err := st.NewStoreView(db, viper.GetInt(common.CfgLedgerCacheSize))
	if err != nil {
		return nil, err
	}
	logger.Infof("Ledger created with %v", policy)
	return &Ledger{
		mu:     &sync.Mutex{},
		state:  sv,
		policy: policy,
	}, nil
}

// PolicyFromConfig builds the bound policy from the ledger.* config entries.
func PolicyFromConfig() (types.BoundPolicy, error) {
	maxDelta, err := types.ParseMaxDelta(viper.GetString(common.CfgLedgerMaxDelta))
	if err != nil {
		return types.BoundPolicy{}, err
	}
	return types.BoundPolicy{
		Cooldown:  viper.GetUint64(common.CfgLedgerCooldown),
		MaxDelta:  maxDelta,
		Ascending: viper.GetBool(common.CfgLedgerAscending),
	}, nil
}

// Policy returns the bound policy of the ledger
func (ledger *Ledger) Policy() types.BoundPolicy {
	return ledger.policy
}

// GetState returns the state of the ledger
func (ledger *Ledger) GetState() *st.StoreView {
	return ledger.state
}

// SubmitBounded validates value against the bound policy and, if accepted,
// replaces the checkpoint of caller with a record committed at height.
// On rejection the ledger is unchanged and the result carries the reason.
func (ledger *Ledger) SubmitBounded(caller common.Address, value types.Value, height uint64) (*types.CheckpointRecord, result.Result) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	prior, err := ledger.state.GetCheckpoint(caller)
	if err != nil {
		logger.Errorf("Failed to load checkpoint of %v: %v", caller.Hex(), err)
		return nil, ledger.reject(kindBounded, result.Reject(result.CodeInternalError, "failed to load checkpoint: %v", err))
	}

	if res := ledger.checkBounds(caller, prior, value, height); res.IsError() {
		logger.WithFields(log.Fields{
			"caller": caller.Hex(),
			"value":  value.Hex(),
			"height": height,
			"reason": res.Code.String(),
		}).Debug("Bounded checkpoint rejected")
		return nil, ledger.reject(kindBounded, res)
	}

	rec := prior.Next(value, height)
	if err := ledger.state.SetCheckpoint(caller, rec); err != nil {
		logger.Errorf("Failed to commit checkpoint of %v: %v", caller.Hex(), err)
		return nil, ledger.reject(kindBounded, result.Reject(result.CodeInternalError, "failed to commit checkpoint: %v", err))
	}

	logger.WithFields(log.Fields{
		"caller":   caller.Hex(),
		"value":    value.Hex(),
		"sequence": rec.Sequence,
		"height":   height,
	}).Debug("Bounded checkpoint committed")
	ledger.accept(kindBounded, height)

	return rec.Copy(), result.OK
}

// ReadLatest returns the latest bounded checkpoint of account, or nil if the
// account never committed one. It never modifies the ledger.
func (ledger *Ledger) ReadLatest(account common.Address) (*types.CheckpointRecord, result.Result) {
	if res := checkIdentity(account); res.IsError() {
		return nil, res
	}

	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	rec, err := ledger.state.GetCheckpoint(account)
	if err != nil {
		logger.Errorf("Failed to load checkpoint of %v: %v", account.Hex(), err)
		return nil, result.Reject(result.CodeInternalError, "failed to load checkpoint: %v", err)
	}
	return rec, result.OK
}

// SubmitUnbounded replaces the unbounded checkpoint of caller. Only the
// identity of the caller is checked; data may have any length.
func (ledger *Ledger) SubmitUnbounded(caller common.Address, data []byte, height uint64) (*types.UnboundedRecord, result.Result) {
	if res := checkIdentity(caller); res.IsError() {
		return nil, ledger.reject(kindUnbounded, res)
	}

	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	prior, err := ledger.state.GetUnboundedCheckpoint(caller)
	if err != nil {
		logger.Errorf("Failed to load unbounded checkpoint of %v: %v", caller.Hex(), err)
		return nil, ledger.reject(kindUnbounded, result.Reject(result.CodeInternalError, "failed to load checkpoint: %v", err))
	}

	rec := &types.UnboundedRecord{
		Data:        common.CopyBytes(data),
		CommittedAt: height,
	}
	if prior != nil {
		rec.Sequence = prior.Sequence + 1
	}
	if err := ledger.state.SetUnboundedCheckpoint(caller, rec); err != nil {
		logger.Errorf("Failed to commit unbounded checkpoint of %v: %v", caller.Hex(), err)
		return nil, ledger.reject(kindUnbounded, result.Reject(result.CodeInternalError, "failed to commit checkpoint: %v", err))
	}

	logger.WithFields(log.Fields{
		"caller":   caller.Hex(),
		"size":     len(data),
		"sequence": rec.Sequence,
		"height":   height,
	}).Debug("Unbounded checkpoint committed")
	ledger.accept(kindUnbounded, height)

	return rec, result.OK
}

// ReadUnbounded returns the latest unbounded checkpoint of account, or nil.
func (ledger *Ledger) ReadUnbounded(account common.Address) (*types.UnboundedRecord, result.Result) {
	if res := checkIdentity(account); res.IsError() {
		return nil, res
	}

	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	rec, err := ledger.state.GetUnboundedCheckpoint(account)
	if err != nil {
		return nil, result.Reject(result.CodeInternalError, "failed to load checkpoint: %v", err)
	}
	return rec, result.OK
}
