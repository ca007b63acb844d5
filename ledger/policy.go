package ledger

import (
	"github.com/holiman/uint256"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/common/result"
	"github.com/thetatoken/checkpoint/ledger/types"
)

// checkBounds evaluates the bound policy. The checks run in a fixed order
// and the first failure wins: freshness, magnitude, identity.
func (ledger *Ledger) checkBounds(caller common.Address, prior *types.CheckpointRecord, value types.Value, height uint64) result.Result {
	if res := checkFreshness(ledger.policy, prior, height); res.IsError() {
		return res
	}
	if res := checkMagnitude(ledger.policy, prior, value); res.IsError() {
		return res
	}
	return checkIdentity(caller)
}

// checkFreshness accepts a commit at a strictly later height than the prior
// one, or at the same height once Cooldown blocks have elapsed, which only a
// zero Cooldown allows. Heights before the prior commit are always too soon,
// which keeps CommittedAt non-decreasing.
func checkFreshness(policy types.BoundPolicy, prior *types.CheckpointRecord, height uint64) result.Result {
	if prior == nil {
		return result.OK
	}
	if height < prior.CommittedAt {
		return result.Reject(result.CodeTooSoon,
			"height %v precedes the last commit at height %v", height, prior.CommittedAt)
	}
	elapsed := height - prior.CommittedAt
	if height > prior.CommittedAt || elapsed >= policy.Cooldown {
		return result.OK
	}
	return result.Reject(result.CodeTooSoon,
		"already committed at height %v, %v of %v cooldown blocks elapsed", prior.CommittedAt, elapsed, policy.Cooldown)
}

// checkMagnitude compares values as unsigned big-endian integers.
func checkMagnitude(policy types.BoundPolicy, prior *types.CheckpointRecord, value types.Value) result.Result {
	if prior == nil || (policy.MaxDelta == nil && !policy.Ascending) {
		return result.OK
	}

	newValue := value.Uint256()
	priorValue := prior.Value.Uint256()

	if policy.Ascending && newValue.Lt(priorValue) {
		return result.Reject(result.CodeOutOfBound,
			"value %v is lower than the previous value %v", value.Hex(), prior.Value.Hex())
	}
	if policy.MaxDelta == nil {
		return result.OK
	}

	delta, overflow := distance(newValue, priorValue)
	if overflow {
		// Unreachable: the larger operand is always the minuend.
		return result.Reject(result.CodeInternalError,
			"overflow computing distance between %v and %v", value.Hex(), prior.Value.Hex())
	}
	if delta.Gt(policy.MaxDelta) {
		return result.Reject(result.CodeOutOfBound,
			"distance %v exceeds the maximum delta %v", delta.ToBig(), policy.MaxDelta.ToBig())
	}
	return result.OK
}

// distance returns |a - b|. The overflow flag reports a wrapped subtraction.
func distance(a, b *uint256.Int) (*uint256.Int, bool) {
	if a.Lt(b) {
		a, b = b, a
	}
	return new(uint256.Int).SubOverflow(a, b)
}

// checkIdentity rejects the zero address, which no key can sign for.
func checkIdentity(caller common.Address) result.Result {
	if caller == (common.Address{}) {
		return result.Reject(result.CodeInvalidCaller, "caller address is empty")
	}
	return result.OK
}
