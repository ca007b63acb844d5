package state

import "github.com/thetatoken/checkpoint/common"

//
// ------------------------- Ledger State Keys -------------------------
//

// CheckpointKeyPrefix returns the prefix of the bounded checkpoint keys
func CheckpointKeyPrefix() common.Bytes {
	return common.Bytes("ls/cp/")
}

// CheckpointKey constructs the state key of the bounded checkpoint of the given account
func CheckpointKey(addr common.Address) common.Bytes {
	return append(CheckpointKeyPrefix(), addr[:]...)
}

// UnboundedCheckpointKeyPrefix returns the prefix of the unbounded checkpoint keys
func UnboundedCheckpointKeyPrefix() common.Bytes {
	return common.Bytes("ls/ucp/")
}

// UnboundedCheckpointKey constructs the state key of the unbounded checkpoint of the given account
func UnboundedCheckpointKey(addr common.Address) common.Bytes {
	return append(UnboundedCheckpointKeyPrefix(), addr[:]...)
}
