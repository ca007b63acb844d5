package contract

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/ledger/types"
)

// Method names of the Checkpoint contract
const (
	MethodCheckpointBounded   = "checkpointBounded"
	MethodCheckpointUnbounded = "checkpointUnbounded"
	MethodA                   = "a"
)

// CheckpointABI is the ABI of the Checkpoint contract.
const CheckpointABI = `[
	{
		"type": "function",
		"name": "checkpointBounded",
		"stateMutability": "nonpayable",
		"inputs": [{"name": "data", "type": "bytes32"}],
		"outputs": [{"name": "sequence", "type": "uint64"}]
	},
	{
		"type": "function",
		"name": "checkpointUnbounded",
		"stateMutability": "nonpayable",
		"inputs": [{"name": "data", "type": "bytes"}],
		"outputs": [{"name": "sequence", "type": "uint64"}]
	},
	{
		"type": "function",
		"name": "a",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "bytes32"}]
	}
]`

var checkpointABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(CheckpointABI))
	if err != nil {
		panic(fmt.Sprintf("invalid Checkpoint ABI: %v", err))
	}
	checkpointABI = parsed
}

// ABI returns the parsed ABI of the Checkpoint contract
func ABI() abi.ABI {
	return checkpointABI
}

// PackBounded encodes a checkpointBounded(bytes32) call.
func PackBounded(value types.Value) (common.Bytes, error) {
	return checkpointABI.Pack(MethodCheckpointBounded, [32]byte(value))
}

// PackUnbounded encodes a checkpointUnbounded(bytes) call.
func PackUnbounded(data []byte) (common.Bytes, error) {
	return checkpointABI.Pack(MethodCheckpointUnbounded, data)
}

// PackA encodes an a() call.
func PackA() (common.Bytes, error) {
	return checkpointABI.Pack(MethodA)
}

// LeftPad32 parses a hex string into a checkpoint value, left padding it
// with zeros to 32 bytes. Inputs longer than 32 bytes are rejected.
func LeftPad32(hex string) (types.Value, error) {
	return types.ParseValue(hex)
}

// DecodeArgument returns the method name and the raw argument of a call
// to one of the checkpoint methods. a() has no argument.
func DecodeArgument(calldata []byte) (string, common.Bytes, error) {
	method, args, err := decodeCall(calldata)
	if err != nil {
		return "", nil, err
	}
	switch method.Name {
	case MethodCheckpointBounded:
		value := args[0].([32]byte)
		return method.Name, common.CopyBytes(value[:]), nil
	case MethodCheckpointUnbounded:
		return method.Name, common.CopyBytes(args[0].([]byte)), nil
	}
	return method.Name, nil, nil
}

// UnpackSequence decodes the return data of checkpointBounded or
// checkpointUnbounded.
func UnpackSequence(method string, output []byte) (uint64, error) {
	vals, err := checkpointABI.Unpack(method, output)
	if err != nil {
		return 0, err
	}
	seq, ok := vals[0].(uint64)
	if !ok {
		return 0, fmt.Errorf("unexpected output of %v", method)
	}
	return seq, nil
}

// UnpackA decodes the return data of a().
func UnpackA(output []byte) (types.Value, error) {
	vals, err := checkpointABI.Unpack(MethodA, output)
	if err != nil {
		return types.Value{}, err
	}
	value, ok := vals[0].([32]byte)
	if !ok {
		return types.Value{}, fmt.Errorf("unexpected output of %v", MethodA)
	}
	return types.Value(value), nil
}

func decodeCall(calldata []byte) (*abi.Method, []interface{}, error) {
	if len(calldata) < 4 {
		return nil, nil, errUnknownMethod
	}
	method, err := checkpointABI.MethodById(calldata[:4])
	if err != nil {
		return nil, nil, errUnknownMethod
	}
	args, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return method, nil, &argumentError{method: method.Name, err: err}
	}
	return method, args, nil
}
