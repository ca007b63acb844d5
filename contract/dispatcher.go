package contract

import (
	"errors"
	"fmt"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/common/result"
	"github.com/thetatoken/checkpoint/common/util"
	"github.com/thetatoken/checkpoint/ledger"
	"github.com/thetatoken/checkpoint/ledger/types"
)

var logger = util.GetLoggerForModule("contract")

var errUnknownMethod = errors.New("unknown method selector")

type argumentError struct {
	method string
	err    error
}

func (e *argumentError) Error() string {
	return fmt.Sprintf("malformed arguments for %v: %v", e.method, e.err)
}

// CallResult describes an executed contract call. Method and Argument are
// set whenever the call data could be decoded, Output only on success.
type CallResult struct {
	Method   string
	Argument common.Bytes
	Output   common.Bytes
}

// Dispatcher routes ABI encoded calls to the checkpoint ledger.
type Dispatcher struct {
	ledger *ledger.Ledger
}

// NewDispatcher creates a dispatcher over the ledger
func NewDispatcher(l *ledger.Ledger) *Dispatcher {
	return &Dispatcher{ledger: l}
}

// Call executes calldata on behalf of caller at the given block height.
func (d *Dispatcher) Call(caller common.Address, height uint64, calldata []byte) (*CallResult, result.Result) {
	return d.call(caller, height, calldata, false)
}

// StaticCall executes a view method. Calls to methods that modify the
// ledger are rejected.
func (d *Dispatcher) StaticCall(caller common.Address, calldata []byte) (*CallResult, result.Result) {
	return d.call(caller, 0, calldata, true)
}

func (d *Dispatcher) call(caller common.Address, height uint64, calldata []byte, static bool) (*CallResult, result.Result) {
	method, args, err := decodeCall(calldata)
	if err == errUnknownMethod {
		return nil, result.Reject(result.CodeUnknownMethod, "%v", err)
	}
	if err != nil {
		return &CallResult{Method: method.Name}, result.Reject(result.CodeEncodingError, "%v", err)
	}

	cr := &CallResult{Method: method.Name}
	if static && !method.IsConstant() {
		return cr, result.Reject(result.CodeUnknownMethod, "%v is not a view method", method.Name)
	}

	switch method.Name {
	case MethodCheckpointBounded:
		value := types.Value(args[0].([32]byte))
		cr.Argument = common.CopyBytes(value[:])
		rec, res := d.ledger.SubmitBounded(caller, value, height)
		if res.IsError() {
			return cr, res
		}
		return d.pack(cr, rec.Sequence)

	case MethodCheckpointUnbounded:
		data := args[0].([]byte)
		cr.Argument = common.CopyBytes(data)
		rec, res := d.ledger.SubmitUnbounded(caller, data, height)
		if res.IsError() {
			return cr, res
		}
		return d.pack(cr, rec.Sequence)

	case MethodA:
		rec, res := d.ledger.ReadLatest(caller)
		if res.IsError() {
			return cr, res
		}
		var value types.Value
		if rec != nil {
			value = rec.Value
		}
		return d.pack(cr, [32]byte(value))
	}

	return nil, result.Reject(result.CodeUnknownMethod, "method %v is not supported", method.Name)
}

func (d *Dispatcher) pack(cr *CallResult, ret interface{}) (*CallResult, result.Result) {
	output, err := checkpointABI.Methods[cr.Method].Outputs.Pack(ret)
	if err != nil {
		// The ledger state has already changed at this point.
		logger.Errorf("Failed to encode the output of %v: %v", cr.Method, err)
		return cr, result.Reject(result.CodeInternalError, "failed to encode output: %v", err)
	}
	cr.Output = output
	return cr, result.OK
}
