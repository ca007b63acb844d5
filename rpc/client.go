package rpc

import (
	"fmt"

	"github.com/ybbus/jsonrpc"

	"github.com/thetatoken/checkpoint/common/result"
)

// Client calls the RPC methods of a checkpoint node.
type Client interface {
	Call(name string, args interface{}, result interface{}) error
}

// NewClient creates an HTTP client for the /rpc endpoint at url.
func NewClient(url string) Client {
	return HTTPClient{jsonrpc.NewRPCClient(url)}
}

// ResultError is returned by the client when the node rejected a call
// with a ledger result.
type ResultError struct {
	Result result.Result
}

func (e *ResultError) Error() string {
	return e.Result.Error()
}

//
// --------------------- HTTP client -------------------------
//

type HTTPClient struct {
	*jsonrpc.RPCClient
}

// Call invokes the method name, prefixing it with the checkpoint namespace.
func (c HTTPClient) Call(name string, args interface{}, res interface{}) error {
	rpcRes, err := c.RPCClient.Call(MethodPrefix+name, args)
	if err != nil {
		return err
	}
	if rpcRes.Error != nil {
		if code, ok := ResultFromErrorCode(rpcRes.Error.Code); ok {
			msg, _ := rpcRes.Error.Data.(string)
			return &ResultError{Result: result.Reject(code, "%s", msg)}
		}
		return fmt.Errorf("%v: %v", rpcRes.Error.Message, rpcRes.Error.Data)
	}
	return rpcRes.GetObject(res)
}
