package call

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/contract"
)

// unboundedCmd submits an unbounded checkpoint
var unboundedCmd = &cobra.Command{
	Use:     "unbounded <hex data>",
	Short:   "Submit an unbounded checkpoint",
	Example: `checkpointcli call unbounded 0x68656c6c6f`,
	Args:    cobra.ExactArgs(1),
	Run:     doUnboundedCmd,
}

func doUnboundedCmd(cmd *cobra.Command, args []string) {
	data, err := decodeHex(args[0])
	if err != nil {
		utils.Error("Invalid data: %v\n", err)
	}
	calldata, err := contract.PackUnbounded(data)
	if err != nil {
		utils.Error("Failed to encode call: %v\n", err)
	}
	send(cmd, calldata, hexutil.Encode(data))
}

// decodeHex accepts hex with or without the 0x prefix.
func decodeHex(s string) ([]byte, error) {
	if len(s) < 2 || s[:2] != "0x" {
		s = "0x" + s
	}
	if len(s)%2 == 1 {
		s = "0x0" + s[2:]
	}
	return hexutil.Decode(s)
}
