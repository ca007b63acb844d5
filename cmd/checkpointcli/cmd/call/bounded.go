package call

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/contract"
)

// boundedCmd submits a bounded checkpoint
var boundedCmd = &cobra.Command{
	Use:     "bounded <hex data - max 32 bytes>",
	Short:   "Submit a bounded checkpoint",
	Long:    `Submit a bounded checkpoint. The value is left padded with zeros to 32 bytes.`,
	Example: `checkpointcli call bounded 0x45ab`,
	Args:    cobra.ExactArgs(1),
	Run:     doBoundedCmd,
}

func doBoundedCmd(cmd *cobra.Command, args []string) {
	value, err := contract.LeftPad32(args[0])
	if err != nil {
		utils.Error("Invalid data: %v\n", err)
	}
	calldata, err := contract.PackBounded(value)
	if err != nil {
		utils.Error("Failed to encode call: %v\n", err)
	}
	send(cmd, calldata, strings.TrimPrefix(args[0], "0x"))
}
