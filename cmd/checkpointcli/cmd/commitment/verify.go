package commitment

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/crypto"
)

// verifyCmd verifies a knowledge commitment and prints the committed address
var verifyCmd = &cobra.Command{
	Use:     "verify <hotkey> <commitment>",
	Short:   "Verify a knowledge commitment",
	Example: "checkpointcli commitment verify 5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY 0x...",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := hexutil.Decode(args[1])
		if err != nil {
			utils.Error("Invalid commitment: %v\n", err)
		}
		address, ok := crypto.UnpackKnowledgeCommitment(args[0], data)
		if !ok {
			utils.Error("Commitment does not verify for hotkey %v\n", args[0])
		}
		utils.Success("%v", address.Hex())
	},
}
