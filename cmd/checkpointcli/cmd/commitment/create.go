package commitment

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/crypto"
)

// createCmd creates a knowledge commitment for a hotkey
var createCmd = &cobra.Command{
	Use:     "create <hotkey>",
	Short:   "Create a knowledge commitment",
	Example: "checkpointcli commitment create 5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key, err := utils.LoadSigner(cmd, fromFlag)
		if err != nil {
			utils.Error("Failed to load key: %v\n", err)
		}
		data, err := crypto.CreateKnowledgeCommitment(args[0], key)
		if err != nil {
			utils.Error("Failed to create commitment: %v\n", err)
		}
		fmt.Printf("Address:    %v\n", key.Address().Hex())
		fmt.Printf("Commitment: %v\n", hexutil.Encode(data))
	},
}

func init() {
	createCmd.Flags().StringVar(&fromFlag, "from", "", "address of the keystore key to commit")
}
