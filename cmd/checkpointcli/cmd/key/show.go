package key

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/crypto"
)

// showCmd prints the public key of a stored key
var showCmd = &cobra.Command{
	Use:     "show <address>",
	Short:   "Show the public key of a key",
	Example: "checkpointcli key show 0x2e833968e5bb786ae419c4d13189fb081cc43bab",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !common.IsHexAddress(args[0]) {
			utils.Error("Invalid address: %v\n", args[0])
		}
		password, err := utils.GetPassword("Please enter password: ")
		if err != nil {
			utils.Error("Failed to get password: %v\n", err)
		}

		ks := crypto.NewKeyStore(utils.KeysDir(cmd), false)
		key, err := ks.LoadKey(common.HexToAddress(args[0]), password)
		if err != nil {
			utils.Error("Failed to load key: %v\n", err)
		}
		fmt.Printf("Address:    %v\n", key.Address().Hex())
		fmt.Printf("Public key: %v\n", hexutil.Encode(key.PublicKey().ToBytes()))
	},
}
