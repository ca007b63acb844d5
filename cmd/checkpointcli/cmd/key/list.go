package key

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/crypto"
)

// listCmd lists all keys
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all keys",
	Example: "checkpointcli key list",
	Run: func(cmd *cobra.Command, args []string) {
		ks := crypto.NewKeyStore(utils.KeysDir(cmd), false)
		for _, address := range ks.ListAddresses() {
			fmt.Println(address.Hex())
		}
	},
}
