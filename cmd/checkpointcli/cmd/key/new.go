package key

import (
	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/crypto"
)

// newCmd generates a new key
var newCmd = &cobra.Command{
	Use:     "new",
	Short:   "Generates a new private key",
	Long:    `Generates a new private key and stores it encrypted in the keystore.`,
	Example: "checkpointcli key new",
	Run: func(cmd *cobra.Command, args []string) {
		password, err := utils.GetPassword("Please enter password: ")
		if err != nil {
			utils.Error("Failed to get password: %v\n", err)
		}
		confirmation, err := utils.GetPassword("Please enter password again: ")
		if err != nil {
			utils.Error("Failed to get password: %v\n", err)
		}
		if password != confirmation {
			utils.Error("Passwords do not match\n")
		}

		privKey, _, err := crypto.GenerateKeyPair()
		if err != nil {
			utils.Error("Failed to generate new key: %v\n", err)
		}
		address, err := crypto.NewKeyStore(utils.KeysDir(cmd), false).StoreKey(privKey, password)
		if err != nil {
			utils.Error("Failed to store new key: %v\n", err)
		}

		utils.Success("Successfully created key: %v", address.Hex())
	},
}
