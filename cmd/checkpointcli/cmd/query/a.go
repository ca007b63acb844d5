package query

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/contract"
	"github.com/thetatoken/checkpoint/rpc"
)

// aCmd reads the latest bounded checkpoint through the a() view method.
// Example:
//		checkpointcli query a --address=0x2e833968e5bb786ae419c4d13189fb081cc43bab
var aCmd = &cobra.Command{
	Use:     "a",
	Short:   "Read the latest bounded checkpoint value",
	Example: `checkpointcli query a --address=0x2e833968e5bb786ae419c4d13189fb081cc43bab`,
	Run:     doACmd,
}

func init() {
	aCmd.Flags().StringVar(&addressFlag, "address", "", "Address of the account")
	aCmd.MarkFlagRequired("address")
}

func doACmd(cmd *cobra.Command, args []string) {
	calldata, err := contract.PackA()
	if err != nil {
		utils.Error("Failed to encode call: %v\n", err)
	}

	res := &rpc.CallResult{}
	err = utils.NewClient().Call("Call", rpc.CallArgs{From: addressFlag, Data: hexutil.Encode(calldata)}, res)
	if err != nil {
		utils.Error("Failed to call a(): %v\n", err)
	}
	value, err := contract.UnpackA(res.Output)
	if err != nil {
		utils.Error("Failed to decode the output of a(): %v\n", err)
	}
	fmt.Printf("C.a = %v\n", value.Hex())
}
