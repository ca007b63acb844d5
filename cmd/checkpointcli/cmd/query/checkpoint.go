package query

import (
	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/rpc"
)

// checkpointCmd represents the checkpoint command.
// Example:
//		checkpointcli query checkpoint --address=0x2e833968e5bb786ae419c4d13189fb081cc43bab
var checkpointCmd = &cobra.Command{
	Use:     "checkpoint",
	Short:   "Get the checkpoint record of an account",
	Example: `checkpointcli query checkpoint --address=0x2e833968e5bb786ae419c4d13189fb081cc43bab`,
	Run:     doCheckpointCmd,
}

func init() {
	checkpointCmd.Flags().StringVar(&addressFlag, "address", "", "Address of the account")
	checkpointCmd.Flags().BoolVar(&unboundedFlag, "unbounded", false, "Get the unbounded checkpoint instead")
	checkpointCmd.MarkFlagRequired("address")
}

func doCheckpointCmd(cmd *cobra.Command, args []string) {
	client := utils.NewClient()
	queryArgs := rpc.GetCheckpointArgs{Address: addressFlag}

	if unboundedFlag {
		res := &rpc.GetUnboundedCheckpointResult{}
		if err := client.Call("GetUnboundedCheckpoint", queryArgs, res); err != nil {
			utils.Error("Failed to get checkpoint: %v\n", err)
		}
		printJSON(res)
		return
	}

	res := &rpc.GetCheckpointResult{}
	if err := client.Call("GetCheckpoint", queryArgs, res); err != nil {
		utils.Error("Failed to get checkpoint: %v\n", err)
	}
	printJSON(res)
}
