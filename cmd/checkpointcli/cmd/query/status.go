package query

import (
	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/rpc"
)

// statusCmd represents the status command.
// Example:
//		checkpointcli query status
var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Get node status",
	Example: `checkpointcli query status`,
	Run: func(cmd *cobra.Command, args []string) {
		res := &rpc.GetStatusResult{}
		if err := utils.NewClient().Call("GetStatus", struct{}{}, res); err != nil {
			utils.Error("Failed to get node status: %v\n", err)
		}
		printJSON(res)
	},
}
