package query

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
)

var (
	addressFlag   string
	unboundedFlag bool
)

// QueryCmd represents the query command
var QueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query checkpoints and node status",
}

func init() {
	QueryCmd.AddCommand(aCmd)
	QueryCmd.AddCommand(checkpointCmd)
	QueryCmd.AddCommand(statusCmd)
}

func printJSON(v interface{}) {
	json, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		utils.Error("Failed to parse server response: %v\n", err)
	}
	fmt.Println(string(json))
}
