package commitment

import (
	"github.com/spf13/cobra"
)

var fromFlag string

// CommitmentCmd represents the commitment command
var CommitmentCmd = &cobra.Command{
	Use:   "commitment",
	Short: "Create and verify knowledge commitments",
	Long:  `Create and verify knowledge commitments binding an h160 address to a hotkey.`,
}

func init() {
	CommitmentCmd.AddCommand(createCmd)
	CommitmentCmd.AddCommand(verifyCmd)
}
