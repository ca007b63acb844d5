package call

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/crypto"
	"github.com/thetatoken/checkpoint/rpc"
)

// Common flags used in call sub commands.
var (
	chainIDFlag string
	fromFlag    string
)

// CallCmd represents the call command
var CallCmd = &cobra.Command{
	Use:   "call",
	Short: "Submit checkpoints",
	Long:  `Submit checkpoints signed with the key in PRIVATE_KEY or a keystore key.`,
}

func init() {
	CallCmd.PersistentFlags().StringVar(&chainIDFlag, "chain", "", "chain ID (default is the chain of the node)")
	CallCmd.PersistentFlags().StringVar(&fromFlag, "from", "", "address of the keystore key to sign with")

	CallCmd.AddCommand(boundedCmd)
	CallCmd.AddCommand(unboundedCmd)
}

// send signs calldata, submits it and prints the receipt. Rejections are
// reported as is; the call is not retried.
func send(cmd *cobra.Command, calldata common.Bytes, data string) {
	key, err := utils.LoadSigner(cmd, fromFlag)
	if err != nil {
		utils.Error("Failed to load key: %v\n", err)
	}
	client := utils.NewClient()

	chainID := chainIDFlag
	if chainID == "" {
		status := &rpc.GetStatusResult{}
		if err := client.Call("GetStatus", struct{}{}, status); err != nil {
			utils.Error("Failed to get node status: %v\n", err)
		}
		chainID = status.ChainID
	}

	nonce := &rpc.GetNonceResult{}
	if err := client.Call("GetNonce", rpc.GetNonceArgs{Address: key.Address().Hex()}, nonce); err != nil {
		utils.Error("Failed to get nonce: %v\n", err)
	}

	tx := &crypto.Transaction{
		ChainID: chainID,
		Nonce:   uint64(nonce.Nonce),
		Data:    calldata,
	}
	if err := crypto.SignTx(tx, key); err != nil {
		utils.Error("Failed to sign transaction: %v\n", err)
	}

	receipt := &rpc.SendTxResult{}
	if err := client.Call("SendTx", rpc.SendTxArgs{Tx: tx}, receipt); err != nil {
		utils.Error("%v", rejectionMessage(err))
	}

	utils.Success("Successfully stored data on the blockchain")
	fmt.Println("Details:")
	fmt.Printf("  Account: %v\n", key.Address().Hex())
	fmt.Printf("  Transaction hash: %v\n", receipt.Hash.Hex())
	fmt.Printf("  Block number: %v\n", uint64(receipt.BlockHeight))
	fmt.Printf("  Data: %v\n", data)
}

// rejectionMessage describes a failed submission. Rejections the caller may
// overcome by trying again later carry a hint; nothing is retried here.
func rejectionMessage(err error) string {
	msg := fmt.Sprintf("Error: %v\n", err)
	if resErr, ok := err.(*rpc.ResultError); ok && resErr.Result.Code.IsRetryable() {
		msg += "The checkpoint was rejected but may be accepted if submitted again later.\n"
	}
	return msg
}
