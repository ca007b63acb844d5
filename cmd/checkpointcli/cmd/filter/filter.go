package filter

import (
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/common/result"
	"github.com/thetatoken/checkpoint/contract"
	"github.com/thetatoken/checkpoint/rpc"
)

const (
	methodAll       = "all"
	methodBounded   = "bounded"
	methodUnbounded = "unbounded"
)

var (
	blocksFlag   uint64
	outFlag      string
	methodFlag   string
	rejectedFlag bool
)

// FilterCmd exports the checkpoint calls of the recent blocks to CSV.
var FilterCmd = &cobra.Command{
	Use:     "filter",
	Short:   "Export recent checkpoint calls to CSV",
	Long:    `Export the sender and argument of the checkpoint calls executed in the recent blocks to a CSV file.`,
	Example: `checkpointcli filter --blocks=100 --out=transactions.csv`,
	Run:     doFilterCmd,
}

func init() {
	FilterCmd.Flags().Uint64Var(&blocksFlag, "blocks", 100, "Number of recent blocks to check")
	FilterCmd.Flags().StringVar(&outFlag, "out", "transactions.csv", "Output file")
	FilterCmd.Flags().StringVar(&methodFlag, "method", methodAll, "Calls to export: all, bounded or unbounded")
	FilterCmd.Flags().BoolVar(&rejectedFlag, "rejected", false, "Also export calls the ledger rejected")
}

func doFilterCmd(cmd *cobra.Command, args []string) {
	count, err := export(utils.NewClient(), outFlag, blocksFlag, methodFlag, rejectedFlag)
	if err != nil {
		utils.Error("%v\n", err)
	}
	fmt.Printf("%v transactions saved to %v\n", count, outFlag)
}

// export fetches the calls of the last blocks and writes them to out. The
// method filter is checked before anything is fetched or out is touched.
func export(client rpc.Client, out string, blocks uint64, method string, rejected bool) (int, error) {
	if err := checkMethod(method); err != nil {
		return 0, err
	}

	res := &rpc.ListTransactionsResult{}
	if err := client.Call("ListTransactions", rpc.ListTransactionsArgs{Blocks: common.JSONUint64(blocks)}, res); err != nil {
		return 0, fmt.Errorf("failed to list transactions: %v", err)
	}

	file, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("failed to create %v: %v", out, err)
	}
	defer file.Close()

	count, err := writeCSV(file, res.Transactions, method, rejected)
	if err != nil {
		return count, fmt.Errorf("failed to write %v: %v", out, err)
	}
	return count, nil
}

func matches(tx *rpc.TxReceiptResult, method string, rejected bool) bool {
	if !rejected && tx.Code != int(result.CodeOK) {
		return false
	}
	switch method {
	case methodBounded:
		return tx.Method == contract.MethodCheckpointBounded
	case methodUnbounded:
		return tx.Method == contract.MethodCheckpointUnbounded
	}
	return tx.Method == contract.MethodCheckpointBounded || tx.Method == contract.MethodCheckpointUnbounded
}

func checkMethod(method string) error {
	switch method {
	case methodAll, methodBounded, methodUnbounded:
		return nil
	}
	return fmt.Errorf("unknown method filter: %v", method)
}

// writeCSV writes a sender,argument row per matching call and returns the
// number of rows written.
func writeCSV(w io.Writer, txs []*rpc.TxReceiptResult, method string, rejected bool) (int, error) {
	if err := checkMethod(method); err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"sender", "argument"}); err != nil {
		return 0, err
	}
	count := 0
	for _, tx := range txs {
		if !matches(tx, method, rejected) {
			continue
		}
		if err := writer.Write([]string{tx.From.Hex(), hex.EncodeToString(tx.Argument)}); err != nil {
			return count, err
		}
		count++
	}
	writer.Flush()
	return count, writer.Error()
}
