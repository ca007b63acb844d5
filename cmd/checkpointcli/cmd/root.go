package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/call"
	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/commitment"
	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/filter"
	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/key"
	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/query"
	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd/utils"
)

var cfgPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "checkpointcli",
	Short: "Checkpoint ledger client",
	Long:  `Checkpoint ledger client: submit checkpoints, query them and manage keys.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", getDefaultConfigPath(), fmt.Sprintf("config path (default is %s)", getDefaultConfigPath()))
	RootCmd.PersistentFlags().String("rpc", viper.GetString(utils.CfgRemoteRPCEndpoint), "RPC endpoint of the node")
	viper.BindPFlag(utils.CfgRemoteRPCEndpoint, RootCmd.PersistentFlags().Lookup("rpc"))

	RootCmd.AddCommand(call.CallCmd)
	RootCmd.AddCommand(query.QueryCmd)
	RootCmd.AddCommand(filter.FilterCmd)
	RootCmd.AddCommand(key.KeyCmd)
	RootCmd.AddCommand(commitment.CommitmentCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.AddConfigPath(cfgPath)

	// Search config (without extension).
	viper.SetConfigName("config")

	viper.SetEnvPrefix("CHECKPOINT")
	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil && viper.GetBool(utils.CfgDebug) {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func getDefaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return path.Join(home, ".checkpointcli")
}
