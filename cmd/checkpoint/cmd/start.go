package cmd

import (
	"context"
	"os"
	"os/signal"
	"path"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/node"
	"github.com/thetatoken/checkpoint/rpc"
	"github.com/thetatoken/checkpoint/store/database/backend"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start checkpoint node.",
	Run:   runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) {
	dataPath := viper.GetString(common.CfgDataPath)
	if dataPath == "" {
		dataPath = cfgPath
	}
	dbPath := path.Join(dataPath, "db", "main")
	storage := viper.GetString(common.CfgStorageBackend)
	db, err := backend.OpenDatabase(storage, dbPath,
		viper.GetInt(common.CfgStorageCacheMB), viper.GetInt(common.CfgStorageFileHandles))
	if err != nil {
		log.WithFields(log.Fields{"err": err, "path": dbPath, "backend": storage}).Fatal("Failed to open the db")
	}
	defer db.Close()

	params, err := node.ParamsFromConfig()
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("Invalid node configuration")
	}
	params.DB = db

	n, err := node.NewNode(params)
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("Failed to create node")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n.Start(ctx)

	var server *rpc.CheckpointRPCServer
	if viper.GetBool(common.CfgRPCEnabled) {
		server = rpc.NewCheckpointRPCServer(n)
		server.Start(ctx)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.WithFields(log.Fields{"signal": sig}).Info("Shutting down")

	if server != nil {
		server.Stop()
		server.Wait()
	}
	n.Stop()
	n.Wait()
}
