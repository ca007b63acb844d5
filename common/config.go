package common

import (
	"github.com/spf13/viper"
)

const (
	// CfgConfigPath defines custom config path
	CfgConfigPath = "config.path"
	// CfgDataPath defines custom DB path
	CfgDataPath = "data.path"
	// CfgKeyPath defines custom key path
	CfgKeyPath = "key.path"

	// CfgGenesisChainID defines the chainID.
	CfgGenesisChainID = "genesis.chainID"

	// CfgLedgerCooldown defines the cooldown of bounded checkpoints committed
	// at the height of the prior one. Zero allows several per block.
	CfgLedgerCooldown = "ledger.cooldown"
	// CfgLedgerMaxDelta defines the maximal distance between two consecutive
	// checkpoint values. Empty disables the magnitude bound.
	CfgLedgerMaxDelta = "ledger.maxDelta"
	// CfgLedgerAscending requires checkpoint values to never decrease.
	CfgLedgerAscending = "ledger.ascending"
	// CfgLedgerCacheSize defines the number of records kept in the ledger cache.
	CfgLedgerCacheSize = "ledger.cacheSize"

	// CfgNodeBlockInterval defines the interval between two logical blocks.
	CfgNodeBlockInterval = "node.blockInterval"
	// CfgNodeTxHistorySize defines how many executed transactions are remembered.
	CfgNodeTxHistorySize = "node.txHistorySize"

	// CfgStorageBackend selects the database backend (leveldb, badger or memory).
	CfgStorageBackend = "storage.backend"
	// CfgStorageCacheMB sets the LevelDB cache size in MiB.
	CfgStorageCacheMB = "storage.cacheMB"
	// CfgStorageFileHandles sets the number of file handles LevelDB may keep open.
	CfgStorageFileHandles = "storage.fileHandles"

	// CfgRPCEnabled sets whether to run RPC service.
	CfgRPCEnabled = "rpc.enabled"
	// CfgRPCAddress sets the binding address of RPC service.
	CfgRPCAddress = "rpc.address"
	// CfgRPCPort sets the port of RPC service.
	CfgRPCPort = "rpc.port"
	// CfgRPCMaxConnections limits concurrent connections accepted by RPC server.
	CfgRPCMaxConnections = "rpc.maxConnections"
	// CfgRPCTimeoutSecs set a timeout for RPC.
	CfgRPCTimeoutSecs = "rpc.timeoutSecs"

	// CfgMetricsEnabled exposes prometheus metrics under /metrics.
	CfgMetricsEnabled = "metrics.enabled"

	// CfgLogLevels sets the log level.
	CfgLogLevels = "log.levels"
)

// InitialConfig is the default configuartion produced by init command.
const InitialConfig = `# Checkpoint node configuration
genesis:
  chainID: privatenet
ledger:
  cooldown: 1
  maxDelta: ""
rpc:
  enabled: true
  port: 16900
`

func init() {
	viper.SetDefault(CfgGenesisChainID, "privatenet")

	viper.SetDefault(CfgLedgerCooldown, 1)
	viper.SetDefault(CfgLedgerMaxDelta, "")
	viper.SetDefault(CfgLedgerAscending, false)
	viper.SetDefault(CfgLedgerCacheSize, 4096)

	viper.SetDefault(CfgNodeBlockInterval, "1s")
	viper.SetDefault(CfgNodeTxHistorySize, 8192)

	viper.SetDefault(CfgStorageBackend, "leveldb")
	viper.SetDefault(CfgStorageCacheMB, 64)
	viper.SetDefault(CfgStorageFileHandles, 64)

	viper.SetDefault(CfgRPCEnabled, true)
	viper.SetDefault(CfgRPCAddress, "0.0.0.0")
	viper.SetDefault(CfgRPCPort, "16900")
	viper.SetDefault(CfgRPCMaxConnections, 200)
	viper.SetDefault(CfgRPCTimeoutSecs, 60)

	viper.SetDefault(CfgMetricsEnabled, true)

	viper.SetDefault(CfgLogLevels, "*:info")
}

// WriteInitialConfig writes initial config file to file system.
func WriteInitialConfig(filePath string) error {
	return WriteFileAtomic(filePath, []byte(InitialConfig), 0600)
}
