package common

import (
	"github.com/spf13/viper"
)

const (
	// CfgConfigPath defines custom config path
	CfgConfigPath = "config.path"
	// CfgDataPath defines custom data path, defaults to the config path
	CfgDataPath = "data.path"

	// CfgGenesisFile is the path of the genesis document, relative to the config path
	CfgGenesisFile = "genesis.file"

	// CfgStorageBackend selects the database backend (leveldb|badgerdb|memdb)
	CfgStorageBackend = "storage.backend"
	// CfgStorageCacheSize is the leveldb cache size in MB
	CfgStorageCacheSize = "storage.cacheSize"
	// CfgStorageFileHandles is the number of open files leveldb may keep
	CfgStorageFileHandles = "storage.fileHandles"

	// CfgLedgerVaultCacheSize is the number of decoded vaults kept in memory
	CfgLedgerVaultCacheSize = "ledger.vaultCacheSize"

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

	// CfgLogLevels sets the log level per module, e.g. "*:info,rpc:debug".
	CfgLogLevels = "log.levels"
	// CfgLogDebug forces the debug level on every module.
	CfgLogDebug = "log.debug"
)

const (
	StorageBackendLevelDB  = "leveldb"
	StorageBackendBadgerDB = "badgerdb"
	StorageBackendMemDB    = "memdb"
)

// InitialConfig is the default configuartion produced by init command.
const InitialConfig = `# Fee ledger configuration
storage:
  backend: leveldb
rpc:
  enabled: true
  port: 16900
log:
  levels: "*:info"
`

func init() {
	viper.SetDefault(CfgGenesisFile, "genesis.json")

	viper.SetDefault(CfgStorageBackend, StorageBackendLevelDB)
	viper.SetDefault(CfgStorageCacheSize, 256)
	viper.SetDefault(CfgStorageFileHandles, 64)

	viper.SetDefault(CfgLedgerVaultCacheSize, 1024)

	viper.SetDefault(CfgRPCEnabled, true)
	viper.SetDefault(CfgRPCAddress, "0.0.0.0")
	viper.SetDefault(CfgRPCPort, "16900")
	viper.SetDefault(CfgRPCMaxConnections, 200)
	viper.SetDefault(CfgRPCTimeoutSecs, 60)

	viper.SetDefault(CfgLogLevels, "*:info")
	viper.SetDefault(CfgLogDebug, false)
}

// WriteInitialConfig writes initial config file to file system.
func WriteInitialConfig(filePath string) error {
	return WriteFileAtomic(filePath, []byte(InitialConfig), 0600)
}
