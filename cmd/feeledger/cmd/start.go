package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/ledger"
	"github.com/guildxyz/feeledger/node"
	"github.com/guildxyz/feeledger/store/database/backend"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start fee ledger node.",
	Run:   runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) {
	genesisPath := getGenesisPath()
	genesis, err := ledger.ReadGenesisFile(genesisPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load genesis %v: %v", genesisPath, err))
	}

	kind := viper.GetString(common.CfgStorageBackend)
	db, err := backend.Open(kind, getDataPath(),
		viper.GetInt(common.CfgStorageCacheSize), viper.GetInt(common.CfgStorageFileHandles))
	if err != nil {
		panic(fmt.Sprintf("Failed to open the %v db under %v: %v", kind, getDataPath(), err))
	}
	defer db.Close()

	params := &node.Params{
		Genesis:        genesis,
		DB:             db,
		VaultCacheSize: viper.GetInt(common.CfgLedgerVaultCacheSize),
	}
	n, err := node.NewNode(params)
	if err != nil {
		panic(fmt.Sprintf("Failed to create node: %v", err))
	}
	n.Start(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.WithFields(log.Fields{"signal": sig}).Info("Shutting down")
		n.Stop()
	}()

	n.Wait()
}
