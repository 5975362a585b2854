package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/store/database/backend"
)

var dumpVaultsFlag bool

// dumpCmd prints the ledger state stored in the database.
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the ledger state stored in the database.",
	Run:   runDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpVaultsFlag, "vaults", true, "Include every vault")
	RootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) {
	db, err := backend.Open(viper.GetString(common.CfgStorageBackend), getDataPath(),
		viper.GetInt(common.CfgStorageCacheSize), viper.GetInt(common.CfgStorageFileHandles))
	if err != nil {
		panic(fmt.Sprintf("Failed to open the db: %v", err))
	}
	defer db.Close()

	ledgerState, err := state.NewLedgerState(db, 1)
	if err != nil {
		panic(fmt.Sprintf("Failed to load ledger state: %v", err))
	}
	view := ledgerState.Delivered()

	fmt.Printf("chain: %v, height: %v, registry: %v\n",
		ledgerState.GetChainID(), ledgerState.Height(), view.GetRegistryAddress().Hex())
	spew.Dump(view.GetDistributionConfig())

	count := view.GetVaultCount()
	fmt.Printf("vaults: %v, events: %v\n", count, view.GetEventCount())
	if !dumpVaultsFlag {
		return
	}
	for id := uint64(0); id < count; id++ {
		spew.Dump(view.GetVault(id))
	}
}
