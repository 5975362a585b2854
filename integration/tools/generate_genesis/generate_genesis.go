package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	cmn "github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/ledger"
	"github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/store/database/backend"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "genesis"})

// Example:
// generate_genesis -chainID=private_net_001 -registry=0x...fee0 -guild=0x... -guild_share=469 -poap=0x... -poap_share=500 -balances=./balances.json -genesis=./genesis.json
func main() {
	chainIDPtr := flag.String("chainID", "local_chain", "the ID of the chain")
	registryPtr := flag.String("registry", "", "the address holding the collected fees")
	guildPtr := flag.String("guild", "", "the guild fee collector")
	guildSharePtr := flag.Uint64("guild_share", 0, "the guild share in basis points")
	poapPtr := flag.String("poap", "", "the poap fee collector")
	poapSharePtr := flag.Uint64("poap_share", 0, "the poap share in basis points")
	balancesFilePathPtr := flag.String("balances", "", "the json file with the initial balances")
	genesisFilePathPtr := flag.String("genesis", "./genesis.json", "the genesis file to write")
	flag.Parse()

	config := types.DistributionConfig{
		GuildCollector: common.HexToAddress(*guildPtr),
		GuildShareBp:   *guildSharePtr,
		PoapCollector:  common.HexToAddress(*poapPtr),
		PoapShareBp:    *poapSharePtr,
	}

	genesis, err := generateGenesis(*chainIDPtr, common.HexToAddress(*registryPtr), config, *balancesFilePathPtr)
	if err != nil {
		logger.Fatalf("Failed to generate genesis: %v", err)
	}
	if err := ledger.WriteGenesisFile(*genesisFilePathPtr, genesis); err != nil {
		logger.Fatalf("Failed to write genesis: %v", err)
	}
	fmt.Printf("\nGenesis %v generated and saved to %v\n\n", genesis.Hash().Hex(), *genesisFilePathPtr)
}

// InitialBalance is an entry of the balances file. Amounts accept the
// whole-unit and wei notations of feecli.
type InitialBalance struct {
	Address string `json:"address"`
	Asset   string `json:"asset"`
	Amount  string `json:"amount"`
}

func generateGenesis(chainID string, registry common.Address, config types.DistributionConfig, balancesFilePath string) (*ledger.Genesis, error) {
	genesis := &ledger.Genesis{
		ChainID:         chainID,
		RegistryAddress: registry,
		Distribution:    config,
		Balances:        []ledger.GenesisBalance{},
	}

	if balancesFilePath != "" {
		raw, err := os.ReadFile(balancesFilePath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open the balances file")
		}
		var balances []InitialBalance
		if err := json.Unmarshal(raw, &balances); err != nil {
			return nil, errors.Wrap(err, "failed to parse the balances file")
		}
		for _, b := range balances {
			if !common.IsHexAddress(b.Address) {
				return nil, errors.Errorf("invalid address: %v", b.Address)
			}
			asset, err := types.ParseAsset(b.Asset)
			if err != nil {
				return nil, err
			}
			amount, ok := types.ParseAmount(b.Amount)
			if !ok {
				return nil, errors.Errorf("invalid amount for %v: %v", b.Address, b.Amount)
			}
			genesis.Balances = append(genesis.Balances, ledger.GenesisBalance{
				Address: common.HexToAddress(b.Address),
				Asset:   asset,
				Amount:  cmn.NewJSONBig(amount),
			})
		}
	}

	if err := config.Validate(); err != nil {
		logger.Warnf("Distribution config is out of bounds, withdrawals will fail: %v", err)
	}

	// Dry run against an in-memory ledger.
	ledgerState, err := state.NewLedgerState(backend.NewMemDatabase(), 1)
	if err != nil {
		return nil, err
	}
	if err := ledger.NewLedger(ledgerState, nil).ApplyGenesis(genesis); err != nil {
		return nil, err
	}
	return genesis, nil
}
