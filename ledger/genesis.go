package ledger

import (
	"encoding/json"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	cmn "github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/ledger/types"
)

// GenesisBalance is an initial allocation of an asset.
type GenesisBalance struct {
	Address common.Address `json:"address"`
	Asset   types.Asset    `json:"asset"`
	Amount  *cmn.JSONBig   `json:"amount"`
}

// Genesis is the document a ledger is initialized from.
type Genesis struct {
	ChainID         string                   `json:"chain_id"`
	RegistryAddress common.Address           `json:"registry_address"`
	Distribution    types.DistributionConfig `json:"distribution"`
	Balances        []GenesisBalance         `json:"balances"`
}

// DefaultGenesis is the template written by the init command.
func DefaultGenesis() *Genesis {
	return &Genesis{
		ChainID:         "feeledger_local",
		RegistryAddress: common.HexToAddress("0x000000000000000000000000000000000000fee0"),
		Distribution: types.DistributionConfig{
			GuildCollector: common.HexToAddress("0x0000000000000000000000000000000000000001"),
			GuildShareBp:   469,
			PoapCollector:  common.HexToAddress("0x0000000000000000000000000000000000000002"),
			PoapShareBp:    500,
		},
		Balances: []GenesisBalance{},
	}
}

// ReadGenesisFile reads and validates a JSON genesis document.
func ReadGenesisFile(path string) (*Genesis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read genesis file %v", path)
	}
	genesis := &Genesis{}
	if err := json.Unmarshal(raw, genesis); err != nil {
		return nil, errors.Wrapf(err, "failed to parse genesis file %v", path)
	}
	if err := genesis.Validate(); err != nil {
		return nil, err
	}
	return genesis, nil
}

// WriteGenesisFile writes genesis as indented JSON.
func WriteGenesisFile(path string, genesis *Genesis) error {
	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode genesis")
	}
	return cmn.WriteFileAtomic(path, raw, 0600)
}

// Validate checks the fields a ledger cannot run without. The distribution
// shares are accepted as given.
func (g *Genesis) Validate() error {
	if g.ChainID == "" {
		return errors.New("genesis: chain_id is empty")
	}
	if g.RegistryAddress == (common.Address{}) {
		return errors.New("genesis: registry_address is empty")
	}
	for _, b := range g.Balances {
		if b.Amount == nil || b.Amount.ToInt().Sign() < 0 {
			return errors.Errorf("genesis: invalid amount for %v", b.Address.Hex())
		}
	}
	return nil
}

// Hash identifies the genesis document.
func (g *Genesis) Hash() common.Hash {
	raw, err := json.Marshal(g)
	if err != nil {
		panic(errors.Wrap(err, "failed to encode genesis"))
	}
	return crypto.Keccak256Hash(raw)
}

func (b GenesisBalance) amount() *big.Int {
	if b.Amount == nil {
		return big.NewInt(0)
	}
	return b.Amount.ToInt()
}
