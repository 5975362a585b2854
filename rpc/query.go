package rpc

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	cmn "github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/ledger/types"
	"github.com/guildxyz/feeledger/version"
)

// maxEventsPerQuery caps the page size of GetEvents.
const maxEventsPerQuery = 1000

func parseAddress(name, in string) (common.Address, error) {
	if in == "" {
		return common.Address{}, errors.Errorf("%v must be specified", name)
	}
	if !common.IsHexAddress(in) {
		return common.Address{}, errors.Errorf("%v is not a valid address: %v", name, in)
	}
	return common.HexToAddress(in), nil
}

// ------------------------------- GetVersion -----------------------------------

type GetVersionArgs struct {
}

type GetVersionResult struct {
	Version   string `json:"version"`
	GitHash   string `json:"git_hash"`
	Timestamp string `json:"timestamp"`
}

func (t *FeeLedgerRPCService) GetVersion(args *GetVersionArgs, result *GetVersionResult) (err error) {
	result.Version = version.Version
	result.GitHash = version.GitHash
	result.Timestamp = version.Timestamp
	return nil
}

// ------------------------------- GetStatus -----------------------------------

type GetStatusArgs struct {
}

type GetStatusResult struct {
	ChainID         string         `json:"chain_id"`
	Height          cmn.JSONUint64 `json:"height"`
	RegistryAddress common.Address `json:"registry_address"`
	VaultCount      cmn.JSONUint64 `json:"vault_count"`
	EventCount      cmn.JSONUint64 `json:"event_count"`
}

func (t *FeeLedgerRPCService) GetStatus(args *GetStatusArgs, result *GetStatusResult) (err error) {
	result.ChainID = t.ledger.ChainID()
	result.Height = cmn.JSONUint64(t.ledger.Height())
	result.RegistryAddress = t.ledger.RegistryAddress()
	result.VaultCount = cmn.JSONUint64(t.ledger.VaultCount())
	result.EventCount = cmn.JSONUint64(t.ledger.EventCount())
	return nil
}

// ------------------------------- GetVault -----------------------------------

type GetVaultArgs struct {
	VaultID cmn.JSONUint64 `json:"vault_id"`
}

type GetVaultResult struct {
	Vault *types.Vault `json:"vault"`
}

func (t *FeeLedgerRPCService) GetVault(args *GetVaultArgs, result *GetVaultResult) (err error) {
	vault, err := t.ledger.GetVault(uint64(args.VaultID))
	if err != nil {
		return toRPCError(err)
	}
	result.Vault = vault
	return nil
}

// ------------------------------- GetVaultCount -----------------------------------

type GetVaultCountArgs struct {
}

type GetVaultCountResult struct {
	Count cmn.JSONUint64 `json:"count"`
}

func (t *FeeLedgerRPCService) GetVaultCount(args *GetVaultCountArgs, result *GetVaultCountResult) (err error) {
	result.Count = cmn.JSONUint64(t.ledger.VaultCount())
	return nil
}

// ------------------------------- HasPaid -----------------------------------

type HasPaidArgs struct {
	VaultID cmn.JSONUint64 `json:"vault_id"`
	Payer   string         `json:"payer"`
}

type HasPaidResult struct {
	Paid bool `json:"paid"`
}

func (t *FeeLedgerRPCService) HasPaid(args *HasPaidArgs, result *HasPaidResult) (err error) {
	payer, err := parseAddress("payer", args.Payer)
	if err != nil {
		return toRPCError(err)
	}
	paid, err := t.ledger.HasPaid(uint64(args.VaultID), payer)
	if err != nil {
		return toRPCError(err)
	}
	result.Paid = paid
	return nil
}

// ------------------------------- GetDistributionConfig -----------------------------------

type GetDistributionConfigArgs struct {
}

type GetDistributionConfigResult struct {
	Config types.DistributionConfig `json:"config"`
}

func (t *FeeLedgerRPCService) GetDistributionConfig(args *GetDistributionConfigArgs, result *GetDistributionConfigResult) (err error) {
	result.Config = t.ledger.DistributionConfig()
	return nil
}

// ------------------------------- GetBalance -----------------------------------

type GetBalanceArgs struct {
	Asset   string `json:"asset"`
	Address string `json:"address"`
}

type GetBalanceResult struct {
	Asset   types.Asset    `json:"asset"`
	Address common.Address `json:"address"`
	Balance *cmn.JSONBig   `json:"balance"`
}

func (t *FeeLedgerRPCService) GetBalance(args *GetBalanceArgs, result *GetBalanceResult) (err error) {
	asset, err := types.ParseAsset(args.Asset)
	if err != nil {
		return toRPCError(err)
	}
	address, err := parseAddress("address", args.Address)
	if err != nil {
		return toRPCError(err)
	}
	result.Asset = asset
	result.Address = address
	result.Balance = cmn.NewJSONBig(t.ledger.BalanceOf(asset, address))
	return nil
}

// ------------------------------- GetAllowance -----------------------------------

type GetAllowanceArgs struct {
	Asset   string `json:"asset"`
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

type GetAllowanceResult struct {
	Allowance *cmn.JSONBig `json:"allowance"`
}

func (t *FeeLedgerRPCService) GetAllowance(args *GetAllowanceArgs, result *GetAllowanceResult) (err error) {
	asset, err := types.ParseAsset(args.Asset)
	if err != nil {
		return toRPCError(err)
	}
	owner, err := parseAddress("owner", args.Owner)
	if err != nil {
		return toRPCError(err)
	}
	spender, err := parseAddress("spender", args.Spender)
	if err != nil {
		return toRPCError(err)
	}
	result.Allowance = cmn.NewJSONBig(t.ledger.Allowance(asset, owner, spender))
	return nil
}

// ------------------------------- GetSequence -----------------------------------

type GetSequenceArgs struct {
	Address string `json:"address"`
}

type GetSequenceResult struct {
	Sequence cmn.JSONUint64 `json:"sequence"`
}

func (t *FeeLedgerRPCService) GetSequence(args *GetSequenceArgs, result *GetSequenceResult) (err error) {
	address, err := parseAddress("address", args.Address)
	if err != nil {
		return toRPCError(err)
	}
	result.Sequence = cmn.JSONUint64(t.ledger.Sequence(address))
	return nil
}

// ------------------------------- GetEvents -----------------------------------

type GetEventsArgs struct {
	Start cmn.JSONUint64 `json:"start"`
	Limit cmn.JSONUint64 `json:"limit"`
}

type GetEventsResult struct {
	Events []*types.EventRecord `json:"events"`
}

func (t *FeeLedgerRPCService) GetEvents(args *GetEventsArgs, result *GetEventsResult) (err error) {
	limit := uint64(args.Limit)
	if limit == 0 || limit > maxEventsPerQuery {
		limit = maxEventsPerQuery
	}
	result.Events = t.ledger.Events(uint64(args.Start), limit)
	return nil
}
