package execution

import (
	"github.com/ethereum/go-ethereum/common"

	st "github.com/guildxyz/feeledger/ledger/state"
	"github.com/guildxyz/feeledger/ledger/types"
)

var _ TxExecutor = (*SetCollectorTxExecutor)(nil)
var _ TxExecutor = (*SetShareTxExecutor)(nil)

// ------------------------------- Distribution config Transactions -----------------------------------

// role is one of the two collector slots of the distribution config. Only
// the current collector of a role may change that role.
type role interface {
	holder(config *types.DistributionConfig) common.Address
	setCollector(config *types.DistributionConfig, addr common.Address) types.Event
	setShare(config *types.DistributionConfig, share uint64) types.Event
}

type guildRole struct{}

func (guildRole) holder(c *types.DistributionConfig) common.Address { return c.GuildCollector }

func (guildRole) setCollector(c *types.DistributionConfig, addr common.Address) types.Event {
	c.GuildCollector = addr
	return &types.GuildFeeCollectorChangedEvent{NewAddress: addr}
}

func (guildRole) setShare(c *types.DistributionConfig, share uint64) types.Event {
	c.GuildShareBp = share
	return &types.GuildSharex100ChangedEvent{NewShare: share}
}

type poapRole struct{}

func (poapRole) holder(c *types.DistributionConfig) common.Address { return c.PoapCollector }

func (poapRole) setCollector(c *types.DistributionConfig, addr common.Address) types.Event {
	c.PoapCollector = addr
	return &types.PoapFeeCollectorChangedEvent{NewAddress: addr}
}

func (poapRole) setShare(c *types.DistributionConfig, share uint64) types.Event {
	c.PoapShareBp = share
	return &types.PoapSharex100ChangedEvent{NewShare: share}
}

// authorize loads the config and checks that caller holds r.
func authorize(view *st.StoreView, r role, caller common.Address) (*types.DistributionConfig, error) {
	config, err := getDistributionConfig(view)
	if err != nil {
		return nil, err
	}
	if holder := r.holder(config); !types.IsRoleHolder(caller, holder) {
		return nil, &types.AccessDeniedError{Caller: caller, RequiredHolder: holder}
	}
	return config, nil
}

// SetCollectorTxExecutor implements the TxExecutor interface for
// SetGuildFeeCollectorTx and SetPoapFeeCollectorTx.
type SetCollectorTxExecutor struct {
}

// NewSetCollectorTxExecutor creates a new instance of SetCollectorTxExecutor
func NewSetCollectorTxExecutor() *SetCollectorTxExecutor {
	return &SetCollectorTxExecutor{}
}

func (exec *SetCollectorTxExecutor) parse(transaction types.Tx) (role, common.Address) {
	switch tx := transaction.(type) {
	case *types.SetGuildFeeCollectorTx:
		return guildRole{}, tx.NewCollector
	case *types.SetPoapFeeCollectorTx:
		return poapRole{}, tx.NewCollector
	}
	panic("SetCollectorTxExecutor: unexpected transaction")
}

func (exec *SetCollectorTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) error {
	r, _ := exec.parse(transaction)
	_, err := authorize(view, r, transaction.GetInput().Address)
	return err
}

func (exec *SetCollectorTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) ([]types.Event, error) {
	r, newCollector := exec.parse(transaction)
	config, err := authorize(view, r, transaction.GetInput().Address)
	if err != nil {
		return nil, err
	}
	ev := r.setCollector(config, newCollector)
	view.SetDistributionConfig(config)
	return []types.Event{ev}, nil
}

// SetShareTxExecutor implements the TxExecutor interface for
// SetGuildShareTx and SetPoapShareTx.
type SetShareTxExecutor struct {
}

// NewSetShareTxExecutor creates a new instance of SetShareTxExecutor
func NewSetShareTxExecutor() *SetShareTxExecutor {
	return &SetShareTxExecutor{}
}

func (exec *SetShareTxExecutor) parse(transaction types.Tx) (role, uint64) {
	switch tx := transaction.(type) {
	case *types.SetGuildShareTx:
		return guildRole{}, tx.NewShare
	case *types.SetPoapShareTx:
		return poapRole{}, tx.NewShare
	}
	panic("SetShareTxExecutor: unexpected transaction")
}

func (exec *SetShareTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) error {
	r, newShare := exec.parse(transaction)
	config, err := authorize(view, r, transaction.GetInput().Address)
	if err != nil {
		return err
	}
	if err := types.ValidateShare(newShare); err != nil {
		return err
	}
	updated := *config
	r.setShare(&updated, newShare)
	return types.ValidateShares(updated.GuildShareBp, updated.PoapShareBp)
}

func (exec *SetShareTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) ([]types.Event, error) {
	r, newShare := exec.parse(transaction)
	config, err := authorize(view, r, transaction.GetInput().Address)
	if err != nil {
		return nil, err
	}
	ev := r.setShare(config, newShare)
	view.SetDistributionConfig(config)
	return []types.Event{ev}, nil
}
