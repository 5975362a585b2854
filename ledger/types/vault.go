package types

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	cmn "github.com/guildxyz/feeledger/common"
)

// Vault is a payable obligation: payers settle Fee in Asset, the total is
// kept in Collected until it is withdrawn. Only Collected ever changes after
// registration.
type Vault struct {
	ID        uint64
	EventID   string
	Owner     common.Address
	Asset     Asset
	Fee       *big.Int
	Collected *big.Int
}

func NewVault(id uint64, eventID string, owner common.Address, asset Asset, fee *big.Int) *Vault {
	return &Vault{
		ID:        id,
		EventID:   eventID,
		Owner:     owner,
		Asset:     asset,
		Fee:       new(big.Int).Set(fee),
		Collected: big.NewInt(0),
	}
}

// Copy returns a deep copy of the vault.
func (v *Vault) Copy() *Vault {
	if v == nil {
		return nil
	}
	c := *v
	c.Fee = copyInt(v.Fee)
	c.Collected = copyInt(v.Collected)
	return &c
}

func (v *Vault) String() string {
	if v == nil {
		return "nil-Vault"
	}
	return fmt.Sprintf("Vault{%v event: %v, owner: %v, asset: %v, fee: %v, collected: %v}",
		v.ID, v.EventID, v.Owner.Hex(), v.Asset, v.Fee, v.Collected)
}

type VaultJSON struct {
	ID        cmn.JSONUint64 `json:"id"`
	EventID   string         `json:"event_id"`
	Owner     common.Address `json:"owner"`
	Asset     Asset          `json:"asset"`
	Fee       *cmn.JSONBig   `json:"fee"`
	Collected *cmn.JSONBig   `json:"collected"`
}

func NewVaultJSON(v *Vault) *VaultJSON {
	if v == nil {
		return nil
	}
	return &VaultJSON{
		ID:        cmn.JSONUint64(v.ID),
		EventID:   v.EventID,
		Owner:     v.Owner,
		Asset:     v.Asset,
		Fee:       cmn.NewJSONBig(v.Fee),
		Collected: cmn.NewJSONBig(v.Collected),
	}
}

func (v VaultJSON) Vault() Vault {
	return Vault{
		ID:        uint64(v.ID),
		EventID:   v.EventID,
		Owner:     v.Owner,
		Asset:     v.Asset,
		Fee:       jsonBigToInt(v.Fee),
		Collected: jsonBigToInt(v.Collected),
	}
}

func (v *Vault) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(NewVaultJSON(v))
}

func (v *Vault) UnmarshalJSON(data []byte) error {
	var b VaultJSON
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*v = b.Vault()
	return nil
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

func jsonBigToInt(v *cmn.JSONBig) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v.ToInt())
}
