package types

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	cmn "github.com/guildxyz/feeledger/common"
)

// BasisPointsDenominator is 100%: shares are expressed in hundredths of a
// percent.
const BasisPointsDenominator uint64 = 10000

// ** Distribution config: who receives which part of a withdrawal **
//

// DistributionConfig is the process wide split between the guild collector,
// the poap collector and, implicitly, the vault owner who gets the rest.
type DistributionConfig struct {
	GuildCollector common.Address
	GuildShareBp   uint64
	PoapCollector  common.Address
	PoapShareBp    uint64
}

type DistributionConfigJSON struct {
	GuildCollector common.Address `json:"guild_collector"`
	GuildShareBp   cmn.JSONUint64 `json:"guild_share_bp"`
	PoapCollector  common.Address `json:"poap_collector"`
	PoapShareBp    cmn.JSONUint64 `json:"poap_share_bp"`
}

func NewDistributionConfigJSON(c DistributionConfig) DistributionConfigJSON {
	return DistributionConfigJSON{
		GuildCollector: c.GuildCollector,
		GuildShareBp:   cmn.JSONUint64(c.GuildShareBp),
		PoapCollector:  c.PoapCollector,
		PoapShareBp:    cmn.JSONUint64(c.PoapShareBp),
	}
}

func (c DistributionConfigJSON) DistributionConfig() DistributionConfig {
	return DistributionConfig{
		GuildCollector: c.GuildCollector,
		GuildShareBp:   uint64(c.GuildShareBp),
		PoapCollector:  c.PoapCollector,
		PoapShareBp:    uint64(c.PoapShareBp),
	}
}

func (c DistributionConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(NewDistributionConfigJSON(c))
}

func (c *DistributionConfig) UnmarshalJSON(data []byte) error {
	var b DistributionConfigJSON
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*c = b.DistributionConfig()
	return nil
}

func (c DistributionConfig) String() string {
	return fmt.Sprintf("DistributionConfig{guild: %v (%vbp), poap: %v (%vbp)}",
		c.GuildCollector.Hex(), c.GuildShareBp, c.PoapCollector.Hex(), c.PoapShareBp)
}

// Validate checks both shares and their sum.
func (c DistributionConfig) Validate() error {
	if err := ValidateShare(c.GuildShareBp); err != nil {
		return err
	}
	if err := ValidateShare(c.PoapShareBp); err != nil {
		return err
	}
	return ValidateShares(c.GuildShareBp, c.PoapShareBp)
}

func ValidateShare(share uint64) error {
	if share > BasisPointsDenominator {
		return &ShareOutOfRangeError{Share: share}
	}
	return nil
}

func ValidateShares(guildShareBp, poapShareBp uint64) error {
	if guildShareBp > BasisPointsDenominator || poapShareBp > BasisPointsDenominator ||
		guildShareBp+poapShareBp > BasisPointsDenominator {
		return &SharesExceedTotalError{Guild: guildShareBp, Poap: poapShareBp}
	}
	return nil
}

// IsRoleHolder is the only authorization rule of the ledger: the caller
// must be the address currently stored for the role.
func IsRoleHolder(caller, holder common.Address) bool {
	return caller == holder
}

// Distribution is the result of splitting a vault's collected balance.
type Distribution struct {
	Guild *big.Int
	Poap  *big.Int
	Owner *big.Int
}

// Total returns Guild + Poap + Owner.
func (d Distribution) Total() *big.Int {
	total := new(big.Int).Add(d.Guild, d.Poap)
	return total.Add(total, d.Owner)
}

// CalculateDistribution splits collected into floor(C*g/10000) for the guild,
// floor(C*p/10000) for the poap collector and the remainder for the owner.
// The three parts always add up to collected.
func CalculateDistribution(collected *big.Int, guildShareBp, poapShareBp uint64) (Distribution, error) {
	if err := ValidateShares(guildShareBp, poapShareBp); err != nil {
		return Distribution{}, err
	}
	if collected == nil {
		collected = big.NewInt(0)
	}

	denom := new(big.Int).SetUint64(BasisPointsDenominator)
	guild := new(big.Int).Mul(collected, new(big.Int).SetUint64(guildShareBp))
	guild.Quo(guild, denom)
	poap := new(big.Int).Mul(collected, new(big.Int).SetUint64(poapShareBp))
	poap.Quo(poap, denom)

	owner := new(big.Int).Sub(collected, guild)
	owner.Sub(owner, poap)

	return Distribution{Guild: guild, Poap: poap, Owner: owner}, nil
}
