package types

import (
	"math/big"
	"strings"
)

// Denomination is the number of minor units in one unit of any asset.
var Denomination = new(big.Int).SetUint64(1e18)

// ParseAmount parses a human readable amount. A "wei" suffix means the
// number is already in minor units, otherwise it is scaled by Denomination
// and may carry a fractional part ("0.1" is 1e17 wei).
func ParseAmount(in string) (*big.Int, bool) {
	in = strings.TrimSpace(in)
	inWei := false
	if len(in) > 3 && strings.EqualFold("wei", in[len(in)-3:]) {
		inWei = true
		in = in[:len(in)-3]
	}
	r, ok := new(big.Rat).SetString(in)
	if !ok || r.Sign() < 0 {
		return nil, false
	}
	if !inWei {
		r.Mul(r, new(big.Rat).SetInt(Denomination))
	}
	if !r.IsInt() {
		return nil, false
	}
	return new(big.Int).Set(r.Num()), true
}

// FormatAmount renders minor units as a decimal number of whole units.
func FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	s := new(big.Rat).SetFrac(amount, Denomination).FloatString(18)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
