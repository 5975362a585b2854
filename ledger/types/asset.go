package types

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const nativeAssetName = "native"

// Asset identifies what a vault is paid in. The zero address denotes the
// native currency, any other value is a token contract address.
type Asset common.Address

// NativeAsset is the sentinel for the native currency.
var NativeAsset = Asset{}

func TokenAsset(addr common.Address) Asset {
	return Asset(addr)
}

func (a Asset) IsNative() bool {
	return a == NativeAsset
}

func (a Asset) Address() common.Address {
	return common.Address(a)
}

func (a Asset) String() string {
	if a.IsNative() {
		return nativeAssetName
	}
	return common.Address(a).Hex()
}

// MarshalText implements encoding.TextMarshaler
func (a Asset) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Accepts "native", an
// empty string or a hex address.
func (a *Asset) UnmarshalText(input []byte) error {
	asset, err := ParseAsset(string(input))
	if err != nil {
		return err
	}
	*a = asset
	return nil
}

// ParseAsset parses the textual form produced by Asset.String.
func ParseAsset(in string) (Asset, error) {
	in = strings.TrimSpace(in)
	if in == "" || strings.EqualFold(in, nativeAssetName) {
		return NativeAsset, nil
	}
	if !common.IsHexAddress(in) {
		return NativeAsset, errors.Errorf("invalid asset: %v", in)
	}
	return Asset(common.HexToAddress(in)), nil
}
