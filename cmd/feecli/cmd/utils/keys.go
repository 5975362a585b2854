package utils

import (
	"os"
	"path"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// KeysDir returns the folder holding the encrypted key files.
func KeysDir(cfgPath string) string {
	return path.Join(cfgPath, "keys")
}

// OpenKeyStore opens the encrypted key store under cfgPath.
func OpenKeyStore(cfgPath string) *keystore.KeyStore {
	return keystore.NewKeyStore(KeysDir(cfgPath), keystore.StandardScryptN, keystore.StandardScryptP)
}

// LoadKey decrypts the key of address with password.
func LoadKey(cfgPath string, address common.Address, password string) (*keystore.Key, error) {
	ks := OpenKeyStore(cfgPath)
	account, err := ks.Find(accounts.Account{Address: address})
	if err != nil {
		return nil, errors.Wrapf(err, "no key for %v under %v", address.Hex(), KeysDir(cfgPath))
	}
	keyJSON, err := os.ReadFile(account.URL.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read key file")
	}
	key, err := keystore.DecryptKey(keyJSON, password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decrypt key")
	}
	if key.Id == uuid.Nil {
		return nil, errors.Errorf("key file %v has no id", account.URL.Path)
	}
	return key, nil
}
