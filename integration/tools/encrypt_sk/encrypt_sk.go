package main

import (
	"flag"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
)

// Usage: encrypt_sk -dir=<keys dir> -password=<password> -sk=<private_key_hex>
//
// The keys dir is the one feecli reads, <config>/keys.
func main() {
	keysDirPathPtr := flag.String("dir", "./", "the folder to generate the encrypted key file")
	passwordPtr := flag.String("password", "", "the password for the private key")
	skHexStrPtr := flag.String("sk", "", "the private key to be encrypted")

	flag.Parse()

	sk, err := crypto.HexToECDSA(*skHexStrPtr)
	if err != nil {
		fmt.Printf("Failed to parse private key: %v\n", err)
		return
	}

	ks := keystore.NewKeyStore(*keysDirPathPtr, keystore.StandardScryptN, keystore.StandardScryptP)
	account, err := ks.ImportECDSA(sk, *passwordPtr)
	if err != nil {
		fmt.Printf("Failed to encrypt the private key: %v\n", err)
		return
	}

	fmt.Printf("Private key successfully encrypted: %v\n", account.URL.Path)
}
