package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/guildxyz/feeledger/ledger/types"
)

func handleError(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: tx_parser [-chain=<chain_id>] <tx_HEX>")
}

func main() {
	chainIDPtr := flag.String("chain", "", "recover the signer against this chain id")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		printUsage()
		return
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
	handleError(err)

	tx, err := types.TxFromBytes(raw)
	handleError(err)

	fmt.Printf("\n%v\n\n", tx)
	spew.Dump(tx)

	if *chainIDPtr != "" {
		fmt.Printf("\nTx hash: %v\n", types.TxID(*chainIDPtr, tx).Hex())
		signer, err := types.RecoverSigner(*chainIDPtr, tx)
		if err != nil {
			fmt.Printf("Signer: %v\n", err)
			return
		}
		fmt.Printf("Signer: %v (matches from: %v)\n", signer.Hex(), signer == tx.GetInput().Address)
	}
}
