package main

import "github.com/guildxyz/feeledger/cmd/feeledger/cmd"

func main() {
	cmd.Execute()
}
