package main

import "github.com/guildxyz/feeledger/cmd/feecli/cmd"

func main() {
	cmd.Execute()
}
