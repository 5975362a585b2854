package key

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guildxyz/feeledger/cmd/feecli/cmd/utils"
)

// addressCmd lists the addresses of all stored keys
var addressCmd = &cobra.Command{
	Use:     "address",
	Aliases: []string{"list"},
	Short:   "Lists the addresses of the stored keys",
	Example: "feecli key address",
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath := cmd.Flag("config").Value.String()
		ks := utils.OpenKeyStore(cfgPath)

		accounts := ks.Accounts()
		if len(accounts) == 0 {
			fmt.Printf("No keys under %v\n", utils.KeysDir(cfgPath))
			return
		}
		for _, account := range accounts {
			fmt.Println(account.Address.Hex())
		}
	},
}
