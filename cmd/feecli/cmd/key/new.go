package key

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guildxyz/feeledger/cmd/feecli/cmd/utils"
)

// newCmd generates a new key
var newCmd = &cobra.Command{
	Use:     "new",
	Short:   "Generates a new private key",
	Long:    `Generates a new private key, stored encrypted under the config path.`,
	Example: "feecli key new",
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath := cmd.Flag("config").Value.String()
		ks := utils.OpenKeyStore(cfgPath)

		password, err := utils.GetPassword("Please enter password: ")
		if err != nil {
			utils.Error("Failed to get password: %v\n", err)
		}
		confirm, err := utils.GetPassword("Please enter password again: ")
		if err != nil {
			utils.Error("Failed to get password: %v\n", err)
		}
		if password != confirm {
			utils.Error("Passwords do not match\n")
		}

		account, err := ks.NewAccount(password)
		if err != nil {
			utils.Error("Failed to generate new key: %v\n", err)
		}

		fmt.Printf("Successfully created key: %v\n", account.Address.Hex())
	},
}
