package main

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	feecli "github.com/guildxyz/feeledger/cmd/feecli/cmd"
	feeledger "github.com/guildxyz/feeledger/cmd/feeledger/cmd"
)

// generateDoc writes one markdown page per command of root into dir.
func generateDoc(root *cobra.Command, dir string, filePrepender, linkHandler func(string) string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal(err)
	}
	root.DisableAutoGenTag = true
	if err := doc.GenMarkdownTreeCustom(root, dir, filePrepender, linkHandler); err != nil {
		log.Fatal(err)
	}
}

func main() {
	filePrepender := func(filename string) string {
		return ""
	}

	linkHandler := func(name string) string {
		return strings.ToLower(name)
	}

	generateDoc(feecli.RootCmd, "./feecli/", filePrepender, linkHandler)
	generateDoc(feeledger.RootCmd, "./feeledger/", filePrepender, linkHandler)
}
