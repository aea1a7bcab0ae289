package main

import (
	"os"

	"github.com/dixieflatline76/ClearView/cmd/clearview/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
