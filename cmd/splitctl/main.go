package main

import (
	"os"

	"github.com/sally0227/smart-split/cmd/splitctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
