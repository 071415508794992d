package main

import (
	"os"

	"github.com/cipherfeed/client-go/cmd/cipherfeed/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
