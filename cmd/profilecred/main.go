package main

import (
	"os"

	"github.com/ctstone/libsignal/cmd/profilecred/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
