package main

import (
	"os"

	"github.com/saanpro/saanbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
