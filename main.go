package main

import (
	"os"

	"github.com/niuverse/skillbook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
