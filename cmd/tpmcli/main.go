package main

import (
	"os"

	"github.com/cryptalis/esys/cmd/tpmcli/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		os.Exit(1)
	}
}
