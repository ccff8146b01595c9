package main

import (
	"os"

	"github.com/msto63/safestr/cmd/safestr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
