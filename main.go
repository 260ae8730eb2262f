package main

import (
	"os"

	"github.com/yardtools/yardcap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
