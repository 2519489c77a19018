package main

import (
	"os"

	"github.com/solarbrowser/quanta-go/cmd/quartz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
