// main is the entry point for the sifarish CLI.
package main

import (
	"github.com/vanadhikar/sifarish/cmd"
	"github.com/vanadhikar/sifarish/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
