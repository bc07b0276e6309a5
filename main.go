// main is the entry point of the airspot CLI.
package main

import (
	"github.com/huangsam/airspot/cmd"
	"github.com/huangsam/airspot/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("airspot", err)
	}
}
