// Command forestdemo builds an AdaptiveForest, drives a synthetic
// workload through it, and prints forest statistics and counts of the
// adaptation events it emits — exercising the public API end-to-end
// outside the CORE packages.
package main

import (
	"os"

	"github.com/Hellblazer/Luciferase-sub010/cmd/forestdemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
