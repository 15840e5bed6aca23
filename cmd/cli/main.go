package main

import (
	"fmt"
	"os"

	"github.com/crucial707/asset-registry/cmd/cli/assets"
	"github.com/crucial707/asset-registry/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	assets.InitAssets(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
