package root

import (
	"github.com/crucial707/asset-registry/cmd/cli/config"
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "registry",
	Short:         "Asset registry CLI",
	Long:          "Command line interface for the in-memory asset registry API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().String("api-url", config.APIURL(), "base URL of the asset registry API")
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}
