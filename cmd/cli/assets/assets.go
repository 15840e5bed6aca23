package assets

import (
	"fmt"
	"strconv"

	"github.com/crucial707/asset-registry/cmd/cli/client"
	"github.com/crucial707/asset-registry/cmd/cli/config"
	"github.com/crucial707/asset-registry/cmd/cli/output"
	"github.com/crucial707/asset-registry/internal/models"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ==========================
// Init Assets
// ==========================
func InitAssets(rootCmd *cobra.Command) {

	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets",
	}

	assetsCmd.AddCommand(
		listAssetsCmd(),
		getAssetCmd(),
		createAssetCmd(),
		updateAssetCmd(),
		deleteAssetCmd(),
	)

	rootCmd.AddCommand(assetsCmd, auditCmd())
}

// apiClient uses --api-url when given on the root command, else the environment default.
func apiClient(cmd *cobra.Command) (*client.Client, error) {
	override := ""
	if f := cmd.Flag("api-url"); f != nil && f.Changed {
		override = f.Value.String()
	}
	base, err := config.ResolveAPIURL(override)
	if err != nil {
		return nil, err
	}
	return client.New(base), nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("invalid asset id %q", s)
	}
	return id, nil
}

// ==========================
// LIST
// ==========================
func listAssetsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd)
			if err != nil {
				return err
			}
			list, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return output.JSON(cmd.OutOrStdout(), list)
			}
			output.Assets(cmd.OutOrStdout(), list)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// GET
// ==========================
func getAssetCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			asset, err := c.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return output.JSON(cmd.OutOrStdout(), asset)
			}
			output.Assets(cmd.OutOrStdout(), []models.Asset{asset})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createAssetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd)
			if err != nil {
				return err
			}
			payload, err := payloadFromFlags(cmd)
			if err != nil {
				return err
			}
			asset, err := c.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return output.JSON(cmd.OutOrStdout(), asset)
		},
	}

	addAssetFlags(cmd)
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateAssetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Replace asset (all required fields must be given)",
		Long: "Replace the asset stored under [id] with the given fields. " +
			"The body id defaults to [id]; pass --id to store the asset under a different id.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload, err := payloadFromFlags(cmd)
			if err != nil {
				return err
			}
			if _, ok := payload["id"]; !ok {
				payload["id"] = id
			}
			asset, err := c.Replace(cmd.Context(), id, payload)
			if err != nil {
				return err
			}
			return output.JSON(cmd.OutOrStdout(), asset)
		},
	}

	addAssetFlags(cmd)
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			detail, err := c.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

// ==========================
// AUDIT
// ==========================
func auditCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent changes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd)
			if err != nil {
				return err
			}
			entries, err := c.Audit(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return output.JSON(cmd.OutOrStdout(), entries)
			}
			output.Audit(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
