package commands

import (
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/spf13/cobra"
)

func (c *CLI) newLoaderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loader",
		Short: "Download a server loader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			minecraftVersion, _ := cmd.Flags().GetString("minecraft-version")
			version, _ := cmd.Flags().GetString("version")

			_, err := c.app.FetchLoader(cmd.Context(), name, minecraftVersion, version)
			return err
		},
	}
	cmd.Flags().StringP("name", "n", "", "Loader to download: fabric, forge, paper or neoforge")
	cmd.Flags().StringP("minecraft-version", "m", domain.Latest, "Minecraft version to target")
	cmd.Flags().String("version", domain.Latest, "Loader version, build or installer")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
