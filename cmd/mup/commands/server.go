package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (c *CLI) newServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Initialize and configure the server",
	}
	cmd.AddCommand(c.newServerInitCmd())
	cmd.AddCommand(c.newServerSignCmd())
	return cmd
}

func (c *CLI) newServerInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the lockfile for a loader and Minecraft version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minecraftVersion, _ := cmd.Flags().GetString("minecraft-version")
			loader, _ := cmd.Flags().GetString("loader")

			_, err := c.app.InitServer(minecraftVersion, loader)
			return err
		},
	}
	cmd.Flags().StringP("minecraft-version", "m", "", "Minecraft version to target")
	cmd.Flags().StringP("loader", "l", "", "Server loader: fabric, forge, paper or neoforge")
	_ = cmd.MarkFlagRequired("minecraft-version")
	_ = cmd.MarkFlagRequired("loader")

	cmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "game-version" {
			name = "minecraft-version"
		}
		return pflag.NormalizedName(name)
	})
	return cmd
}

func (c *CLI) newServerSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign",
		Short: "Sign the Minecraft EULA",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.SignEULA()
		},
	}
}
