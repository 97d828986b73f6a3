package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dxbednarczyk/mup/internal/app"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/ui/output"
	"github.com/dxbednarczyk/mup/internal/ui/style"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

func (c *CLI) newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage installed plugins and mods",
	}
	cmd.AddCommand(c.newProjectAddCmd())
	cmd.AddCommand(c.newProjectRemoveCmd())
	cmd.AddCommand(c.newProjectListCmd())
	cmd.AddCommand(c.newProjectVerifyCmd())
	cmd.AddCommand(c.newProjectHistoryCmd())
	return cmd
}

func (c *CLI) newProjectAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Install a project and its dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, _ := cmd.Flags().GetString("version")
			provider, _ := cmd.Flags().GetString("provider")
			optionalDeps, _ := cmd.Flags().GetBool("optional-deps")
			noDeps, _ := cmd.Flags().GetBool("no-deps")

			_, err := c.app.AddProject(cmd.Context(), args[0], app.AddOptions{
				Version:          version,
				Provider:         provider,
				IncludeOptional:  optionalDeps,
				SkipDependencies: noDeps,
			})
			return err
		},
	}
	cmd.Flags().String("version", domain.Latest, "Provider version id to install")
	cmd.Flags().StringP("provider", "p", app.DefaultProvider, "Metadata provider: modrinth or hangar")
	cmd.Flags().BoolP("optional-deps", "o", false, "Also install optional dependencies")
	cmd.Flags().Bool("no-deps", false, "Do not install any dependencies")
	return cmd
}

func (c *CLI) newProjectRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a project from the lockfile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, _ := cmd.Flags().GetBool("keep-jarfile")
			orphans, _ := cmd.Flags().GetBool("remove-orphans")

			_, err := c.app.RemoveProject(args[0], app.RemoveOptions{
				KeepFile:      keep,
				RemoveOrphans: orphans,
			})
			return err
		},
	}
	cmd.Flags().BoolP("keep-jarfile", "k", false, "Leave the installed file on disk")
	cmd.Flags().BoolP("remove-orphans", "r", false, "Also remove dependencies nothing else requires")
	return cmd
}

func (c *CLI) newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lf, err := c.app.ListProjects()
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			for _, e := range lf.Projects {
				msg := fmt.Sprintf("%s %s %s", e.Slug, e.VersionID, e.Path)
				if err := output.Line(out, style.Dot, style.Slate, msg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (c *CLI) newProjectVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check installed files against their lockfile checksums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, verifyErr := c.app.VerifyProjects(cmd.Context())

			out := output.New(cmd.OutOrStdout())
			for _, r := range results {
				if err := output.Line(out, verifyIcon(r), verifyColor(r), verifyMessage(r)); err != nil {
					return err
				}
			}
			return verifyErr
		},
	}
}

func verifyIcon(r domain.VerifyResult) string {
	switch r.Status {
	case domain.VerifyOK:
		return style.Check
	case domain.VerifyUnchecked:
		return style.Circle
	case domain.VerifyMissing, domain.VerifyMismatch, domain.VerifyError:
		return style.Cross
	}
	return style.Cross
}

func verifyColor(r domain.VerifyResult) lipgloss.Color {
	switch {
	case r.Status == domain.VerifyOK:
		return style.Green
	case r.OK():
		return style.Slate
	default:
		return style.Red
	}
}

func verifyMessage(r domain.VerifyResult) string {
	msg := fmt.Sprintf("%s %s (%s)", r.Slug, r.Path, r.Status)
	if r.Err != nil {
		msg += ": " + r.Err.Error()
	}
	return msg
}

func (c *CLI) newProjectHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent lockfile changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			records, err := c.app.History(limit)
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			for _, rec := range records {
				icon, color := style.Check, style.Green
				if !rec.Success {
					icon, color = style.Cross, style.Red
				}

				msg := fmt.Sprintf("%s %s %s", rec.Timestamp.Local().Format("2006-01-02 15:04:05"), rec.Operation, rec.Target)
				if len(rec.Slugs) > 0 {
					msg += " [" + strings.Join(rec.Slugs, ", ") + "]"
				}
				if rec.Error != "" {
					msg += ": " + rec.Error
				}
				if err := output.Line(out, icon, color, msg); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of records to show, 0 for all")
	return cmd
}
