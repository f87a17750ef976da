package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/refgraph/internal/core/domain"
)

func (c *CLI) newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Manage the shared component registry index",
	}
	cmd.AddCommand(c.newRegistrySnapshotCmd())
	cmd.AddCommand(c.newRegistryServeCmd())
	return cmd
}

func (c *CLI) newRegistrySnapshotCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot <dir>",
		Short: "Index a registry directory into a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.SnapshotRegistry(cmd.Context(), args[0], out)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d modules indexed into %s\n", n, out)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "registry.json", "Snapshot file to write")
	return cmd
}

func (c *CLI) newRegistryServeCmd() *cobra.Command {
	var settings domain.RegistrySettings
	cmd := &cobra.Command{
		Use:    "serve",
		Short:  "Answer registry membership queries on stdin, one path per line",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.ServeRegistry(cmd.Context(), settings, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&settings.Dir, "dir", "", "Registry directory to index")
	cmd.Flags().StringVar(&settings.Snapshot, "snapshot", "", "Snapshot file to load instead of indexing")
	cmd.MarkFlagsOneRequired("dir", "snapshot")
	return cmd
}
