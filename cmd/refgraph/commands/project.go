package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

const projectArgs = "<project>"

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve " + projectArgs,
		Short: "Resolve every reference of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Resolve(cmd.Context(), args[0], c.options())
			if err != nil {
				return err
			}
			return printResolve(cmd.OutOrStdout(), res)
		},
	}
}

func (c *CLI) newOutputsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outputs " + projectArgs,
		Short: "List the files a consumer of a project receives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Outputs(cmd.Context(), args[0], c.options())
			if err != nil {
				return err
			}
			return printOutputs(cmd.OutOrStdout(), res)
		},
	}
}

func (c *CLI) newStaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stale " + projectArgs,
		Short: "Report whether a project must be rebuilt; exits 1 when it must",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Stale(cmd.Context(), args[0], c.options())
			if err != nil {
				return err
			}
			if err := printStale(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if res.Stale {
				return zerr.With(zerr.Wrap(domain.ErrTargetStale, "project needs a rebuild"), "project", res.Project)
			}
			return nil
		},
	}
}

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan " + projectArgs,
		Short: "Show the build plan of a project and everything it references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := c.app.Plan(cmd.Context(), args[0], c.options())
			if err != nil {
				return err
			}
			return printPlan(cmd.OutOrStdout(), plan)
		},
	}
}

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph " + projectArgs,
		Short: "List the projects a project reaches, in build order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vertices, err := c.app.Graph(cmd.Context(), args[0], c.options())
			if err != nil {
				return err
			}
			return printGraph(cmd.OutOrStdout(), vertices)
		},
	}
}
