package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/refgraph/internal/core/domain"
	"golang.org/x/term"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch " + projectArgs,
		Short: "Show the build plan again whenever a file under the workspace changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			clearScreen := screenClearer(out)
			return c.app.Watch(cmd.Context(), args[0], c.options(), func(plan *domain.BuildPlan, err error) {
				clearScreen()
				if err != nil {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+err.Error())
					return
				}
				_ = printPlan(out, plan)
			})
		},
	}
}

// screenClearer returns a function clearing the terminal behind w, or a no-op
// when w is not a terminal.
func screenClearer(w io.Writer) func() {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) { //nolint:gosec // file descriptors fit in int
		return func() {}
	}
	o := termenv.NewOutput(f)
	return func() {
		o.ClearScreen()
	}
}
