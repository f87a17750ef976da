package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/refgraph/internal/app"
	"go.trai.ch/refgraph/internal/core/domain"
)

var (
	green  = lipgloss.Color("#22A06B")
	yellow = lipgloss.Color("#F59E0B")
	slate  = lipgloss.Color("#667085")
)

// styles renders for one writer; a writer that is not a terminal gets plain text.
type styles struct {
	stale, fresh, muted lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		stale: r.NewStyle().Foreground(yellow).Bold(true),
		fresh: r.NewStyle().Foreground(green),
		muted: r.NewStyle().Foreground(slate),
	}
}

func (s styles) status(stale bool) string {
	if stale {
		return s.stale.Render(domain.StatusStale.String())
	}
	return s.fresh.Render(domain.StatusUpToDate.String())
}

// table aligns tab-separated columns. Styled text goes in the last column only.
func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printResolve(w io.Writer, res *app.ResolveResult) error {
	s := newStyles(w)
	_, _ = fmt.Fprintf(w, "%s %s\n", res.Project, s.muted.Render("("+res.Configuration.String()+")"))
	if len(res.References) == 0 {
		_, _ = fmt.Fprintln(w, s.muted.Render("no references"))
		return nil
	}

	tw := table(w)
	_, _ = fmt.Fprintln(tw, "REFERENCE\tKIND\tCOPY LOCAL\tSYSTEM\tPATH")
	for _, r := range res.References {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Kind, yesNo(r.CopyLocal), yesNo(r.System), r.Path)
	}
	return tw.Flush()
}

func printOutputs(w io.Writer, res *app.OutputsResult) error {
	s := newStyles(w)
	_, _ = fmt.Fprintf(w, "%s %s -> %s\n", res.Project, s.muted.Render("("+res.Configuration.String()+")"), res.Output)

	tw := table(w)
	_, _ = fmt.Fprintln(tw, "FILE\tSOURCE")
	for _, f := range res.Files {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", f.Rel, f.Path)
	}
	return tw.Flush()
}

func printStale(w io.Writer, res *app.StaleResult) error {
	s := newStyles(w)
	_, err := fmt.Fprintf(w, "%s (%s): %s\n", res.Project, res.Configuration, s.status(res.Stale))
	return err
}

func printPlan(w io.Writer, plan *domain.BuildPlan) error {
	s := newStyles(w)
	tw := table(w)
	_, _ = fmt.Fprintln(tw, "#\tPROJECT\tCONFIGURATION\tREFERENCES\tCOPY FILES\tSTATUS")
	for i, p := range plan.Projects {
		copies := 0
		if p.CopyFiles != nil {
			copies = p.CopyFiles.Len()
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n",
			i+1, p.Name, p.Configuration, len(p.References), copies, s.status(p.Status == domain.StatusStale))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d projects to build\n", len(plan.Stale()), len(plan.Projects))
	return err
}

func printGraph(w io.Writer, vertices []domain.ProjectVertex) error {
	names := make(map[domain.PathKey]string, len(vertices))
	for _, v := range vertices {
		names[v.Key] = v.Name
	}

	tw := table(w)
	_, _ = fmt.Fprintln(tw, "PROJECT\tREFERENCES\tPATH")
	for _, v := range vertices {
		deps := make([]string, 0, len(v.Dependencies))
		for _, d := range v.Dependencies {
			deps = append(deps, names[d])
		}
		refs := strings.Join(deps, ", ")
		if refs == "" {
			refs = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, refs, v.Path)
	}
	return tw.Flush()
}
