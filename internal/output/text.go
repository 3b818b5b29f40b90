package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"depmap/internal/analysis"
	"depmap/internal/diagnose"
)

func newTab(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// ImpactText renders the blast radius of a change
func ImpactText(w io.Writer, r *analysis.ImpactResult) error {
	fmt.Fprintf(w, "Impact of changing %s: %d dependent(s)\n", r.Target, r.Total)
	tw := newTab(w)
	for _, d := range r.Dependents {
		note := ""
		if d.Test {
			note = "test"
		}
		fmt.Fprintf(tw, "  %s\tdepth %d\t%s\n", d.Path, d.Depth, note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(r.Collapsed) > 0 {
		fmt.Fprintln(w, "Collapsed:")
		for _, g := range r.Collapsed {
			fmt.Fprintf(w, "  %s (%d)\n", g.Path, g.Members)
		}
	}
	if len(r.TestOrder) > 0 {
		fmt.Fprintf(w, "Suggested test order: %s\n", strings.Join(r.TestOrder, " -> "))
	}
	return nil
}

// DepsText renders what a module pulls in
func DepsText(w io.Writer, r *analysis.DepsResult) error {
	fmt.Fprintf(w, "Dependencies of %s: %d total\n", r.Target, r.Total)
	tw := newTab(w)
	for _, d := range r.Internal {
		fmt.Fprintf(tw, "  %s\tdepth %d\tinternal\n", d.Path, d.Depth)
	}
	for _, d := range r.External {
		fmt.Fprintf(tw, "  %s\tdepth %d\texternal\n", d.Path, d.Depth)
	}
	return tw.Flush()
}

// CyclesText renders detected import cycles
func CyclesText(w io.Writer, r *analysis.CyclesResult) error {
	if r.Total == 0 {
		fmt.Fprintln(w, "No import cycles found")
		return nil
	}
	fmt.Fprintf(w, "%d import cycle(s)\n", r.Total)
	for _, c := range r.Cycles {
		fmt.Fprintf(w, "  [%s] %s\n", c.Severity, strings.Join(c.Modules, " -> "))
	}
	return nil
}

// OrphansText renders disconnected modules
func OrphansText(w io.Writer, r *analysis.OrphansResult) error {
	if r.Total == 0 {
		fmt.Fprintln(w, "No orphan modules")
		return nil
	}
	fmt.Fprintf(w, "%d orphan module(s)\n", r.Total)
	for _, p := range r.Orphans {
		fmt.Fprintf(w, "  %s\n", p)
	}
	return nil
}

// PressureText renders the dependency pressure ranking
func PressureText(w io.Writer, r *analysis.PressureResult) error {
	tw := newTab(w)
	fmt.Fprintln(tw, "MODULE\tDEPENDENTS\tLEVEL\tCENTRALITY")
	for _, m := range r.Modules {
		cent := ""
		if m.Centrality > 0 {
			cent = FormatFloat(m.Centrality)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", m.Path, m.Dependents, m.Level, cent)
	}
	return tw.Flush()
}

// ExternalsText renders the third-party dependency audit
func ExternalsText(w io.Writer, r *analysis.ExternalResult) error {
	tw := newTab(w)
	fmt.Fprintln(tw, "PACKAGE\tIMPORTERS\tTIER")
	for _, u := range r.Usage {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", u.Name, u.Count, u.Tier)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(r.Undeclared) > 0 {
		fmt.Fprintf(w, "Undeclared: %s\n", strings.Join(r.Undeclared, ", "))
	}
	if len(r.Unused) > 0 {
		fmt.Fprintf(w, "Unused: %s\n", strings.Join(r.Unused, ", "))
	}
	return nil
}

// CouplingText renders per-module coupling metrics
func CouplingText(w io.Writer, r *analysis.CouplingResult) error {
	tw := newTab(w)
	fmt.Fprintln(tw, "MODULE\tCA\tCE\tINSTABILITY\tSCORE\tRISK")
	for _, m := range r.Modules {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n",
			m.Path, m.Ca, m.Ce, FormatFloat(m.Instability), FormatFloat(m.Score), m.Risk)
	}
	return tw.Flush()
}

// ValidationText renders a what-if dependency check
func ValidationText(w io.Writer, r *analysis.ValidationResult) error {
	fmt.Fprintf(w, "%s: %s -> %s\n", r.Verdict, r.From, r.To)
	for _, c := range r.Checks {
		line := fmt.Sprintf("  [%s] %s", c.Verdict, c.Name)
		if c.Detail != "" {
			line += ": " + c.Detail
		}
		fmt.Fprintln(w, line)
		if len(c.CyclePath) > 0 {
			fmt.Fprintf(w, "    cycle: %s\n", strings.Join(c.CyclePath, " -> "))
		}
	}
	return nil
}

// ContextText renders the reading list for a target module
func ContextText(w io.Writer, r *analysis.ContextResult) error {
	fmt.Fprintf(w, "Context for %s\n", r.Target)
	tw := newTab(w)
	for _, it := range r.Items {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", it.Path, it.Relation, it.Tier)
	}
	return tw.Flush()
}

// PartitionText renders independently workable module groups
func PartitionText(w io.Writer, r *analysis.PartitionResult) error {
	fmt.Fprintf(w, "%d independent group(s)\n", len(r.Groups))
	for i, g := range r.Groups {
		fmt.Fprintf(w, "  group %d (%d): %s\n", i+1, g.Size, strings.Join(g.Modules, ", "))
	}
	return nil
}

// DiagnoseText renders the one-screen health summary
func DiagnoseText(w io.Writer, r *diagnose.Report) error {
	fmt.Fprintf(w, "Health: %s (%s)\n", FormatFloat(r.HealthScore), r.Grade)
	tw := newTab(w)
	fmt.Fprintf(tw, "  modules\t%d internal, %d external\n", r.InternalModules, r.ExternalModules)
	fmt.Fprintf(tw, "  imports\t%d edges, avg %s per module\n", r.ImportEdges, FormatFloat(r.AvgDependencies))
	fmt.Fprintf(tw, "  chain depth\t%d\n", r.MaxChainDepth)
	fmt.Fprintf(tw, "  instability\tavg %s\n", FormatFloat(r.AvgInstability))
	fmt.Fprintf(tw, "  cycles\t%d\n", len(r.Cycles))
	fmt.Fprintf(tw, "  orphans\t%d\n", len(r.Orphans))
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, is := range r.Issues {
		fmt.Fprintf(w, "  [%s] %s = %s (threshold %s)\n",
			is.Level, is.Metric, FormatFloat(is.Value), FormatFloat(is.Threshold))
	}
	return nil
}
