package output

import (
	"fmt"
	"io"
	"strings"

	"depmap/internal/diagnose"
)

// DiagnoseMarkdown renders the full diagnostic report as Markdown,
// suitable for posting into a PR or a docs page.
func DiagnoseMarkdown(w io.Writer, r *diagnose.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dependency Health Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt)
	fmt.Fprintf(&b, "## Score: %s (grade %s)\n\n", FormatFloat(r.HealthScore), r.Grade)

	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Modules | %d (%d internal, %d external) |\n",
		r.TotalModules, r.InternalModules, r.ExternalModules)
	fmt.Fprintf(&b, "| Import edges | %d |\n", r.ImportEdges)
	fmt.Fprintf(&b, "| Avg dependencies | %s |\n", FormatFloat(r.AvgDependencies))
	fmt.Fprintf(&b, "| Max chain depth | %d |\n", r.MaxChainDepth)
	fmt.Fprintf(&b, "| Avg instability | %s |\n", FormatFloat(r.AvgInstability))
	fmt.Fprintf(&b, "| Pressure p10/p50/p90 | %s / %s / %s |\n\n",
		FormatFloat(r.PressureSpread.P10), FormatFloat(r.PressureSpread.P50), FormatFloat(r.PressureSpread.P90))

	if len(r.Issues) > 0 {
		fmt.Fprintf(&b, "## Issues\n\n")
		for _, is := range r.Issues {
			fmt.Fprintf(&b, "- **%s** `%s` = %s, threshold %s (-%s)\n",
				is.Level, is.Metric, FormatFloat(is.Value), FormatFloat(is.Threshold), FormatFloat(is.Penalty))
		}
		b.WriteString("\n")
	}

	if len(r.Cycles) > 0 {
		fmt.Fprintf(&b, "## Cycles\n\n")
		for _, c := range r.Cycles {
			fmt.Fprintf(&b, "- [%s] `%s`\n", c.Severity, strings.Join(c.Modules, " -> "))
		}
		b.WriteString("\n")
	}

	if len(r.TopPressure) > 0 {
		fmt.Fprintf(&b, "## Highest pressure\n\n")
		for _, p := range r.TopPressure {
			fmt.Fprintf(&b, "- `%s` (%d dependents, %s)\n", p.Path, p.Dependents, p.Level)
		}
		b.WriteString("\n")
	}

	if len(r.Orphans) > 0 {
		fmt.Fprintf(&b, "## Orphans\n\n")
		for _, o := range r.Orphans {
			fmt.Fprintf(&b, "- `%s`\n", o)
		}
		b.WriteString("\n")
	}

	if len(r.UndeclaredExtern) > 0 {
		fmt.Fprintf(&b, "## Undeclared externals\n\n")
		for _, u := range r.UndeclaredExtern {
			fmt.Fprintf(&b, "- `%s`\n", u)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
