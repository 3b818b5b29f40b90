package output

import (
	"fmt"
	"io"

	"depmap/internal/graph"
	"depmap/internal/registry"
)

// WriteDOT renders the Imports graph in Graphviz DOT form. Nodes and
// edges are written in sorted order so output is reproducible;
// external packages get a box shape.
func WriteDOT(w io.Writer, g *graph.Graph) error {
	if _, err := io.WriteString(w, "digraph imports {\n  rankdir=LR;\n"); err != nil {
		return err
	}
	for _, path := range g.Nodes() {
		attrs := ""
		if m, err := g.Registry().Get(path); err == nil && m.Origin == registry.External {
			attrs = " [shape=box,style=dashed]"
		}
		if _, err := fmt.Fprintf(w, "  %q%s;\n", path, attrs); err != nil {
			return err
		}
	}
	for _, from := range g.Nodes() {
		for _, to := range g.Neighbors(from, graph.Imports, graph.Forward) {
			if _, err := fmt.Fprintf(w, "  %q -> %q;\n", from, to); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
