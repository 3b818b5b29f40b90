// Package pyimports extracts static import facts from Python source
// using tree-sitter. It reports raw references; resolving them to
// registry modules happens at graph build time.
package pyimports

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"depmap/internal/errors"
)

// ImportRef is one import statement found in a source file.
type ImportRef struct {
	// Module is the referenced dotted path, empty for pure relative
	// imports like "from . import x".
	Module string
	// Level counts leading dots of a relative import, 0 for absolute
	Level int
	// Names lists the imported symbols of a from-import; nil for a
	// plain import statement
	Names []string
	// Line is the 1-based source line of the statement
	Line int
}

// Extractor parses Python files. Not safe for concurrent use; give
// each worker its own.
type Extractor struct {
	parser *sitter.Parser
}

// NewExtractor creates a Python import extractor
func NewExtractor() *Extractor {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Extractor{parser: p}
}

// Extract returns every import statement in source, in file order.
// Imports nested in functions or conditionals count the same as
// top-level ones; the analysis is static.
func (e *Extractor) Extract(ctx context.Context, source []byte) ([]ImportRef, error) {
	tree, err := e.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.Wrap(errors.ParseError, "python parse failed", err)
	}
	defer tree.Close()

	var refs []ImportRef
	walk(tree.RootNode(), func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			refs = append(refs, plainImports(n, source)...)
		case "import_from_statement":
			refs = append(refs, fromImport(n, source))
		}
	})
	return refs, nil
}

func walk(n *sitter.Node, visit func(*sitter.Node)) {
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			walk(c, visit)
		}
	}
}

// plainImports handles "import a.b, c as d"
func plainImports(n *sitter.Node, source []byte) []ImportRef {
	var refs []ImportRef
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		module := ""
		switch child.Type() {
		case "dotted_name":
			module = child.Content(source)
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				module = name.Content(source)
			}
		}
		if module != "" {
			refs = append(refs, ImportRef{
				Module: module,
				Line:   int(n.StartPoint().Row) + 1,
			})
		}
	}
	return refs
}

// fromImport handles "from x.y import a, b as c" and relative forms
func fromImport(n *sitter.Node, source []byte) ImportRef {
	ref := ImportRef{Line: int(n.StartPoint().Row) + 1}

	if mod := n.ChildByFieldName("module_name"); mod != nil {
		switch mod.Type() {
		case "dotted_name":
			ref.Module = mod.Content(source)
		case "relative_import":
			text := mod.Content(source)
			ref.Level = len(text) - len(strings.TrimLeft(text, "."))
			ref.Module = strings.TrimLeft(text, ".")
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if mod := n.ChildByFieldName("module_name"); mod != nil && child.Equal(mod) {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			ref.Names = append(ref.Names, child.Content(source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				ref.Names = append(ref.Names, name.Content(source))
			}
		case "wildcard_import":
			ref.Names = append(ref.Names, "*")
		}
	}
	return ref
}
