package pyimports

import (
	"strings"
)

// Absolute resolves a possibly-relative reference against the module
// it appears in. fromIsPackage marks __init__ modules, whose relative
// base is the module itself rather than its parent. The second return
// is false when the relative level climbs past the top of the tree.
func (r ImportRef) Absolute(fromModule string, fromIsPackage bool) (string, bool) {
	if r.Level == 0 {
		return r.Module, true
	}

	base := fromModule
	if !fromIsPackage {
		base = parentOf(base)
	}
	for i := 1; i < r.Level; i++ {
		if base == "" {
			return "", false
		}
		base = parentOf(base)
	}
	if base == "" && r.Module == "" {
		return "", false
	}

	switch {
	case base == "":
		return r.Module, true
	case r.Module == "":
		return base, true
	default:
		return base + "." + r.Module, true
	}
}

func parentOf(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// Root returns the first segment of a dotted path. External
// references collapse to their root distribution-ish name.
func Root(path string) string {
	if idx := strings.Index(path, "."); idx >= 0 {
		return path[:idx]
	}
	return path
}
