package analysis

import (
	"regexp"

	"depmap/internal/errors"
)

// PathFilter compiles a caller-supplied pattern into a module path
// predicate. The empty pattern matches everything. A pattern that
// fails to compile is rejected before any traversal runs.
func PathFilter(pattern string) (func(string) bool, error) {
	if pattern == "" {
		return func(string) bool { return true }, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidFilterPattern,
			"invalid filter pattern '"+pattern+"'", err)
	}
	return re.MatchString, nil
}
