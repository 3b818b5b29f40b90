package output

import (
	"fmt"
	"io"

	"depmap/internal/errors"
)

// Format selects an output rendering
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatDOT      Format = "dot"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a user-supplied format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatCSV, FormatDOT, FormatMarkdown:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", errors.New(errors.ConfigurationError,
		fmt.Sprintf("unknown output format %q", s))
}

// WriteJSON encodes v deterministically and writes it with a trailing
// newline.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
