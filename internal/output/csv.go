package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"depmap/internal/analysis"
)

// CouplingCSV writes one row per module with its coupling metrics
func CouplingCSV(w io.Writer, r *analysis.CouplingResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"module", "ca", "ce", "instability", "score", "risk"}); err != nil {
		return err
	}
	for _, m := range r.Modules {
		row := []string{
			m.Path,
			strconv.Itoa(m.Ca),
			strconv.Itoa(m.Ce),
			FormatFloat(m.Instability),
			FormatFloat(m.Score),
			m.Risk,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PressureCSV writes the pressure ranking as rows
func PressureCSV(w io.Writer, r *analysis.PressureResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"module", "dependents", "level", "centrality"}); err != nil {
		return err
	}
	for _, m := range r.Modules {
		row := []string{m.Path, strconv.Itoa(m.Dependents), m.Level, FormatFloat(m.Centrality)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
