// Package export persists a completed analysis run as a SQLite
// database or a compressed JSON snapshot. Exports are write-only
// artifacts for downstream tooling; depmap never reads them back to
// answer queries.
package export

import (
	"depmap/internal/analysis"
	"depmap/internal/diagnose"
	"depmap/internal/graph"
)

// Bundle collects everything a run produced for export
type Bundle struct {
	Graph    *graph.Graph             `json:"-"`
	Coupling *analysis.CouplingResult `json:"coupling,omitempty"`
	Cycles   *analysis.CyclesResult   `json:"cycles,omitempty"`
	External *analysis.ExternalResult `json:"external,omitempty"`
	Report   *diagnose.Report         `json:"report,omitempty"`
}
