package export

import (
	"encoding/json"
	"io"

	"github.com/klauspost/compress/zstd"

	"depmap/internal/errors"
	"depmap/internal/graph"
	"depmap/internal/output"
	"depmap/internal/registry"
)

// snapshotDoc is the JSON shape of a compressed snapshot
type snapshotDoc struct {
	Modules  []*registry.Module  `json:"modules"`
	Imports  map[string][]string `json:"imports"`
	Analysis *Bundle             `json:"analysis,omitempty"`
}

// WriteSnapshot serializes the bundle as deterministic JSON and
// zstd-compresses it onto w.
func WriteSnapshot(w io.Writer, b *Bundle) error {
	doc := snapshotDoc{
		Modules: b.Graph.Registry().All(),
		Imports: make(map[string][]string),
	}
	for _, from := range b.Graph.Nodes() {
		if deps := b.Graph.Neighbors(from, graph.Imports, graph.Forward); len(deps) > 0 {
			doc.Imports[from] = deps
		}
	}
	doc.Analysis = b

	data, err := output.EncodeJSON(doc)
	if err != nil {
		return errors.Wrap(errors.ExportError, "encoding snapshot", err)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(errors.ExportError, "initializing compressor", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return errors.Wrap(errors.ExportError, "compressing snapshot", err)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ExportError, "flushing snapshot", err)
	}
	return nil
}

// ReadSnapshot decompresses and decodes a snapshot written by
// WriteSnapshot. Used by tooling that diffs two runs.
func ReadSnapshot(r io.Reader) (map[string]interface{}, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ExportError, "initializing decompressor", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, errors.Wrap(errors.ExportError, "decompressing snapshot", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ExportError, "decoding snapshot", err)
	}
	return doc, nil
}
