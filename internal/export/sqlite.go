package export

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"depmap/internal/errors"
	"depmap/internal/graph"
	"depmap/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS modules (
	path     TEXT PRIMARY KEY,
	origin   TEXT NOT NULL,
	package  INTEGER NOT NULL DEFAULT 0,
	inferred INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS imports (
	from_module TEXT NOT NULL,
	to_module   TEXT NOT NULL,
	PRIMARY KEY (from_module, to_module)
);
CREATE TABLE IF NOT EXISTS cycles (
	id       INTEGER PRIMARY KEY,
	severity TEXT NOT NULL,
	members  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS coupling (
	module      TEXT PRIMARY KEY,
	ca          INTEGER NOT NULL,
	ce          INTEGER NOT NULL,
	instability REAL NOT NULL,
	score       REAL NOT NULL,
	risk        TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS report (
	report_id    TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	health_score REAL NOT NULL,
	grade        TEXT NOT NULL
);
`

// WriteSQLite writes the bundle into a fresh SQLite database at path.
// Everything goes in one transaction so a failed export never leaves
// a half-written file behind.
func WriteSQLite(ctx context.Context, path string, b *Bundle, logger *logging.Logger) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.Wrap(errors.ExportError, "opening database", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(errors.ExportError, "creating schema", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ExportError, "starting transaction", err)
	}
	defer tx.Rollback()

	if err := writeGraph(ctx, tx, b.Graph); err != nil {
		return err
	}
	if b.Cycles != nil {
		for i, c := range b.Cycles.Cycles {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO cycles (id, severity, members) VALUES (?, ?, ?)`,
				i+1, c.Severity, strings.Join(c.Modules, ","))
			if err != nil {
				return errors.Wrap(errors.ExportError, "writing cycles", err)
			}
		}
	}
	if b.Coupling != nil {
		for _, m := range b.Coupling.Modules {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO coupling (module, ca, ce, instability, score, risk) VALUES (?, ?, ?, ?, ?, ?)`,
				m.Path, m.Ca, m.Ce, m.Instability, m.Score, m.Risk)
			if err != nil {
				return errors.Wrap(errors.ExportError, "writing coupling", err)
			}
		}
	}
	if b.Report != nil {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO report (report_id, generated_at, health_score, grade) VALUES (?, ?, ?, ?)`,
			b.Report.ReportID, b.Report.GeneratedAt, b.Report.HealthScore, b.Report.Grade)
		if err != nil {
			return errors.Wrap(errors.ExportError, "writing report", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ExportError, "committing export", err)
	}

	logger.Info("sqlite export written", map[string]interface{}{
		"path": path, "modules": b.Graph.Registry().Len(),
	})
	return nil
}

func writeGraph(ctx context.Context, tx *sql.Tx, g *graph.Graph) error {
	for _, m := range g.Registry().All() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO modules (path, origin, package, inferred) VALUES (?, ?, ?, ?)`,
			m.Path, string(m.Origin), boolInt(m.Package), boolInt(m.Inferred))
		if err != nil {
			return errors.Wrap(errors.ExportError, "writing modules", err)
		}
	}
	for _, from := range g.Nodes() {
		for _, to := range g.Neighbors(from, graph.Imports, graph.Forward) {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO imports (from_module, to_module) VALUES (?, ?)`, from, to)
			if err != nil {
				return errors.Wrap(errors.ExportError, "writing imports", err)
			}
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
