package gateway

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
)

// SQLGateway is the production Datastore Gateway: a sqlx connection pool
// over a Postgres-compatible backend (via the pgx stdlib driver) holding
// three tables — equipment, lots, process_times — plus a dispatch_records
// sink.
//
// The schema this gateway assumes:
//
//	equipment(id TEXT PRIMARY KEY)
//	lots(id TEXT PRIMARY KEY)
//	process_times(lot_id TEXT, machine_id TEXT, seconds DOUBLE PRECISION)
//	dispatch_records(machine_id TEXT, lot_id TEXT, release_time DOUBLE PRECISION,
//	                  start_time DOUBLE PRECISION, end_time DOUBLE PRECISION)
type SQLGateway struct {
	db *sqlx.DB
}

// OpenSQLGateway opens a connection pool against dsn using the pgx stdlib
// driver and verifies connectivity.
func OpenSQLGateway(ctx context.Context, dsn string) (*SQLGateway, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("gateway: connect: %w", err)
	}
	return &SQLGateway{db: db}, nil
}

// Close releases the underlying connection pool.
func (g *SQLGateway) Close() error {
	return g.db.Close()
}

// ListMachines returns every known equipment id, ordered for stable
// matrix construction.
func (g *SQLGateway) ListMachines(ctx context.Context) ([]string, error) {
	var ids []string
	err := g.db.SelectContext(ctx, &ids, `SELECT id FROM equipment ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("gateway: list machines: %w", err)
	}
	return ids, nil
}

// ListLots returns every known lot id, deduplicated and ordered.
func (g *SQLGateway) ListLots(ctx context.Context) ([]string, error) {
	var ids []string
	err := g.db.SelectContext(ctx, &ids, `SELECT DISTINCT id FROM lots ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("gateway: list lots: %w", err)
	}
	return ids, nil
}

// ProcessTimeMatrix fetches every (lot, machine) process time for the
// given lots/machines in a single bulk query (resolving the "per-cell vs
// bulk" open question in favor of bulk, per DESIGN.md) and assembles the
// dense L×M matrix, defaulting incompatible cells to 0.
func (g *SQLGateway) ProcessTimeMatrix(ctx context.Context, lots, machines []string) ([][]float64, error) {
	matrix := make([][]float64, len(lots))
	for i := range matrix {
		matrix[i] = make([]float64, len(machines))
	}
	if len(lots) == 0 || len(machines) == 0 {
		return matrix, nil
	}

	lotIndex := make(map[string]int, len(lots))
	for i, id := range lots {
		lotIndex[id] = i
	}
	machineIndex := make(map[string]int, len(machines))
	for i, id := range machines {
		machineIndex[id] = i
	}

	query, args, err := sqlx.In(
		`SELECT lot_id, machine_id, seconds FROM process_times
		 WHERE lot_id IN (?) AND machine_id IN (?)`,
		lots, machines,
	)
	if err != nil {
		return nil, fmt.Errorf("gateway: build matrix query: %w", err)
	}
	query = g.db.Rebind(query)

	rows, err := g.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("gateway: fetch process times: %w", err)
	}
	defer rows.Close()

	var rec struct {
		LotID     string  `db:"lot_id"`
		MachineID string  `db:"machine_id"`
		Seconds   float64 `db:"seconds"`
	}
	for rows.Next() {
		if err := rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("gateway: scan process time: %w", err)
		}
		l, okL := lotIndex[rec.LotID]
		m, okM := machineIndex[rec.MachineID]
		if okL && okM {
			matrix[l][m] = rec.Seconds
		}
	}
	return matrix, rows.Err()
}

// SaveDispatchRecords persists the batch inside a single transaction, so
// the write is atomic per call as required by §4.6.
func (g *SQLGateway) SaveDispatchRecords(ctx context.Context, records []DispatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("gateway: begin tx: %w", err)
	}
	defer tx.Rollback()

	const insert = `INSERT INTO dispatch_records
		(machine_id, lot_id, release_time, start_time, end_time)
		VALUES (:machine_id, :lot_id, :release_time, :start_time, :end_time)`

	for _, r := range records {
		_, err := tx.NamedExecContext(ctx, insert, map[string]any{
			"machine_id":   r.MachineID,
			"lot_id":       r.LotID,
			"release_time": r.ReleaseTime,
			"start_time":   r.StartTime,
			"end_time":     r.EndTime,
		})
		if err != nil {
			return fmt.Errorf("gateway: insert dispatch record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("gateway: commit dispatch records: %w", err)
	}
	return nil
}
