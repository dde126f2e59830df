// Package gateway implements the Datastore Gateway capability surface the
// scheduling engine consumes: lot/machine listings, the process-time
// matrix, and dispatch-record persistence.
package gateway

import "context"

// DispatchRecord is the wire tuple persisted for one scheduled lot: the
// machine and lot it binds, the wall-clock release time stamped at
// persistence time, and the schedule-relative start/end offsets.
type DispatchRecord struct {
	MachineID   string
	LotID       string
	ReleaseTime float64
	StartTime   float64
	EndTime     float64
}

// Gateway is the narrow interface the Scheduler Service depends on. Both
// SQLGateway and MemoryGateway satisfy it.
type Gateway interface {
	ListMachines(ctx context.Context) ([]string, error)
	ListLots(ctx context.Context) ([]string, error)
	ProcessTimeMatrix(ctx context.Context, lots, machines []string) ([][]float64, error)
	SaveDispatchRecords(ctx context.Context, records []DispatchRecord) error
}
