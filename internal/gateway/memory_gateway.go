package gateway

import (
	"context"
	"sync"
)

// MemoryGateway is an in-process Gateway backed by plain Go slices/maps,
// used by the scheduler-service tests and for local runs without a
// database.
type MemoryGateway struct {
	mu       sync.Mutex
	Machines []string
	Lots     []string
	Times    [][]float64 // Times[l][m], indexed per Lots/Machines order

	Saved []DispatchRecord
}

// NewMemoryGateway builds a gateway seeded with the given lots, machines,
// and processing-time matrix.
func NewMemoryGateway(lots, machines []string, times [][]float64) *MemoryGateway {
	return &MemoryGateway{Machines: machines, Lots: lots, Times: times}
}

func (g *MemoryGateway) ListMachines(context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.Machines))
	copy(out, g.Machines)
	return out, nil
}

func (g *MemoryGateway) ListLots(context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.Lots))
	copy(out, g.Lots)
	return out, nil
}

// ProcessTimeMatrix returns the stored matrix reindexed to match the
// requested lots/machines order; missing pairs default to 0.
func (g *MemoryGateway) ProcessTimeMatrix(_ context.Context, lots, machines []string) ([][]float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	lotPos := make(map[string]int, len(g.Lots))
	for i, id := range g.Lots {
		lotPos[id] = i
	}
	machinePos := make(map[string]int, len(g.Machines))
	for i, id := range g.Machines {
		machinePos[id] = i
	}

	out := make([][]float64, len(lots))
	for i, lotID := range lots {
		out[i] = make([]float64, len(machines))
		srcL, ok := lotPos[lotID]
		if !ok {
			continue
		}
		for j, machID := range machines {
			srcM, ok := machinePos[machID]
			if !ok {
				continue
			}
			out[i][j] = g.Times[srcL][srcM]
		}
	}
	return out, nil
}

// SaveDispatchRecords appends the batch to Saved. Real persistence
// atomicity is irrelevant for an in-memory store guarded by a mutex.
func (g *MemoryGateway) SaveDispatchRecords(_ context.Context, records []DispatchRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Saved = append(g.Saved, records...)
	return nil
}
