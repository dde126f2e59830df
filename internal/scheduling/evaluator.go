package scheduling

import (
	"fmt"
	"sync"
)

// Evaluator decodes chromosomes against a fixed Problem and scores them.
// Its only mutable state is the inconsistency counter below, which is
// mutex-guarded, so a single Evaluator is still safe to share across
// every island's goroutine.
type Evaluator struct {
	problem *Problem

	mu                sync.Mutex
	droppedGenes      int64
	lastInconsistency error
}

// NewEvaluator returns an Evaluator bound to the given problem.
func NewEvaluator(p *Problem) *Evaluator {
	return &Evaluator{problem: p}
}

// Decode iterates the chromosome's genes in order and groups lot indices
// by machine index. Genes referring to out-of-range indices or
// incompatible (lot, machine) pairs should never reach Decode — Repair
// removes them — so their presence here is an InternalInconsistencyError:
// Decode records it and drops the gene rather than failing the round.
func (e *Evaluator) Decode(c Chromosome) [][]int {
	m := e.problem.MachineCount()
	sequences := make([][]int, m)
	for _, g := range c {
		l, mach := g.Lot(m), g.Machine(m)
		if l < 0 || l >= e.problem.LotCount() || mach < 0 || mach >= m || !e.problem.Compatible(l, mach) {
			e.recordInconsistency(l, mach)
			continue
		}
		sequences[mach] = append(sequences[mach], l)
	}
	return sequences
}

func (e *Evaluator) recordInconsistency(l, mach int) {
	err := &InternalInconsistencyError{Reason: fmt.Sprintf(
		"gene referencing lot %d on machine %d reached Decode without passing Problem.Compatible; Repair should have removed it", l, mach)}

	e.mu.Lock()
	e.droppedGenes++
	e.lastInconsistency = err
	e.mu.Unlock()
}

// DroppedGeneCount returns how many genes Decode has dropped as an
// InternalInconsistencyError since this Evaluator was created.
func (e *Evaluator) DroppedGeneCount() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.droppedGenes
}

// LastInconsistency returns the most recently recorded
// InternalInconsistencyError, or nil if Decode has never dropped a gene.
func (e *Evaluator) LastInconsistency() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastInconsistency
}

// Makespan returns the maximum, over all machines, of the total
// processing time of the lots sequenced on that machine. Empty machines
// contribute 0.
func (e *Evaluator) Makespan(sequences [][]int) float64 {
	var makespan float64
	for mach, lots := range sequences {
		var total float64
		for _, l := range lots {
			total += e.problem.ProcessTimes[l][mach]
		}
		if total > makespan {
			makespan = total
		}
	}
	return makespan
}

// Fitness returns -makespan(decode(c)); larger fitness is better.
func (e *Evaluator) Fitness(c Chromosome) float64 {
	return -e.Makespan(e.Decode(c))
}

// EvaluateAndFill decodes c, writes every resulting Assignment into out
// (which is cleared first), and populates out's aggregate metrics.
// MaxTardiness is always 0: no due dates are modeled.
func (e *Evaluator) EvaluateAndFill(c Chromosome, lotIDs, machineIDs []string, out *Schedule) float64 {
	out.Clear()

	sequences := e.Decode(c)
	running := make([]float64, len(sequences))

	for mach, lots := range sequences {
		for _, l := range lots {
			proc := e.problem.ProcessTimes[l][mach]
			start := running[mach]
			end := start + proc
			running[mach] = end

			out.addAssignment(Assignment{
				LotIndex:       l,
				LotID:          safeID(lotIDs, l),
				MachineIndex:   mach,
				MachineID:      safeID(machineIDs, mach),
				ProcessingTime: proc,
				StartTime:      start,
				EndTime:        end,
			})

			if end > out.Makespan {
				out.Makespan = end
			}
		}
	}

	if n := len(out.Assignments); n > 0 {
		var sum float64
		for _, a := range out.Assignments {
			sum += a.EndTime
		}
		out.MeanFlowTime = sum / float64(n)
	}

	return -out.Makespan
}

func safeID(ids []string, idx int) string {
	if idx < 0 || idx >= len(ids) {
		return ""
	}
	return ids[idx]
}
