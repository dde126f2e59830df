package scheduling

import (
	"math"
	"math/rand"
	"sync"
)

// Archipelago owns every Island plus the migration topology and tracks
// the best chromosome seen across the whole run.
type Archipelago struct {
	problem   *Problem
	evaluator *Evaluator
	config    Config
	lotIDs    []string
	machineIDs []string

	islands    []*Island
	topology   [][]bool
	generation int

	bestMu         sync.Mutex
	bestChromosome Chromosome
	bestFitness    float64
	bestSchedule   Schedule
}

// NewArchipelago constructs an Archipelago for the given problem and
// configuration; call Initialize before Evolve.
func NewArchipelago(p *Problem, cfg Config) *Archipelago {
	return &Archipelago{
		problem:     p,
		evaluator:   NewEvaluator(p),
		config:      cfg,
		lotIDs:      p.Lots,
		machineIDs:  p.Machines,
		bestFitness: math.Inf(-1),
	}
}

// Initialize allocates every island with a fresh random population,
// evaluates it, seeds the global best, and builds the migration topology.
func (a *Archipelago) Initialize(seed int64) {
	perIsland := a.config.PopulationPerIsland()
	a.islands = make([]*Island, a.config.IslandCount)

	for i := 0; i < a.config.IslandCount; i++ {
		isl := NewIsland(a.problem, a.evaluator, perIsland, seed+int64(i)*9973+1)
		a.islands[i] = isl
		for j, c := range isl.Population {
			a.considerBest(c, isl.Fitness[j])
		}
	}

	a.topology = BuildTopology(a.config.IslandCount, a.config.MigrationTopology)
}

// Evolve runs generations rounds: one goroutine per island runs §4.3's
// per-island step, a WaitGroup barriers all of them, then migration runs
// serially on the configured interval before the generation counter
// advances.
func (a *Archipelago) Evolve(generations int) {
	for g := 0; g < generations; g++ {
		var wg sync.WaitGroup
		wg.Add(len(a.islands))
		for _, isl := range a.islands {
			isl := isl
			go func() {
				defer wg.Done()
				isl.Step(a.problem, a.evaluator, a.config, a.considerBest)
			}()
		}
		wg.Wait()

		if (a.generation+1)%a.config.MigrationInterval == 0 {
			a.migrate()
		}
		a.generation++
	}
}

// considerBest publishes a candidate if it beats the current best. It is
// the sole cross-island mutation point and is serialized by bestMu.
func (a *Archipelago) considerBest(c Chromosome, fitness float64) {
	a.bestMu.Lock()
	defer a.bestMu.Unlock()
	if fitness > a.bestFitness {
		a.bestFitness = fitness
		a.bestChromosome = c.Clone()
		a.evaluator.EvaluateAndFill(a.bestChromosome, a.lotIDs, a.machineIDs, &a.bestSchedule)
	}
}

// BestSolution returns the best chromosome seen so far and its decoded
// schedule.
func (a *Archipelago) BestSolution() (Chromosome, Schedule) {
	a.bestMu.Lock()
	defer a.bestMu.Unlock()
	return a.bestChromosome.Clone(), a.bestSchedule
}

// BestFitness returns the best fitness value seen so far.
func (a *Archipelago) BestFitness() float64 {
	a.bestMu.Lock()
	defer a.bestMu.Unlock()
	return a.bestFitness
}

// DroppedGeneCount returns how many genes this Archipelago's evaluator
// has dropped as an InternalInconsistencyError so far.
func (a *Archipelago) DroppedGeneCount() int64 {
	return a.evaluator.DroppedGeneCount()
}

// LastInconsistency returns the most recent InternalInconsistencyError
// recorded by this Archipelago's evaluator, or nil if none occurred.
func (a *Archipelago) LastInconsistency() error {
	return a.evaluator.LastInconsistency()
}

// migrate runs the §4.5 migration protocol: for every source island,
// select its migrants by policy, then for every destination the topology
// connects it to, overwrite that destination's worst member whenever the
// migrant is strictly fitter.
func (a *Archipelago) migrate() {
	if len(a.islands) <= 1 {
		return
	}

	rng := rand.New(rand.NewSource(int64(a.generation) + 1))
	count := migrantCount(a.islands[0].Size(), a.config.MigrationRate)

	for src := 0; src < len(a.islands); src++ {
		migrantIdx := selectMigrants(a.islands[src], count, a.config.MigrationPolicy, rng)
		migrants := make([]Chromosome, len(migrantIdx))
		migrantFit := make([]float64, len(migrantIdx))
		for i, idx := range migrantIdx {
			migrants[i] = a.islands[src].Population[idx].Clone()
			migrantFit[i] = a.islands[src].Fitness[idx]
		}

		for dst := 0; dst < len(a.islands); dst++ {
			if !a.topology[src][dst] {
				continue
			}
			destIsland := a.islands[dst]
			for i, migrant := range migrants {
				worst := destIsland.Worst()
				if migrantFit[i] > destIsland.Fitness[worst] {
					destIsland.Population[worst] = migrant
					destIsland.Fitness[worst] = migrantFit[i]
					a.considerBest(migrant, migrantFit[i])
				}
			}
		}
	}
}
