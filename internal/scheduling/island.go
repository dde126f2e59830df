package scheduling

import (
	"math/rand"
	"sort"
)

const tournamentSize = 3

// Island is an isolated sub-population with its own fitness cache and RNG
// stream. It evolves independently between migration points; the
// Archipelago is the only thing that touches more than one Island's state
// at a time.
type Island struct {
	Population []Chromosome
	Fitness    []float64
	rng        *rand.Rand
}

// NewIsland builds an island of size populated with random valid
// chromosomes, seeded from its own RNG stream so no two islands ever draw
// from the same sequence.
func NewIsland(p *Problem, eval *Evaluator, size int, seed int64) *Island {
	rng := rand.New(rand.NewSource(seed))
	isl := &Island{
		Population: make([]Chromosome, size),
		Fitness:    make([]float64, size),
		rng:        rng,
	}
	for i := 0; i < size; i++ {
		c := RandomChromosome(p, rng)
		isl.Population[i] = c
		isl.Fitness[i] = eval.Fitness(c)
	}
	return isl
}

// Size returns the island's population size.
func (isl *Island) Size() int {
	return len(isl.Population)
}

// Worst returns the index of the lowest-fitness member, ties broken by
// the highest index (per §4.5 migration protocol).
func (isl *Island) Worst() int {
	worst := 0
	for i := 1; i < len(isl.Fitness); i++ {
		if isl.Fitness[i] <= isl.Fitness[worst] {
			worst = i
		}
	}
	return worst
}

// tournamentSelect draws tournamentSize uniform indices and returns the
// one with the highest fitness, first draw winning ties.
func tournamentSelect(fitness []float64, rng *rand.Rand) int {
	best := rng.Intn(len(fitness))
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(fitness))
		if fitness[cand] > fitness[best] {
			best = cand
		}
	}
	return best
}

// Step runs one generation per §4.3: elitism, then tournament-selected
// reproduction (crossover + mutation + repair), evaluating every child and
// reporting any that beats the current global best through onBest.
func (isl *Island) Step(p *Problem, eval *Evaluator, cfg Config, onBest func(Chromosome, float64)) {
	size := isl.Size()

	order := make([]int, size)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return isl.Fitness[order[a]] > isl.Fitness[order[b]]
	})

	nextPop := make([]Chromosome, 0, size)
	nextFit := make([]float64, 0, size)

	for i := 0; i < cfg.ElitismCount && i < size; i++ {
		idx := order[i]
		nextPop = append(nextPop, isl.Population[idx])
		nextFit = append(nextFit, isl.Fitness[idx])
	}

	for len(nextPop) < size {
		p1 := tournamentSelect(isl.Fitness, isl.rng)
		p2 := tournamentSelect(isl.Fitness, isl.rng)

		var child1, child2 Chromosome
		if isl.rng.Float64() < cfg.CrossoverRate {
			child1 = isl.Population[p1].Crossover(isl.Population[p2], isl.rng)
			child2 = isl.Population[p2].Crossover(isl.Population[p1], isl.rng)
		} else {
			child1 = isl.Population[p1].Clone()
			child2 = isl.Population[p2].Clone()
		}

		child1.Mutate(cfg.MutationRate, isl.rng)
		child2.Mutate(cfg.MutationRate, isl.rng)

		child1 = child1.Repair(p, isl.rng)
		child2 = child2.Repair(p, isl.rng)

		fit1 := eval.Fitness(child1)
		nextPop = append(nextPop, child1)
		nextFit = append(nextFit, fit1)
		if onBest != nil {
			onBest(child1, fit1)
		}

		if len(nextPop) < size {
			fit2 := eval.Fitness(child2)
			nextPop = append(nextPop, child2)
			nextFit = append(nextFit, fit2)
			if onBest != nil {
				onBest(child2, fit2)
			}
		}
	}

	isl.Population = nextPop
	isl.Fitness = nextFit
}
