package scheduling

import (
	"math/rand"
	"sort"
)

const rouletteEpsilon = 1e-9

// migrantCount returns max(1, floor(populationPerIsland*rate)).
func migrantCount(populationPerIsland int, rate float64) int {
	c := int(float64(populationPerIsland) * rate)
	if c < 1 {
		c = 1
	}
	return c
}

// selectMigrants returns the indices (into isl.Population/Fitness) of the
// count individuals to migrate, chosen per policy.
func selectMigrants(isl *Island, count int, policy MigrationPolicy, rng *rand.Rand) []int {
	switch policy {
	case MigrationRandom:
		return selectRandom(isl.Size(), count, rng)
	case MigrationTournament:
		return selectTournament(isl.Fitness, count, rng)
	case MigrationRouletteWheel:
		return selectRouletteWheel(isl.Fitness, count, rng)
	case MigrationBest:
		fallthrough
	default:
		return selectBest(isl.Fitness, count)
	}
}

// selectBest returns the indices of the top-count fitnesses, ties broken
// by lower index first.
func selectBest(fitness []float64, count int) []int {
	idx := make([]int, len(fitness))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if fitness[idx[a]] != fitness[idx[b]] {
			return fitness[idx[a]] > fitness[idx[b]]
		}
		return idx[a] < idx[b]
	})
	if count > len(idx) {
		count = len(idx)
	}
	return idx[:count]
}

// selectRandom returns count distinct indices drawn uniformly without
// replacement from [0, size).
func selectRandom(size, count int, rng *rand.Rand) []int {
	if count > size {
		count = size
	}
	perm := rng.Perm(size)
	return perm[:count]
}

// selectTournament repeats an independent size-3 tournament count times.
func selectTournament(fitness []float64, count int, rng *rand.Rand) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = tournamentSelect(fitness, rng)
	}
	return out
}

// selectRouletteWheel samples proportionally to fitness shifted by
// -min(fitness)+epsilon so every weight is positive, as recommended for
// negative (makespan-derived) fitness values.
func selectRouletteWheel(fitness []float64, count int, rng *rand.Rand) []int {
	min := fitness[0]
	for _, f := range fitness[1:] {
		if f < min {
			min = f
		}
	}

	weights := make([]float64, len(fitness))
	var total float64
	for i, f := range fitness {
		weights[i] = f - min + rouletteEpsilon
		total += weights[i]
	}

	out := make([]int, count)
	for i := range out {
		target := rng.Float64() * total
		var cumulative float64
		chosen := len(weights) - 1
		for idx, w := range weights {
			cumulative += w
			if cumulative >= target {
				chosen = idx
				break
			}
		}
		out[i] = chosen
	}
	return out
}
