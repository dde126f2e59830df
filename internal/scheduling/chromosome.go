package scheduling

import "math/rand"

// Gene encodes a single (lot, machine) assignment as g = l*M + m.
type Gene uint64

// Lot recovers the lot index from a gene given the machine count.
func (g Gene) Lot(machineCount int) int {
	return int(uint64(g) / uint64(machineCount))
}

// Machine recovers the machine index from a gene given the machine count.
func (g Gene) Machine(machineCount int) int {
	return int(uint64(g) % uint64(machineCount))
}

func makeGene(l, m, machineCount int) Gene {
	return Gene(uint64(l)*uint64(machineCount) + uint64(m))
}

// Chromosome is an ordered sequence of genes, at most one per lot.
type Chromosome []Gene

// Clone returns an independent copy of the chromosome.
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}

// RandomChromosome builds a valid chromosome by choosing, for each lot, a
// uniformly random compatible machine, then shuffling the resulting gene
// order. Every lot with at least one compatible machine is placed, so the
// result has length p.LotCount() whenever Problem.Validate() passed.
func RandomChromosome(p *Problem, rng *rand.Rand) Chromosome {
	m := p.MachineCount()
	genes := make(Chromosome, 0, p.LotCount())
	for l := range p.Lots {
		candidates := p.compatibleMachines(l)
		if len(candidates) == 0 {
			continue
		}
		machine := candidates[rng.Intn(len(candidates))]
		genes = append(genes, makeGene(l, machine, m))
	}
	rng.Shuffle(len(genes), func(i, j int) {
		genes[i], genes[j] = genes[j], genes[i]
	})
	return genes
}

// Crossover performs order-based (OX-style) crossover between two parent
// gene sequences of equal length. It draws a uniform slice [i,j], copies
// the slice from a verbatim, then fills the remaining positions in order
// with genes from b that are not already present (by gene value), starting
// just after j and wrapping. The result may contain the same lot twice on
// different machines if the parents disagree — Repair is mandatory after
// Crossover.
func (c Chromosome) Crossover(other Chromosome, rng *rand.Rand) Chromosome {
	n := len(c)
	if n == 0 || len(other) != n {
		return c.Clone()
	}

	i := rng.Intn(n)
	j := rng.Intn(n)
	if i > j {
		i, j = j, i
	}

	child := make(Chromosome, n)
	present := make(map[Gene]bool, n)
	for k := i; k <= j; k++ {
		child[k] = c[k]
		present[c[k]] = true
	}

	pos := (j + 1) % n
	for k := 0; k < n; k++ {
		gene := other[(j+1+k)%n]
		if present[gene] {
			continue
		}
		if pos >= i && pos <= j {
			break
		}
		child[pos] = gene
		present[gene] = true
		pos = (pos + 1) % n
	}

	return child
}

// Mutate applies swap mutation: for every position, with probability rate,
// swap it with a uniformly chosen other position.
func (c Chromosome) Mutate(rate float64, rng *rand.Rand) {
	n := len(c)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		if rng.Float64() < rate {
			j := rng.Intn(n - 1)
			if j >= i {
				j++
			}
			c[i], c[j] = c[j], c[i]
		}
	}
}

// IsValid reports whether every gene is in range, no lot index repeats,
// and every gene respects process-time compatibility.
func (c Chromosome) IsValid(p *Problem) bool {
	m := p.MachineCount()
	seen := make(map[int]bool, len(c))
	for _, g := range c {
		l, mach := g.Lot(m), g.Machine(m)
		if l < 0 || l >= p.LotCount() || mach < 0 || mach >= m {
			return false
		}
		if seen[l] {
			return false
		}
		if !p.Compatible(l, mach) {
			return false
		}
		seen[l] = true
	}
	return true
}

// Repair normalizes a chromosome in two passes: first it drops genes that
// are out of range, duplicate a lot already seen, or violate
// compatibility, keeping the surviving genes in their original relative
// order; then it appends one gene per lot that never appeared, using a
// random compatible machine. Replacement genes always go at the end: they
// are not written back into the positions the dropped genes held.
// Repair is idempotent: repairing an already-valid, full-length
// chromosome returns it unchanged.
func (c Chromosome) Repair(p *Problem, rng *rand.Rand) Chromosome {
	m := p.MachineCount()

	kept := make(Chromosome, 0, len(c))
	seenLot := make(map[int]bool, p.LotCount())

	for _, g := range c {
		l, mach := g.Lot(m), g.Machine(m)
		valid := l >= 0 && l < p.LotCount() && mach >= 0 && mach < m &&
			!seenLot[l] && p.Compatible(l, mach)
		if valid {
			kept = append(kept, g)
			seenLot[l] = true
		}
	}

	missing := make([]int, 0)
	for l := range p.Lots {
		if !seenLot[l] && len(p.compatibleMachines(l)) > 0 {
			missing = append(missing, l)
		}
	}

	if len(missing) == 0 {
		return kept
	}

	// Rejected genes are compacted out rather than left as addressable
	// slots, so every unassigned lot is simply appended; this is
	// equivalent to "write into a rejected slot, or append once slots
	// are exhausted" for validity purposes, since slot identity doesn't
	// survive compaction either way.
	out := make(Chromosome, len(kept), len(kept)+len(missing))
	copy(out, kept)
	for _, l := range missing {
		candidates := p.compatibleMachines(l)
		machine := candidates[rng.Intn(len(candidates))]
		out = append(out, makeGene(l, machine, m))
	}

	return out
}
