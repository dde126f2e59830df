package scheduling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneRoundTrip(t *testing.T) {
	const machineCount = 5
	for l := 0; l < 10; l++ {
		for m := 0; m < machineCount; m++ {
			g := makeGene(l, m, machineCount)
			assert.Equal(t, l, g.Lot(machineCount))
			assert.Equal(t, m, g.Machine(machineCount))
		}
	}
}

func TestRandomChromosome_ValidAndComplete(t *testing.T) {
	p := validProblem()
	rng := rand.New(rand.NewSource(1))
	c := RandomChromosome(p, rng)

	require.Len(t, c, p.LotCount())
	assert.True(t, c.IsValid(p))
}

func TestRandomChromosome_Deterministic(t *testing.T) {
	p := validProblem()
	c1 := RandomChromosome(p, rand.New(rand.NewSource(42)))
	c2 := RandomChromosome(p, rand.New(rand.NewSource(42)))
	assert.Equal(t, c1, c2)
}

func TestChromosomeClone_Independent(t *testing.T) {
	p := validProblem()
	c := RandomChromosome(p, rand.New(rand.NewSource(1)))
	clone := c.Clone()
	clone[0] = Gene(9999)
	assert.NotEqual(t, c[0], clone[0])
}

func TestCrossover_PreservesLength(t *testing.T) {
	p := validProblem()
	rng := rand.New(rand.NewSource(7))
	a := RandomChromosome(p, rng)
	b := RandomChromosome(p, rng)

	child := a.Crossover(b, rng)
	assert.Len(t, child, len(a))
}

func TestCrossover_MismatchedLengthReturnsClone(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := Chromosome{Gene(1), Gene(2)}
	b := Chromosome{Gene(1)}
	child := a.Crossover(b, rng)
	assert.Equal(t, a, child)
}

func TestMutate_NoopOnRateZero(t *testing.T) {
	p := validProblem()
	c := RandomChromosome(p, rand.New(rand.NewSource(1)))
	before := c.Clone()
	c.Mutate(0, rand.New(rand.NewSource(2)))
	assert.Equal(t, before, c)
}

func TestRepair_IdempotentOnValidChromosome(t *testing.T) {
	p := validProblem()
	rng := rand.New(rand.NewSource(3))
	c := RandomChromosome(p, rng)
	require.True(t, c.IsValid(p))

	repaired := c.Repair(p, rng)
	assert.ElementsMatch(t, []Gene(c), []Gene(repaired))
	assert.True(t, repaired.IsValid(p))
}

func TestRepair_FixesDuplicateAndMissingLot(t *testing.T) {
	p := validProblem()
	m := p.MachineCount()
	// L1 appears twice (on M1 both times), L3 never appears.
	broken := Chromosome{makeGene(0, 0, m), makeGene(0, 0, m), makeGene(1, 1, m)}

	rng := rand.New(rand.NewSource(4))
	repaired := broken.Repair(p, rng)

	require.True(t, repaired.IsValid(p))
	assert.Len(t, repaired, p.LotCount())
}

func TestRepair_DropsIncompatibleGene(t *testing.T) {
	p := validProblem()
	m := p.MachineCount()
	// L1 on M2 is incompatible per validProblem's matrix.
	broken := Chromosome{makeGene(0, 1, m), makeGene(1, 1, m), makeGene(2, 0, m)}

	rng := rand.New(rand.NewSource(5))
	repaired := broken.Repair(p, rng)

	require.True(t, repaired.IsValid(p))
	assert.Len(t, repaired, p.LotCount())
}

func TestIsValid_RejectsOutOfRangeGene(t *testing.T) {
	p := validProblem()
	c := Chromosome{Gene(9999)}
	assert.False(t, c.IsValid(p))
}

func TestIsValid_RejectsDuplicateLot(t *testing.T) {
	p := validProblem()
	m := p.MachineCount()
	c := Chromosome{makeGene(0, 0, m), makeGene(0, 0, m)}
	assert.False(t, c.IsValid(p))
}
