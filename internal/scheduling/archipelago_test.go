package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func biggerProblem() *Problem {
	lots := make([]string, 12)
	for i := range lots {
		lots[i] = lotID(i)
	}
	machines := []string{"M1", "M2", "M3"}
	times := make([][]float64, len(lots))
	for l := range times {
		times[l] = []float64{float64(3 + l%4), float64(2 + l%3), float64(4 + l%2)}
	}
	return &Problem{Lots: lots, Machines: machines, ProcessTimes: times}
}

func lotID(i int) string {
	return "L" + string(rune('A'+i))
}

func TestArchipelago_InitializeSeedsBest(t *testing.T) {
	p := biggerProblem()
	cfg := NewConfig(WithPopulationSize(20), WithIslandCount(2))
	arch := NewArchipelago(p, cfg)
	arch.Initialize(1)

	assert.Greater(t, arch.BestFitness(), float64(-1e300))
	best, sched := arch.BestSolution()
	assert.True(t, best.IsValid(p))
	assert.NotEmpty(t, sched.Assignments)
}

func TestArchipelago_EvolveNeverWorsensBest(t *testing.T) {
	p := biggerProblem()
	cfg := NewConfig(WithPopulationSize(20), WithIslandCount(2), WithGenerationCount(5))
	arch := NewArchipelago(p, cfg)
	arch.Initialize(2)

	before := arch.BestFitness()
	arch.Evolve(10)
	after := arch.BestFitness()

	assert.GreaterOrEqual(t, after, before)
}

func TestArchipelago_EvolveKeepsBestValid(t *testing.T) {
	p := biggerProblem()
	cfg := NewConfig(WithPopulationSize(24), WithIslandCount(4), WithMigrationInterval(3))
	arch := NewArchipelago(p, cfg)
	arch.Initialize(3)
	arch.Evolve(9)

	best, _ := arch.BestSolution()
	require.True(t, best.IsValid(p))
}

func TestArchipelago_SingleIslandMigrationIsNoop(t *testing.T) {
	p := biggerProblem()
	cfg := NewConfig(WithPopulationSize(10), WithIslandCount(1), WithMigrationInterval(1))
	arch := NewArchipelago(p, cfg)
	arch.Initialize(4)
	assert.NotPanics(t, func() { arch.Evolve(3) })
}

func TestArchipelago_DroppedGeneCountDelegatesToEvaluator(t *testing.T) {
	p := biggerProblem()
	cfg := NewConfig(WithPopulationSize(10), WithIslandCount(1))
	arch := NewArchipelago(p, cfg)
	arch.Initialize(5)

	assert.Equal(t, int64(0), arch.DroppedGeneCount())
	assert.Nil(t, arch.LastInconsistency())

	arch.evaluator.Decode(Chromosome{Gene(999999)})

	assert.Equal(t, int64(1), arch.DroppedGeneCount())
	require.Error(t, arch.LastInconsistency())
}
