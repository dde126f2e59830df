package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTopology_Ring(t *testing.T) {
	m := BuildTopology(4, TopologyRing)
	assert.True(t, m[0][1])
	assert.True(t, m[0][3])
	assert.False(t, m[0][2])
	assert.True(t, m[3][0])
}

func TestBuildTopology_FullyConnected(t *testing.T) {
	m := BuildTopology(3, TopologyFullyConnected)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				assert.False(t, m[i][j])
			} else {
				assert.True(t, m[i][j])
			}
		}
	}
}

func TestBuildTopology_Star(t *testing.T) {
	m := BuildTopology(4, TopologyStar)
	assert.True(t, m[0][1])
	assert.True(t, m[0][2])
	assert.True(t, m[0][3])
	assert.True(t, m[1][0])
	assert.False(t, m[1][2])
}

func TestBuildTopology_Mesh(t *testing.T) {
	// k=4 -> s=2, a 2x2 grid with no wraparound.
	m := BuildTopology(4, TopologyMesh)
	assert.True(t, m[0][1])
	assert.True(t, m[0][2])
	assert.False(t, m[0][3])
	assert.True(t, m[3][1])
	assert.True(t, m[3][2])
}

func TestBuildTopology_MeshLeavesExcessIslandsIsolated(t *testing.T) {
	// k=5 -> s=floor(sqrt(5))=2, so island 4 sits outside the 2x2 grid
	// and has no outgoing edges.
	m := BuildTopology(5, TopologyMesh)
	for j := 0; j < 5; j++ {
		assert.False(t, m[4][j])
	}
}

func TestBuildTopology_SingleIslandHasNoEdges(t *testing.T) {
	m := BuildTopology(1, TopologyFullyConnected)
	assert.False(t, m[0][0])
}
