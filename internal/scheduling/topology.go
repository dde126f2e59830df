package scheduling

import "math"

// BuildTopology returns the K×K adjacency matrix for the given policy;
// Matrix[i][j] means island i may send migrants to island j.
func BuildTopology(k int, policy MigrationTopology) [][]bool {
	matrix := make([][]bool, k)
	for i := range matrix {
		matrix[i] = make([]bool, k)
	}
	if k <= 1 {
		return matrix
	}

	switch policy {
	case TopologyFullyConnected:
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				if i != j {
					matrix[i][j] = true
				}
			}
		}
	case TopologyStar:
		for i := 1; i < k; i++ {
			matrix[0][i] = true
			matrix[i][0] = true
		}
	case TopologyMesh:
		s := int(math.Sqrt(float64(k)))
		for i := 0; i < s*s; i++ {
			row, col := i/s, i%s
			if row > 0 {
				matrix[i][i-s] = true
			}
			if row < s-1 {
				matrix[i][i+s] = true
			}
			if col > 0 {
				matrix[i][i-1] = true
			}
			if col < s-1 {
				matrix[i][i+1] = true
			}
		}
	case TopologyRing:
		fallthrough
	default:
		for i := 0; i < k; i++ {
			matrix[i][(i+1)%k] = true
			matrix[i][(i+k-1)%k] = true
		}
	}

	return matrix
}
