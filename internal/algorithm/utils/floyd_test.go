package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloydOnLine(t *testing.T) {
	// 0 - 1 - 2，3 孤立
	adj := map[int][]int{0: {1}, 1: {0, 2}, 2: {1}, 3: {}}
	res := Floyd(HopMatrix(adj))

	assert.Equal(t, 2.0, res.Dist[0][2])
	assert.Equal(t, []int{0, 1, 2}, res.Paths[0][2])
	assert.Equal(t, []int{1}, res.Paths[1][1])
	assert.True(t, math.IsInf(res.Dist[0][3], 1))
	assert.Empty(t, res.Paths[3][0])

	hops, connected := res.Diameter()
	assert.Equal(t, 2, hops)
	assert.False(t, connected)
}

func TestFloydEmpty(t *testing.T) {
	res := Floyd(nil)
	assert.Empty(t, res.Dist)
	hops, connected := res.Diameter()
	assert.Zero(t, hops)
	assert.True(t, connected)
}

func TestGenerateRunKey(t *testing.T) {
	a, b := GenerateRunKey(), GenerateRunKey()
	assert.True(t, strings.HasPrefix(a, "run_"))
	assert.NotEqual(t, a, b)
}
