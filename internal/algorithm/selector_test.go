package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
)

func star(t *testing.T, neighbors []int, configs ...define.NodeConfig) []*define.UAV {
	t.Helper()
	n := len(neighbors) + 1
	topo := algorithm.Topology{0: neighbors}
	for id := 1; id < n; id++ {
		topo[id] = []int{0}
	}
	if len(configs) == 0 {
		configs = []define.NodeConfig{defaultConfig}
	}
	uavs, err := algorithm.BuildUAVs(topo, configs)
	require.NoError(t, err)
	return uavs
}

func TestChooseNeighborWithoutPendingWork(t *testing.T) {
	uavs := star(t, []int{1, 2})
	uavs[0].LocalCp.Add(0, 5)

	assert.Equal(t, algorithm.NoTarget, algorithm.ChooseNeighbor(uavs, uavs[0]))
}

func TestChooseNeighborShortestComputeQueue(t *testing.T) {
	uavs := star(t, []int{1, 2, 3})
	uavs[0].LocalTx.Add(0, 1)
	uavs[1].CpQueue.Enqueue(1, 3)
	uavs[2].CpQueue.Enqueue(2, 4)
	uavs[3].CpQueue.Enqueue(3, 1)

	assert.Equal(t, 3, algorithm.ChooseNeighbor(uavs, uavs[0]))
}

func TestChooseNeighborPrefersMoreRemainingCapacity(t *testing.T) {
	small := defaultConfig
	small.CpCapacity = 5
	uavs := star(t, []int{1, 2}, defaultConfig, small, defaultConfig)
	uavs[0].TxQueue.Enqueue(0, 1)
	uavs[1].CpQueue.Enqueue(1, 2)
	uavs[2].CpQueue.Enqueue(2, 2)

	// 队列长度相同，节点 2 剩余容量 18 > 节点 1 的 3
	assert.Equal(t, 2, algorithm.ChooseNeighbor(uavs, uavs[0]))
}

func TestChooseNeighborTieBreaksOnSmallestID(t *testing.T) {
	uavs := star(t, []int{3, 1, 2})
	uavs[0].LocalTx.Add(0, 2)
	for _, id := range []int{1, 2, 3} {
		uavs[id].CpQueue.Enqueue(id, 1)
	}

	assert.Equal(t, 1, algorithm.ChooseNeighbor(uavs, uavs[0]))
}

func TestChooseNeighborWithoutNeighbors(t *testing.T) {
	uavs, err := algorithm.BuildUAVs(algorithm.Topology{0: {}}, []define.NodeConfig{defaultConfig})
	require.NoError(t, err)
	uavs[0].TxQueue.Enqueue(0, 1)

	assert.Equal(t, algorithm.NoTarget, algorithm.ChooseNeighbor(uavs, uavs[0]))
}
