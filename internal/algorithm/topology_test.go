package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
)

func TestSampleTopologyIsValid(t *testing.T) {
	topo := algorithm.SampleTopology()
	require.NoError(t, topo.Validate())
	assert.Equal(t, 7, topo.Size())
	assert.Equal(t, []int{1, 3, 5}, topo.Neighbors(2))
}

func TestRingTopology(t *testing.T) {
	tests := []struct {
		n    int
		want algorithm.Topology
	}{
		{1, algorithm.Topology{0: {}}},
		{2, algorithm.Topology{0: {1}, 1: {0}}},
		{4, algorithm.Topology{0: {3, 1}, 1: {0, 2}, 2: {1, 3}, 3: {2, 0}}},
	}
	for _, tt := range tests {
		topo := algorithm.RingTopology(tt.n)
		assert.Equal(t, tt.want, topo, "n=%d", tt.n)
		assert.NoError(t, topo.Validate(), "n=%d", tt.n)
	}
}

func TestTopologyValidate(t *testing.T) {
	tests := []struct {
		name string
		topo algorithm.Topology
	}{
		{"empty", algorithm.Topology{}},
		{"sparse ids", algorithm.Topology{0: {2}, 2: {0}}},
		{"unknown neighbor", algorithm.Topology{0: {1}}},
		{"self loop", algorithm.Topology{0: {0}}},
		{"duplicate neighbor", algorithm.Topology{0: {1, 1}, 1: {0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.topo.Validate(), algorithm.ErrInvalidConfig)
		})
	}
}

func TestBuildUAVsConfigCount(t *testing.T) {
	_, err := algorithm.BuildUAVs(algorithm.RingTopology(3), []define.NodeConfig{defaultConfig, defaultConfig})
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)

	bad := defaultConfig
	bad.CpRate = 0
	_, err = algorithm.BuildUAVs(algorithm.RingTopology(3), []define.NodeConfig{bad})
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)
}

func TestSplitBatch(t *testing.T) {
	uavs, err := algorithm.BuildUAVs(algorithm.Topology{0: {1}, 1: {0}, 2: {}}, []define.NodeConfig{defaultConfig})
	require.NoError(t, err)

	tx, cp := algorithm.SplitBatch(uavs[0], 15)
	assert.Equal(t, 7, tx)
	assert.Equal(t, 8, cp)

	tx, cp = algorithm.SplitBatch(uavs[2], 15)
	assert.Zero(t, tx)
	assert.Equal(t, 15, cp)
}

func TestNewGraph(t *testing.T) {
	cap5 := 5
	nodes := []models.Node{
		{ID: 30, Name: "C"},
		{ID: 10, Name: "A", CpCapacity: &cap5},
		{ID: 20, Name: "B"},
	}
	links := []models.Link{
		{ID: 1, SourceID: 10, TargetID: 20, Status: models.LinkStatusUp, Bidirectional: true},
		{ID: 2, SourceID: 20, TargetID: 30, Status: models.LinkStatusUp},
		{ID: 3, SourceID: 30, TargetID: 10, Status: models.LinkStatusDown, Bidirectional: true},
	}

	g, err := algorithm.NewGraph(nodes, links, defaultConfig)
	require.NoError(t, err)

	assert.Equal(t, []uint{10, 20, 30}, g.IndexToNodeID)
	assert.Equal(t, 2, g.NodeIDToIndex[30])
	assert.Equal(t, []string{"A", "B", "C"}, g.Names)
	assert.Equal(t, algorithm.Topology{0: {1}, 1: {0, 2}, 2: {}}, g.Topology)
	assert.Equal(t, 5, g.Configs[0].CpCapacity)
	assert.Equal(t, defaultConfig, g.Configs[1])
}

func TestNewGraphRejectsBadLinks(t *testing.T) {
	nodes := []models.Node{{ID: 1}, {ID: 2}}

	_, err := algorithm.NewGraph(nodes, []models.Link{{ID: 1, SourceID: 1, TargetID: 9, Status: models.LinkStatusUp}}, defaultConfig)
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)

	_, err = algorithm.NewGraph(nodes, []models.Link{{ID: 2, SourceID: 2, TargetID: 2, Status: models.LinkStatusUp}}, defaultConfig)
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)

	_, err = algorithm.NewGraph(nil, nil, defaultConfig)
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)
}

func TestSampleNetworkRoundTrip(t *testing.T) {
	topo := algorithm.SampleTopology()
	nodes, links := algorithm.SampleNetwork(topo)
	require.Len(t, nodes, 7)

	// 按拓扑编号+1 模拟数据库分配的ID
	for i := range nodes {
		nodes[i].ID = uint(i + 1)
	}
	for i := range links {
		links[i].ID = uint(i + 1)
		links[i].SourceID++
		links[i].TargetID++
	}

	g, err := algorithm.NewGraph(nodes, links, defaultConfig)
	require.NoError(t, err)
	assert.Equal(t, topo, g.Topology)
	assert.Equal(t, "UAV_4", g.Names[4])
}

func TestTopologyRoutes(t *testing.T) {
	routes := algorithm.SampleTopology().Routes()
	assert.Equal(t, []int{0, 1, 2, 3}, routes.Paths[0][3])

	hops, connected := routes.Diameter()
	assert.True(t, connected)
	assert.Equal(t, 4, hops)
}
