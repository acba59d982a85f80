package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/config"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/repository"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/database"
)

type fixture struct {
	db         *gorm.DB
	system     *algorithm.System
	network    *NetworkService
	alarms     *AlarmService
	operators  *OperatorService
	simulation *SimulationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)

	f := &fixture{db: db, system: algorithm.NewSystem(nil, 0)}
	f.network = NewNetworkService(repository.NewNodeRepository(db), repository.NewLinkRepository(db))
	f.alarms = NewAlarmService(repository.NewAlarmRepository(db))
	f.operators = NewOperatorService(repository.NewOperatorRepository(db))

	cfg := config.DefaultSimulation()
	cfg.Topology = config.TopologyDatabase
	f.simulation = NewSimulationService(f.system, f.network, f.alarms, repository.NewRunRepository(db), cfg, time.Minute, nil)
	return f
}

func intPtr(v int) *int { return &v }

func TestSeedSampleTopologyOnce(t *testing.T) {
	f := newFixture(t)

	seeded, err := f.network.SeedSampleTopology(algorithm.SampleTopology())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = f.network.SeedSampleTopology(algorithm.SampleTopology())
	require.NoError(t, err)
	assert.False(t, seeded)

	nodes, links, err := f.network.Counts()
	require.NoError(t, err)
	assert.EqualValues(t, 7, nodes)
	assert.EqualValues(t, 8, links)

	g, err := f.network.BuildGraph(f.simulation.DefaultNodeConfig())
	require.NoError(t, err)
	assert.Equal(t, algorithm.SampleTopology(), g.Topology)
	assert.Equal(t, "UAV_0", g.Names[0])
}

func TestTopologyInfo(t *testing.T) {
	f := newFixture(t)
	_, err := f.network.SeedSampleTopology(algorithm.SampleTopology())
	require.NoError(t, err)

	info, err := f.network.GetTopologyInfo(f.simulation.DefaultNodeConfig())
	require.NoError(t, err)
	assert.Equal(t, 7, info.NodeCount)
	assert.Equal(t, 8, info.LinkCount)
	assert.Equal(t, 4, info.Diameter)
	assert.True(t, info.Connected)
	assert.Empty(t, info.Isolated)
	assert.Equal(t, []int{1, 3, 5}, info.Adjacency["2"])
}

func TestNetworkValidation(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.network.CreateNode(&models.Node{}), ErrInvalidInput)
	assert.ErrorIs(t, f.network.CreateNode(&models.Node{Name: "x", CpRate: intPtr(0)}), ErrInvalidInput)

	a := &models.Node{Name: "A"}
	b := &models.Node{Name: "B", CpCapacity: intPtr(5)}
	require.NoError(t, f.network.CreateNode(a))
	require.NoError(t, f.network.CreateNode(b))
	assert.Equal(t, models.NodeTypeUAV, a.NodeType)

	assert.ErrorIs(t, f.network.CreateLink(&models.Link{SourceID: a.ID, TargetID: a.ID}), ErrInvalidInput)
	assert.ErrorIs(t, f.network.CreateLink(&models.Link{SourceID: a.ID, TargetID: 999}), ErrInvalidInput)

	link := &models.Link{Name: "A-B", SourceID: a.ID, TargetID: b.ID, Status: models.LinkStatusUp, Bidirectional: true}
	require.NoError(t, f.network.CreateLink(link))
	assert.ErrorIs(t, f.network.CreateLink(&models.Link{SourceID: b.ID, TargetID: a.ID, Bidirectional: true}), ErrInvalidInput)

	g, err := f.network.BuildGraph(f.simulation.DefaultNodeConfig())
	require.NoError(t, err)
	assert.Equal(t, algorithm.Topology{0: {1}, 1: {0}}, g.Topology)
	assert.Equal(t, 5, g.Configs[1].CpCapacity)

	// 删除节点时相连的链路一并删除
	require.NoError(t, f.network.DeleteNode(a.ID))
	_, links, err := f.network.Counts()
	require.NoError(t, err)
	assert.Zero(t, links)
	assert.ErrorIs(t, f.network.DeleteNode(a.ID), ErrNotFound)
}

func TestSimulationRunPersisted(t *testing.T) {
	f := newFixture(t)
	_, err := f.network.SeedSampleTopology(algorithm.SampleTopology())
	require.NoError(t, err)

	run, err := f.simulation.Start(StartRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(define.RunRunning), run.Status)
	assert.Equal(t, 7, run.NodeCount)
	f.system.Wait()

	saved, err := f.simulation.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, string(define.RunCompleted), saved.Status)
	assert.True(t, saved.Completed)
	assert.NotNil(t, saved.FinishedAt)
	require.Len(t, saved.Nodes, 7)
	for i, n := range saved.Nodes {
		assert.Equal(t, i, n.NodeIndex)
		assert.Equal(t, uint(i+1), n.NodeID)
		assert.Zero(t, n.RemainingTasks)
		require.NotNil(t, n.CompletionSlot)
		assert.GreaterOrEqual(t, n.InitialTasks, 10)
		assert.LessOrEqual(t, n.InitialTasks, 20)
	}

	// 每个时隙开始时的快照加上最终状态
	stats, err := f.simulation.GetRunStats(run.ID, -1)
	require.NoError(t, err)
	assert.Len(t, stats, (saved.TotalSlots+1)*7)

	one, err := f.simulation.GetRunStats(run.ID, 3)
	require.NoError(t, err)
	assert.Len(t, one, saved.TotalSlots+1)

	runs, total, err := f.simulation.ListRuns(1, 10, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, run.RunKey, runs[0].RunKey)

	require.NoError(t, f.simulation.DeleteRun(run.ID))
	_, err = f.simulation.GetRun(run.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSimulationBudgetExhaustedRaisesAlarm(t *testing.T) {
	f := newFixture(t)

	run, err := f.simulation.Start(StartRequest{Topology: config.TopologyRing, RingSize: 3, MaxSlots: 2})
	require.NoError(t, err)
	f.system.Wait()

	saved, err := f.simulation.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, string(define.RunBudgetExhausted), saved.Status)
	assert.False(t, saved.Completed)
	assert.Equal(t, 2, saved.TotalSlots)
	for _, n := range saved.Nodes {
		assert.Nil(t, n.CompletionSlot)
		assert.Zero(t, n.NodeID)
	}

	alarms, total, err := f.alarms.GetRunAlarms(run.RunKey, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, models.AlarmEventBudget, alarms[0].EventType)
}

func TestSimulationRejectsSecondRun(t *testing.T) {
	f := newFixture(t)

	_, err := f.simulation.Start(StartRequest{Topology: config.TopologySample, SlotIntervalMs: intPtr(60 * 60 * 1000)})
	require.NoError(t, err)

	_, err = f.simulation.Start(StartRequest{Topology: config.TopologySample})
	assert.ErrorIs(t, err, algorithm.ErrAlreadyRunning)

	assert.True(t, f.simulation.Stop())
	f.system.Wait()

	info := f.simulation.Info()
	require.NotNil(t, info.Result)
	assert.Equal(t, define.RunCanceled, info.Result.Status)

	count, err := f.simulation.CountRuns(string(define.RunCanceled))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSimulationInvalidRequests(t *testing.T) {
	f := newFixture(t)

	// 数据库中没有节点
	_, err := f.simulation.Start(StartRequest{})
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)

	_, err = f.simulation.Start(StartRequest{Topology: "mesh"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.simulation.Start(StartRequest{Topology: config.TopologySample, Tasks: []int{1, 2}})
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)

	count, err := f.simulation.CountRuns(RunStatusFailed)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestOperatorLogin(t *testing.T) {
	f := newFixture(t)

	admin, err := f.operators.ValidateOperator(database.DefaultAdminUsername, database.DefaultAdminPassword)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, err = f.operators.ValidateOperator(database.DefaultAdminUsername, "wrong")
	assert.Error(t, err)

	op := &models.Operator{Username: "viewer", Password: "pw123456"}
	require.NoError(t, f.operators.CreateOperator(op))
	assert.Equal(t, models.RoleViewer, op.Role)
	assert.NotEqual(t, "pw123456", op.Password)
	assert.ErrorIs(t, f.operators.CreateOperator(&models.Operator{Username: "viewer", Password: "x"}), ErrInvalidInput)

	count, err := f.operators.CountOperators()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestAlarmLifecycle(t *testing.T) {
	f := newFixture(t)

	assert.Error(t, f.alarms.CreateAlarm(&models.Alarm{Name: "x", EventType: "hardware"}))

	alarm := &models.Alarm{Name: "drop", EventType: models.AlarmEventDrop, RunKey: "run_a"}
	require.NoError(t, f.alarms.CreateAlarm(alarm))
	assert.Equal(t, models.AlarmStatusActive, alarm.Status)

	require.NoError(t, f.alarms.ResolveAlarm(alarm.ID))
	assert.Error(t, f.alarms.ResolveAlarm(alarm.ID))

	stats, err := f.alarms.GetAlarmStats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ResolvedCount)
	assert.Zero(t, stats.ActiveCount)

	require.NoError(t, f.alarms.ReactivateAlarm(alarm.ID))
	require.NoError(t, f.alarms.DeleteAlarm(alarm.ID))
	_, err = f.alarms.GetAlarm(alarm.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
