package algorithm_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/constant"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
)

func sampleRun() algorithm.RunConfig {
	return algorithm.RunConfig{
		Source:   "sample",
		Topology: algorithm.SampleTopology(),
		Configs:  []define.NodeConfig{defaultConfig},
		Seed:     constant.Seed,
		MinTasks: constant.MinTasks,
		MaxTasks: constant.MaxTasks,
		Options:  algorithm.Options{MaxSlots: constant.MaxSlots},
	}
}

func TestSystemRunsToCompletion(t *testing.T) {
	sys := algorithm.NewSystem(zap.NewNop(), 0)

	var (
		gotKey    string
		gotResult *define.Result
		gotErr    error
	)
	rec := &recorder{}
	key, err := sys.Start(sampleRun(), func(key string, result *define.Result, _ []define.SlotSnapshot, err error) {
		gotKey, gotResult, gotErr = key, result, err
	}, rec)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	sys.Wait()
	assert.False(t, sys.IsRunning())
	assert.Equal(t, key, gotKey)
	require.NoError(t, gotErr)
	require.NotNil(t, gotResult)
	assert.Equal(t, define.RunCompleted, gotResult.Status)

	info := sys.GetSystemInfo()
	assert.False(t, info.IsRunning)
	assert.Equal(t, key, info.RunKey)
	assert.Equal(t, 7, info.NodeCount)
	assert.Equal(t, gotResult.Slots, info.TimeSlot)
	assert.Equal(t, len(rec.decisions), info.Decisions)
	assert.Equal(t, gotResult, info.Result)

	// 每个时隙开始时一份快照，外加结束时的最终状态
	history := sys.History()
	assert.Len(t, history, gotResult.Slots+1)
	assert.Len(t, rec.snapshots, gotResult.Slots)
}

func TestSystemRejectsConcurrentRunAndStops(t *testing.T) {
	sys := algorithm.NewSystem(nil, 0)
	rc := sampleRun()
	rc.Options.SlotInterval = time.Hour

	_, err := sys.Start(rc, nil)
	require.NoError(t, err)
	assert.True(t, sys.IsRunning())

	_, err = sys.Start(rc, nil)
	assert.ErrorIs(t, err, algorithm.ErrAlreadyRunning)
	assert.ErrorIs(t, sys.ClearHistory(), algorithm.ErrAlreadyRunning)

	assert.True(t, sys.Stop())
	sys.Wait()

	info := sys.GetSystemInfo()
	require.NotNil(t, info.Result)
	assert.Equal(t, define.RunCanceled, info.Result.Status)
	assert.Empty(t, info.Error)
	assert.False(t, sys.Stop())

	require.NoError(t, sys.ClearHistory())
	info = sys.GetSystemInfo()
	assert.Nil(t, info.Result)
	assert.Empty(t, info.RunKey)
	assert.Empty(t, sys.History())
}

func TestSystemBusyUntilFinishReturns(t *testing.T) {
	sys := algorithm.NewSystem(nil, 0)

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		gotResult  *define.Result
		gotHistory []define.SlotSnapshot
	)
	_, err := sys.Start(sampleRun(), func(_ string, result *define.Result, history []define.SlotSnapshot, _ error) {
		gotResult, gotHistory = result, history
		close(entered)
		<-release
	})
	require.NoError(t, err)
	<-entered

	// 结束回调执行期间不能开始新的仿真，也不能清除状态
	assert.True(t, sys.IsRunning())
	_, err = sys.Start(sampleRun(), nil)
	assert.ErrorIs(t, err, algorithm.ErrAlreadyRunning)
	assert.ErrorIs(t, sys.ClearHistory(), algorithm.ErrAlreadyRunning)
	assert.False(t, sys.Stop())

	close(release)
	sys.Wait()
	assert.False(t, sys.IsRunning())

	require.NotNil(t, gotResult)
	assert.Len(t, gotHistory, gotResult.Slots+1)
	assert.Equal(t, sys.History(), gotHistory)

	_, err = sys.Start(sampleRun(), nil)
	require.NoError(t, err)
	sys.Wait()
}

func TestSystemCanceledRunReportsContextError(t *testing.T) {
	sys := algorithm.NewSystem(nil, 0)
	rc := sampleRun()
	rc.Options.SlotInterval = time.Hour

	done := make(chan error, 1)
	_, err := sys.Start(rc, func(_ string, _ *define.Result, _ []define.SlotSnapshot, err error) { done <- err })
	require.NoError(t, err)
	sys.Stop()

	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestSystemHistoryLimit(t *testing.T) {
	sys := algorithm.NewSystem(nil, 3)
	rc := sampleRun()
	rc.Topology = algorithm.Topology{0: {}}
	rc.Tasks = []int{10}

	_, err := sys.Start(rc, nil)
	require.NoError(t, err)
	sys.Wait()

	history := sys.History()
	require.Len(t, history, 3)
	assert.Equal(t, 8, history[0].Slot)
	assert.Equal(t, 10, history[2].Slot)
}

func TestSystemRejectsInvalidRun(t *testing.T) {
	sys := algorithm.NewSystem(nil, 0)
	rc := sampleRun()
	rc.Options.MaxSlots = 0

	_, err := sys.Start(rc, nil)
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)
	assert.False(t, sys.IsRunning())

	rc = sampleRun()
	rc.Topology = algorithm.Topology{0: {3}}
	_, err = sys.Start(rc, nil)
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)
}

func TestRunSpecPrepareNames(t *testing.T) {
	rc := sampleRun()
	rc.Topology = algorithm.Topology{0: {1}, 1: {0}}
	rc.Names = []string{"alpha", "beta"}
	rc.Tasks = []int{4, 5}

	state, totals, err := rc.Prepare()
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, totals)
	assert.Equal(t, "beta", state.UAVs[1].Label())
	assert.Equal(t, 2, state.UAVs[0].LocalTx.Len())
	assert.Equal(t, 2, state.UAVs[0].LocalCp.Len())
}
