package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunPrintsReport(t *testing.T) {
	out, err := execute(t, "run", "--topology", "ring", "--ring-size", "3", "--tasks", "2,2,2")
	require.NoError(t, err)

	assert.Contains(t, out, "=== 初始 UAV 队列占用（数量/容量）===")
	assert.Contains(t, out, "UAV_0: local: (1, 1), Q: (0/20, 0/20), init=2, remain=2, done_at=-1, rate: (2, 1)")
	assert.Contains(t, out, "slot 0:\n\tUAV_0: local: (1, 1), Q: (0/20, 0/20)")
	assert.Contains(t, out, "\tUAV_0 --> UAV_1")
	assert.Contains(t, out, "完成时间汇总(按 UAV id):")
	assert.Contains(t, out, "所有无人机任务处理完成，共用时隙：")
}

func TestRunQuiet(t *testing.T) {
	out, err := execute(t, "run", "--verbose=false", "--tasks", "1,1,1,1,1,1,1")
	require.NoError(t, err)
	assert.NotContains(t, out, "slot 0:")
	assert.NotContains(t, out, "-->")
	assert.Contains(t, out, "所有无人机任务处理完成")
}

func TestRunBudgetExhausted(t *testing.T) {
	out, err := execute(t, "run", "--max-slots", "1", "--verbose=false")
	require.NoError(t, err)
	assert.Contains(t, out, "达到最大时隙数 1，提前结束。")
	assert.Contains(t, out, "=== 结束：总时隙 = 1 ===")
	assert.NotContains(t, out, "所有无人机任务处理完成")
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := execute(t, "run", "--topology", "mesh")
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)

	_, err = execute(t, "run", "--tasks", "1,2")
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)

	_, err = execute(t, "run", "--max-slots", "0")
	assert.ErrorIs(t, err, algorithm.ErrInvalidConfig)
}

func TestTopologyCommand(t *testing.T) {
	out, err := execute(t, "topology")
	require.NoError(t, err)
	assert.Contains(t, out, "  UAV_2: [1 3 5]\n")
	assert.Contains(t, out, "  UAV_0: 0 1 2 3 1 3 4\n")
	assert.Contains(t, out, "直径: 4\n")

	out, err = execute(t, "topology", "--topology", "ring", "--ring-size", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "  UAV_0: []\n")
	assert.Contains(t, out, "直径: 0\n")
}
