package algorithm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
)

type memorySink struct {
	alarms []*models.Alarm
	err    error
}

func (s *memorySink) CreateAlarm(alarm *models.Alarm) error {
	if s.err != nil {
		return s.err
	}
	s.alarms = append(s.alarms, alarm)
	return nil
}

func TestAlarmMonitorDropCooldown(t *testing.T) {
	sink := &memorySink{}
	m := NewAlarmMonitor(sink, "run_x", time.Minute, nil)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	ev := define.DropEvent{Slot: 3, NodeID: 2, Queue: define.QueueCp, Dropped: 4, Origin: 1, Reason: define.DropOverflow}
	m.OnDrop(ev)
	m.OnDrop(ev)
	require.Len(t, sink.alarms, 1)
	assert.Equal(t, models.AlarmEventDrop, sink.alarms[0].EventType)
	assert.Equal(t, "run_x", sink.alarms[0].RunKey)
	assert.Contains(t, sink.alarms[0].Description, "丢弃 4 个任务")

	// 不同节点使用不同的 key
	ev.NodeID = 5
	m.OnDrop(ev)
	assert.Len(t, sink.alarms, 2)

	clock = clock.Add(2 * time.Minute)
	ev.NodeID = 2
	m.OnDrop(ev)
	assert.Len(t, sink.alarms, 3)
}

func TestAlarmMonitorQueueBacklog(t *testing.T) {
	sink := &memorySink{}
	m := NewAlarmMonitor(sink, "", time.Minute, nil)

	m.OnSlot(define.SlotSnapshot{Slot: 1, Nodes: []define.NodeSnapshot{
		{ID: 0, CpLen: 20, CpCapacity: 20},
		{ID: 1, CpLen: 19, CpCapacity: 20},
		{ID: 2, CpLen: 0, CpCapacity: 0},
	}})
	require.Len(t, sink.alarms, 1)
	assert.Equal(t, models.AlarmEventPerformance, sink.alarms[0].EventType)
	assert.Equal(t, "UAV_0 计算队列积压", sink.alarms[0].Name)
}

func TestAlarmMonitorBudget(t *testing.T) {
	sink := &memorySink{}
	m := NewAlarmMonitor(sink, "", time.Minute, nil)

	m.CheckResult(&define.Result{Status: define.RunCompleted})
	assert.Empty(t, sink.alarms)

	m.CheckResult(&define.Result{Status: define.RunBudgetExhausted, Slots: 10, Nodes: []define.NodeResult{{RemainingOwnTasks: 3}}})
	require.Len(t, sink.alarms, 1)
	assert.Equal(t, models.AlarmEventBudget, sink.alarms[0].EventType)
}

func TestAlarmMonitorSinkFailureNotRemembered(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	m := NewAlarmMonitor(sink, "", time.Minute, nil)

	m.CheckResult(&define.Result{Status: define.RunBudgetExhausted})
	assert.Empty(t, m.lastAlarmTime)

	sink.err = nil
	m.CheckResult(&define.Result{Status: define.RunBudgetExhausted})
	assert.Len(t, sink.alarms, 1)
}
