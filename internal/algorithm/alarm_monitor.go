package algorithm

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
)

// AlarmSink 告警的持久化目标
type AlarmSink interface {
	CreateAlarm(alarm *models.Alarm) error
}

// AlarmThresholds 告警阈值配置
type AlarmThresholds struct {
	// 计算队列占用率 (0-1)，达到后产生积压告警
	CpQueueUsage float64
	// 单个时隙丢弃任务数，达到后产生丢弃告警
	MinDropped int
}

// DefaultAlarmThresholds 默认告警阈值
var DefaultAlarmThresholds = AlarmThresholds{
	CpQueueUsage: 1.0,
	MinDropped:   1,
}

// AlarmMonitor 告警监控器，作为 Observer 挂到一次仿真上
type AlarmMonitor struct {
	sink       AlarmSink
	runKey     string
	thresholds AlarmThresholds
	logger     *zap.Logger
	mutex      sync.Mutex

	// 告警去重: 相同 key 的告警在冷却时间内只产生一次
	lastAlarmTime map[string]time.Time
	cooldown      time.Duration
	now           func() time.Time
}

// NewAlarmMonitor 创建告警监控器
func NewAlarmMonitor(sink AlarmSink, runKey string, cooldown time.Duration, logger *zap.Logger) *AlarmMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlarmMonitor{
		sink:          sink,
		runKey:        runKey,
		thresholds:    DefaultAlarmThresholds,
		logger:        logger,
		lastAlarmTime: make(map[string]time.Time),
		cooldown:      cooldown,
		now:           time.Now,
	}
}

// SetThresholds 设置自定义阈值
func (m *AlarmMonitor) SetThresholds(thresholds AlarmThresholds) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.thresholds = thresholds
}

// OnSlot 检查计算队列积压
func (m *AlarmMonitor) OnSlot(snap define.SlotSnapshot) {
	m.mutex.Lock()
	usage := m.thresholds.CpQueueUsage
	m.mutex.Unlock()

	for _, n := range snap.Nodes {
		if n.CpCapacity == 0 || float64(n.CpLen)/float64(n.CpCapacity) < usage {
			continue
		}
		m.createAlarm(
			fmt.Sprintf("performance_cp_%d", n.ID),
			fmt.Sprintf("UAV_%d 计算队列积压", n.ID),
			models.AlarmEventPerformance,
			fmt.Sprintf("时隙 %d: UAV_%d 计算队列 %d/%d，本地待计算 %d",
				snap.Slot, n.ID, n.CpLen, n.CpCapacity, n.LocalCp),
		)
	}
}

func (m *AlarmMonitor) OnDecision(define.Decision) {}

// OnDrop 队列溢出或无可用邻居时产生丢弃告警
func (m *AlarmMonitor) OnDrop(ev define.DropEvent) {
	m.mutex.Lock()
	minDropped := m.thresholds.MinDropped
	m.mutex.Unlock()
	if ev.Dropped < minDropped {
		return
	}

	queueName := "计算队列"
	if ev.Queue == define.QueueTx {
		queueName = "传输队列"
	}
	m.createAlarm(
		fmt.Sprintf("drop_%s_%d", ev.Queue, ev.NodeID),
		fmt.Sprintf("UAV_%d %s丢弃任务", ev.NodeID, queueName),
		models.AlarmEventDrop,
		fmt.Sprintf("时隙 %d: UAV_%d 的%s丢弃 %d 个任务(来源 UAV_%d，原因 %s)",
			ev.Slot, ev.NodeID, queueName, ev.Dropped, ev.Origin, ev.Reason),
	)
}

// CheckResult 仿真结束后检查是否在预算内完成
func (m *AlarmMonitor) CheckResult(result *define.Result) {
	if result == nil || result.Status != define.RunBudgetExhausted {
		return
	}
	pending := 0
	for _, n := range result.Nodes {
		pending += n.RemainingOwnTasks
	}
	m.createAlarm(
		"budget",
		"仿真达到最大时隙数",
		models.AlarmEventBudget,
		fmt.Sprintf("执行 %d 个时隙后仍有 %d 个任务未完成", result.Slots, pending),
	)
}

// createAlarm 创建告警（带去重）
func (m *AlarmMonitor) createAlarm(alarmKey, name string, eventType models.AlarmEvent, description string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastTime, exists := m.lastAlarmTime[alarmKey]; exists {
		if m.now().Sub(lastTime) < m.cooldown {
			return
		}
	}

	alarm := &models.Alarm{
		Name:        name,
		EventType:   eventType,
		Status:      models.AlarmStatusActive,
		RunKey:      m.runKey,
		Description: description,
	}
	if err := m.sink.CreateAlarm(alarm); err != nil {
		m.logger.Error("[AlarmMonitor] 创建告警失败", zap.String("key", alarmKey), zap.Error(err))
		return
	}

	m.lastAlarmTime[alarmKey] = m.now()
	m.logger.Info("[AlarmMonitor] 告警已创建", zap.String("name", name), zap.String("description", description))
}
