package algorithm

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/utils"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/metrics"
)

// RunConfig 一次仿真的输入
type RunConfig struct {
	Key      string // 为空时自动生成
	Source   string // 拓扑来源：sample/ring/database
	Topology Topology
	Configs  []define.NodeConfig // 长度为 1 时所有节点共用
	Names    []string
	Tasks    []int // 每个节点生成的任务数，为空时按 Seed 随机生成
	Seed     int64
	MinTasks int
	MaxTasks int
	Options  Options
}

// Prepare 创建 UAV、生成初始任务并校验，返回仿真状态和各节点的任务数
func (rc RunConfig) Prepare() (*SimulationState, []int, error) {
	uavs, err := BuildUAVs(rc.Topology, rc.Configs)
	if err != nil {
		return nil, nil, err
	}
	for i, name := range rc.Names {
		if i < len(uavs) {
			uavs[i].Name = name
		}
	}

	totals := rc.Tasks
	if len(totals) > 0 {
		err = SeedFixedTasks(uavs, totals)
	} else {
		totals, err = SeedInitialTasks(rand.New(rand.NewSource(rc.Seed)), uavs, rc.MinTasks, rc.MaxTasks)
	}
	if err != nil {
		return nil, nil, err
	}

	state, err := NewSimulationState(uavs)
	if err != nil {
		return nil, nil, err
	}
	return state, totals, nil
}

// FinishFunc 仿真结束后在仿真 goroutine 中回调，history 为结束时保留的时隙快照副本。
// 回调返回前仿真仍视为运行中，Start 返回 ErrAlreadyRunning。
type FinishFunc func(key string, result *define.Result, history []define.SlotSnapshot, err error)

// SystemInfo 仿真运行状态
type SystemInfo struct {
	IsRunning    bool                 `json:"is_running"`
	RunKey       string               `json:"run_key,omitempty"`
	Source       string               `json:"source,omitempty"`
	NodeCount    int                  `json:"node_count"`
	TimeSlot     int                  `json:"time_slot"`
	MaxSlots     int                  `json:"max_slots"`
	Decisions    int                  `json:"decisions"`
	DroppedTasks int                  `json:"dropped_tasks"`
	Latest       *define.SlotSnapshot `json:"latest,omitempty"`
	Result       *define.Result       `json:"result,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// System 管理异步执行的仿真：同一时间只允许一个仿真运行，
// 运行中的状态只通过观察者回调复制出来，外部读取不会触碰引擎内部
type System struct {
	logger       *zap.Logger
	historyLimit int

	mutex     sync.RWMutex
	running   bool
	key       string
	source    string
	nodeCount int
	maxSlots  int
	cancel    context.CancelFunc
	done      chan struct{}

	latest    *define.SlotSnapshot
	history   []define.SlotSnapshot
	decisions int
	dropped   int
	result    *define.Result
	err       error
}

// NewSystem 创建仿真管理器，historyLimit 为保留的时隙快照数
func NewSystem(logger *zap.Logger, historyLimit int) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{
		logger:       logger,
		historyLimit: historyLimit,
	}
}

// Start 异步启动仿真，返回仿真标识。已有仿真在运行时返回 ErrAlreadyRunning。
func (s *System) Start(rc RunConfig, onFinish FinishFunc, observers ...Observer) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return "", ErrAlreadyRunning
	}

	state, _, err := rc.Prepare()
	if err != nil {
		return "", err
	}
	key := rc.Key
	if key == "" {
		key = utils.GenerateRunKey()
	}

	opts := rc.Options
	opts.Verbose = true
	opts.Observer = append(Observers{recorder{s}}, observers...)
	if opts.Logger == nil {
		opts.Logger = s.logger
	}
	opts.Logger = opts.Logger.With(zap.String("run", key))
	engine, err := NewEngine(state, opts)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.key = key
	s.source = rc.Source
	s.nodeCount = len(state.UAVs)
	s.maxSlots = opts.MaxSlots
	s.cancel = cancel
	s.done = make(chan struct{})
	s.resetLocked()
	metrics.SimulationRunning.Set(1)

	s.logger.Info("仿真开始",
		zap.String("run", key),
		zap.String("source", rc.Source),
		zap.Int("nodes", len(state.UAVs)),
		zap.Int("max_slots", opts.MaxSlots))

	go s.run(ctx, key, engine, onFinish, s.done)
	return key, nil
}

func (s *System) run(ctx context.Context, key string, engine *Engine, onFinish FinishFunc, done chan struct{}) {
	defer func() {
		s.mutex.Lock()
		s.running = false
		s.mutex.Unlock()
		metrics.SimulationRunning.Set(0)
		close(done)
	}()

	result, err := engine.Run(ctx)
	final := engine.State().Snapshot()

	s.mutex.Lock()
	s.cancel = nil
	s.result = result
	s.err = nil
	if err != nil && !errors.Is(err, context.Canceled) {
		s.err = err
	}
	s.latest = &final
	s.appendLocked(final)
	history := append([]define.SlotSnapshot(nil), s.history...)
	s.mutex.Unlock()

	metrics.RunsFinished.WithLabelValues(string(result.Status)).Inc()
	s.logger.Info("仿真结束",
		zap.String("run", key),
		zap.String("status", string(result.Status)),
		zap.Int("slots", result.Slots),
		zap.Int("dropped", result.DroppedTasks))

	if onFinish != nil {
		onFinish(key, result, history, err)
	}
}

// Stop 取消正在运行的仿真，没有仿真在运行时返回 false
func (s *System) Stop() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.running || s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

// Wait 阻塞到当前仿真（包括结束回调）执行完毕
func (s *System) Wait() {
	s.mutex.RLock()
	done := s.done
	s.mutex.RUnlock()
	if done != nil {
		<-done
	}
}

// IsRunning 是否有仿真在运行
func (s *System) IsRunning() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.running
}

// GetSystemInfo 获取系统信息
func (s *System) GetSystemInfo() SystemInfo {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	info := SystemInfo{
		IsRunning:    s.running,
		RunKey:       s.key,
		Source:       s.source,
		NodeCount:    s.nodeCount,
		MaxSlots:     s.maxSlots,
		Decisions:    s.decisions,
		DroppedTasks: s.dropped,
		Result:       s.result,
	}
	if s.latest != nil {
		latest := *s.latest
		info.Latest = &latest
		info.TimeSlot = latest.Slot
	}
	if s.err != nil {
		info.Error = s.err.Error()
	}
	return info
}

// History 保留的时隙快照（按时隙升序）
func (s *System) History() []define.SlotSnapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]define.SlotSnapshot(nil), s.history...)
}

// ClearHistory 清除上一次仿真的状态，仿真运行中不允许清除
func (s *System) ClearHistory() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.running {
		return fmt.Errorf("%w: stop it before clearing", ErrAlreadyRunning)
	}
	s.key = ""
	s.source = ""
	s.nodeCount = 0
	s.maxSlots = 0
	s.resetLocked()
	return nil
}

func (s *System) resetLocked() {
	s.latest = nil
	s.history = nil
	s.decisions = 0
	s.dropped = 0
	s.result = nil
	s.err = nil
}

func (s *System) appendLocked(snap define.SlotSnapshot) {
	s.history = append(s.history, snap)
	if s.historyLimit > 0 && len(s.history) > s.historyLimit {
		n := copy(s.history, s.history[len(s.history)-s.historyLimit:])
		s.history = s.history[:n]
	}
}

// recorder 把引擎回调复制到 System 中
type recorder struct {
	s *System
}

func (r recorder) OnSlot(snap define.SlotSnapshot) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()
	r.s.latest = &snap
	r.s.appendLocked(snap)
}

func (r recorder) OnDecision(define.Decision) {
	r.s.mutex.Lock()
	r.s.decisions++
	r.s.mutex.Unlock()
}

func (r recorder) OnDrop(ev define.DropEvent) {
	r.s.mutex.Lock()
	r.s.dropped += ev.Dropped
	r.s.mutex.Unlock()
}
