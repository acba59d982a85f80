package algorithm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/queue"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/metrics"
)

// Observer 接收仿真过程中的快照、卸载决策与丢弃事件。
// 回调在仿真 goroutine 中同步执行。
type Observer interface {
	OnSlot(snap define.SlotSnapshot)
	OnDecision(d define.Decision)
	OnDrop(ev define.DropEvent)
}

// NopObserver 忽略所有事件
type NopObserver struct{}

func (NopObserver) OnSlot(define.SlotSnapshot) {}
func (NopObserver) OnDecision(define.Decision) {}
func (NopObserver) OnDrop(define.DropEvent)    {}

// Observers 按顺序转发给多个观察者
type Observers []Observer

func (o Observers) OnSlot(snap define.SlotSnapshot) {
	for _, ob := range o {
		ob.OnSlot(snap)
	}
}

func (o Observers) OnDecision(d define.Decision) {
	for _, ob := range o {
		ob.OnDecision(d)
	}
}

func (o Observers) OnDrop(ev define.DropEvent) {
	for _, ob := range o {
		ob.OnDrop(ev)
	}
}

// Options 引擎参数
type Options struct {
	MaxSlots     int           // 最大时隙数，达到后以 budget_exhausted 结束
	Workers      int           // 准入与决策阶段的并行度，<=1 时顺序执行
	SlotInterval time.Duration // 每个时隙之间的间隔，0 表示不等待
	Verbose      bool          // 是否在每个时隙开始时回调 OnSlot
	Observer     Observer
	Logger       *zap.Logger
}

// Engine 按时隙推进的卸载仿真引擎。
//
// 时隙内顺序（每个阶段对所有节点执行完才进入下一阶段）：
//  1. 准入：local_cp -> cp_queue，local_tx -> tx_queue（受剩余容量限制）
//  2. 决策：基于准入后的快照为每个节点选择卸载目标
//  3. 服务：计算队列出队并结算来源；传输队列出队并记入目标的到达缓冲
//  4. 到达：缓冲中的任务进入目标的 local_cp，最早在下一时隙被准入
type Engine struct {
	state    *SimulationState
	ledger   *Ledger
	opts     Options
	observer Observer
	logger   *zap.Logger
}

// NewEngine 创建引擎
func NewEngine(state *SimulationState, opts Options) (*Engine, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: nil simulation state", ErrInvalidConfig)
	}
	if opts.MaxSlots <= 0 {
		return nil, fmt.Errorf("%w: max slots must be positive, got %d", ErrInvalidConfig, opts.MaxSlots)
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		state:    state,
		ledger:   NewLedger(state.UAVs),
		opts:     opts,
		observer: opts.Observer,
		logger:   opts.Logger,
	}, nil
}

// State 引擎持有的仿真状态
func (e *Engine) State() *SimulationState {
	return e.state
}

// Run 推进时隙直到全部完成、达到最大时隙数或 ctx 被取消
func (e *Engine) Run(ctx context.Context) (*define.Result, error) {
	var tick <-chan time.Time
	if e.opts.SlotInterval > 0 {
		ticker := time.NewTicker(e.opts.SlotInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if e.state.AllDone() {
			e.logger.Info("所有任务处理完成", zap.Int("slots", e.state.Slot))
			return e.result(define.RunCompleted), nil
		}
		if e.state.Slot >= e.opts.MaxSlots {
			e.logger.Warn("达到最大时隙数，提前结束",
				zap.Int("max_slots", e.opts.MaxSlots),
				zap.Int("pending_tasks", e.state.Pending()))
			return e.result(define.RunBudgetExhausted), nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return e.result(define.RunCanceled), ctx.Err()
			case <-tick:
			}
		}
		if err := e.Step(ctx); err != nil {
			return e.result(define.RunCanceled), err
		}
	}
}

// Step 执行一个完整时隙
func (e *Engine) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := e.state
	slot := s.Slot
	if e.opts.Verbose {
		e.observer.OnSlot(s.Snapshot())
	}

	// (1) Admission
	drops := make([][]define.DropEvent, len(s.UAVs))
	if err := e.forEachNode(ctx, func(u *define.UAV) {
		drops[u.ID] = admit(slot, u)
	}); err != nil {
		return err
	}
	for _, evs := range drops {
		for _, ev := range evs {
			e.drop(ev)
		}
	}

	// (2) Decision snapshot
	targets := make([]int, len(s.UAVs))
	if err := e.forEachNode(ctx, func(u *define.UAV) {
		targets[u.ID] = ChooseNeighbor(s.UAVs, u)
	}); err != nil {
		return err
	}
	for from, target := range targets {
		if target != NoTarget {
			e.observer.OnDecision(define.Decision{Slot: slot, From: from, Target: target})
		}
	}

	// (3) Service
	e.compute(slot)
	incoming := e.transmit(slot, targets)

	// (4) Arrival posting
	for idx, pool := range incoming {
		if pool == nil {
			continue
		}
		for _, b := range pool.Entries() {
			s.UAVs[idx].LocalCp.Add(b.Origin, b.Count)
		}
	}

	s.Slot++
	metrics.SlotsTotal.Inc()
	return nil
}

// forEachNode 对所有节点执行 fn，Workers > 1 时并行，返回前所有 fn 均已结束
func (e *Engine) forEachNode(ctx context.Context, fn func(u *define.UAV)) error {
	if e.opts.Workers <= 1 {
		for _, u := range e.state.UAVs {
			fn(u)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for _, u := range e.state.UAVs {
		u := u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(u)
			return nil
		})
	}
	return g.Wait()
}

// admit 把本地池中的任务移入队列，只请求本阶段开始时的剩余容量，
// 放不下的任务留在池中等待下一时隙
func admit(slot int, u *define.UAV) []define.DropEvent {
	var drops []define.DropEvent
	drops = append(drops, move(slot, u, u.LocalCp, u.CpQueue, define.QueueCp)...)
	drops = append(drops, move(slot, u, u.LocalTx, u.TxQueue, define.QueueTx)...)
	return drops
}

func move(slot int, u *define.UAV, pool *queue.Pool, q *queue.ProvenanceQueue, kind define.QueueKind) []define.DropEvent {
	available := q.Available()
	if available == 0 || pool.IsEmpty() {
		return nil
	}
	var drops []define.DropEvent
	for _, b := range pool.Take(available) {
		// 取出的总量不超过 available，这里的 Enqueue 不会溢出
		if _, dropped := q.Enqueue(b.Origin, b.Count); dropped > 0 {
			drops = append(drops, define.DropEvent{
				Slot:    slot,
				NodeID:  u.ID,
				Queue:   kind,
				Dropped: dropped,
				Origin:  b.Origin,
				Reason:  define.DropOverflow,
			})
		}
	}
	return drops
}

// compute 每个节点从计算队列取出最多 CpRate 个任务，按来源结算
func (e *Engine) compute(slot int) {
	for _, u := range e.state.UAVs {
		origins := u.CpQueue.Dequeue(u.CpRate)
		for _, origin := range origins {
			if e.ledger.Credit(origin, slot) {
				e.logger.Debug("来源节点任务全部完成",
					zap.Int("origin", origin),
					zap.Int("slot", slot),
					zap.Int("computed_by", u.ID))
			}
		}
		metrics.TasksComputed.Add(float64(len(origins)))
	}
}

// transmit 每个节点从传输队列取出最多 TxRate 个任务，记入目标节点的到达缓冲
func (e *Engine) transmit(slot int, targets []int) []*queue.Pool {
	incoming := make([]*queue.Pool, len(e.state.UAVs))
	for _, u := range e.state.UAVs {
		origins := u.TxQueue.Dequeue(u.TxRate)
		if len(origins) == 0 {
			continue
		}
		target := targets[u.ID]
		if target == NoTarget {
			for _, b := range group(origins) {
				e.drop(define.DropEvent{
					Slot:    slot,
					NodeID:  u.ID,
					Queue:   define.QueueTx,
					Dropped: b.Count,
					Origin:  b.Origin,
					Reason:  define.DropNoTarget,
				})
			}
			continue
		}
		if incoming[target] == nil {
			incoming[target] = queue.NewPool()
		}
		for _, origin := range origins {
			incoming[target].Add(origin, 1)
		}
		metrics.TasksForwarded.Add(float64(len(origins)))
	}
	return incoming
}

// group 把逐个任务的来源列表（已按来源升序）合并为批次
func group(origins []int) []queue.Batch {
	var batches []queue.Batch
	for _, o := range origins {
		if n := len(batches); n > 0 && batches[n-1].Origin == o {
			batches[n-1].Count++
			continue
		}
		batches = append(batches, queue.Batch{Origin: o, Count: 1})
	}
	return batches
}

func (e *Engine) drop(ev define.DropEvent) {
	e.state.Dropped += ev.Dropped
	metrics.TasksDropped.WithLabelValues(string(ev.Queue)).Add(float64(ev.Dropped))
	e.logger.Warn("队列已满或无可用邻居，丢弃任务",
		zap.Int("slot", ev.Slot),
		zap.Int("uav", ev.NodeID),
		zap.String("queue", string(ev.Queue)),
		zap.Int("dropped", ev.Dropped),
		zap.Int("origin", ev.Origin),
		zap.String("reason", string(ev.Reason)))
	e.observer.OnDrop(ev)
}

func (e *Engine) result(status define.RunStatus) *define.Result {
	return &define.Result{
		Status:       status,
		Slots:        e.state.Slot,
		MaxSlots:     e.opts.MaxSlots,
		DroppedTasks: e.state.Dropped,
		Nodes:        e.state.Results(),
	}
}
