package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/utils"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/config"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/repository"
)

// RunStatusFailed 仿真结果写库失败等非正常结束
const RunStatusFailed = "failed"

// StartRequest 启动仿真的参数，未填写的字段取配置文件中的值
type StartRequest struct {
	Topology       string `json:"topology" example:"database"` // sample/ring/database
	RingSize       int    `json:"ring_size,omitempty"`
	Seed           *int64 `json:"seed,omitempty"`
	Tasks          []int  `json:"tasks,omitempty"` // 每个节点生成的任务数，按仿真编号
	MaxSlots       int    `json:"max_slots,omitempty"`
	Workers        int    `json:"workers,omitempty"`
	SlotIntervalMs *int   `json:"slot_interval_ms,omitempty"`
}

type SimulationService struct {
	system       *algorithm.System
	network      *NetworkService
	alarmService *AlarmService
	runRepo      *repository.RunRepository
	cfg          config.SimulationConfig
	cooldown     time.Duration
	logger       *zap.Logger
}

func NewSimulationService(
	system *algorithm.System,
	network *NetworkService,
	alarmService *AlarmService,
	runRepo *repository.RunRepository,
	cfg config.SimulationConfig,
	cooldown time.Duration,
	logger *zap.Logger,
) *SimulationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationService{
		system:       system,
		network:      network,
		alarmService: alarmService,
		runRepo:      runRepo,
		cfg:          cfg,
		cooldown:     cooldown,
		logger:       logger,
	}
}

// DefaultNodeConfig 配置文件中的默认节点参数
func (s *SimulationService) DefaultNodeConfig() define.NodeConfig {
	return define.NodeConfig{
		TxCapacity: s.cfg.TxCapacity,
		CpCapacity: s.cfg.CpCapacity,
		TxRate:     s.cfg.TxRate,
		CpRate:     s.cfg.CpRate,
	}
}

// buildRunConfig 根据请求和配置构建仿真输入，返回各节点对应的数据库ID（非数据库拓扑为 nil）
func (s *SimulationService) buildRunConfig(req StartRequest) (algorithm.RunConfig, []uint, error) {
	rc := algorithm.RunConfig{
		Source:   req.Topology,
		Configs:  []define.NodeConfig{s.DefaultNodeConfig()},
		Tasks:    req.Tasks,
		Seed:     s.cfg.Seed,
		MinTasks: s.cfg.MinTasks,
		MaxTasks: s.cfg.MaxTasks,
		Options: algorithm.Options{
			MaxSlots: s.cfg.MaxSlots,
			Workers:  s.cfg.Workers,
			Logger:   s.logger,
		},
	}
	if rc.Source == "" {
		rc.Source = s.cfg.Topology
	}
	if req.Seed != nil {
		rc.Seed = *req.Seed
	}
	if req.MaxSlots != 0 {
		rc.Options.MaxSlots = req.MaxSlots
	}
	if req.Workers != 0 {
		rc.Options.Workers = req.Workers
	}
	interval, err := s.cfg.Interval()
	if err != nil {
		return rc, nil, err
	}
	if req.SlotIntervalMs != nil {
		if *req.SlotIntervalMs < 0 {
			return rc, nil, fmt.Errorf("%w: slot_interval_ms 不能为负", ErrInvalidInput)
		}
		interval = time.Duration(*req.SlotIntervalMs) * time.Millisecond
	}
	rc.Options.SlotInterval = interval

	var nodeIDs []uint
	switch rc.Source {
	case config.TopologySample:
		rc.Topology = algorithm.SampleTopology()
	case config.TopologyRing:
		size := s.cfg.RingSize
		if req.RingSize != 0 {
			size = req.RingSize
		}
		if size <= 0 {
			return rc, nil, fmt.Errorf("%w: ring_size 必须为正", ErrInvalidInput)
		}
		rc.Topology = algorithm.RingTopology(size)
	case config.TopologyDatabase:
		g, err := s.network.BuildGraph(s.DefaultNodeConfig())
		if err != nil {
			return rc, nil, err
		}
		rc.Topology = g.Topology
		rc.Configs = g.Configs
		rc.Names = g.Names
		nodeIDs = g.IndexToNodeID
	default:
		return rc, nil, fmt.Errorf("%w: 未知的拓扑来源 %q", ErrInvalidInput, rc.Source)
	}
	return rc, nodeIDs, nil
}

// Start 异步启动一次仿真并记录到数据库
func (s *SimulationService) Start(req StartRequest) (*models.SimulationRun, error) {
	if s.system.IsRunning() {
		return nil, algorithm.ErrAlreadyRunning
	}
	rc, nodeIDs, err := s.buildRunConfig(req)
	if err != nil {
		return nil, err
	}
	rc.Key = utils.GenerateRunKey()

	run := &models.SimulationRun{
		RunKey:    rc.Key,
		Status:    string(define.RunRunning),
		Topology:  rc.Source,
		NodeCount: rc.Topology.Size(),
		Seed:      rc.Seed,
		MaxSlots:  rc.Options.MaxSlots,
	}
	if err := s.runRepo.Create(run); err != nil {
		return nil, err
	}

	// 结束回调会在仿真 goroutine 中修改 run，返回给调用方的是副本
	created := *run

	monitor := algorithm.NewAlarmMonitor(s.alarmService, rc.Key, s.cooldown, s.logger)
	finish := func(key string, result *define.Result, history []define.SlotSnapshot, runErr error) {
		monitor.CheckResult(result)
		s.persist(run, rc.Names, nodeIDs, result, history, runErr)
	}
	if _, err := s.system.Start(rc, finish, monitor); err != nil {
		now := time.Now()
		run.Status = RunStatusFailed
		run.Error = err.Error()
		run.FinishedAt = &now
		if uerr := s.runRepo.Finish(run, nil, nil); uerr != nil {
			s.logger.Error("更新仿真记录失败", zap.String("run", run.RunKey), zap.Error(uerr))
		}
		return nil, err
	}
	return &created, nil
}

// persist 仿真结束后写入结果、节点完成情况与时隙统计
func (s *SimulationService) persist(run *models.SimulationRun, names []string, nodeIDs []uint, result *define.Result, history []define.SlotSnapshot, runErr error) {
	now := time.Now()
	run.Status = string(result.Status)
	run.TotalSlots = result.Slots
	run.Completed = result.Completed()
	run.DroppedTasks = result.DroppedTasks
	run.FinishedAt = &now
	if runErr != nil && result.Status != define.RunCanceled {
		run.Error = runErr.Error()
	}

	label := func(idx int) (string, uint) {
		var id uint
		if idx < len(nodeIDs) {
			id = nodeIDs[idx]
		}
		if idx < len(names) && names[idx] != "" {
			return names[idx], id
		}
		return fmt.Sprintf("UAV_%d", idx), id
	}

	nodes := make([]models.RunNodeResult, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		name, id := label(n.ID)
		nodes = append(nodes, models.RunNodeResult{
			NodeIndex:      n.ID,
			NodeID:         id,
			Name:           name,
			InitialTasks:   n.InitialTasks,
			RemainingTasks: n.RemainingOwnTasks,
			CompletionSlot: n.CompletionSlot,
		})
	}

	var stats []models.NodeStats
	for _, snap := range history {
		for _, n := range snap.Nodes {
			_, id := label(n.ID)
			stats = append(stats, models.NodeStats{
				Timeslot:  uint(snap.Slot),
				NodeIndex: n.ID,
				NodeID:    id,
				LocalTx:   n.LocalTx,
				LocalCp:   n.LocalCp,
				TxLen:     n.TxLen,
				CpLen:     n.CpLen,
			})
		}
	}

	if err := s.runRepo.Finish(run, nodes, stats); err != nil {
		s.logger.Error("保存仿真结果失败", zap.String("run", run.RunKey), zap.Error(err))
	}
}

// Stop 停止当前仿真
func (s *SimulationService) Stop() bool {
	return s.system.Stop()
}

// Info 当前仿真状态
func (s *SimulationService) Info() algorithm.SystemInfo {
	return s.system.GetSystemInfo()
}

// History 当前（或上一次）仿真保留的时隙快照
func (s *SimulationService) History() []define.SlotSnapshot {
	return s.system.History()
}

// Clear 清除上一次仿真的内存状态
func (s *SimulationService) Clear() error {
	return s.system.ClearHistory()
}

// ListRuns 分页获取仿真记录
func (s *SimulationService) ListRuns(current, size int, filters map[string]interface{}) ([]models.SimulationRun, int64, error) {
	return s.runRepo.ListWithPage((current-1)*size, size, filters)
}

// GetRun 获取仿真记录详情
func (s *SimulationService) GetRun(id uint) (*models.SimulationRun, error) {
	run, err := s.runRepo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return run, nil
}

// GetRunStats 获取仿真的时隙统计，nodeIndex 为负时返回所有节点
func (s *SimulationService) GetRunStats(id uint, nodeIndex int) ([]models.NodeStats, error) {
	if _, err := s.runRepo.GetByID(id); err != nil {
		return nil, ErrNotFound
	}
	return s.runRepo.ListStats(id, nodeIndex)
}

// DeleteRun 删除仿真记录，正在运行的仿真不能删除
func (s *SimulationService) DeleteRun(id uint) error {
	run, err := s.runRepo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}
	if run.Status == string(define.RunRunning) && s.system.GetSystemInfo().RunKey == run.RunKey && s.system.IsRunning() {
		return fmt.Errorf("%w: 请先停止仿真", algorithm.ErrAlreadyRunning)
	}
	return s.runRepo.Delete(id)
}

// CountRuns 仿真记录数量，按状态过滤
func (s *SimulationService) CountRuns(status string) (int64, error) {
	filters := map[string]interface{}{}
	if status != "" {
		filters["status"] = status
	}
	return s.runRepo.Count(filters)
}
