package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/constant"
)

// DefaultPath 默认配置文件路径
const DefaultPath = "configs/config.yaml"

// 拓扑来源
const (
	TopologySample   = "sample"   // 内置 7 节点拓扑
	TopologyRing     = "ring"     // 环形拓扑
	TopologyDatabase = "database" // 数据库中的节点与链路
)

// SimulationConfig 仿真参数
type SimulationConfig struct {
	TxCapacity   int    `yaml:"tx_capacity"`
	CpCapacity   int    `yaml:"cp_capacity"`
	TxRate       int    `yaml:"tx_rate"`
	CpRate       int    `yaml:"cp_rate"`
	MaxSlots     int    `yaml:"max_slots"`
	Verbose      bool   `yaml:"verbose"`
	Seed         int64  `yaml:"seed"`
	MinTasks     int    `yaml:"min_tasks"`
	MaxTasks     int    `yaml:"max_tasks"`
	Workers      int    `yaml:"workers"`
	SlotInterval string `yaml:"slot_interval"` // 例如 "200ms"，为空时不等待
	Topology     string `yaml:"topology"`
	RingSize     int    `yaml:"ring_size"`
	HistoryLimit int    `yaml:"history_limit"`
}

// AlarmConfig 告警参数
type AlarmConfig struct {
	Cooldown string `yaml:"cooldown"` // 同一告警的冷却时间
}

type Config struct {
	Port     string `yaml:"port"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	JWT struct {
		Secret     string `yaml:"secret"`
		Expiration string `yaml:"expiration"`
	} `yaml:"jwt"`
	Log struct {
		Development bool `yaml:"development"`
	} `yaml:"log"`
	Simulation SimulationConfig `yaml:"simulation"`
	Alarm      AlarmConfig      `yaml:"alarm"`
}

// Default 默认配置
func Default() *Config {
	cfg := &Config{Port: "8080"}
	cfg.Database.Path = "./data.db"
	cfg.JWT.Expiration = "24h"
	cfg.Simulation = DefaultSimulation()
	cfg.Alarm.Cooldown = "5m"
	return cfg
}

// DefaultSimulation 默认仿真参数
func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		TxCapacity:   constant.TxCapacity,
		CpCapacity:   constant.CpCapacity,
		TxRate:       constant.TxRate,
		CpRate:       constant.CpRate,
		MaxSlots:     constant.MaxSlots,
		Seed:         constant.Seed,
		MinTasks:     constant.MinTasks,
		MaxTasks:     constant.MaxTasks,
		Workers:      1,
		Topology:     TopologySample,
		RingSize:     constant.RingSize,
		HistoryLimit: constant.HistoryLimit,
	}
}

// LoadConfig 读取配置文件，未填写的字段使用默认值
func LoadConfig(filePath string) (*Config, error) {
	config := Default()
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// InitConfig 读取默认路径的配置文件，失败时退出
func InitConfig() *Config {
	config, err := LoadConfig(DefaultPath)
	if err != nil {
		zap.L().Fatal("Error loading config", zap.Error(err))
	}
	return config
}

// Validate 检查配置是否合法
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port 不能为空")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret 不能为空")
	}
	if _, err := c.JWTExpiration(); err != nil {
		return fmt.Errorf("jwt.expiration: %w", err)
	}
	if _, err := c.AlarmCooldown(); err != nil {
		return fmt.Errorf("alarm.cooldown: %w", err)
	}
	return c.Simulation.Validate()
}

// JWTExpiration 访问令牌有效期
func (c *Config) JWTExpiration() (time.Duration, error) {
	if c.JWT.Expiration == "" {
		return 24 * time.Hour, nil
	}
	return time.ParseDuration(c.JWT.Expiration)
}

// AlarmCooldown 告警冷却时间
func (c *Config) AlarmCooldown() (time.Duration, error) {
	if c.Alarm.Cooldown == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Alarm.Cooldown)
}

// Validate 检查仿真参数
func (s SimulationConfig) Validate() error {
	if s.TxCapacity < 0 || s.CpCapacity < 0 {
		return fmt.Errorf("simulation: 队列容量不能为负 (tx=%d, cp=%d)", s.TxCapacity, s.CpCapacity)
	}
	if s.TxRate <= 0 || s.CpRate <= 0 {
		return fmt.Errorf("simulation: 速率必须为正 (tx=%d, cp=%d)", s.TxRate, s.CpRate)
	}
	if s.MaxSlots <= 0 {
		return fmt.Errorf("simulation: max_slots 必须为正, got %d", s.MaxSlots)
	}
	if s.MinTasks < 0 || s.MaxTasks < s.MinTasks {
		return fmt.Errorf("simulation: 任务数范围 [%d, %d] 不合法", s.MinTasks, s.MaxTasks)
	}
	if s.Workers < 0 {
		return fmt.Errorf("simulation: workers 不能为负, got %d", s.Workers)
	}
	if _, err := s.Interval(); err != nil {
		return fmt.Errorf("simulation.slot_interval: %w", err)
	}
	switch s.Topology {
	case TopologySample, TopologyDatabase:
	case TopologyRing:
		if s.RingSize <= 0 {
			return fmt.Errorf("simulation: ring_size 必须为正, got %d", s.RingSize)
		}
	default:
		return fmt.Errorf("simulation: 未知的拓扑来源 %q", s.Topology)
	}
	if s.HistoryLimit < 0 {
		return fmt.Errorf("simulation: history_limit 不能为负, got %d", s.HistoryLimit)
	}
	return nil
}

// Interval 时隙间隔
func (s SimulationConfig) Interval() (time.Duration, error) {
	if s.SlotInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.SlotInterval)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("不能为负")
	}
	return d, nil
}
