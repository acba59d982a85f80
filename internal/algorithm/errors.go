package algorithm

import "errors"

var (
	// ErrInvalidConfig 拓扑或节点配置不合法，仿真开始前即失败
	ErrInvalidConfig = errors.New("invalid simulation config")
	// ErrAlreadyRunning 已有仿真在运行
	ErrAlreadyRunning = errors.New("simulation already running")
)
