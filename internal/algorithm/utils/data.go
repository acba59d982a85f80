package utils

import (
	"github.com/lithammer/shortuuid"
)

// GenerateRunKey 生成仿真标识
func GenerateRunKey() string {
	return "run_" + shortuuid.New()
}
