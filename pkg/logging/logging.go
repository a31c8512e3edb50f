// Package logging 提供全局日志记录器
//
// 默认是空记录器（不输出任何内容），与 --verbose 开关配合：
// 只有启用详细日志时才构建真正的 zap 记录器。
// 调用方沿用 "[Tag] message" 的消息格式，例如：
//
//	logging.L().Infof("[Orchestrator] arrived at station %d", index)
package logging

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(zap.NewNop().Sugar())
}

// Init 根据 verbose 开关初始化全局记录器
//
// verbose 为 false 时使用 zap.NewNop()，所有日志被丢弃。
func Init(verbose bool) error {
	if !verbose {
		current.Store(zap.NewNop().Sugar())
		return nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	current.Store(logger.Sugar())
	return nil
}

// Set 替换全局记录器（测试中可以传入 zaptest 或 observer 记录器）
func Set(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	current.Store(logger.Sugar())
}

// L 返回全局记录器
func L() *zap.SugaredLogger {
	return current.Load()
}

// Sync 刷新缓冲的日志
func Sync() {
	_ = current.Load().Sync()
}
