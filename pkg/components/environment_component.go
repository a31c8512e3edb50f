package components

import "github.com/decker502/alphacoaster/pkg/config"

// EnvironmentComponent 天空、地面和雾的当前颜色
// 色板由 EnvironmentSystem 按当前站点索引选择
type EnvironmentComponent struct {
	PaletteIndex int
	Sky          config.RGB
	Ground       config.RGB
	FogNear      float64
	FogFar       float64

	// 切换色板时从 From* 渐变到新色板，Blend 从 0 增长到 1
	FromSky    config.RGB
	FromGround config.RGB
	Blend      float64
}

// DecorationKind 装饰物种类
type DecorationKind int

const (
	DecorationCloud DecorationKind = iota
	DecorationStar
)

// DecorationComponent 远处的云朵和星星
type DecorationComponent struct {
	Kind DecorationKind
	Size float64
}
