package components

import (
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// TrackComponent 过山车轨道
type TrackComponent struct {
	Curve *utils.ClosedCurve

	// TubeRadius 管道半径（世界单位）
	TubeRadius float64
	// Samples 预先采样的轨道点，长度为 Segments+1，首尾相同
	Samples []utils.Vec3
	// Sides 每个采样点的侧向单位向量，与 Samples 一一对应
	Sides []utils.Vec3

	Color     config.RGB
	TieColor  config.RGB
	TieSpread int // 每隔多少个采样点画一根枕木
}
