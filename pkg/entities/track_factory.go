package entities

import (
	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// 轨道配色
var (
	trackColor = config.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	tieColor   = config.RGB{R: 0x8D, G: 0x6E, B: 0x63}
)

// trackTieSpread 每隔几个采样点画一根枕木
const trackTieSpread = 4

// NewTrackCurve 按配置生成闭合轨道曲线
// stationCount 个控制点均匀分布在圆周上，高度随角度起伏
func NewTrackCurve(cfg config.TrackConfig, stationCount int) *utils.ClosedCurve {
	points := utils.TrackControlPoints(
		stationCount,
		cfg.Radius,
		cfg.HillAmplitude,
		cfg.HillFrequency,
		cfg.SwellAmplitude,
		cfg.SwellFrequency,
	)
	return utils.NewClosedCurve(points, cfg.LengthDivisions)
}

// NewTrackEntity 创建轨道实体
//
// 参数：
//   - em: 实体管理器
//   - curve: 轨道曲线
//   - cfg: 轨道参数（管道半径、采样段数）
//
// 返回：
//   - 轨道实体ID
func NewTrackEntity(em *ecs.EntityManager, curve *utils.ClosedCurve, cfg config.TrackConfig) ecs.EntityID {
	segments := cfg.TubularSegments
	track := &components.TrackComponent{
		Curve:      curve,
		TubeRadius: cfg.TubeRadius,
		Samples:    make([]utils.Vec3, 0, segments+1),
		Sides:      make([]utils.Vec3, 0, segments+1),
		Color:      trackColor,
		TieColor:   tieColor,
		TieSpread:  trackTieSpread,
	}

	// 首尾采样点相同，闭合成环
	for i := 0; i <= segments; i++ {
		u := float64(i%segments) / float64(segments)
		track.Samples = append(track.Samples, curve.PointAt(u))
		track.Sides = append(track.Sides, curve.SideVector(u))
	}

	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, track)

	logging.L().Debugf("[TrackFactory] track created: %d segments, length %.1f", segments, curve.Length())
	return entity
}
