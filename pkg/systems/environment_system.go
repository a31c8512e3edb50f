package systems

import (
	"math"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// paletteBlendDuration 色板切换的渐变时长（秒）
const paletteBlendDuration = 1.5

// PaletteIndex 站点 index 对应的色板序号
// 26 个站点平均分成 paletteCount 段：floor(index/stationCount*paletteCount) mod paletteCount
func PaletteIndex(index, stationCount, paletteCount int) int {
	if stationCount <= 0 || paletteCount <= 0 {
		return 0
	}
	bucket := int(math.Floor(float64(index) / float64(stationCount) * float64(paletteCount)))
	bucket %= paletteCount
	if bucket < 0 {
		bucket += paletteCount
	}
	return bucket
}

// EnvironmentSystem 按当前站点选择天空/地面色板，并驱动站点图标漂浮
type EnvironmentSystem struct {
	entityManager *ecs.EntityManager
	palettes      []config.Palette
	stationCount  int
	time          float64
}

// NewEnvironmentSystem 创建环境系统
func NewEnvironmentSystem(em *ecs.EntityManager, palettes []config.Palette, stationCount int) *EnvironmentSystem {
	return &EnvironmentSystem{
		entityManager: em,
		palettes:      palettes,
		stationCount:  stationCount,
	}
}

// Update 推进一帧
func (s *EnvironmentSystem) Update(dt float64, index int) {
	s.time += dt
	s.updatePalette(dt, index)
	s.updateFloating()
}

func (s *EnvironmentSystem) updatePalette(dt float64, index int) {
	if len(s.palettes) == 0 {
		return
	}
	want := PaletteIndex(index, s.stationCount, len(s.palettes))

	for _, id := range ecs.GetEntitiesWith1[*components.EnvironmentComponent](s.entityManager) {
		env, _ := ecs.GetComponent[*components.EnvironmentComponent](s.entityManager, id)

		if env.PaletteIndex != want {
			logging.L().Debugf("[EnvironmentSystem] palette %d -> %d (station %d)", env.PaletteIndex, want, index)
			env.FromSky, env.FromGround = env.Sky, env.Ground
			env.PaletteIndex = want
			env.Blend = 0
		}

		target := s.palettes[want]
		if env.Blend < 1 {
			env.Blend = math.Min(1, env.Blend+dt/paletteBlendDuration)
		}
		t := utils.EaseInOutSine(env.Blend)
		env.Sky = env.FromSky.Lerp(target.Sky, t)
		env.Ground = env.FromGround.Lerp(target.Ground, t)
	}
}

// updateFloating 站点图标组上下漂浮
func (s *EnvironmentSystem) updateFloating() {
	for _, id := range ecs.GetEntitiesWith2[*components.FloatComponent, *components.TransformComponent](s.entityManager) {
		fc, _ := ecs.GetComponent[*components.FloatComponent](s.entityManager, id)
		node, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		node.LocalPosition.Y = fc.BaseY + fc.Amplitude*math.Sin(s.time*fc.Speed+fc.Phase)
	}
}
