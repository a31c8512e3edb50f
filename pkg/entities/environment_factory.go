package entities

import (
	"math"
	"math/rand"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/utils"
)

const (
	// starCount 星空中的星星数量
	starCount = 600
	// starRadius 星星所在球面半径
	starRadius = 100.0
	// starSize 星星大小（世界单位）
	starSize = 0.35
	// starSeed 固定种子，每次启动星空一致
	starSeed = 26
)

// cloudSpec 云朵位置和大小
type cloudSpec struct {
	position utils.Vec3
	size     float64
}

var clouds = []cloudSpec{
	{position: utils.V3(-10, 10, -10), size: 4},
	{position: utils.V3(10, 5, -20), size: 5},
	{position: utils.V3(25, 12, 15), size: 6},
	{position: utils.V3(-28, 8, 22), size: 5},
}

// NewEnvironmentEntity 创建天空/地面/雾环境实体，初始使用第一个色板
func NewEnvironmentEntity(em *ecs.EntityManager, palettes []config.Palette, fog config.FogConfig) ecs.EntityID {
	var first config.Palette
	if len(palettes) > 0 {
		first = palettes[0]
	}

	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.EnvironmentComponent{
		PaletteIndex: 0,
		Sky:          first.Sky,
		Ground:       first.Ground,
		FromSky:      first.Sky,
		FromGround:   first.Ground,
		Blend:        1,
		FogNear:      fog.Near,
		FogFar:       fog.Far,
	})
	return entity
}

// NewDecorationEntities 创建云朵和星星
// 星星用固定种子均匀分布在上半球面，返回创建的实体
func NewDecorationEntities(em *ecs.EntityManager) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(clouds)+starCount)

	for _, c := range clouds {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, components.NewTransform(c.position))
		ecs.AddComponent(em, id, &components.DecorationComponent{Kind: components.DecorationCloud, Size: c.size})
		ids = append(ids, id)
	}

	rng := rand.New(rand.NewSource(starSeed))
	for i := 0; i < starCount; i++ {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, components.NewTransform(starPosition(rng)))
		ecs.AddComponent(em, id, &components.DecorationComponent{Kind: components.DecorationStar, Size: starSize})
		ids = append(ids, id)
	}
	return ids
}

// starPosition 球面均匀采样，只取地平线以上
func starPosition(rng *rand.Rand) utils.Vec3 {
	theta := rng.Float64() * 2 * math.Pi
	y := 0.05 + rng.Float64()*0.95
	r := math.Sqrt(1 - y*y)
	return utils.V3(r*math.Cos(theta), y, r*math.Sin(theta)).Scale(starRadius)
}
