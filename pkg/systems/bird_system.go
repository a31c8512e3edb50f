package systems

import (
	"math"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/ecs"
)

// BirdSystem 小鸟助手动画：身体上下浮动、翅膀扇动、讲解时显示气泡
type BirdSystem struct {
	entityManager *ecs.EntityManager
}

// NewBirdSystem 创建小鸟动画系统
func NewBirdSystem(em *ecs.EntityManager) *BirdSystem {
	return &BirdSystem{entityManager: em}
}

// Update 推进动画，talking 为 true 时显示 "Tweet!" 气泡
func (s *BirdSystem) Update(dt float64, talking bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.BirdComponent](s.entityManager) {
		bird, _ := ecs.GetComponent[*components.BirdComponent](s.entityManager, id)

		bird.Time += dt
		bird.WingAngle = bird.FlapAmplitude * math.Sin(bird.Time*bird.FlapSpeed)
		bird.Talking = talking

		if body, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, bird.Body); ok {
			body.LocalPosition.Y = bird.BaseY + bird.BobAmplitude*math.Sin(bird.Time*bird.BobSpeed)
		}
		if bubble, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, bird.Bubble); ok {
			bubble.Visible = talking
		}
	}
}
