package systems

import (
	"math"
	"testing"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/utils"
)

func newTestBird(em *ecs.EntityManager) (*components.BirdComponent, *components.TransformComponent, *components.TransformComponent) {
	root := em.CreateEntity()
	ecs.AddComponent(em, root, components.NewTransform(utils.Vec3{}))

	body := em.CreateEntity()
	bodyNode := components.NewChildTransform(root, utils.Vec3{})
	ecs.AddComponent(em, body, bodyNode)

	bubble := em.CreateEntity()
	bubbleNode := components.NewChildTransform(root, utils.V3(0.5, 0.5, 0))
	bubbleNode.Visible = false
	ecs.AddComponent(em, bubble, bubbleNode)

	bird := &components.BirdComponent{
		BobAmplitude:  0.1,
		BobSpeed:      3,
		FlapAmplitude: 0.5,
		FlapSpeed:     15,
		Body:          body,
		Bubble:        bubble,
	}
	ecs.AddComponent(em, root, bird)
	return bird, bodyNode, bubbleNode
}

// TestBirdSystem_Animation 身体浮动 0.1·sin(3t)，翅膀 0.5·sin(15t)
func TestBirdSystem_Animation(t *testing.T) {
	em := ecs.NewEntityManager()
	bs := NewBirdSystem(em)
	bird, body, _ := newTestBird(em)

	elapsed := 0.0
	for i := 0; i < 37; i++ {
		bs.Update(frameDT, false)
		elapsed += frameDT
	}

	if math.Abs(bird.Time-elapsed) > 1e-9 {
		t.Errorf("Time = %v, want %v", bird.Time, elapsed)
	}
	if want := 0.1 * math.Sin(3*elapsed); math.Abs(body.LocalPosition.Y-want) > 1e-9 {
		t.Errorf("body y = %v, want %v", body.LocalPosition.Y, want)
	}
	if want := 0.5 * math.Sin(15*elapsed); math.Abs(bird.WingAngle-want) > 1e-9 {
		t.Errorf("wing angle = %v, want %v", bird.WingAngle, want)
	}
	if math.Abs(body.LocalPosition.Y) > 0.1+1e-12 || math.Abs(bird.WingAngle) > 0.5+1e-12 {
		t.Error("animation exceeds its amplitude")
	}
}

// TestBirdSystem_Bubble 讲解时显示 "Tweet!" 气泡
func TestBirdSystem_Bubble(t *testing.T) {
	em := ecs.NewEntityManager()
	bs := NewBirdSystem(em)
	bird, _, bubble := newTestBird(em)

	bs.Update(frameDT, true)
	if !bird.Talking || !bubble.Visible {
		t.Error("bubble should show while talking")
	}

	bs.Update(frameDT, false)
	if bird.Talking || bubble.Visible {
		t.Error("bubble should hide when not talking")
	}
}
