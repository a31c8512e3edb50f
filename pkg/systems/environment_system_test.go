package systems

import (
	"testing"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// TestPaletteIndex 26 个站点分成 5 段色板
func TestPaletteIndex(t *testing.T) {
	tests := []struct {
		index int
		want  int
	}{
		{0, 0},
		{5, 0},
		{6, 1},
		{10, 1},
		{11, 2},
		{15, 2},
		{16, 3},
		{20, 3},
		{21, 4},
		{25, 4},
		{26, 0}, // 回到起点
	}

	for _, tt := range tests {
		if got := PaletteIndex(tt.index, 26, 5); got != tt.want {
			t.Errorf("PaletteIndex(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}

	if got := PaletteIndex(3, 0, 5); got != 0 {
		t.Errorf("zero stations should map to palette 0, got %d", got)
	}
}

func newTestEnvironment(em *ecs.EntityManager, palettes []config.Palette) *components.EnvironmentComponent {
	id := em.CreateEntity()
	env := &components.EnvironmentComponent{
		Sky:        palettes[0].Sky,
		Ground:     palettes[0].Ground,
		FromSky:    palettes[0].Sky,
		FromGround: palettes[0].Ground,
		Blend:      1,
		FogNear:    5,
		FogFar:     60,
	}
	ecs.AddComponent(em, id, env)
	return env
}

// TestEnvironmentSystem_PaletteBlend 换段后颜色渐变到新色板
func TestEnvironmentSystem_PaletteBlend(t *testing.T) {
	palettes := config.DefaultGameConfig().Palettes
	em := ecs.NewEntityManager()
	es := NewEnvironmentSystem(em, palettes, 26)
	env := newTestEnvironment(em, palettes)

	es.Update(frameDT, 2)
	if env.PaletteIndex != 0 || env.Sky != palettes[0].Sky {
		t.Fatalf("station 2 should keep palette 0, got %d %v", env.PaletteIndex, env.Sky)
	}

	es.Update(frameDT, 6)
	if env.PaletteIndex != 1 {
		t.Fatalf("PaletteIndex = %d, want 1", env.PaletteIndex)
	}
	if env.Sky == palettes[1].Sky {
		t.Error("palette change should blend, not jump")
	}

	for i := 0; i < 200; i++ {
		es.Update(frameDT, 6)
	}
	if env.Sky != palettes[1].Sky || env.Ground != palettes[1].Ground {
		t.Errorf("after blend sky=%v ground=%v, want %v %v", env.Sky, env.Ground, palettes[1].Sky, palettes[1].Ground)
	}
}

// TestEnvironmentSystem_Floating 站点图标组围绕初始高度漂浮
func TestEnvironmentSystem_Floating(t *testing.T) {
	em := ecs.NewEntityManager()
	es := NewEnvironmentSystem(em, config.DefaultGameConfig().Palettes, 26)

	id := em.CreateEntity()
	node := components.NewTransform(utils.V3(0, 4, 0))
	ecs.AddComponent(em, id, node)
	ecs.AddComponent(em, id, &components.FloatComponent{Amplitude: 0.5, Speed: 2, BaseY: 4})

	minY, maxY := 100.0, -100.0
	for i := 0; i < 600; i++ {
		es.Update(frameDT, 0)
		minY = min(minY, node.LocalPosition.Y)
		maxY = max(maxY, node.LocalPosition.Y)
	}
	if minY < 3.5-1e-9 || maxY > 4.5+1e-9 {
		t.Errorf("float range [%v, %v] exceeds 4±0.5", minY, maxY)
	}
	if maxY-minY < 0.9 {
		t.Errorf("float range [%v, %v] too small", minY, maxY)
	}
}
