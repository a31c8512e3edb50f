package systems

import (
	"testing"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/game"
	"github.com/decker502/alphacoaster/pkg/utils"
)

func newTestWorld(t *testing.T) (*ecs.EntityManager, *WorldRenderSystem) {
	t.Helper()
	em, rs := newTestRideSystem()
	curve := newTestCurve()

	const segments = 200
	track := &components.TrackComponent{
		Curve:      curve,
		TubeRadius: 0.4,
		Color:      config.RGB{R: 255, G: 255, B: 255},
		TieColor:   config.RGB{R: 120, G: 80, B: 40},
		TieSpread:  4,
	}
	for i := 0; i <= segments; i++ {
		u := float64(i) / segments
		track.Samples = append(track.Samples, curve.PointAt(u))
		track.Sides = append(track.Sides, curve.SideVector(u))
	}
	ecs.AddComponent(em, em.CreateEntity(), track)

	for i := 0; i < 300; i++ {
		rs.Update(frameDT, game.StateRiding, 0)
	}
	cam := rs.Camera()
	forward := cam.LookAt.Sub(cam.Eye).Normalize()

	// 镜头前方的站台和字母
	disc := em.CreateEntity()
	ecs.AddComponent(em, disc, components.NewTransform(cam.LookAt.Add(forward.Scale(3)).Sub(utils.V3(0, 2, 0))))
	ecs.AddComponent(em, disc, &components.DiscComponent{Radius: 3, Color: config.RGB{R: 255}, Opacity: 0.8})

	letter := em.CreateEntity()
	ecs.AddComponent(em, letter, components.NewTransform(cam.LookAt))
	ecs.AddComponent(em, letter, &components.LabelComponent{Kind: components.LabelLetter, Text: "A", Size: 3})

	// 镜头正后方的星星不应出现
	star := em.CreateEntity()
	ecs.AddComponent(em, star, components.NewTransform(cam.Eye.Sub(forward.Scale(50))))
	ecs.AddComponent(em, star, &components.DecorationComponent{Kind: components.DecorationStar, Size: 0.5})

	NewSceneGraphSystem(em).Update()

	camera := utils.NewCamera(60, 0.1, 1000, config.GameWindowWidth, config.GameWindowHeight)
	return em, NewWorldRenderSystem(em, camera, nil)
}

// TestWorldRenderSystem_PainterOrder 绘制项按深度从远到近排列
func TestWorldRenderSystem_PainterOrder(t *testing.T) {
	_, wrs := newTestWorld(t)
	wrs.syncCamera()
	items := wrs.collectItems(wrs.environment())

	if len(items) == 0 {
		t.Fatal("no items collected")
	}
	counts := map[worldItemKind]int{}
	for i, item := range items {
		counts[item.kind]++
		if item.depth < wrs.camera.Near {
			t.Errorf("item %d depth %v is in front of the near plane", i, item.depth)
		}
		if i > 0 && item.depth > items[i-1].depth {
			t.Fatalf("item %d depth %v drawn after nearer item %v", i, item.depth, items[i-1].depth)
		}
	}

	if counts[itemTrack] == 0 || counts[itemTie] == 0 {
		t.Errorf("track not collected: %v", counts)
	}
	if counts[itemDisc] != 1 || counts[itemLabel] != 1 {
		t.Errorf("station parts: %v", counts)
	}
	if counts[itemStar] != 0 {
		t.Error("star behind the camera should be culled")
	}
}

// TestWorldRenderSystem_Fog 远处物体颜色趋近天空色
func TestWorldRenderSystem_Fog(t *testing.T) {
	env := components.EnvironmentComponent{
		Sky:     config.RGB{R: 0, G: 0, B: 200},
		FogNear: 5,
		FogFar:  60,
	}
	base := config.RGB{R: 255, G: 255, B: 255}

	if got := fogged(base, 2, env); got != base {
		t.Errorf("near color = %v, want unchanged", got)
	}
	if got := fogged(base, 80, env); got != env.Sky {
		t.Errorf("far color = %v, want sky %v", got, env.Sky)
	}
	mid := fogged(base, 32.5, env)
	if mid == base || mid == env.Sky {
		t.Errorf("mid color = %v, want a blend", mid)
	}
}

// TestClipPolygon 跨过近平面的多边形被裁剪
func TestClipPolygon(t *testing.T) {
	square := []utils.Vec3{
		utils.V3(-1, 0, -1),
		utils.V3(1, 0, -1),
		utils.V3(1, 0, 3),
		utils.V3(-1, 0, 3),
	}
	clipped := clipPolygon(square, 0.5)
	if len(clipped) != 4 {
		t.Fatalf("clipped to %d vertices, want 4", len(clipped))
	}
	for _, v := range clipped {
		if v.Z < 0.5-1e-12 {
			t.Errorf("vertex %+v behind near plane", v)
		}
	}

	if got := clipPolygon([]utils.Vec3{utils.V3(0, 0, -1), utils.V3(1, 0, -1), utils.V3(0, 1, -2)}, 0.1); len(got) != 0 {
		t.Errorf("polygon fully behind camera kept %d vertices", len(got))
	}
}

// TestClipSegment 线段裁剪
func TestClipSegment(t *testing.T) {
	a, b, ok := clipSegment(utils.V3(0, 0, -1), utils.V3(0, 0, 3), 1)
	if !ok {
		t.Fatal("segment crossing the near plane should be kept")
	}
	if a.Z != 1 || b.Z != 3 {
		t.Errorf("clipped to z=%v..%v, want 1..3", a.Z, b.Z)
	}
	if _, _, ok := clipSegment(utils.V3(0, 0, -1), utils.V3(0, 0, 0.5), 1); ok {
		t.Error("segment behind near plane should be dropped")
	}
}

// TestLabelFontSize 字号取偶数且不小于 6
func TestLabelFontSize(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1, 6},
		{7, 8},
		{12.9, 12},
		{33, 34},
	}
	for _, tt := range tests {
		if got := labelFontSize(tt.in); got != tt.want {
			t.Errorf("labelFontSize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
