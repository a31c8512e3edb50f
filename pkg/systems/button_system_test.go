package systems

import (
	"testing"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/utils"
)

func newTestButton(em *ecs.EntityManager, shape components.ButtonShape, x, y, w, h float64, clicks *int) *components.ButtonComponent {
	id := em.CreateEntity()
	button := &components.ButtonComponent{
		Shape:   shape,
		Width:   w,
		Height:  h,
		Enabled: true,
		Visible: true,
		OnClick: func() { *clicks++ },
	}
	ecs.AddComponent(em, id, button)
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	return button
}

// TestButtonSystem_ClickOnRelease 按下不触发，释放时触发一次
func TestButtonSystem_ClickOnRelease(t *testing.T) {
	em := ecs.NewEntityManager()
	bs := NewButtonSystem(em)
	clicks := 0
	button := newTestButton(em, components.ButtonShapePill, 100, 100, 200, 60, &clicks)

	var tracker utils.PointerTracker

	bs.Update(tracker.Step(false, 150, 120))
	if button.State != components.UIHovered {
		t.Errorf("hover state = %v, want UIHovered", button.State)
	}

	bs.Update(tracker.Step(true, 150, 120))
	if button.State != components.UIClicked {
		t.Errorf("pressed state = %v, want UIClicked", button.State)
	}
	if clicks != 0 {
		t.Fatal("press alone must not click")
	}

	if !bs.Update(tracker.Step(false, 150, 120)) {
		t.Error("Update should report the click")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	bs.Update(tracker.Step(false, 150, 120))
	if clicks != 1 {
		t.Errorf("idle frame clicked again, clicks = %d", clicks)
	}
}

// TestButtonSystem_ReleaseOutside 在按钮外释放不触发
func TestButtonSystem_ReleaseOutside(t *testing.T) {
	em := ecs.NewEntityManager()
	bs := NewButtonSystem(em)
	clicks := 0
	button := newTestButton(em, components.ButtonShapePill, 100, 100, 200, 60, &clicks)

	bs.Update(utils.PointerEvent{X: 10, Y: 10, JustReleased: true})
	if clicks != 0 {
		t.Error("release outside should not click")
	}
	if button.State != components.UINormal {
		t.Errorf("state = %v, want UINormal", button.State)
	}
}

// TestButtonSystem_HiddenAndDisabled 不可见和禁用的按钮不响应
func TestButtonSystem_HiddenAndDisabled(t *testing.T) {
	em := ecs.NewEntityManager()
	bs := NewButtonSystem(em)
	clicks := 0
	button := newTestButton(em, components.ButtonShapePill, 0, 0, 100, 100, &clicks)
	release := utils.PointerEvent{X: 50, Y: 50, JustReleased: true}

	button.Visible = false
	bs.Update(release)
	if clicks != 0 {
		t.Error("hidden button clicked")
	}

	button.Visible = true
	button.Enabled = false
	bs.Update(release)
	if clicks != 0 {
		t.Error("disabled button clicked")
	}
	if button.State != components.UIDisabled {
		t.Errorf("state = %v, want UIDisabled", button.State)
	}
}

// TestButtonSystem_RoundHitTest 圆形按钮按内切圆判断，角落不算
func TestButtonSystem_RoundHitTest(t *testing.T) {
	em := ecs.NewEntityManager()
	bs := NewButtonSystem(em)
	clicks := 0
	newTestButton(em, components.ButtonShapeRound, 0, 0, 64, 64, &clicks)

	bs.Update(utils.PointerEvent{X: 2, Y: 2, JustReleased: true})
	if clicks != 0 {
		t.Error("corner of a round button should not click")
	}
	bs.Update(utils.PointerEvent{X: 32, Y: 32, JustReleased: true})
	if clicks != 1 {
		t.Errorf("center click: clicks = %d, want 1", clicks)
	}
}

// TestButtonSystem_OneClickPerFrame 回调显示出的按钮在同一帧不会被连带点击
func TestButtonSystem_OneClickPerFrame(t *testing.T) {
	em := ecs.NewEntityManager()
	bs := NewButtonSystem(em)
	first, second := 0, 0

	a := newTestButton(em, components.ButtonShapePill, 0, 0, 100, 100, &first)
	b := newTestButton(em, components.ButtonShapePill, 0, 0, 100, 100, &second)
	b.Visible = false
	a.OnClick = func() {
		first++
		a.Visible = false
		b.Visible = true
	}

	bs.Update(utils.PointerEvent{X: 50, Y: 50, JustReleased: true})
	if first != 1 || second != 0 {
		t.Errorf("clicks = (%d, %d), want (1, 0)", first, second)
	}
}
