package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerEvent 单帧指针事件
type PointerEvent struct {
	X, Y         int
	Pressed      bool // 当前是否按下
	JustPressed  bool // 本帧刚按下
	JustReleased bool // 本帧刚释放
}

// PointerTracker 统一鼠标左键和单点触摸的按下/释放状态
// 触摸释放时 ebiten 已拿不到坐标，因此释放位置使用最后一次按下时的位置
type PointerTracker struct {
	wasPressed bool
	lastX      int
	lastY      int
}

// Step 根据本帧原始输入推进状态
func (p *PointerTracker) Step(pressed bool, x, y int) PointerEvent {
	ev := PointerEvent{X: x, Y: y, Pressed: pressed}
	switch {
	case pressed && !p.wasPressed:
		ev.JustPressed = true
	case !pressed && p.wasPressed:
		ev.JustReleased = true
		ev.X, ev.Y = p.lastX, p.lastY
	}
	if pressed {
		p.lastX, p.lastY = x, y
	}
	p.wasPressed = pressed
	return ev
}

// Poll 读取 ebiten 当前输入并推进状态，每帧调用一次
func (p *PointerTracker) Poll() PointerEvent {
	pressed, x, y := GetPointerState()
	return p.Step(pressed, x, y)
}

// GetPointerState 获取指针的完整状态
// 优先触摸，没有触摸时使用鼠标
func GetPointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}
