package systems

import (
	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的悬停、按下和点击
//
// 职责：
//   - 检测指针悬停（更新按钮状态为 UIHovered）
//   - 检测左键释放（触发 OnClick 回调）
//   - 不可见或禁用的按钮不响应交互
//
// 输入由调用者每帧通过 utils.PointerTracker 采集后传入，便于测试
type ButtonSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// Update 更新按钮交互状态
// 返回本帧是否有按钮被点击（同一帧最多触发一个）
func (s *ButtonSystem) Update(ev utils.PointerEvent) bool {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	clicked := false
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Visible {
			button.State = components.UINormal
			continue
		}

		// 禁用状态不响应交互
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		if !isPointInButton(float64(ev.X), float64(ev.Y), pos.X, pos.Y, button) {
			button.State = components.UINormal
			continue
		}

		switch {
		case ev.JustReleased && !clicked:
			// 释放瞬间触发回调，回调可能切换其他按钮的可见性
			clicked = true
			logging.L().Debugf("[ButtonSystem] %q released (was %s)", button.Text, button.State)
			button.State = components.UIHovered
			if button.OnClick != nil {
				button.OnClick()
			}
		case ev.Pressed:
			button.State = components.UIClicked
		default:
			button.State = components.UIHovered
		}
	}
	return clicked
}

// isPointInButton 检测点是否在按钮范围内
// 圆形按钮按内切圆判断，其余按矩形判断
func isPointInButton(px, py, x, y float64, button *components.ButtonComponent) bool {
	if button.Shape == components.ButtonShapeRound {
		r := button.Width / 2
		dx := px - (x + r)
		dy := py - (y + button.Height/2)
		return dx*dx+dy*dy <= r*r
	}
	return px >= x &&
		px <= x+button.Width &&
		py >= y &&
		py <= y+button.Height
}
