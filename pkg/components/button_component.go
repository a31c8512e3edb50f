package components

import (
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonShape 按钮外形
type ButtonShape int

const (
	// ButtonShapePill 圆角长按钮
	ButtonShapePill ButtonShape = iota
	// ButtonShapeRound 圆形图标按钮
	ButtonShapeRound
)

// ButtonAction 按钮对应的操作
type ButtonAction int

const (
	ActionStart ButtonAction = iota
	ActionNext
	ActionReplay
	ActionRestart
	ActionPlayAgain
)

// ButtonComponent 按钮组件
// 纯数据组件；位置由 PositionComponent 给出，点击后调用 OnClick
type ButtonComponent struct {
	Action ButtonAction
	Shape  ButtonShape

	Text string
	Font *text.GoTextFace

	Color     config.RGB
	TextColor config.RGB

	Width  float64
	Height float64

	State   UIState
	Enabled bool
	// Visible 由覆盖层按游戏状态切换，不可见时不响应点击
	Visible bool

	OnClick func()
}
