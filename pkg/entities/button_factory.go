package entities

import (
	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 按钮配色
var (
	ButtonGreen  = config.RGB{R: 0x22, G: 0xC5, B: 0x5E}
	ButtonBlue   = config.RGB{R: 0x3B, G: 0x82, B: 0xF6}
	ButtonOrange = config.RGB{R: 0xF9, G: 0x73, B: 0x16}
	ButtonPurple = config.RGB{R: 0xA8, G: 0x55, B: 0xF7}
	ButtonWhite  = config.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	ButtonGrey   = config.RGB{R: 0x4B, G: 0x55, B: 0x63}
)

// ButtonSpec 按钮参数
type ButtonSpec struct {
	Action    components.ButtonAction
	Shape     components.ButtonShape
	X, Y      float64
	Width     float64
	Height    float64
	Text      string
	Font      *text.GoTextFace
	Color     config.RGB
	TextColor config.RGB
	// Visible 初始是否可见
	Visible bool
}

// NewButton 创建按钮实体
//
// 参数：
//   - em: 实体管理器
//   - opts: 按钮外观、位置和对应操作
//   - onClick: 点击回调函数
//
// 返回：
//   - 按钮实体ID
func NewButton(em *ecs.EntityManager, opts ButtonSpec, onClick func()) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{
		X: opts.X,
		Y: opts.Y,
	})

	ecs.AddComponent(em, entity, &components.ButtonComponent{
		Action:    opts.Action,
		Shape:     opts.Shape,
		Text:      opts.Text,
		Font:      opts.Font,
		Color:     opts.Color,
		TextColor: opts.TextColor,
		Width:     opts.Width,
		Height:    opts.Height,
		State:     components.UINormal,
		Enabled:   true,
		Visible:   opts.Visible,
		OnClick:   onClick,
	})

	return entity
}

// RideButtonFonts 按钮使用的字体
type RideButtonFonts struct {
	Button *text.GoTextFace
	Icon   *text.GoTextFace
}

// RideButtons 骑行场景的全部按钮
type RideButtons struct {
	Start     ecs.EntityID
	Replay    ecs.EntityID
	Next      ecs.EntityID
	PlayAgain ecs.EntityID
	Restart   ecs.EntityID
}

// NewRideButtons 按布局创建骑行场景按钮
// 除标题栏的重新开始按钮外，初始都不可见，由场景按状态切换
func NewRideButtons(em *ecs.EntityManager, fonts RideButtonFonts, onClick func(components.ButtonAction)) RideButtons {
	click := func(action components.ButtonAction) func() {
		return func() {
			if onClick != nil {
				onClick(action)
			}
		}
	}

	px, py, pw, ph := config.CenterPanelRect()
	wideX := px + (pw-config.WideButtonWidth)/2
	wideY := py + ph - config.ButtonHeight/2

	bx, by, bw, bh := config.BubbleRect()
	rowY := by + bh + config.ButtonGap*2
	rowWidth := config.RoundButtonSize + config.ButtonGap + config.NextButtonWidth
	rowX := bx + (bw-rowWidth)/2

	hx, hy, hw, hh := config.HeaderRect()

	var buttons RideButtons
	buttons.Start = NewButton(em, ButtonSpec{
		Action:    components.ActionStart,
		Shape:     components.ButtonShapePill,
		X:         wideX,
		Y:         wideY,
		Width:     config.WideButtonWidth,
		Height:    config.ButtonHeight,
		Text:      "START RIDE",
		Font:      fonts.Button,
		Color:     ButtonGreen,
		TextColor: ButtonWhite,
	}, click(components.ActionStart))

	buttons.PlayAgain = NewButton(em, ButtonSpec{
		Action:    components.ActionPlayAgain,
		Shape:     components.ButtonShapePill,
		X:         wideX,
		Y:         wideY,
		Width:     config.WideButtonWidth,
		Height:    config.ButtonHeight,
		Text:      "Play Again",
		Font:      fonts.Button,
		Color:     ButtonPurple,
		TextColor: ButtonWhite,
	}, click(components.ActionPlayAgain))

	buttons.Replay = NewButton(em, ButtonSpec{
		Action:    components.ActionReplay,
		Shape:     components.ButtonShapeRound,
		X:         rowX,
		Y:         rowY,
		Width:     config.RoundButtonSize,
		Height:    config.RoundButtonSize,
		Text:      "♪",
		Font:      fonts.Icon,
		Color:     ButtonBlue,
		TextColor: ButtonWhite,
	}, click(components.ActionReplay))

	buttons.Next = NewButton(em, ButtonSpec{
		Action:    components.ActionNext,
		Shape:     components.ButtonShapePill,
		X:         rowX + config.RoundButtonSize + config.ButtonGap,
		Y:         rowY,
		Width:     config.NextButtonWidth,
		Height:    config.ButtonHeight,
		Text:      "Next",
		Font:      fonts.Button,
		Color:     ButtonOrange,
		TextColor: ButtonWhite,
	}, click(components.ActionNext))

	buttons.Restart = NewButton(em, ButtonSpec{
		Action:    components.ActionRestart,
		Shape:     components.ButtonShapeRound,
		X:         hx + hw - config.HeaderButtonSize - (hh-config.HeaderButtonSize)/2,
		Y:         hy + (hh-config.HeaderButtonSize)/2,
		Width:     config.HeaderButtonSize,
		Height:    config.HeaderButtonSize,
		Text:      "⌂",
		Font:      fonts.Icon,
		Color:     ButtonWhite,
		TextColor: ButtonGrey,
		Visible:   true,
	}, click(components.ActionRestart))

	return buttons
}

// SetButtonVisible 切换按钮可见性
// 隐藏时同时清除悬停/按下状态
func SetButtonVisible(em *ecs.EntityManager, entity ecs.EntityID, visible bool) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](em, entity)
	if !ok {
		return
	}
	button.Visible = visible
	if !visible {
		button.State = components.UINormal
	}
}
