package systems

import (
	"image/color"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonRenderSystem 按钮渲染系统
// 负责渲染所有可见的按钮实体（圆角长按钮和圆形按钮）
//
// 职责：
//   - 渲染按钮背景和底部投影
//   - 根据按钮状态调整颜色（hover 变亮 / pressed 下沉）
//   - 渲染按钮文字（自动居中，带阴影）
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
	}
}

// Draw 渲染所有按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok || !button.Visible {
		return
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	// 按下时整体下沉，投影变短
	pressOffset := 0.0
	if button.State == components.UIClicked {
		pressOffset = buttonShadowDepth / 2
	}

	s.drawButtonBackground(screen, button, pos.X, pos.Y, pressOffset)
	s.drawButtonText(screen, button, pos.X, pos.Y+pressOffset)
}

// buttonShadowDepth 按钮底部投影厚度
const buttonShadowDepth = 6.0

// buttonFillColor 根据状态计算背景色
func buttonFillColor(button *components.ButtonComponent) config.RGB {
	white := config.RGB{R: 255, G: 255, B: 255}
	grey := config.RGB{R: 158, G: 158, B: 158}
	switch button.State {
	case components.UIHovered:
		return button.Color.Lerp(white, 0.15)
	case components.UIDisabled:
		return button.Color.Lerp(grey, 0.6)
	default:
		return button.Color
	}
}

// drawButtonBackground 渲染按钮背景
func (s *ButtonRenderSystem) drawButtonBackground(screen *ebiten.Image, button *components.ButtonComponent, x, y, pressOffset float64) {
	fill := buttonFillColor(button)
	shadow := button.Color.Lerp(config.RGB{}, 0.35)
	depth := buttonShadowDepth - pressOffset

	if button.Shape == components.ButtonShapeRound {
		r := button.Width / 2
		cx, cy := x+r, y+button.Height/2
		fillCircle(screen, cx, cy+depth, r, shadow.RGBA(255))
		fillCircle(screen, cx, cy+pressOffset, r, fill.RGBA(255))
		return
	}

	radius := button.Height / 2
	fillRoundedRect(screen, x, y+depth, button.Width, button.Height, radius, shadow.RGBA(255))
	fillRoundedRect(screen, x, y+pressOffset, button.Width, button.Height, radius, fill.RGBA(255))
}

// drawButtonText 渲染按钮文字（自动居中，带阴影效果）
func (s *ButtonRenderSystem) drawButtonText(screen *ebiten.Image, button *components.ButtonComponent, x, y float64) {
	if button.Text == "" || button.Font == nil {
		return
	}

	centerX := x + button.Width/2
	centerY := y + button.Height/2

	shadowOffsetX := 2.0
	shadowOffsetY := 2.0

	// 为了让"文字+阴影"整体看起来垂直居中，将主文字向上偏移阴影的一半
	visualCenterOffsetY := -shadowOffsetY / 2.0

	shadowOp := &text.DrawOptions{}
	shadowOp.LayoutOptions.PrimaryAlign = text.AlignCenter
	shadowOp.LayoutOptions.SecondaryAlign = text.AlignCenter
	shadowOp.GeoM.Translate(centerX+shadowOffsetX, centerY+shadowOffsetY+visualCenterOffsetY)
	shadowOp.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 90})
	text.Draw(screen, button.Text, button.Font, shadowOp)

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(centerX, centerY+visualCenterOffsetY)
	op.ColorScale.ScaleWithColor(button.TextColor.RGBA(255))
	text.Draw(screen, button.Text, button.Font, op)
}
