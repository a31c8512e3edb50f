package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 覆盖层配色
var (
	overlayPanelColor  = config.RGB{R: 255, G: 255, B: 255}
	overlayBorderColor = config.RGB{R: 0xFA, G: 0xCC, B: 0x15}
	overlayTitleColor  = config.RGB{R: 0x25, G: 0x63, B: 0xEB}
	overlayHeadColor   = config.RGB{R: 0x93, G: 0x33, B: 0xEA}
	overlayBodyColor   = config.RGB{R: 0x4B, G: 0x55, B: 0x63}
	overlayHeaderEdge  = config.RGB{R: 0x93, G: 0xC5, B: 0xFD}
	overlaySpinColor   = config.RGB{R: 0xEA, G: 0xB3, B: 0x08}
)

// spinnerSpeed 加载图标转速（弧度/秒）
const spinnerSpeed = 4.0

// OverlayRenderSystem 绘制界面覆盖层：标题栏、中央面板、趣味知识气泡和底栏
// 按钮由 ButtonRenderSystem 在其后绘制
type OverlayRenderSystem struct {
	entityManager *ecs.EntityManager
	fonts         FontProvider
}

// NewOverlayRenderSystem 创建覆盖层渲染系统
func NewOverlayRenderSystem(em *ecs.EntityManager, fonts FontProvider) *OverlayRenderSystem {
	return &OverlayRenderSystem{
		entityManager: em,
		fonts:         fonts,
	}
}

// Update 推进加载图标动画
func (s *OverlayRenderSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.OverlayComponent](s.entityManager) {
		overlay, _ := ecs.GetComponent[*components.OverlayComponent](s.entityManager, id)
		if overlay.Loading {
			overlay.Spinner = math.Mod(overlay.Spinner+dt*spinnerSpeed, 2*math.Pi)
		} else {
			overlay.Spinner = 0
		}
	}
}

// Draw 绘制覆盖层
func (s *OverlayRenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.OverlayComponent](s.entityManager) {
		overlay, _ := ecs.GetComponent[*components.OverlayComponent](s.entityManager, id)
		s.drawHeader(screen, overlay)
		switch overlay.Panel {
		case components.PanelIntro, components.PanelComplete:
			s.drawCenterPanel(screen, overlay)
		case components.PanelFact:
			s.drawFactBubble(screen, overlay)
		}
		s.drawFooter(screen, overlay)
	}
}

func (s *OverlayRenderSystem) font(size float64, bold bool) *text.GoTextFace {
	if s.fonts == nil {
		return nil
	}
	return s.fonts.Font(size, bold)
}

// drawHeader 左上角标题，底边带一条浅蓝色描边
func (s *OverlayRenderSystem) drawHeader(screen *ebiten.Image, overlay *components.OverlayComponent) {
	x, y, w, h := config.HeaderRect()
	fillRoundedRect(screen, x, y+4, w, h, 24, overlayHeaderEdge.RGBA(230))
	fillRoundedRect(screen, x, y, w, h, 24, overlayPanelColor.RGBA(230))

	face := s.font(config.TitleFontSize, true)
	drawCenteredText(screen, overlay.Title, face, x+w/2, y+h/2, overlayTitleColor.RGBA(255))
}

// drawCenterPanel 开场面板和完成面板：标题、说明文字，按钮在面板底部
func (s *OverlayRenderSystem) drawCenterPanel(screen *ebiten.Image, overlay *components.OverlayComponent) {
	x, y, w, h := config.CenterPanelRect()
	if overlay.Panel == components.PanelIntro {
		fillRoundedRect(screen, x-4, y-4, w+8, h+8, 36, overlayBorderColor.RGBA(255))
	}
	fillRoundedRect(screen, x, y, w, h, 32, overlayPanelColor.RGBA(242))

	headFace := s.font(config.TitleFontSize+6, true)
	drawCenteredText(screen, overlay.Heading, headFace, x+w/2, y+52, overlayHeadColor.RGBA(255))

	bodyFace := s.font(config.BodyFontSize, true)
	lines := utils.WrapText(overlay.Body, bodyFace, w-64)
	lineHeight := config.BodyFontSize * 1.35
	for i, line := range lines {
		drawCenteredText(screen, line, bodyFace, x+w/2, y+104+float64(i)*lineHeight, overlayBodyColor.RGBA(255))
	}
}

// drawFactBubble 小鸟的趣味知识气泡，加载中显示旋转图标和 "Thinking..."
func (s *OverlayRenderSystem) drawFactBubble(screen *ebiten.Image, overlay *components.OverlayComponent) {
	x, y, w, h := config.BubbleRect()
	border := overlayBorderColor.RGBA(255)

	// 底部小尖角
	tipX, tipY := x+w/2, y+h
	fillPolygon(screen, []float64{tipX - 16, tipY - 2, tipX + 16, tipY - 2, tipX, tipY + 18}, border)
	fillRoundedRect(screen, x-4, y-4, w+8, h+8, 28, border)
	fillRoundedRect(screen, x, y, w, h, 24, overlayPanelColor.RGBA(242))
	fillPolygon(screen, []float64{tipX - 11, tipY - 4, tipX + 11, tipY - 4, tipX, tipY + 11}, overlayPanelColor.RGBA(255))

	face := s.font(config.BodyFontSize+2, true)
	if overlay.Loading {
		const label = "Thinking..."
		labelWidth := 0.0
		if face != nil {
			labelWidth = text.Advance(label, face)
		}
		cx, cy := x+w/2, y+h/2
		drawSparkle(screen, cx-labelWidth/2-22, cy, 14, overlay.Spinner, overlaySpinColor.RGBA(255))
		drawCenteredText(screen, label, face, cx+8, cy, overlayBodyColor.RGBA(255))
		return
	}

	lines := utils.WrapText(fmt.Sprintf("\"%s\"", overlay.Body), face, w-56)
	lineHeight := (config.BodyFontSize + 2) * 1.4
	top := y + h/2 - float64(len(lines)-1)*lineHeight/2
	for i, line := range lines {
		drawCenteredText(screen, line, face, x+w/2, top+float64(i)*lineHeight, overlayBodyColor.RGBA(255))
	}
}

// drawFooter 底栏：Letter: X   Word: Y
func (s *OverlayRenderSystem) drawFooter(screen *ebiten.Image, overlay *components.OverlayComponent) {
	x, y, w, h := config.FooterRect()
	fillRoundedRect(screen, x, y, w, h, 20, overlayPanelColor.RGBA(204))

	labelFace := s.font(config.BodyFontSize-2, true)
	valueFace := s.font(config.BodyFontSize+4, true)
	if labelFace == nil || valueFace == nil {
		return
	}

	segments := []struct {
		str   string
		face  *text.GoTextFace
		color config.RGB
	}{
		{"Letter: ", labelFace, overlayBodyColor},
		{overlay.Letter, valueFace, overlayTitleColor},
		{"    Word: ", labelFace, overlayBodyColor},
		{overlay.Word, valueFace, overlayHeadColor},
	}

	total := 0.0
	for _, seg := range segments {
		total += text.Advance(seg.str, seg.face)
	}
	cursor := x + (w-total)/2
	for _, seg := range segments {
		op := &text.DrawOptions{}
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(cursor, y+h/2)
		op.ColorScale.ScaleWithColor(seg.color.RGBA(255))
		text.Draw(screen, seg.str, seg.face, op)
		cursor += text.Advance(seg.str, seg.face)
	}
}

// drawCenteredText 以 (cx, cy) 为中心绘制单行文字
func drawCenteredText(screen *ebiten.Image, str string, face *text.GoTextFace, cx, cy float64, clr color.RGBA) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawSparkle 四角星形加载图标
func drawSparkle(screen *ebiten.Image, cx, cy, r, angle float64, clr color.RGBA) {
	points := make([]float64, 0, 16)
	for i := 0; i < 8; i++ {
		radius := r
		if i%2 == 1 {
			radius = r * 0.35
		}
		a := angle + float64(i)*math.Pi/4
		points = append(points, cx+math.Cos(a)*radius, cy+math.Sin(a)*radius)
	}
	// 星形不是凸多边形，以中心为扇心逐个三角形填充
	for i := 0; i < 8; i++ {
		j := (i + 1) % 8
		fillPolygon(screen, []float64{cx, cy, points[i*2], points[i*2+1], points[j*2], points[j*2+1]}, clr)
	}
}
