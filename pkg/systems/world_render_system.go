package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// FontProvider 按像素字号提供字体
// game.ResourceManager 实现了该接口
type FontProvider interface {
	Font(size float64, bold bool) *text.GoTextFace
}

// worldItemKind 绘制项类型
type worldItemKind int

const (
	itemStar worldItemKind = iota
	itemCloud
	itemTie
	itemTrack
	itemDisc
	itemLabel
	itemBirdPart
)

// worldItem 投影到屏幕后的一个绘制项，按深度从远到近绘制
type worldItem struct {
	kind  worldItemKind
	depth float64
	// bias 同深度时的绘制先后，越大越晚绘制
	bias int

	points []float64 // 多边形或线段端点（屏幕坐标）
	x, y   float64   // 中心（屏幕坐标）
	size   float64   // 像素尺寸
	width  float64   // 线宽
	angle  float64

	fill    color.RGBA
	outline color.RGBA
	text    string

	label components.LabelKind
	part  components.BirdPartShape
}

// 调色常量
var (
	colorWhite      = config.RGB{R: 255, G: 255, B: 255}
	colorBlack      = config.RGB{}
	colorBubbleEdge = config.RGB{R: 0x60, G: 0xA5, B: 0xFA}
	colorBubbleText = config.RGB{R: 0x1F, G: 0x29, B: 0x37}
)

const (
	// 轨道枕木相对管道中心的下沉量和半宽
	tieDrop      = 0.3
	tieHalfWidth = 0.9
	tieThickness = 0.2

	discSegments = 24

	maxTrackWidth = 160.0
	maxLabelSize  = 400.0
	minLabelSize  = 4.0
)

// WorldRenderSystem 三维场景的软件渲染
//
// 把轨道、站台、站点标签、小鸟和装饰投影到屏幕，
// 按深度从远到近排序（画家算法）后逐项绘制，颜色按线性雾向天空色混合。
type WorldRenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *utils.Camera
	fonts         FontProvider

	items []worldItem
}

// NewWorldRenderSystem 创建场景渲染系统，fonts 为 nil 时不绘制文字
func NewWorldRenderSystem(em *ecs.EntityManager, camera *utils.Camera, fonts FontProvider) *WorldRenderSystem {
	return &WorldRenderSystem{
		entityManager: em,
		camera:        camera,
		fonts:         fonts,
	}
}

// Camera 渲染使用的镜头
func (s *WorldRenderSystem) Camera() *utils.Camera {
	return s.camera
}

// environment 当前环境色；没有环境实体时使用白天默认值
func (s *WorldRenderSystem) environment() components.EnvironmentComponent {
	if ids := ecs.GetEntitiesWith1[*components.EnvironmentComponent](s.entityManager); len(ids) > 0 {
		env, _ := ecs.GetComponent[*components.EnvironmentComponent](s.entityManager, ids[0])
		return *env
	}
	return components.EnvironmentComponent{
		Sky:     config.RGB{R: 0x87, G: 0xCE, B: 0xEB},
		Ground:  config.RGB{R: 0xE0, G: 0xF7, B: 0xFA},
		FogNear: 5,
		FogFar:  60,
	}
}

// syncCamera 从骑乘镜头组件读取位姿
func (s *WorldRenderSystem) syncCamera() {
	if ids := ecs.GetEntitiesWith1[*components.RideCameraComponent](s.entityManager); len(ids) > 0 {
		cam, _ := ecs.GetComponent[*components.RideCameraComponent](s.entityManager, ids[0])
		s.camera.LookAt(cam.Eye, cam.LookAt, cam.Up)
	}
}

// Draw 绘制天空、地面和所有三维物体
func (s *WorldRenderSystem) Draw(screen *ebiten.Image) {
	env := s.environment()
	s.syncCamera()

	screen.Fill(env.Sky.RGBA(255))
	s.drawGround(screen, env)

	for _, item := range s.collectItems(env) {
		s.drawItem(screen, item)
	}
}

// drawGround 视平线以下填充地面色，越靠近视平线越接近天空色（雾）
func (s *WorldRenderSystem) drawGround(screen *ebiten.Image, env components.EnvironmentComponent) {
	x0, y0, x1, y1, ok := s.camera.HorizonLine()
	if !ok {
		return
	}
	w, h := s.camera.ScreenWidth, s.camera.ScreenHeight
	if math.Abs(x1-x0) < 1e-9 {
		return
	}
	slope := (y1 - y0) / (x1 - x0)
	leftX, rightX := -w*0.5, w*1.5
	leftY := y0 + (leftX-x0)*slope
	rightY := y0 + (rightX-x0)*slope
	bottom := math.Max(h, math.Max(leftY, rightY)) + 1

	near := env.Ground.Lerp(env.Sky, utils.FogFactor(env.FogNear*2, env.FogNear, env.FogFar))
	points := []float64{leftX, leftY, rightX, rightY, rightX, bottom, leftX, bottom}
	colors := []color.RGBA{env.Sky.RGBA(255), env.Sky.RGBA(255), near.RGBA(255), near.RGBA(255)}
	fillPolygonGradient(screen, points, colors)
}

// view 世界坐标转换到镜头空间（x 右，y 上，z 为前方深度）
func (s *WorldRenderSystem) view(world utils.Vec3) utils.Vec3 {
	d := world.Sub(s.camera.Position)
	b := s.camera.Basis
	return utils.Vec3{X: d.Dot(b.Right), Y: d.Dot(b.Up), Z: d.Dot(b.Forward)}
}

// projectView 镜头空间点投影到屏幕，调用方保证 z > 0
func (s *WorldRenderSystem) projectView(v utils.Vec3) (float64, float64) {
	f := s.camera.Focal() / v.Z
	return s.camera.ScreenWidth/2 + v.X*f, s.camera.ScreenHeight/2 - v.Y*f
}

// fogged 按深度向天空色混合
func fogged(base config.RGB, depth float64, env components.EnvironmentComponent) config.RGB {
	return base.Lerp(env.Sky, utils.FogFactor(depth, env.FogNear, env.FogFar))
}

// collectItems 投影所有可见物体并按深度从远到近排序
func (s *WorldRenderSystem) collectItems(env components.EnvironmentComponent) []worldItem {
	s.items = s.items[:0]
	s.collectTrack(env)
	s.collectDiscs(env)
	s.collectLabels(env)
	s.collectBird(env)
	s.collectDecorations(env)

	sort.SliceStable(s.items, func(i, j int) bool {
		if s.items[i].depth != s.items[j].depth {
			return s.items[i].depth > s.items[j].depth
		}
		return s.items[i].bias < s.items[j].bias
	})
	return s.items
}

// clipSegment 将镜头空间线段裁剪到近平面之前
func clipSegment(a, b utils.Vec3, near float64) (utils.Vec3, utils.Vec3, bool) {
	if a.Z < near && b.Z < near {
		return a, b, false
	}
	if a.Z < near {
		a = a.Lerp(b, (near-a.Z)/(b.Z-a.Z))
	} else if b.Z < near {
		b = b.Lerp(a, (near-b.Z)/(a.Z-b.Z))
	}
	return a, b, true
}

// clipPolygon 将镜头空间凸多边形裁剪到近平面之前（Sutherland-Hodgman）
func clipPolygon(poly []utils.Vec3, near float64) []utils.Vec3 {
	out := make([]utils.Vec3, 0, len(poly)+2)
	for i := range poly {
		cur := poly[i]
		next := poly[(i+1)%len(poly)]
		curIn, nextIn := cur.Z >= near, next.Z >= near
		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			t := (near - cur.Z) / (next.Z - cur.Z)
			out = append(out, cur.Lerp(next, t))
		}
	}
	return out
}

func (s *WorldRenderSystem) collectTrack(env components.EnvironmentComponent) {
	near := math.Max(s.camera.Near, 0.05)

	for _, id := range ecs.GetEntitiesWith1[*components.TrackComponent](s.entityManager) {
		track, _ := ecs.GetComponent[*components.TrackComponent](s.entityManager, id)

		for i := 0; i+1 < len(track.Samples); i++ {
			a, b, ok := clipSegment(s.view(track.Samples[i]), s.view(track.Samples[i+1]), near)
			if !ok {
				continue
			}
			depth := (a.Z + b.Z) / 2
			if depth > s.camera.Far {
				continue
			}
			ax, ay := s.projectView(a)
			bx, by := s.projectView(b)
			width := math.Min(s.camera.ProjectedSize(track.TubeRadius*2, depth), maxTrackWidth)
			s.items = append(s.items, worldItem{
				kind:    itemTrack,
				depth:   depth,
				bias:    1,
				points:  []float64{ax, ay, bx, by},
				width:   math.Max(width, 1),
				fill:    fogged(track.Color, depth, env).RGBA(255),
				outline: fogged(track.Color.Lerp(colorBlack, 0.35), depth, env).RGBA(255),
			})

			if track.TieSpread > 0 && i%track.TieSpread == 0 && i < len(track.Sides) {
				s.collectTie(track, i, near, env)
			}
		}
	}
}

func (s *WorldRenderSystem) collectTie(track *components.TrackComponent, i int, near float64, env components.EnvironmentComponent) {
	center := track.Samples[i].Add(utils.V3(0, -tieDrop, 0))
	side := track.Sides[i].Scale(tieHalfWidth)
	a, b, ok := clipSegment(s.view(center.Add(side)), s.view(center.Sub(side)), near)
	if !ok {
		return
	}
	depth := (a.Z + b.Z) / 2
	ax, ay := s.projectView(a)
	bx, by := s.projectView(b)
	s.items = append(s.items, worldItem{
		kind:   itemTie,
		depth:  depth,
		points: []float64{ax, ay, bx, by},
		width:  math.Max(math.Min(s.camera.ProjectedSize(tieThickness, depth), maxTrackWidth), 1),
		fill:   fogged(track.TieColor, depth, env).RGBA(255),
	})
}

func (s *WorldRenderSystem) collectDiscs(env components.EnvironmentComponent) {
	near := math.Max(s.camera.Near, 0.05)

	for _, id := range ecs.GetEntitiesWith2[*components.DiscComponent, *components.TransformComponent](s.entityManager) {
		disc, _ := ecs.GetComponent[*components.DiscComponent](s.entityManager, id)
		node, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !node.WorldVisible {
			continue
		}

		ring := make([]utils.Vec3, discSegments)
		for k := range ring {
			angle := 2 * math.Pi * float64(k) / discSegments
			offset := utils.V3(math.Cos(angle)*disc.Radius, 0, math.Sin(angle)*disc.Radius)
			ring[k] = s.view(node.WorldPosition.Add(offset))
		}
		clipped := clipPolygon(ring, near)
		if len(clipped) < 3 {
			continue
		}

		depth := math.Max(s.view(node.WorldPosition).Z, near)
		if depth > s.camera.Far {
			continue
		}
		points := make([]float64, 0, len(clipped)*2)
		for _, v := range clipped {
			x, y := s.projectView(v)
			points = append(points, x, y)
		}
		s.items = append(s.items, worldItem{
			kind:   itemDisc,
			depth:  depth,
			points: points,
			fill:   fogged(disc.Color, depth, env).RGBA(uint8(255 * utils.Clamp01(disc.Opacity))),
		})
	}
}

func (s *WorldRenderSystem) collectLabels(env components.EnvironmentComponent) {
	for _, id := range ecs.GetEntitiesWith2[*components.LabelComponent, *components.TransformComponent](s.entityManager) {
		label, _ := ecs.GetComponent[*components.LabelComponent](s.entityManager, id)
		node, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !node.WorldVisible {
			continue
		}

		sx, sy, depth, ok := s.camera.Project(node.WorldPosition)
		if !ok {
			continue
		}
		size := s.camera.ProjectedSize(label.Size*node.WorldScale, depth)
		if size < minLabelSize {
			continue
		}
		s.items = append(s.items, worldItem{
			kind:    itemLabel,
			depth:   depth,
			bias:    2,
			x:       sx,
			y:       sy,
			size:    math.Min(size, maxLabelSize),
			fill:    fogged(label.Color, depth, env).RGBA(255),
			outline: fogged(label.Outline, depth, env).RGBA(255),
			text:    label.Text,
			label:   label.Kind,
		})
	}
}

func (s *WorldRenderSystem) collectBird(env components.EnvironmentComponent) {
	wingAngle := 0.0
	if ids := ecs.GetEntitiesWith1[*components.BirdComponent](s.entityManager); len(ids) > 0 {
		bird, _ := ecs.GetComponent[*components.BirdComponent](s.entityManager, ids[0])
		wingAngle = bird.WingAngle
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BirdPartComponent, *components.TransformComponent](s.entityManager) {
		part, _ := ecs.GetComponent[*components.BirdPartComponent](s.entityManager, id)
		node, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !node.WorldVisible {
			continue
		}
		sx, sy, depth, ok := s.camera.Project(node.WorldPosition)
		if !ok {
			continue
		}
		bias := 3
		if part.Shape == components.BirdPartWing {
			// 翅膀与身体同深度，先于身体绘制
			bias = 0
		}
		s.items = append(s.items, worldItem{
			kind:  itemBirdPart,
			depth: depth,
			bias:  bias,
			x:     sx,
			y:     sy,
			size:  s.camera.ProjectedSize(part.Radius*node.WorldScale, depth),
			angle: part.WingSide * wingAngle,
			fill:  fogged(part.Color, depth, env).RGBA(255),
			part:  part.Shape,
		})
	}
}

func (s *WorldRenderSystem) collectDecorations(env components.EnvironmentComponent) {
	// 天空越暗星星越亮
	sky := env.Sky
	luminance := (0.2126*float64(sky.R) + 0.7152*float64(sky.G) + 0.0722*float64(sky.B)) / 255
	starAlpha := uint8(40 + 215*(1-luminance))

	for _, id := range ecs.GetEntitiesWith2[*components.DecorationComponent, *components.TransformComponent](s.entityManager) {
		deco, _ := ecs.GetComponent[*components.DecorationComponent](s.entityManager, id)
		node, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !node.WorldVisible {
			continue
		}
		sx, sy, depth, ok := s.camera.Project(node.WorldPosition)
		if !ok {
			continue
		}
		size := s.camera.ProjectedSize(deco.Size*node.WorldScale, depth)

		switch deco.Kind {
		case components.DecorationStar:
			s.items = append(s.items, worldItem{
				kind:  itemStar,
				depth: depth,
				x:     sx,
				y:     sy,
				size:  math.Max(size, 1),
				fill:  colorWhite.RGBA(starAlpha),
			})
		case components.DecorationCloud:
			if size < 2 {
				continue
			}
			s.items = append(s.items, worldItem{
				kind:  itemCloud,
				depth: depth,
				x:     sx,
				y:     sy,
				size:  size,
				fill:  fogged(colorWhite, depth, env).RGBA(140),
			})
		}
	}
}

// drawItem 绘制单个投影项
func (s *WorldRenderSystem) drawItem(screen *ebiten.Image, item worldItem) {
	switch item.kind {
	case itemStar:
		fillCircle(screen, item.x, item.y, item.size, item.fill)
	case itemCloud:
		drawCloud(screen, item.x, item.y, item.size, item.fill)
	case itemTie:
		strokeLine(screen, item.points[0], item.points[1], item.points[2], item.points[3], item.width, item.fill)
	case itemTrack:
		p := item.points
		strokeLine(screen, p[0], p[1], p[2], p[3], item.width*1.25, item.outline)
		strokeLine(screen, p[0], p[1], p[2], p[3], item.width, item.fill)
	case itemDisc:
		fillPolygon(screen, item.points, item.fill)
	case itemLabel:
		s.drawLabel(screen, item)
	case itemBirdPart:
		drawBirdPart(screen, item)
	}
}

// drawCloud 几个重叠的椭圆组成一朵云
func drawCloud(screen *ebiten.Image, x, y, size float64, clr color.RGBA) {
	puffs := [][3]float64{
		{-0.55, 0.1, 0.45},
		{0, -0.15, 0.6},
		{0.55, 0.05, 0.5},
		{0.1, 0.2, 0.5},
	}
	for _, p := range puffs {
		fillEllipse(screen, x+p[0]*size, y+p[1]*size, p[2]*size, p[2]*size*0.75, 0, clr)
	}
}

// drawBirdPart 按部件形状绘制小鸟
func drawBirdPart(screen *ebiten.Image, item worldItem) {
	r := item.size
	switch item.part {
	case components.BirdPartBody, components.BirdPartEye, components.BirdPartPupil:
		fillCircle(screen, item.x, item.y, r, item.fill)
	case components.BirdPartBelly:
		fillEllipse(screen, item.x, item.y, r, r*0.8, 0, item.fill)
	case components.BirdPartWing:
		fillEllipse(screen, item.x, item.y, r, r*0.35, item.angle, item.fill)
	case components.BirdPartBeak:
		fillPolygon(screen, []float64{
			item.x - r, item.y - r*0.4,
			item.x + r, item.y - r*0.4,
			item.x, item.y + r,
		}, item.fill)
	case components.BirdPartTail:
		fillPolygon(screen, []float64{
			item.x - r*0.6, item.y,
			item.x + r*0.6, item.y,
			item.x, item.y - r*1.6,
		}, item.fill)
	}
}

// drawLabel 绘制站点文字、图标徽章和对话气泡
func (s *WorldRenderSystem) drawLabel(screen *ebiten.Image, item worldItem) {
	switch item.label {
	case components.LabelGlyph:
		r := item.size / 2
		fillCircle(screen, item.x, item.y, r, item.outline)
		fillCircle(screen, item.x, item.y, r*0.88, item.fill)
		s.drawText(screen, item.text, item.x, item.y, item.size*0.45, colorWhite.RGBA(item.fill.A), color.RGBA{}, 0)
	case components.LabelBubble:
		w, h := item.size*3.2, item.size*1.3
		x, y := item.x-w/2, item.y-h/2
		border := math.Max(1.5, item.size*0.06)
		fillRoundedRect(screen, x-border, y-border, w+border*2, h+border*2, h/2, colorBubbleEdge.RGBA(255))
		fillRoundedRect(screen, x, y, w, h, h/2, colorWhite.RGBA(255))
		s.drawText(screen, item.text, item.x, item.y, item.size*0.6, colorBubbleText.RGBA(255), color.RGBA{}, 0)
	default:
		outline := math.Max(1, item.size*0.04)
		s.drawText(screen, item.text, item.x, item.y, item.size, item.fill, item.outline, outline)
	}
}

// labelFontSize 像素字号取偶数，限制字体缓存数量
func labelFontSize(size float64) float64 {
	q := math.Round(size/2) * 2
	if q < 6 {
		q = 6
	}
	return q
}

// drawText 居中绘制文字，outlineWidth > 0 时先绘制描边
func (s *WorldRenderSystem) drawText(screen *ebiten.Image, str string, x, y, size float64, fill, outline color.RGBA, outlineWidth float64) {
	if s.fonts == nil || str == "" {
		return
	}
	face := s.fonts.Font(labelFontSize(size), true)
	if face == nil {
		return
	}

	draw := func(dx, dy float64, clr color.RGBA) {
		op := &text.DrawOptions{}
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(x+dx, y+dy)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, str, face, op)
	}

	if outlineWidth > 0 {
		for k := 0; k < 8; k++ {
			angle := float64(k) * math.Pi / 4
			draw(math.Cos(angle)*outlineWidth, math.Sin(angle)*outlineWidth, outline)
		}
	}
	draw(0, 0, fill)
}
