package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whitePixel 三角形填充使用的白色纹理
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	// 取中心像素，避免采样时混入边缘
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// circleSegments 圆形近似使用的边数，按屏幕半径自适应
func circleSegments(radius float64) int {
	n := int(radius / 2)
	if n < 12 {
		n = 12
	}
	if n > 64 {
		n = 64
	}
	return n
}

// colorScale 将 color.RGBA 转换为顶点颜色分量（非预乘）
func colorScale(c color.RGBA) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// fillPolygon 填充凸多边形，points 为屏幕坐标 [x0, y0, x1, y1, ...]
func fillPolygon(dst *ebiten.Image, points []float64, clr color.RGBA) {
	n := len(points) / 2
	if n < 3 {
		return
	}
	r, g, b, a := colorScale(clr)
	vertices := make([]ebiten.Vertex, n)
	for i := 0; i < n; i++ {
		vertices[i] = ebiten.Vertex{
			DstX:   float32(points[i*2]),
			DstY:   float32(points[i*2+1]),
			SrcX:   1.5,
			SrcY:   1.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	indices := make([]uint16, 0, (n-2)*3)
	for i := 1; i < n-1; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	dst.DrawTriangles(vertices, indices, whitePixel, op)
}

// fillEllipse 填充椭圆，rotation 为弧度
func fillEllipse(dst *ebiten.Image, cx, cy, rx, ry, rotation float64, clr color.RGBA) {
	if rx <= 0.5 && ry <= 0.5 {
		return
	}
	segments := circleSegments(math.Max(rx, ry))
	points := make([]float64, 0, segments*2)
	sin, cos := math.Sincos(rotation)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		x := math.Cos(angle) * rx
		y := math.Sin(angle) * ry
		points = append(points, cx+x*cos-y*sin, cy+x*sin+y*cos)
	}
	fillPolygon(dst, points, clr)
}

// fillCircle 填充圆形
func fillCircle(dst *ebiten.Image, cx, cy, radius float64, clr color.RGBA) {
	fillEllipse(dst, cx, cy, radius, radius, 0, clr)
}

// fillRoundedRect 填充圆角矩形，radius 会被限制在高度的一半以内
func fillRoundedRect(dst *ebiten.Image, x, y, w, h, radius float64, clr color.RGBA) {
	radius = math.Min(radius, math.Min(w, h)/2)
	if radius <= 0 {
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, true)
		return
	}
	const cornerSteps = 8
	corners := [4][3]float64{
		{x + w - radius, y + radius, -math.Pi / 2},
		{x + w - radius, y + h - radius, 0},
		{x + radius, y + h - radius, math.Pi / 2},
		{x + radius, y + radius, math.Pi},
	}
	points := make([]float64, 0, 4*(cornerSteps+1)*2)
	for _, c := range corners {
		for i := 0; i <= cornerSteps; i++ {
			angle := c[2] + float64(i)/cornerSteps*math.Pi/2
			points = append(points, c[0]+math.Cos(angle)*radius, c[1]+math.Sin(angle)*radius)
		}
	}
	fillPolygon(dst, points, clr)
}

// strokeLine 画线段
func strokeLine(dst *ebiten.Image, x0, y0, x1, y1, width float64, clr color.RGBA) {
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

// fillQuad 填充四边形（投影后的管道段、枕木）
func fillQuad(dst *ebiten.Image, ax, ay, bx, by, cx, cy, dx, dy float64, clr color.RGBA) {
	fillPolygon(dst, []float64{ax, ay, bx, by, cx, cy, dx, dy}, clr)
}

// fillPolygonGradient 按顶点颜色填充凸多边形（颜色在三角形内插值）
func fillPolygonGradient(dst *ebiten.Image, points []float64, colors []color.RGBA) {
	n := len(points) / 2
	if n < 3 || len(colors) < n {
		return
	}
	vertices := make([]ebiten.Vertex, n)
	for i := 0; i < n; i++ {
		r, g, b, a := colorScale(colors[i])
		vertices[i] = ebiten.Vertex{
			DstX:   float32(points[i*2]),
			DstY:   float32(points[i*2+1]),
			SrcX:   1.5,
			SrcY:   1.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	indices := make([]uint16, 0, (n-2)*3)
	for i := 1; i < n-1; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}
	dst.DrawTriangles(vertices, indices, whitePixel, &ebiten.DrawTrianglesOptions{})
}
