package utils

import "math"

// Camera 透视镜头
// 世界坐标经 Basis 变换到镜头空间后按 focal/z 缩放投影到屏幕，
// 屏幕原点在左上角，Y 向下。
type Camera struct {
	Position Vec3
	Basis    Basis

	FOV  float64 // 垂直视角（度）
	Near float64
	Far  float64

	ScreenWidth  float64
	ScreenHeight float64
}

// NewCamera 创建镜头，初始位于原点看向 -Z
func NewCamera(fov, near, far, screenWidth, screenHeight float64) *Camera {
	return &Camera{
		Basis:        IdentityBasis(),
		FOV:          fov,
		Near:         near,
		Far:          far,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// LookAt 将镜头放在 eye，看向 target
func (c *Camera) LookAt(eye, target, up Vec3) {
	c.Position = eye
	c.Basis = LookBasis(eye, target, up)
}

// Focal 焦距（像素），由垂直视角和屏幕高度决定
func (c *Camera) Focal() float64 {
	return (c.ScreenHeight / 2) / math.Tan(c.FOV*math.Pi/360)
}

// Depth 点在镜头前方的距离（沿 Forward），负值表示在镜头后方
func (c *Camera) Depth(world Vec3) float64 {
	return world.Sub(c.Position).Dot(c.Basis.Forward)
}

// Project 将世界坐标投影到屏幕
// 返回屏幕坐标、深度以及是否可见（深度在 [Near, Far] 内）
func (c *Camera) Project(world Vec3) (sx, sy, depth float64, ok bool) {
	d := world.Sub(c.Position)
	x := d.Dot(c.Basis.Right)
	y := d.Dot(c.Basis.Up)
	z := d.Dot(c.Basis.Forward)
	if z < c.Near || z > c.Far {
		return 0, 0, z, false
	}
	f := c.Focal() / z
	sx = c.ScreenWidth/2 + x*f
	sy = c.ScreenHeight/2 - y*f
	return sx, sy, z, true
}

// ProjectedSize 世界尺寸 size 在深度 depth 处对应的像素尺寸
func (c *Camera) ProjectedSize(size, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return size * c.Focal() / depth
}

// HorizonY 视平线在屏幕上的 Y 坐标
// 镜头朝向与水平面的夹角决定视平线位置；向上倾斜时视平线下移
func (c *Camera) HorizonY() float64 {
	f := c.Basis.Forward
	horizontal := math.Hypot(f.X, f.Z)
	if horizontal < 1e-9 {
		if f.Y > 0 {
			return c.ScreenHeight
		}
		return 0
	}
	pitch := math.Atan2(f.Y, horizontal)
	return c.ScreenHeight/2 + math.Tan(pitch)*c.Focal()
}

// FogFactor 线性雾：near 之前为 0，far 之后为 1
func FogFactor(depth, near, far float64) float64 {
	if depth <= near {
		return 0
	}
	if depth >= far {
		return 1
	}
	return (depth - near) / (far - near)
}

// HorizonLine 视平线在屏幕上经过的两点
// 取镜头前方左右两个水平方向的无穷远点投影；镜头竖直朝向时返回 false
func (c *Camera) HorizonLine() (x0, y0, x1, y1 float64, ok bool) {
	f := c.Basis.Forward
	fh := Vec3{f.X, 0, f.Z}
	if fh.LengthSq() < 1e-12 {
		return 0, 0, 0, 0, false
	}
	fh = fh.Normalize()
	rh := fh.Cross(WorldUp)

	project := func(h Vec3) (float64, float64) {
		z := h.Dot(c.Basis.Forward)
		if z < 1e-9 {
			z = 1e-9
		}
		focal := c.Focal()
		return c.ScreenWidth/2 + focal*h.Dot(c.Basis.Right)/z,
			c.ScreenHeight/2 - focal*h.Dot(c.Basis.Up)/z
	}
	x0, y0 = project(fh.Sub(rh.Scale(0.5)))
	x1, y1 = project(fh.Add(rh.Scale(0.5)))
	return x0, y0, x1, y1, true
}
