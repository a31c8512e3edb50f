package utils

import (
	"math"
	"sort"
)

// ClosedCurve 闭合的向心 Catmull-Rom 样条
//
// 参数 t ∈ [0,1) 为样条参数，u ∈ [0,1) 为弧长比例。
// 轨道、站点和镜头都使用 PointAt/TangentAt（弧长参数），
// 保证匀速前进时镜头速度不受控制点疏密影响。
type ClosedCurve struct {
	points     []Vec3
	arcLengths []float64 // 累计弧长查找表，长度为 divisions+1
}

// 向心参数化指数（0.5 的平方根，作用于距离平方）
const centripetalPow = 0.25

// tangentDelta 求切线时的参数差分步长
const tangentDelta = 0.0001

// NewClosedCurve 创建闭合曲线
// divisions 为弧长查找表的采样段数（至少 10）
func NewClosedCurve(points []Vec3, divisions int) *ClosedCurve {
	if divisions < 10 {
		divisions = 10
	}
	c := &ClosedCurve{points: append([]Vec3(nil), points...)}
	c.buildArcLengths(divisions)
	return c
}

// TrackControlPoints 生成环形轨道控制点
// 控制点均匀分布在半径为 radius 的圆上，高度为两个正弦/余弦项叠加：
//
//	y = hillAmp*sin(θ*hillFreq) + swellAmp*cos(θ*swellFreq)
func TrackControlPoints(count int, radius, hillAmp, hillFreq, swellAmp, swellFreq float64) []Vec3 {
	points := make([]Vec3, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * math.Pi * 2
		y := math.Sin(angle*hillFreq)*hillAmp + math.Cos(angle*swellFreq)*swellAmp
		points = append(points, Vec3{
			X: math.Cos(angle) * radius,
			Y: y,
			Z: math.Sin(angle) * radius,
		})
	}
	return points
}

// ControlPoints 返回控制点副本
func (c *ClosedCurve) ControlPoints() []Vec3 {
	return append([]Vec3(nil), c.points...)
}

// Length 曲线总长度（近似）
func (c *ClosedCurve) Length() float64 {
	return c.arcLengths[len(c.arcLengths)-1]
}

// Point 按样条参数 t 取点
func (c *ClosedCurve) Point(t float64) Vec3 {
	l := len(c.points)
	if l == 0 {
		return Vec3{}
	}
	if l == 1 {
		return c.points[0]
	}

	p := float64(l) * t
	intPoint := int(math.Floor(p))
	weight := p - float64(intPoint)
	intPoint = ((intPoint % l) + l) % l

	p0 := c.points[(intPoint-1+l)%l]
	p1 := c.points[intPoint]
	p2 := c.points[(intPoint+1)%l]
	p3 := c.points[(intPoint+2)%l]

	dt0 := math.Pow(p0.Sub(p1).LengthSq(), centripetalPow)
	dt1 := math.Pow(p1.Sub(p2).LengthSq(), centripetalPow)
	dt2 := math.Pow(p2.Sub(p3).LengthSq(), centripetalPow)

	// 重合点保护
	if dt1 < 1e-4 {
		dt1 = 1.0
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return Vec3{
		X: catmullRom(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, weight),
		Y: catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, weight),
		Z: catmullRom(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, weight),
	}
}

// catmullRom 非均匀 Catmull-Rom 在 [x1, x2] 段上的三次插值
func catmullRom(x0, x1, x2, x3, dt0, dt1, dt2, t float64) float64 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2

	return c0 + c1*t + c2*t*t + c3*t*t*t
}

// Tangent 按样条参数 t 求单位切线（中心差分，闭合曲线两端折返）
func (c *ClosedCurve) Tangent(t float64) Vec3 {
	p1 := c.Point(WrapUnit(t - tangentDelta))
	p2 := c.Point(WrapUnit(t + tangentDelta))
	return p2.Sub(p1).Normalize()
}

// PointAt 按弧长比例 u 取点，u 会被折返到 [0,1)
func (c *ClosedCurve) PointAt(u float64) Vec3 {
	return c.Point(c.UToT(WrapUnit(u)))
}

// TangentAt 按弧长比例 u 求单位切线
func (c *ClosedCurve) TangentAt(u float64) Vec3 {
	return c.Tangent(c.UToT(WrapUnit(u)))
}

// UToT 将弧长比例映射为样条参数
func (c *ClosedCurve) UToT(u float64) float64 {
	n := len(c.arcLengths)
	total := c.arcLengths[n-1]
	if total == 0 {
		return u
	}
	target := u * total

	// 找到最后一个不超过 target 的采样点
	i := sort.Search(n, func(k int) bool { return c.arcLengths[k] > target }) - 1
	if i < 0 {
		i = 0
	}
	if i >= n-1 {
		return 1
	}

	before := c.arcLengths[i]
	if before == target {
		return float64(i) / float64(n-1)
	}
	segment := c.arcLengths[i+1] - before
	fraction := 0.0
	if segment > 0 {
		fraction = (target - before) / segment
	}
	return (float64(i) + fraction) / float64(n-1)
}

// buildArcLengths 构建累计弧长查找表
func (c *ClosedCurve) buildArcLengths(divisions int) {
	c.arcLengths = make([]float64, divisions+1)
	last := c.Point(0)
	sum := 0.0
	for i := 1; i <= divisions; i++ {
		current := c.Point(float64(i) / float64(divisions))
		sum += current.DistanceTo(last)
		c.arcLengths[i] = sum
		last = current
	}
}

// SideVector 计算曲线上 u 处的侧向单位向量（切线 × 世界向上）
// 正方向指向前进方向的右侧
func (c *ClosedCurve) SideVector(u float64) Vec3 {
	return c.TangentAt(u).Cross(WorldUp).Normalize()
}
