// Package utils 提供游戏开发中常用的工具函数
//
// vec3.go 提供三维向量运算。本项目使用右手坐标系，Y 轴向上，
// 与轨道、站点和镜头的世界坐标一致。
package utils

import "math"

// Vec3 三维向量
type Vec3 struct {
	X, Y, Z float64
}

// WorldUp 世界坐标的向上方向
var WorldUp = Vec3{0, 1, 0}

// V3 构造向量
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross 叉积
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSq 长度平方
func (v Vec3) LengthSq() float64 {
	return v.Dot(v)
}

// Length 长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// DistanceTo 两点距离
func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize 单位化，零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp 线性插值
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// ApproxEqual 判断两个向量在容差内相等
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// Basis 正交基：Right / Up / Forward 三个单位向量
// Forward 指向观察方向（镜头坐标系中 -Z 对应 Forward）
type Basis struct {
	Right   Vec3
	Up      Vec3
	Forward Vec3
}

// IdentityBasis 单位基（Forward 指向 -Z）
func IdentityBasis() Basis {
	return Basis{Right: Vec3{1, 0, 0}, Up: Vec3{0, 1, 0}, Forward: Vec3{0, 0, -1}}
}

// LookBasis 构造从 eye 看向 target 的正交基，up 为参考向上方向
// 当观察方向与 up 平行时退回到世界 Z 轴作参考
func LookBasis(eye, target, up Vec3) Basis {
	forward := target.Sub(eye).Normalize()
	if forward.LengthSq() == 0 {
		return IdentityBasis()
	}
	right := forward.Cross(up)
	if right.LengthSq() < 1e-12 {
		right = forward.Cross(Vec3{0, 0, 1})
	}
	right = right.Normalize()
	trueUp := right.Cross(forward).Normalize()
	return Basis{Right: right, Up: trueUp, Forward: forward}
}

// ToWorld 将局部偏移（x=右, y=上, z=后）转换为世界偏移
// 局部 -Z 为前方，与常见的镜头约定一致
func (b Basis) ToWorld(local Vec3) Vec3 {
	return b.Right.Scale(local.X).Add(b.Up.Scale(local.Y)).Add(b.Forward.Scale(-local.Z))
}

// ToLocal 将世界偏移转换为局部坐标（ToWorld 的逆）
func (b Basis) ToLocal(world Vec3) Vec3 {
	return Vec3{world.Dot(b.Right), world.Dot(b.Up), -world.Dot(b.Forward)}
}

// Compose 用 b 旋转子基 child（child 在 b 的局部坐标中表示）
func (b Basis) Compose(child Basis) Basis {
	return Basis{
		Right:   b.ToWorld(child.Right),
		Up:      b.ToWorld(child.Up),
		Forward: b.ToWorld(child.Forward),
	}
}

// RotateAround 绕单位轴 axis 旋转向量 angle 弧度（Rodrigues 公式）
func RotateAround(v, axis Vec3, angle float64) Vec3 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return v.Scale(cos).
		Add(axis.Cross(v).Scale(sin)).
		Add(axis.Scale(axis.Dot(v) * (1 - cos)))
}
