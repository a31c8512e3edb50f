package utils

import "math"

// WrapUnit 将值折返到 [0, 1) 区间
func WrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v += 1
	}
	if v >= 1 {
		v = 0
	}
	return v
}

// WrapDistance 计算闭合环路上从 current 到 target 的有符号最短距离
// 结果位于 [-0.5, 0.5]，正值表示沿前进方向
//
// 例如 target=0.05, current=0.97 时结果约为 0.08（穿过 0 点的短弧），而不是 -0.92。
func WrapDistance(target, current float64) float64 {
	dist := target - current
	if dist < -0.5 {
		dist += 1
	}
	if dist > 0.5 {
		dist -= 1
	}
	return dist
}

// Sign 返回 -1、0 或 1
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
