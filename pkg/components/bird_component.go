package components

import (
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
)

// BirdComponent 小鸟助手的动画状态
// 小鸟节点挂在镜头节点下，始终停留在镜头右下方
type BirdComponent struct {
	Time float64

	BobAmplitude  float64
	BobSpeed      float64
	FlapAmplitude float64
	FlapSpeed     float64

	// BaseY 身体节点初始局部高度
	BaseY float64
	// WingAngle 当前翅膀扇动角度（弧度）
	WingAngle float64
	// Talking 为 true 时显示 "Tweet!" 气泡
	Talking bool

	// Body 身体节点（上下浮动），Bubble 气泡节点
	Body   ecs.EntityID
	Bubble ecs.EntityID
}

// BirdPartShape 小鸟部件形状
type BirdPartShape int

const (
	BirdPartBody BirdPartShape = iota
	BirdPartBelly
	BirdPartEye
	BirdPartPupil
	BirdPartBeak
	BirdPartWing
	BirdPartTail
)

// BirdPartComponent 小鸟的一个部件
type BirdPartComponent struct {
	Shape  BirdPartShape
	Radius float64 // 世界单位
	Color  config.RGB
	// WingSide 翅膀方向：-1 左，+1 右，其他部件为 0
	WingSide float64
}
