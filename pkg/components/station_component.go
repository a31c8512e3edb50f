package components

import (
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// StationComponent 字母站点
type StationComponent struct {
	Index int
	Entry config.AlphabetEntry

	// TrackPoint 站点在轨道上的位置
	TrackPoint utils.Vec3
	// Side 轨道在该点的侧向单位向量
	Side utils.Vec3
}

// LabelKind 站点标签种类
type LabelKind int

const (
	// LabelLetter 大号字母
	LabelLetter LabelKind = iota
	// LabelWord 单词
	LabelWord
	// LabelGlyph 单词图标徽章
	LabelGlyph
	// LabelBubble 小鸟的对话气泡
	LabelBubble
)

// LabelComponent 始终面向镜头的文字或徽章
// Size 为世界单位高度，绘制时按深度缩放
type LabelComponent struct {
	Kind    LabelKind
	Text    string
	Size    float64
	Color   config.RGB
	Outline config.RGB
}

// DiscComponent 水平圆盘（站台）
type DiscComponent struct {
	Radius  float64
	Color   config.RGB
	Opacity float64
}

// FloatComponent 上下漂浮动画
type FloatComponent struct {
	Amplitude float64
	Speed     float64
	Phase     float64
	// BaseY 节点的初始局部高度
	BaseY float64
}
