package components

// OverlayPanel 中央面板种类
type OverlayPanel int

const (
	// PanelNone 骑行中不显示中央面板
	PanelNone OverlayPanel = iota
	// PanelIntro "Ready to Learn?" 开场面板
	PanelIntro
	// PanelFact 小鸟讲解的趣味知识气泡
	PanelFact
	// PanelComplete "Great Job!" 完成面板
	PanelComplete
)

// OverlayComponent 界面覆盖层的显示内容
// 场景每帧按游戏状态写入，OverlayRenderSystem 只读
type OverlayComponent struct {
	Title string

	Panel   OverlayPanel
	Heading string
	Body    string
	// Loading 为 true 时气泡显示 "Thinking..." 和旋转图标
	Loading bool

	// 底栏显示的当前字母和单词
	Letter string
	Word   string

	// Spinner 加载图标的旋转角度（弧度）
	Spinner float64
}
