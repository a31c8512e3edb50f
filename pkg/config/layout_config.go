package config

// 布局配置常量
// 本文件定义了窗口尺寸和界面元素（标题栏、底栏、中央面板、按钮）的布局参数
// 所有坐标均为逻辑屏幕坐标，Ebitengine 负责缩放到实际窗口

const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 1024
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 640

	// ScreenMargin 屏幕边距
	ScreenMargin = 24.0

	// HeaderHeight 顶部标题栏高度
	HeaderHeight = 64.0
	// HeaderWidth 顶部标题栏宽度
	HeaderWidth = 300.0

	// FooterHeight 底部信息栏高度
	FooterHeight = 56.0
	// FooterWidth 底部信息栏宽度
	FooterWidth = 420.0

	// PanelWidth 中央面板宽度
	PanelWidth = 460.0
	// PanelHeight 中央面板高度
	PanelHeight = 280.0

	// BubbleWidth 趣味知识气泡宽度
	BubbleWidth = 560.0
	// BubbleHeight 趣味知识气泡高度
	BubbleHeight = 160.0
	// ButtonGap 气泡下方按钮之间的间距
	ButtonGap = 16.0

	// ButtonHeight 按钮高度
	ButtonHeight = 64.0
	// WideButtonWidth 主按钮宽度（开始 / 再玩一次）
	WideButtonWidth = 300.0
	// NextButtonWidth 下一站按钮宽度
	NextButtonWidth = 180.0
	// RoundButtonSize 圆形按钮尺寸（重播 / 重新开始）
	RoundButtonSize = 64.0
	// HeaderButtonSize 标题栏重新开始按钮尺寸
	HeaderButtonSize = 44.0

	// TitleFontSize 标题字号
	TitleFontSize = 30.0
	// BodyFontSize 正文字号
	BodyFontSize = 22.0
	// ButtonFontSize 按钮字号
	ButtonFontSize = 26.0
)

// CenterPanelRect 返回中央面板的左上角坐标和尺寸
func CenterPanelRect() (x, y, w, h float64) {
	x = (GameWindowWidth - PanelWidth) / 2
	y = (GameWindowHeight-PanelHeight)/2 - ButtonHeight/2
	return x, y, PanelWidth, PanelHeight
}

// FooterRect 返回底部信息栏的左上角坐标和尺寸
func FooterRect() (x, y, w, h float64) {
	x = (GameWindowWidth - FooterWidth) / 2
	y = GameWindowHeight - ScreenMargin - FooterHeight
	return x, y, FooterWidth, FooterHeight
}

// HeaderRect 返回顶部标题栏的左上角坐标和尺寸
func HeaderRect() (x, y, w, h float64) {
	return ScreenMargin, ScreenMargin, HeaderWidth, HeaderHeight
}

// BubbleRect 返回趣味知识气泡的左上角坐标和尺寸
// 气泡和下方按钮行整体在屏幕中垂直居中
func BubbleRect() (x, y, w, h float64) {
	x = (GameWindowWidth - BubbleWidth) / 2
	y = (GameWindowHeight-(BubbleHeight+ButtonGap*2+ButtonHeight))/2 - ButtonGap
	return x, y, BubbleWidth, BubbleHeight
}
