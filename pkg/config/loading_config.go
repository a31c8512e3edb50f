package config

// Loading Scene 配置常量

const (
	// LoadingTitleStartY 标题下落动画起点 Y 坐标（屏幕外）
	LoadingTitleStartY float64 = -80

	// LoadingTitleTargetY 标题最终 Y 坐标
	LoadingTitleTargetY float64 = 240

	// LoadingBarWidth 进度条宽度
	LoadingBarWidth float64 = 360

	// LoadingBarHeight 进度条高度
	LoadingBarHeight float64 = 28

	// LoadingBarY 进度条 Y 坐标
	LoadingBarY float64 = 420

	// LoadingTextY 文字提示 Y 坐标（进度条下方）
	LoadingTextY float64 = 480

	// LoadingMinDuration 加载画面最短显示时长（秒），后台准备完成后也会等满
	LoadingMinDuration float64 = 1.0

	// LoadingTitleAnimDuration 标题下落动画时长（秒）
	LoadingTitleAnimDuration float64 = 0.8

	// LoadingTitleFontSize 标题字号
	LoadingTitleFontSize float64 = 64

	// LoadingTextFontSize 加载文字字体大小
	LoadingTextFontSize float64 = 20
)

// LoadingBarX 进度条 X 坐标（水平居中）
func LoadingBarX() float64 {
	return (GameWindowWidth - LoadingBarWidth) / 2
}
