package components

// UIState 按钮的交互状态，由 ButtonSystem 每帧根据指针位置写入
type UIState int

const (
	// UINormal 默认状态（包括隐藏的按钮）
	UINormal UIState = iota
	// UIHovered 指针位于按钮上方
	UIHovered
	// UIClicked 按下未释放
	UIClicked
	// UIDisabled 禁用，不响应点击
	UIDisabled
)

// String 返回状态名，用于调试日志
func (s UIState) String() string {
	switch s {
	case UINormal:
		return "normal"
	case UIHovered:
		return "hovered"
	case UIClicked:
		return "pressed"
	case UIDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}
