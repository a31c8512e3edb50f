package game

// GameState 骑行流程的状态
type GameState int

const (
	// StateIntro 等待开始，镜头缓慢驶向 A 站
	StateIntro GameState = iota
	// StateRiding 驶向当前站点
	StateRiding
	// StateLearning 停在站点，展示趣味知识
	StateLearning
	// StateCompleted 全部字母学完
	StateCompleted
)

// String 状态名
func (s GameState) String() string {
	switch s {
	case StateIntro:
		return "Intro"
	case StateRiding:
		return "Riding"
	case StateLearning:
		return "Learning"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// CameraMoves 该状态下镜头是否沿轨道前进
func (s GameState) CameraMoves() bool {
	return s == StateRiding || s == StateIntro
}
