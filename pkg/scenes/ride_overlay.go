package scenes

import (
	"fmt"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/game"
)

// 面板文字
const (
	IntroHeading    = "Ready to Learn?"
	IntroBody       = "Hop on the roller coaster and meet new friends with the Alphabet Bird!"
	CompleteHeading = "Great Job!"
	CompleteBody    = "You finished the whole alphabet!"
	ThinkingText    = "Thinking..."
)

// OverlayView 一帧界面覆盖层应显示的内容
type OverlayView struct {
	Panel   components.OverlayPanel
	Heading string
	Body    string
	Loading bool

	ShowStart     bool
	ShowReplay    bool
	ShowNext      bool
	ShowPlayAgain bool

	// BirdTalking 小鸟是否显示 "Tweet!" 气泡
	BirdTalking bool
}

// OverlayFor 按游戏状态决定覆盖层内容
// 标题栏和底栏在所有状态下都显示，不在这里处理
func OverlayFor(state game.GameState, loading bool, funFact string) OverlayView {
	switch state {
	case game.StateIntro:
		return OverlayView{
			Panel:     components.PanelIntro,
			Heading:   IntroHeading,
			Body:      IntroBody,
			ShowStart: true,
		}
	case game.StateLearning:
		view := OverlayView{
			Panel:       components.PanelFact,
			Loading:     loading,
			ShowReplay:  true,
			ShowNext:    true,
			BirdTalking: true,
		}
		if !loading {
			view.Body = funFact
		}
		return view
	case game.StateCompleted:
		return OverlayView{
			Panel:         components.PanelComplete,
			Heading:       CompleteHeading,
			Body:          CompleteBody,
			ShowPlayAgain: true,
		}
	default:
		// Riding：只保留标题栏和底栏
		return OverlayView{Panel: components.PanelNone}
	}
}

// FooterText 底栏文字
func FooterText(entry config.AlphabetEntry) string {
	return fmt.Sprintf("Letter: %s    Word: %s", entry.Letter, entry.Word)
}
