// verify_ride 无窗口验证程序
//
// 用注入的点击驱动骑行场景跑完整个字母表：开始 -> 每站等待趣味知识 -> 下一站，
// 最后检查完成面板和"再玩一次"。每一站打印底栏文字和朗读内容。
//
// 用法：
//
//	go run ./cmd/verify_ride [-api-key KEY] [-speak] [-verbose]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/funfact"
	"github.com/decker502/alphacoaster/pkg/game"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/decker502/alphacoaster/pkg/scenes"
	"github.com/decker502/alphacoaster/pkg/speech"
	"github.com/decker502/alphacoaster/pkg/utils"
)

const frameDT = 1.0 / 60

var (
	verbose      = flag.Bool("verbose", false, "显示详细调试信息")
	apiKey       = flag.String("api-key", "", "Gemini API key，为空时使用离线趣味知识")
	speak        = flag.Bool("speak", false, "使用本机语音引擎朗读")
	alphabetPath = flag.String("alphabet", "data/alphabet.yaml", "字母表文件")
	ridePath     = flag.String("config", "data/ride.yaml", "运行参数文件")
	maxFrames    = flag.Int("max-frames", 20000, "每一站最多等待的帧数")
)

// printSpeaker 把朗读内容打印出来，可选地转交给真实的语音引擎
type printSpeaker struct {
	next game.Speaker
}

func (p printSpeaker) Speak(text string) {
	fmt.Printf("    🔊 %s\n", text)
	if p.next != nil {
		p.next.Speak(text)
	}
}

func (p printSpeaker) Cancel() {
	if p.next != nil {
		p.next.Cancel()
	}
}

// driver 持有场景和下一帧的指针事件
type driver struct {
	scene   *scenes.RideScene
	orch    *game.Orchestrator
	pending utils.PointerEvent
	frames  int
}

func (d *driver) pointer() utils.PointerEvent {
	ev := d.pending
	d.pending = utils.PointerEvent{}
	return ev
}

func (d *driver) step() {
	d.scene.Update(frameDT)
	d.frames++
}

func (d *driver) click(id ecs.EntityID) error {
	em := d.scene.EntityManager()
	button, ok := ecs.GetComponent[*components.ButtonComponent](em, id)
	if !ok {
		return fmt.Errorf("button %d not found", id)
	}
	if !button.Visible {
		return fmt.Errorf("button %q is hidden in state %s", button.Text, d.orch.State())
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	d.pending = utils.PointerEvent{
		X:            int(pos.X + button.Width/2),
		Y:            int(pos.Y + button.Height/2),
		JustReleased: true,
	}
	d.step()
	return nil
}

// waitFor 推进帧直到 cond 成立；后台请求需要真实时间，因此每帧短暂休眠
func (d *driver) waitFor(what string, cond func() bool) error {
	for i := 0; i < *maxFrames; i++ {
		if cond() {
			return nil
		}
		d.step()
		time.Sleep(time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for %s (state %s, station %d)", what, d.orch.State(), d.orch.CurrentIndex())
}

func run() error {
	gameConfig, err := config.LoadGameConfig(*ridePath)
	if err != nil {
		return err
	}
	alphabet, err := config.LoadAlphabet(*alphabetPath)
	if err != nil {
		return err
	}

	speaker := printSpeaker{}
	if *speak {
		s := speech.NewSpeaker(speech.DetectEngine(), gameConfig.Speech)
		defer s.Close()
		speaker.next = s
	}

	facts, err := funfact.NewProvider(context.Background(), funfact.Options{
		APIKey:  *apiKey,
		Model:   gameConfig.FunFact.Model,
		Timeout: gameConfig.FunFact.Timeout,
	})
	if err != nil {
		return err
	}

	d := &driver{}
	d.orch = game.NewOrchestrator(alphabet, facts, speaker, nil)
	d.scene, err = scenes.NewRideScene(scenes.RideSceneOptions{
		Config:       gameConfig,
		Alphabet:     alphabet,
		Orchestrator: d.orch,
		Pointer:      d.pointer,
	})
	if err != nil {
		return err
	}
	defer d.scene.Close()
	buttons := d.scene.Buttons()

	fmt.Printf("=== AlphaCoaster ride verification (%d stations, online=%v) ===\n", alphabet.Len(), facts.Online())

	if err := d.waitFor("intro approach", func() bool {
		return math.Abs(utils.WrapDistance(0, d.scene.RideSystem().Progress())) <= gameConfig.Ride.ArrivalEpsilon
	}); err != nil {
		return err
	}
	if err := d.click(buttons.Start); err != nil {
		return err
	}

	for i := 0; i < alphabet.Len(); i++ {
		if err := d.waitFor("arrival", func() bool {
			return d.orch.State() == game.StateLearning && d.orch.CurrentIndex() == i
		}); err != nil {
			return err
		}
		fmt.Printf("[%2d] %s\n", i, scenes.FooterText(d.orch.CurrentEntry()))
		if err := d.waitFor("fun fact", func() bool { return !d.orch.Loading() }); err != nil {
			return err
		}
		fmt.Printf("    💡 %s\n", d.scene.Overlay().Body)
		if err := d.click(buttons.Next); err != nil {
			return err
		}
	}

	if d.orch.State() != game.StateCompleted {
		return fmt.Errorf("expected Completed after Z, got %s", d.orch.State())
	}
	fmt.Printf("=== %s (%d frames) ===\n", d.scene.Overlay().Heading, d.frames)

	if err := d.click(buttons.PlayAgain); err != nil {
		return err
	}
	if d.orch.State() != game.StateIntro || d.orch.CurrentIndex() != 0 {
		return fmt.Errorf("play again should return to intro at A, got %s at %d", d.orch.State(), d.orch.CurrentIndex())
	}
	fmt.Println("✅ play again returned to the intro")
	return nil
}

func main() {
	flag.Parse()
	if err := logging.Init(*verbose); err != nil {
		log.Fatal(err)
	}
	defer logging.Sync()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
