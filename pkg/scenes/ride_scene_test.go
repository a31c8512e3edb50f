package scenes

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/game"
	"github.com/decker502/alphacoaster/pkg/utils"
)

const frameDT = 1.0 / 60

type stubFacts struct{}

func (stubFacts) FunFact(_ context.Context, entry config.AlphabetEntry) string {
	return entry.Word + " is fun!"
}

type recordingSpeaker struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSpeaker) Speak(text string) {
	s.mu.Lock()
	s.lines = append(s.lines, text)
	s.mu.Unlock()
}

func (s *recordingSpeaker) Cancel() {}

func (s *recordingSpeaker) spoke(line string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if l == line {
			return true
		}
	}
	return false
}

func (s *recordingSpeaker) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return ""
	}
	return s.lines[len(s.lines)-1]
}

// sceneHarness 用注入的指针事件驱动场景
type sceneHarness struct {
	t       *testing.T
	scene   *RideScene
	orch    *game.Orchestrator
	speaker *recordingSpeaker
	next    utils.PointerEvent
}

func newSceneHarness(t *testing.T) *sceneHarness {
	t.Helper()
	alphabet, err := config.LoadAlphabet("../../data/alphabet.yaml")
	if err != nil {
		t.Fatalf("load alphabet: %v", err)
	}

	h := &sceneHarness{t: t, speaker: &recordingSpeaker{}}
	h.orch = game.NewOrchestrator(alphabet, stubFacts{}, h.speaker, nil)
	h.scene, err = NewRideScene(RideSceneOptions{
		Config:       config.DefaultGameConfig(),
		Alphabet:     alphabet,
		Orchestrator: h.orch,
		Pointer: func() utils.PointerEvent {
			ev := h.next
			h.next = utils.PointerEvent{}
			return ev
		},
	})
	if err != nil {
		t.Fatalf("NewRideScene: %v", err)
	}
	t.Cleanup(h.scene.Close)
	return h
}

func (h *sceneHarness) step(frames int) {
	for i := 0; i < frames; i++ {
		h.scene.Update(frameDT)
	}
}

// click 在按钮中心释放鼠标并推进一帧
func (h *sceneHarness) click(id ecs.EntityID) {
	h.t.Helper()
	em := h.scene.EntityManager()
	button, _ := ecs.GetComponent[*components.ButtonComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if !button.Visible {
		h.t.Fatalf("button %q is not visible", button.Text)
	}
	h.next = utils.PointerEvent{
		X:            int(pos.X + button.Width/2),
		Y:            int(pos.Y + button.Height/2),
		JustReleased: true,
	}
	h.step(1)
}

// waitForFact 等待后台请求结果被帧线程取回
func (h *sceneHarness) waitForFact() {
	h.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.orch.Loading() {
		if time.Now().After(deadline) {
			h.t.Fatal("fun fact never arrived")
		}
		time.Sleep(time.Millisecond)
		h.step(1)
	}
}

func (h *sceneHarness) visible(id ecs.EntityID) bool {
	button, _ := ecs.GetComponent[*components.ButtonComponent](h.scene.EntityManager(), id)
	return button.Visible
}

// TestRideScene_IntroApproachesStationA 开场时镜头驶向 A 站但不触发到站
func TestRideScene_IntroApproachesStationA(t *testing.T) {
	h := newSceneHarness(t)
	buttons := h.scene.Buttons()

	overlay := h.scene.Overlay()
	if overlay.Panel != components.PanelIntro || overlay.Heading != IntroHeading {
		t.Fatalf("initial overlay = %+v", overlay)
	}
	if !h.visible(buttons.Start) || h.visible(buttons.Next) {
		t.Error("intro should only show START RIDE")
	}

	h.step(120)
	if h.orch.State() != game.StateIntro {
		t.Fatalf("state = %s, want Intro", h.orch.State())
	}
	eps := config.DefaultGameConfig().Ride.ArrivalEpsilon
	if d := utils.WrapDistance(0, h.scene.RideSystem().Progress()); d > eps || d < -eps {
		t.Errorf("camera should rest at station A during intro, distance = %v", d)
	}
}

// TestRideScene_FullLoop 开始 -> 到站 -> 趣味知识 -> 下一站
func TestRideScene_FullLoop(t *testing.T) {
	h := newSceneHarness(t)
	buttons := h.scene.Buttons()
	h.step(120)

	h.click(buttons.Start)
	if h.orch.State() != game.StateLearning {
		t.Fatalf("state after start = %s, want Learning (camera already at A)", h.orch.State())
	}
	overlay := h.scene.Overlay()
	if overlay.Panel != components.PanelFact {
		t.Errorf("panel = %v, want PanelFact", overlay.Panel)
	}
	if overlay.Letter != "A" || overlay.Word != "Apple" {
		t.Errorf("footer = %s/%s", overlay.Letter, overlay.Word)
	}

	h.waitForFact()
	if overlay.Body != "Apple is fun!" || overlay.Loading {
		t.Errorf("bubble = %q loading=%v", overlay.Body, overlay.Loading)
	}
	if got := h.speaker.last(); got != "Apple is fun!" {
		t.Errorf("last spoken = %q, want the fun fact", got)
	}
	if !h.visible(buttons.Next) || !h.visible(buttons.Replay) || h.visible(buttons.Start) {
		t.Error("learning should show replay and Next only")
	}

	h.click(buttons.Next)
	if h.orch.State() != game.StateRiding || h.orch.CurrentIndex() != 1 {
		t.Fatalf("after Next: %s at %d", h.orch.State(), h.orch.CurrentIndex())
	}
	if h.scene.Overlay().Panel != components.PanelNone {
		t.Error("riding should hide the center panel")
	}

	// 1/26 的距离，速度 0.15/s，约 16 帧
	h.step(40)
	if h.orch.State() != game.StateLearning || h.orch.CurrentIndex() != 1 {
		t.Fatalf("after riding: %s at %d, want Learning at B", h.orch.State(), h.orch.CurrentIndex())
	}
	if !h.speaker.spoke("B is for Bear.") {
		t.Error("arrival at B should announce the letter")
	}
}

// TestRideScene_Restart 标题栏按钮在任何状态下回到开场
func TestRideScene_Restart(t *testing.T) {
	h := newSceneHarness(t)
	buttons := h.scene.Buttons()
	h.step(120)
	h.click(buttons.Start)
	h.waitForFact()
	h.click(buttons.Next)

	h.click(buttons.Restart)
	if h.orch.State() != game.StateIntro || h.orch.CurrentIndex() != 0 {
		t.Fatalf("after restart: %s at %d", h.orch.State(), h.orch.CurrentIndex())
	}
	if h.scene.Overlay().Panel != components.PanelIntro || !h.visible(buttons.Start) {
		t.Error("restart should bring back the intro panel")
	}
	if !h.visible(buttons.Restart) {
		t.Error("header restart button should stay visible")
	}
}

// TestRideScene_BirdTalksWhileLearning 到站后小鸟显示气泡
func TestRideScene_BirdTalksWhileLearning(t *testing.T) {
	h := newSceneHarness(t)
	em := h.scene.EntityManager()
	h.step(120)

	bird, _ := ecs.GetComponent[*components.BirdComponent](em, h.scene.birdEntity)
	bubble, _ := ecs.GetComponent[*components.TransformComponent](em, bird.Bubble)
	if bubble.WorldVisible {
		t.Error("bubble visible before arrival")
	}

	h.click(h.scene.Buttons().Start)
	h.step(1)
	if !bird.Talking || !bubble.WorldVisible {
		t.Error("bird should talk while learning")
	}
}

// TestRideScene_NilDependencies 缺少依赖时返回错误
func TestRideScene_NilDependencies(t *testing.T) {
	if _, err := NewRideScene(RideSceneOptions{}); err == nil {
		t.Error("expected error for missing config")
	}
	if _, err := NewRideScene(RideSceneOptions{Config: config.DefaultGameConfig()}); err == nil {
		t.Error("expected error for missing orchestrator")
	}
}
