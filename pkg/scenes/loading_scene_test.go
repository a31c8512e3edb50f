package scenes

import (
	"errors"
	"testing"

	"github.com/decker502/alphacoaster/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

type stubScene struct{ name string }

func (s *stubScene) Update(float64)     {}
func (s *stubScene) Draw(*ebiten.Image) {}

func newLoadingFixture() (*game.SceneManager, chan error, *LoadingScene) {
	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(name string) (game.Scene, error) {
		return &stubScene{name: name}, nil
	})
	ready := make(chan error, 1)
	ls := NewLoadingScene(sm, nil, ready, "ride")
	sm.SwitchTo(ls)
	return sm, ready, ls
}

// TestLoadingScene_WaitsForWarmup 后台未完成时停在 90%，不切换场景
func TestLoadingScene_WaitsForWarmup(t *testing.T) {
	sm, ready, ls := newLoadingFixture()

	for i := 0; i < 180; i++ {
		ls.Update(frameDT)
	}
	if sm.GetCurrentScene() != ls {
		t.Fatal("switched scenes before warmup finished")
	}
	if p := ls.Progress(); p != 0.9 {
		t.Errorf("progress = %v, want capped at 0.9", p)
	}

	ready <- nil
	for i := 0; i < 60 && sm.GetCurrentScene() == ls; i++ {
		ls.Update(frameDT)
	}
	next, ok := sm.GetCurrentScene().(*stubScene)
	if !ok || next.name != "ride" {
		t.Fatalf("current scene = %#v, want ride", sm.GetCurrentScene())
	}
}

// TestLoadingScene_MinimumDuration 后台很快完成时也显示满最短时长
func TestLoadingScene_MinimumDuration(t *testing.T) {
	sm, ready, ls := newLoadingFixture()
	ready <- nil

	ls.Update(frameDT)
	if sm.GetCurrentScene() != ls {
		t.Fatal("loading scene left after a single frame")
	}
	for i := 0; i < 70 && sm.GetCurrentScene() == ls; i++ {
		ls.Update(frameDT)
	}
	if sm.GetCurrentScene() == ls {
		t.Error("loading scene never finished")
	}
}

// TestLoadingScene_WarmupError 后台失败时记录错误
func TestLoadingScene_WarmupError(t *testing.T) {
	sm, ready, ls := newLoadingFixture()
	ready <- errors.New("font parse failed")

	ls.Update(frameDT)
	if ls.Err() == nil {
		t.Fatal("expected warmup error")
	}
	if sm.GetCurrentScene() != ls {
		t.Error("should stay on the loading scene after a failure")
	}
}
