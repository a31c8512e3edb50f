package scenes

import (
	"fmt"
	"math"

	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/entities"
	"github.com/decker502/alphacoaster/pkg/game"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/decker502/alphacoaster/pkg/systems"
	"github.com/decker502/alphacoaster/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 加载画面配色
var (
	loadingSkyTop    = config.RGB{R: 0x87, G: 0xCE, B: 0xEB}
	loadingSkyBottom = config.RGB{R: 0xE0, G: 0xF7, B: 0xFA}
	loadingBarBack   = config.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	loadingBarFill   = config.RGB{R: 0xFA, G: 0xCC, B: 0x15}
	loadingTitle     = config.RGB{R: 0x25, G: 0x63, B: 0xEB}
	loadingText      = config.RGB{R: 0x4B, G: 0x55, B: 0x63}
)

// LoadingScene 启动加载画面
// 后台准备字体、音效和声音列表时显示标题和进度条，完成后切换到 next 场景
type LoadingScene struct {
	sceneManager *game.SceneManager
	fonts        systems.FontProvider
	ready        <-chan error
	next         string

	// Progress tracking
	progress        float64 // 进度条显示值 0.0 ~ 1.0
	loadingComplete bool    // 后台准备是否完成
	elapsedTime     float64
	titleY          float64

	err error
}

// NewLoadingScene 创建加载画面
// ready 在后台准备结束时收到一个值（nil 表示成功）
func NewLoadingScene(sm *game.SceneManager, fonts systems.FontProvider, ready <-chan error, next string) *LoadingScene {
	return &LoadingScene{
		sceneManager: sm,
		fonts:        fonts,
		ready:        ready,
		next:         next,
		titleY:       config.LoadingTitleStartY,
	}
}

// Err 后台准备或场景切换失败时返回错误
func (s *LoadingScene) Err() error {
	return s.err
}

// Progress 进度条显示值
func (s *LoadingScene) Progress() float64 {
	return s.progress
}

// Update updates the loading scene.
func (s *LoadingScene) Update(deltaTime float64) {
	if s.err != nil {
		return
	}
	s.elapsedTime += deltaTime

	if !s.loadingComplete {
		select {
		case err := <-s.ready:
			if err != nil {
				s.err = err
				logging.L().Errorf("[LoadingScene] warmup failed: %v", err)
				return
			}
			s.loadingComplete = true
			logging.L().Debugf("[LoadingScene] warmup finished after %.2fs", s.elapsedTime)
		default:
		}
	}

	s.updateTitleAnimation()
	s.updateProgress(deltaTime)

	if s.loadingComplete && s.progress >= 1 {
		if !s.sceneManager.Load(s.next) {
			s.err = fmt.Errorf("failed to load scene %q", s.next)
		}
	}
}

// updateTitleAnimation 标题从屏幕上方弹入
func (s *LoadingScene) updateTitleAnimation() {
	t := utils.Clamp01(s.elapsedTime / config.LoadingTitleAnimDuration)
	s.titleY = utils.Lerp(config.LoadingTitleStartY, config.LoadingTitleTargetY, utils.EaseOutBack(t))
}

// updateProgress 进度条匀速增长；后台未完成时停在 90%
func (s *LoadingScene) updateProgress(deltaTime float64) {
	limit := 0.9
	if s.loadingComplete {
		limit = 1
	}
	s.progress = math.Min(s.progress+deltaTime/config.LoadingMinDuration, limit)
}

// Draw renders the loading scene.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	// 天空渐变
	const bands = 32
	h := float64(config.GameWindowHeight) / bands
	for i := 0; i < bands; i++ {
		c := loadingSkyTop.Lerp(loadingSkyBottom, float64(i)/(bands-1))
		vector.DrawFilledRect(screen, 0, float32(float64(i)*h), config.GameWindowWidth, float32(h+1), c.RGBA(255), false)
	}

	cx := float64(config.GameWindowWidth) / 2
	if s.fonts != nil {
		if face := s.fonts.Font(config.LoadingTitleFontSize, true); face != nil {
			drawCentered(screen, entities.AppTitle, face, cx, s.titleY, loadingTitle)
		}
	}

	x, y := config.LoadingBarX(), config.LoadingBarY
	w, bh := config.LoadingBarWidth, config.LoadingBarHeight
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(bh), loadingBarBack.RGBA(220), true)
	vector.DrawFilledRect(screen, float32(x+3), float32(y+3), float32((w-6)*s.progress), float32(bh-6), loadingBarFill.RGBA(255), true)

	if s.fonts != nil {
		if face := s.fonts.Font(config.LoadingTextFontSize, false); face != nil {
			label := "Loading..."
			if s.err != nil {
				label = "Something went wrong"
			}
			drawCentered(screen, label, face, cx, config.LoadingTextY, loadingText)
		}
	}
}

func drawCentered(screen *ebiten.Image, str string, face *text.GoTextFace, cx, cy float64, clr config.RGB) {
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr.RGBA(255))
	text.Draw(screen, str, face, op)
}
