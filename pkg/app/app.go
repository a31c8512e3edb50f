// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：读取配置和字母表，
// 创建语音、趣味知识、音效和状态机，然后交给场景管理器。
package app

import (
	"context"
	"fmt"
	"image/color"

	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/embedded"
	"github.com/decker502/alphacoaster/pkg/funfact"
	"github.com/decker502/alphacoaster/pkg/game"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/decker502/alphacoaster/pkg/scenes"
	"github.com/decker502/alphacoaster/pkg/speech"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/sync/errgroup"
)

// 嵌入数据路径
const (
	AlphabetPath = "data/alphabet.yaml"
	RidePath     = "data/ride.yaml"
)

// 场景名
const (
	SceneRide = "ride"
)

// Config 定义应用启动配置
type Config struct {
	// APIKey Gemini 密钥，不可用时使用离线趣味知识
	APIKey string
	// Model 覆盖 ride.yaml 中的模型名
	Model string
	// ConfigPath 覆盖内置 ride.yaml 的文件路径
	ConfigPath string
	// NoSpeech 本次运行关闭朗读，不写入设置
	NoSpeech bool
	// Fullscreen 以全屏启动
	Fullscreen bool
	// Settings 命令行指定的偏好，写入设置并在退出时保存
	Settings SettingsOverrides
}

// SettingsOverrides 命令行覆盖的用户设置，nil 字段保持已保存的值
type SettingsOverrides struct {
	Sound  *bool
	Volume *float64
	Speech *bool
	Voice  *string
}

// ApplySettingsOverrides 把命令行偏好写入设置管理器
// 音量经过 AudioManager，已缓存的播放器同步更新
func ApplySettingsOverrides(sm *game.SettingsManager, am *game.AudioManager, o SettingsOverrides) {
	if o.Sound != nil {
		sm.SetSoundEnabled(*o.Sound)
	}
	if o.Volume != nil {
		am.SetSoundVolume(*o.Volume)
	}
	if o.Speech != nil {
		sm.SetSpeechEnabled(*o.Speech)
	}
	if o.Voice != nil {
		sm.SetPreferredVoice(*o.Voice)
	}
}

// configureSpeaker 按设置开关朗读并指定优先声音
func configureSpeaker(speaker *speech.Speaker, settings *game.GameSettings) {
	speaker.SetEnabled(settings.SpeechEnabled)
	speaker.SetPreferredVoice(settings.PreferredVoice)
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	speaker         *speech.Speaker
	orchestrator    *game.Orchestrator

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 字体、音效和声音列表在后台并行准备，期间显示加载画面。
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	gameConfig, err := LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Model != "" {
		gameConfig.FunFact.Model = cfg.Model
	}

	alphabet, err := LoadAlphabet()
	if err != nil {
		return nil, err
	}
	logging.L().Infof("[App] loaded %d alphabet stations", alphabet.Len())

	settingsManager := newSettingsManager()

	// 初始化音频上下文
	audioContext := audio.NewContext(game.SampleRate)
	resourceManager := game.NewResourceManager(audioContext)
	audioManager := game.NewAudioManager(resourceManager, settingsManager)

	ApplySettingsOverrides(settingsManager, audioManager, cfg.Settings)
	settings := settingsManager.GetSettings()

	var engine speech.Engine
	if !cfg.NoSpeech {
		engine = speech.DetectEngine()
	}
	speaker := speech.NewSpeaker(engine, gameConfig.Speech)
	configureSpeaker(speaker, settings)
	switch {
	case !speaker.Available():
		logging.L().Infof("[App] no speech engine, running silent")
	case !speaker.Enabled():
		logging.L().Infof("[App] speech engine %s disabled in settings", speaker.EngineName())
	default:
		logging.L().Infof("[App] speech engine: %s", speaker.EngineName())
	}

	facts, err := funfact.NewProvider(ctx, funfact.Options{
		APIKey:  cfg.APIKey,
		Model:   gameConfig.FunFact.Model,
		Timeout: gameConfig.FunFact.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("fun fact provider init failed: %w", err)
	}

	orchestrator := game.NewOrchestrator(alphabet, facts, speaker, audioManager)

	// 后台准备资源
	ready := make(chan error, 1)
	go func() {
		ready <- warmup(ctx, resourceManager, audioManager, speaker)
	}()

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
		switch name {
		case SceneRide:
			return scenes.NewRideScene(scenes.RideSceneOptions{
				Config:       gameConfig,
				Alphabet:     alphabet,
				Orchestrator: orchestrator,
				Fonts:        resourceManager,
			})
		}
		return nil, fmt.Errorf("unknown scene %q", name)
	})
	sceneManager.SwitchTo(scenes.NewLoadingScene(sceneManager, resourceManager, ready, SceneRide))

	if cfg.Fullscreen || settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		speaker:         speaker,
		orchestrator:    orchestrator,
	}, nil
}

// warmup 并行解析字体、合成音效和查询声音列表
// 声音列表失败只记录日志，不影响启动
func warmup(ctx context.Context, rm *game.ResourceManager, am *game.AudioManager, speaker *speech.Speaker) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(rm.LoadFonts)
	g.Go(func() error {
		if err := rm.PrepareSounds(); err != nil {
			return err
		}
		am.PreloadSounds(game.AllSounds)
		return nil
	})
	g.Go(func() error {
		if err := speaker.PreloadVoices(gctx); err != nil {
			logging.L().Warnf("[App] voice discovery failed: %v", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("resource warmup failed: %w", err)
	}
	return nil
}

// LoadGameConfig 读取运行参数；path 为空时使用内置 ride.yaml
func LoadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		cfg, err := config.LoadGameConfig(path)
		if err != nil {
			return nil, fmt.Errorf("ride config %s: %w", path, err)
		}
		return cfg, nil
	}

	data, err := embedded.ReadFile(RidePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", RidePath, err)
	}
	cfg, err := config.ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("ride config: %w", err)
	}
	return cfg, nil
}

// LoadAlphabet 读取内置字母表
func LoadAlphabet() (config.Alphabet, error) {
	data, err := embedded.ReadFile(AlphabetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", AlphabetPath, err)
	}
	alphabet, err := config.ParseAlphabet(data)
	if err != nil {
		return nil, fmt.Errorf("alphabet: %w", err)
	}
	return alphabet, nil
}

// newSettingsManager 打开 gdata 存储；失败时降级为只在内存中保存设置
func newSettingsManager() *game.SettingsManager {
	gdataManager, err := gdata.Open(gdata.Config{AppName: "alphacoaster"})
	if err != nil {
		logging.L().Warnf("[App] settings storage unavailable: %v", err)
		gdataManager = nil
	}
	sm, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		logging.L().Warnf("[App] settings manager init failed: %v", err)
		sm, _ = game.NewSettingsManager(nil)
	}
	return sm
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)

	if ls, ok := a.sceneManager.GetCurrentScene().(*scenes.LoadingScene); ok && ls.Err() != nil {
		return ls.Err()
	}
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 停止后台任务并保存设置
func (a *App) Close() error {
	a.sceneManager.Close()
	a.orchestrator.Close()
	a.speaker.Close()
	if err := a.settingsManager.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
