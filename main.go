package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/decker502/alphacoaster/pkg/app"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/embedded"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// 命令行参数
	verbose    bool
	apiKey     string
	model      string
	envFile    string
	noSpeech   bool
	fullscreen bool
	configPath string

	// 写入用户设置的偏好，只有显式指定时才生效
	sound  bool
	speak  bool
	volume float64
	voice  string
)

// rootCmd 启动过山车
var rootCmd = &cobra.Command{
	Use:   "alphacoaster",
	Short: "AlphaCoaster - ride a roller coaster through the alphabet",
	Long: `AlphaCoaster takes young learners on a 3D roller-coaster ride past
26 letter stations. Each stop reads the letter and word aloud and asks
Gemini for a short fun fact (an offline fact is used without an API key).

The API key is read from --api-key, then API_KEY, then GEMINI_API_KEY.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), settingsOverrides(cmd.Flags()))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "显示详细调试日志")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key (default: $API_KEY or $GEMINI_API_KEY)")
	rootCmd.Flags().StringVar(&model, "model", "", "覆盖 ride.yaml 中的 Gemini 模型名")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "启动时读取的环境变量文件（不存在时忽略）")
	rootCmd.Flags().BoolVar(&noSpeech, "no-speech", false, "关闭朗读")
	rootCmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "以全屏启动（F11 切换）")
	rootCmd.Flags().StringVar(&configPath, "config", "", "使用外部 ride.yaml 替代内置配置")
	rootCmd.Flags().BoolVar(&sound, "sound", true, "音效开关（保存到设置）")
	rootCmd.Flags().BoolVar(&speak, "speech", true, "朗读开关（保存到设置）")
	rootCmd.Flags().Float64Var(&volume, "volume", 0.8, "音效音量 0.0 ~ 1.0（保存到设置）")
	rootCmd.Flags().StringVar(&voice, "voice", "", "优先使用的声音名（保存到设置，空字符串恢复自动挑选）")
}

// settingsOverrides 收集显式指定的设置参数，未指定的保持已保存的值
func settingsOverrides(flags *pflag.FlagSet) app.SettingsOverrides {
	var o app.SettingsOverrides
	if flags.Changed("sound") {
		o.Sound = &sound
	}
	if flags.Changed("volume") {
		o.Volume = &volume
	}
	if flags.Changed("speech") {
		o.Speech = &speak
	}
	if flags.Changed("voice") {
		o.Voice = &voice
	}
	return o
}

func run(ctx context.Context, overrides app.SettingsOverrides) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.L().Warnf("[Main] failed to read %s: %v", envFile, err)
		}
	}

	key := resolveAPIKey(apiKey)
	if key == "" {
		logging.L().Infof("[Main] no API key, fun facts will be offline")
	}

	// 初始化嵌入资源
	embedded.Init(dataFS)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	application, err := app.NewApp(ctx, app.Config{
		APIKey:     key,
		Model:      model,
		ConfigPath: configPath,
		NoSpeech:   noSpeech,
		Fullscreen: fullscreen,
		Settings:   overrides,
	})
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("AlphaCoaster")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(application)
	cancel()
	if err := application.Close(); err != nil {
		logging.L().Warnf("[Main] %v", err)
	}
	if runErr != nil {
		return fmt.Errorf("game loop: %w", runErr)
	}
	return nil
}

// resolveAPIKey 命令行优先，其次 API_KEY、GEMINI_API_KEY
func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if key := os.Getenv("API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GEMINI_API_KEY")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
