package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// GameConfig 过山车运行参数（对应 data/ride.yaml）
type GameConfig struct {
	Ride     RideConfig     `yaml:"ride"`
	Track    TrackConfig    `yaml:"track"`
	Stations StationsConfig `yaml:"stations"`
	Bird     BirdConfig     `yaml:"bird"`
	Camera   CameraConfig   `yaml:"camera"`
	Fog      FogConfig      `yaml:"fog"`
	Palettes []Palette      `yaml:"palettes"`
	Speech   SpeechConfig   `yaml:"speech"`
	FunFact  FunFactConfig  `yaml:"funFact"`
}

// RideConfig 镜头沿轨道运动的参数，单位均为"环路比例"
type RideConfig struct {
	Speed          float64 `yaml:"speed"`          // 每秒前进的环路比例
	ArrivalEpsilon float64 `yaml:"arrivalEpsilon"` // 到站判定阈值
	StartProgress  float64 `yaml:"startProgress"`  // 初始进度
	LookAhead      float64 `yaml:"lookAhead"`      // 前视距离
	SeatHeight     float64 `yaml:"seatHeight"`     // 镜头相对轨道的高度
	LookHeight     float64 `yaml:"lookHeight"`     // 注视点抬升
	BankFactor     float64 `yaml:"bankFactor"`     // 倾斜混合系数
}

// TrackConfig 轨道曲线参数
type TrackConfig struct {
	Radius          float64 `yaml:"radius"`
	TubeRadius      float64 `yaml:"tubeRadius"`
	TubularSegments int     `yaml:"tubularSegments"`
	HillAmplitude   float64 `yaml:"hillAmplitude"`
	HillFrequency   float64 `yaml:"hillFrequency"`
	SwellAmplitude  float64 `yaml:"swellAmplitude"`
	SwellFrequency  float64 `yaml:"swellFrequency"`
	LengthDivisions int     `yaml:"lengthDivisions"`
}

// StationsConfig 站点摆放参数
type StationsConfig struct {
	SideOffset      float64 `yaml:"sideOffset"`
	PlatformRadius  float64 `yaml:"platformRadius"`
	PlatformDrop    float64 `yaml:"platformDrop"`
	PlatformOpacity float64 `yaml:"platformOpacity"`
	GlyphSize       float64 `yaml:"glyphSize"`
	WordSize        float64 `yaml:"wordSize"`
	LetterSize      float64 `yaml:"letterSize"`
	FloatAmplitude  float64 `yaml:"floatAmplitude"`
	FloatSpeed      float64 `yaml:"floatSpeed"`
}

// BirdConfig 小鸟助手参数
type BirdConfig struct {
	Offset        []float64 `yaml:"offset"` // 镜头局部坐标偏移 [x, y, z]，-z 为镜头前方
	BobAmplitude  float64   `yaml:"bobAmplitude"`
	BobSpeed      float64   `yaml:"bobSpeed"`
	FlapAmplitude float64   `yaml:"flapAmplitude"`
	FlapSpeed     float64   `yaml:"flapSpeed"`
}

// CameraConfig 透视镜头参数
type CameraConfig struct {
	FOV  float64 `yaml:"fov"` // 垂直视角（度）
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// FogConfig 线性雾参数
type FogConfig struct {
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// Palette 场景色板：天空色和地面色
type Palette struct {
	Sky    RGB
	Ground RGB
}

// UnmarshalYAML 从 ["#sky", "#ground"] 解码
func (p *Palette) UnmarshalYAML(node *yaml.Node) error {
	var pair []RGB
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("palette needs exactly 2 colors, got %d", len(pair))
	}
	p.Sky, p.Ground = pair[0], pair[1]
	return nil
}

// SpeechConfig 语音合成参数
type SpeechConfig struct {
	Pitch      float64  `yaml:"pitch"`
	Rate       float64  `yaml:"rate"`
	VoiceHints []string `yaml:"voiceHints"`
}

// FunFactConfig 趣味知识请求参数
type FunFactConfig struct {
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultGameConfig 返回默认参数（与 data/ride.yaml 一致）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Ride: RideConfig{
			Speed:          0.15,
			ArrivalEpsilon: 0.002,
			StartProgress:  0.85,
			LookAhead:      0.02,
			SeatHeight:     1.5,
			LookHeight:     0.5,
			BankFactor:     0.2,
		},
		Track: TrackConfig{
			Radius:          30,
			TubeRadius:      0.4,
			TubularSegments: 200,
			HillAmplitude:   5,
			HillFrequency:   5,
			SwellAmplitude:  3,
			SwellFrequency:  2,
			LengthDivisions: 200,
		},
		Stations: StationsConfig{
			SideOffset:      4,
			PlatformRadius:  3,
			PlatformDrop:    2,
			PlatformOpacity: 0.8,
			GlyphSize:       4,
			WordSize:        1,
			LetterSize:      3,
			FloatAmplitude:  0.5,
			FloatSpeed:      2,
		},
		Bird: BirdConfig{
			Offset:        []float64{0.8, -0.3, -2},
			BobAmplitude:  0.1,
			BobSpeed:      3,
			FlapAmplitude: 0.5,
			FlapSpeed:     15,
		},
		Camera: CameraConfig{FOV: 60, Near: 0.1, Far: 1000},
		Fog:    FogConfig{Near: 5, Far: 60},
		Palettes: []Palette{
			{Sky: RGB{0x87, 0xCE, 0xEB}, Ground: RGB{0xE0, 0xF7, 0xFA}},
			{Sky: RGB{0x1A, 0x23, 0x7E}, Ground: RGB{0x31, 0x1B, 0x92}},
			{Sky: RGB{0xFF, 0xF1, 0x76}, Ground: RGB{0xFF, 0xD5, 0x4F}},
			{Sky: RGB{0x81, 0xC7, 0x84}, Ground: RGB{0x4C, 0xAF, 0x50}},
			{Sky: RGB{0xF4, 0x8F, 0xB1}, Ground: RGB{0xF0, 0x62, 0x92}},
		},
		Speech: SpeechConfig{
			Pitch:      1.2,
			Rate:       1.0,
			VoiceHints: []string{"Female", "Google"},
		},
		FunFact: FunFactConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 10 * time.Second,
		},
	}
}

// ParseGameConfig 解析 YAML 数据
// 未出现的字段保留默认值，因此覆盖文件只需要写要修改的部分
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// LoadGameConfig 从 YAML 文件加载运行参数
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return ParseGameConfig(data)
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(cfg *GameConfig) error {
	r := cfg.Ride
	if r.Speed <= 0 {
		return fmt.Errorf("ride.speed must be > 0, got %v", r.Speed)
	}
	if r.ArrivalEpsilon <= 0 || r.ArrivalEpsilon >= 0.5 {
		return fmt.Errorf("ride.arrivalEpsilon must be in (0, 0.5), got %v", r.ArrivalEpsilon)
	}
	if r.StartProgress < 0 || r.StartProgress >= 1 {
		return fmt.Errorf("ride.startProgress must be in [0, 1), got %v", r.StartProgress)
	}
	if r.LookAhead <= 0 || r.LookAhead >= 0.5 {
		return fmt.Errorf("ride.lookAhead must be in (0, 0.5), got %v", r.LookAhead)
	}

	t := cfg.Track
	if t.Radius <= 0 || t.TubeRadius <= 0 {
		return fmt.Errorf("track.radius and track.tubeRadius must be > 0")
	}
	if t.TubularSegments < 3 {
		return fmt.Errorf("track.tubularSegments must be >= 3, got %d", t.TubularSegments)
	}
	if t.LengthDivisions < 10 {
		return fmt.Errorf("track.lengthDivisions must be >= 10, got %d", t.LengthDivisions)
	}

	if cfg.Stations.PlatformOpacity < 0 || cfg.Stations.PlatformOpacity > 1 {
		return fmt.Errorf("stations.platformOpacity must be in [0, 1], got %v", cfg.Stations.PlatformOpacity)
	}

	if len(cfg.Bird.Offset) != 3 {
		return fmt.Errorf("bird.offset needs 3 components, got %d", len(cfg.Bird.Offset))
	}

	c := cfg.Camera
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", c.FOV)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return fmt.Errorf("camera.near must be > 0 and camera.far > camera.near")
	}
	if cfg.Fog.Far <= cfg.Fog.Near {
		return fmt.Errorf("fog.far must be > fog.near")
	}

	if len(cfg.Palettes) == 0 {
		return fmt.Errorf("palettes cannot be empty")
	}

	if cfg.Speech.Pitch <= 0 || cfg.Speech.Rate <= 0 {
		return fmt.Errorf("speech.pitch and speech.rate must be > 0")
	}

	if cfg.FunFact.Model == "" {
		return fmt.Errorf("funFact.model cannot be empty")
	}
	if cfg.FunFact.Timeout <= 0 {
		return fmt.Errorf("funFact.timeout must be > 0, got %v", cfg.FunFact.Timeout)
	}
	return nil
}
