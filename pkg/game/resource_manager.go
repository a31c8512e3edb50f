package game

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/decker502/alphacoaster/internal/synth"
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// SoundID 音效标识
type SoundID string

const (
	SoundChirp   SoundID = "chirp"
	SoundWhoosh  SoundID = "whoosh"
	SoundFanfare SoundID = "fanfare"
)

// AllSounds 全部音效
var AllSounds = []SoundID{SoundChirp, SoundWhoosh, SoundFanfare}

// SampleRate 音频上下文采样率
const SampleRate = 48000

// ResourceManager 集中管理字体和音效
//
// 字体来自 Go 字体族，音效在启动时合成为 PCM。
// LoadFonts 和 PrepareSounds 可以在后台并行调用；
// 之后的 Font/SoundPCM 只在帧线程中使用。
type ResourceManager struct {
	audioContext *audio.Context // 可为 nil（无声运行）

	mu            sync.Mutex
	regular       *text.GoTextFaceSource
	bold          *text.GoTextFaceSource
	fontFaceCache map[fontKey]*text.GoTextFace
	soundPCM      map[SoundID][]byte
}

type fontKey struct {
	size float64
	bold bool
}

// NewResourceManager 创建资源管理器
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext:  audioContext,
		fontFaceCache: make(map[fontKey]*text.GoTextFace),
		soundPCM:      make(map[SoundID][]byte),
	}
}

// LoadFonts 解析内置字体
func (rm *ResourceManager) LoadFonts() error {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return fmt.Errorf("failed to parse bold font: %w", err)
	}

	rm.mu.Lock()
	rm.regular, rm.bold = regular, bold
	rm.mu.Unlock()
	return nil
}

// Font 返回指定字号的字体，LoadFonts 之前返回 nil
func (rm *ResourceManager) Font(size float64, bold bool) *text.GoTextFace {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	key := fontKey{size: size, bold: bold}
	if face, ok := rm.fontFaceCache[key]; ok {
		return face
	}
	source := rm.regular
	if bold {
		source = rm.bold
	}
	if source == nil {
		return nil
	}
	face := &text.GoTextFace{Source: source, Size: size}
	rm.fontFaceCache[key] = face
	return face
}

// PrepareSounds 合成全部音效
func (rm *ResourceManager) PrepareSounds() error {
	rate := beep.SampleRate(SampleRate)
	rendered := map[SoundID][]byte{
		SoundChirp:   synth.Render(synth.Chirp(rate), rate),
		SoundWhoosh:  synth.Render(synth.Whoosh(rate), rate),
		SoundFanfare: synth.Render(synth.Fanfare(rate), rate),
	}
	for id, pcm := range rendered {
		if len(pcm) == 0 {
			return fmt.Errorf("sound %s rendered empty", id)
		}
	}

	rm.mu.Lock()
	for id, pcm := range rendered {
		rm.soundPCM[id] = pcm
	}
	rm.mu.Unlock()
	return nil
}

// SoundPCM 返回音效的 PCM 数据，未准备时返回 nil
func (rm *ResourceManager) SoundPCM(id SoundID) []byte {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.soundPCM[id]
}

// NewSoundPlayer 为音效创建播放器；没有音频上下文或音效未准备时返回 nil
func (rm *ResourceManager) NewSoundPlayer(id SoundID) *audio.Player {
	if rm.audioContext == nil {
		return nil
	}
	pcm := rm.SoundPCM(id)
	if pcm == nil {
		return nil
	}
	return rm.audioContext.NewPlayerFromBytes(pcm)
}
