// Package speech 朗读文字
//
// 同一时间最多只有一句在读：每次 Speak 都会先取消上一句。
// 没有可用的语音引擎时 Speak 什么也不做。
package speech

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/logging"
)

// Voice 引擎提供的一个声音
type Voice struct {
	ID   string // 传给引擎的标识
	Name string // 便于阅读的名字，用于按关键字挑选
	Lang string // 语言代码（如 en-us、en_US），未知时为空
}

// Utterance 一次朗读请求
type Utterance struct {
	Text  string
	Voice string // 为空时使用引擎默认声音
	Pitch float64
	Rate  float64
}

// Engine 语音引擎
type Engine interface {
	Name() string
	Voices(ctx context.Context) ([]Voice, error)
	// Say 阻塞直到读完；ctx 取消时立即停止并返回 ctx.Err()
	Say(ctx context.Context, u Utterance) error
}

// Speaker 朗读调度器
type Speaker struct {
	engine Engine
	pitch  float64
	rate   float64
	hints  []string

	mu        sync.Mutex
	enabled   bool
	closed    bool
	voice     string
	preferred string
	cancel    context.CancelFunc
	// done 上一句的后台任务结束时关闭；下一句等它结束后才开始，
	// 保证引擎的停止命令先于下一句到达语音服务
	done chan struct{}
	wg   sync.WaitGroup
}

// NewSpeaker 创建朗读调度器，engine 可以为 nil
func NewSpeaker(engine Engine, cfg config.SpeechConfig) *Speaker {
	return &Speaker{
		engine:  engine,
		pitch:   cfg.Pitch,
		rate:    cfg.Rate,
		hints:   append([]string(nil), cfg.VoiceHints...),
		enabled: engine != nil,
	}
}

// Available 是否有语音引擎
func (s *Speaker) Available() bool {
	return s.engine != nil
}

// EngineName 引擎名，没有引擎时为空
func (s *Speaker) EngineName() string {
	if s.engine == nil {
		return ""
	}
	return s.engine.Name()
}

// SetEnabled 开关朗读；关闭时取消正在读的句子
func (s *Speaker) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled && s.engine != nil
	if !s.enabled {
		s.cancelLocked()
	}
	s.mu.Unlock()
}

// Enabled 当前是否会朗读
func (s *Speaker) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetPreferredVoice 指定优先使用的声音名（来自用户设置），为空时按关键字挑选
func (s *Speaker) SetPreferredVoice(name string) {
	s.mu.Lock()
	s.preferred = name
	s.mu.Unlock()
}

// Voice 当前选中的声音 ID
func (s *Speaker) Voice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voice
}

// PreloadVoices 查询引擎的声音列表并挑选一个
// 失败时保持引擎默认声音
func (s *Speaker) PreloadVoices(ctx context.Context) error {
	if s.engine == nil {
		return nil
	}
	voices, err := s.engine.Voices(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := SelectVoice(voices, s.hints)
	if s.preferred != "" {
		if pv, found := SelectVoice(voices, []string{s.preferred}); found && strings.Contains(pv.Name, s.preferred) {
			v, ok = pv, true
		}
	}
	if ok {
		s.voice = v.ID
		logging.L().Infof("[Speech] %s: %d voices, using %q", s.engine.Name(), len(voices), v.Name)
	}
	return nil
}

// Speak 朗读 text，立即返回
func (s *Speaker) Speak(text string) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	if !s.enabled || s.closed || text == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	u := Utterance{Text: text, Voice: s.voice, Pitch: s.pitch, Rate: s.rate}
	prev := s.done
	done := make(chan struct{})
	s.done = done

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		defer cancel()
		if prev != nil {
			<-prev
		}
		if ctx.Err() != nil {
			return
		}
		if err := s.engine.Say(ctx, u); err != nil && !errors.Is(err, context.Canceled) && ctx.Err() == nil {
			logging.L().Warnf("[Speech] %s failed: %v", s.engine.Name(), err)
		}
	}()
}

// Cancel 停止正在读的句子
func (s *Speaker) Cancel() {
	s.mu.Lock()
	s.cancelLocked()
	s.mu.Unlock()
}

func (s *Speaker) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Wait 等待所有已开始的句子结束
func (s *Speaker) Wait() {
	s.wg.Wait()
}

// Close 停止朗读并等待后台任务退出；之后的 Speak 不再生效
func (s *Speaker) Close() {
	s.mu.Lock()
	s.closed = true
	s.cancelLocked()
	s.mu.Unlock()
	s.wg.Wait()
}

// SelectVoice 按关键字挑选声音，英语声音优先
//
// 顺序：匹配关键字的英语声音 -> 匹配关键字的任意声音 -> 第一个英语声音 -> 第一个声音。
// 语言未知的声音按英语对待。列表为空时返回 false。
func SelectVoice(voices []Voice, hints []string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}
	if v, ok := matchVoice(voices, hints, true); ok {
		return v, true
	}
	if v, ok := matchVoice(voices, hints, false); ok {
		return v, true
	}
	for _, v := range voices {
		if v.English() {
			return v, true
		}
	}
	return voices[0], true
}

func matchVoice(voices []Voice, hints []string, englishOnly bool) (Voice, bool) {
	for _, v := range voices {
		if englishOnly && !v.English() {
			continue
		}
		for _, h := range hints {
			if h != "" && strings.Contains(v.Name, h) {
				return v, true
			}
		}
	}
	return Voice{}, false
}

// English 声音是否为英语（语言未知时视为是）
func (v Voice) English() bool {
	return v.Lang == "" || strings.HasPrefix(strings.ToLower(v.Lang), "en")
}
