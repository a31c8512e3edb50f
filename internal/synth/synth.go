// Package synth 合成游戏音效
//
// 音效由振荡器和包络拼成 beep.Streamer，再用 Render 渲染成
// 16 位小端立体声 PCM，交给 ebiten 的音频上下文播放。
package synth

import (
	"encoding/binary"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType 振荡器波形
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// maxEffectLength 单个音效的最长时长，Render 以此截断
const maxEffectLength = 3 * time.Second

// oscillator 产生频率从 from 线性滑到 to 的波形
type oscillator struct {
	from, to float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator 固定频率振荡器
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep 扫频振荡器
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(from*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.from + (o.to-o.from)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 起音/释音包络
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope 对 s 施加线性起音和释音
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// note 带包络的单音
func note(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, duration, wave, rate)
	return NewEnvelope(osc, duration, 5*time.Millisecond, duration/2, rate)
}

// withVolume 线性音量，0 为静音
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Chirp 小鸟的两声啾啾（到站）
func Chirp(rate beep.SampleRate) beep.Streamer {
	one := func() beep.Streamer {
		d := 90 * time.Millisecond
		return NewEnvelope(NewSweep(1800, 3200, d, WaveSine, rate), d, 5*time.Millisecond, 40*time.Millisecond, rate)
	}
	return withVolume(beep.Seq(one(), beep.Silence(rate.N(60*time.Millisecond)), one()), 0.6)
}

// Whoosh 出发时的风声
func Whoosh(rate beep.SampleRate) beep.Streamer {
	d := 450 * time.Millisecond
	noise := NewEnvelope(NewOscillator(1, d, WaveNoise, rate), d, 150*time.Millisecond, 250*time.Millisecond, rate)
	rumble := NewEnvelope(NewSweep(120, 60, d, WaveTriangle, rate), d, 100*time.Millisecond, 300*time.Millisecond, rate)
	return beep.Mix(withVolume(noise, 0.25), withVolume(rumble, 0.4))
}

// Fanfare 完成全部字母时的上行琶音 C5-E5-G5-C6
func Fanfare(rate beep.SampleRate) beep.Streamer {
	short := 140 * time.Millisecond
	long := 500 * time.Millisecond
	melody := beep.Seq(
		note(523.25, short, WaveSquare, rate),
		note(659.25, short, WaveSquare, rate),
		note(783.99, short, WaveSquare, rate),
		note(1046.50, long, WaveSquare, rate),
	)
	return withVolume(melody, 0.3)
}

// Render 将 s 渲染为 16 位小端立体声 PCM，超出上限的部分被截断
func Render(s beep.Streamer, rate beep.SampleRate) []byte {
	limited := beep.Take(rate.N(maxEffectLength), s)

	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := limited.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][ch])))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
