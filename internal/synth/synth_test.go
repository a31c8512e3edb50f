package synth

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(48000)

func TestOscillatorLength(t *testing.T) {
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, testRate)

	samples := make([][2]float64, 1000)
	n, ok := osc.Stream(samples)
	if !ok || n != 480 {
		t.Fatalf("Stream() = (%d, %v), want (480, true)", n, ok)
	}
	n, ok = osc.Stream(samples)
	if ok || n != 0 {
		t.Errorf("drained oscillator Stream() = (%d, %v), want (0, false)", n, ok)
	}
}

func TestOscillatorRange(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle, WaveNoise} {
		osc := NewSweep(200, 2000, 20*time.Millisecond, wave, testRate)
		samples := make([][2]float64, 960)
		n, _ := osc.Stream(samples)
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Fatalf("wave %d sample %d out of range: %f", wave, i, samples[i][0])
			}
			if samples[i][0] != samples[i][1] {
				t.Fatalf("wave %d sample %d channels differ", wave, i)
			}
		}
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	osc := NewOscillator(100, 100*time.Millisecond, WaveSquare, testRate)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, testRate)

	samples := make([][2]float64, testRate.N(100*time.Millisecond))
	n, _ := env.Stream(samples)
	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 (attack)", samples[0][0])
	}
	mid := n / 2
	if samples[mid][0] != 1 && samples[mid][0] != -1 {
		t.Errorf("sustain sample = %f, want full volume", samples[mid][0])
	}
}

func TestRenderEffects(t *testing.T) {
	tests := []struct {
		name     string
		streamer beep.Streamer
		minLen   time.Duration
	}{
		{"chirp", Chirp(testRate), 200 * time.Millisecond},
		{"whoosh", Whoosh(testRate), 400 * time.Millisecond},
		{"fanfare", Fanfare(testRate), 900 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm := Render(tt.streamer, testRate)
			if len(pcm)%4 != 0 {
				t.Fatalf("PCM length %d is not a whole number of stereo frames", len(pcm))
			}
			frames := len(pcm) / 4
			if frames < testRate.N(tt.minLen) {
				t.Errorf("rendered %d frames, want at least %d", frames, testRate.N(tt.minLen))
			}
			if frames > testRate.N(maxEffectLength) {
				t.Errorf("rendered %d frames, exceeds cap %d", frames, testRate.N(maxEffectLength))
			}

			var peak int16
			for i := 0; i+1 < len(pcm); i += 2 {
				v := int16(binary.LittleEndian.Uint16(pcm[i:]))
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
			if peak == 0 {
				t.Error("effect is silent")
			}
		})
	}
}

func TestRenderCapsEndlessStreamer(t *testing.T) {
	endless := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.5, 0.5}
		}
		return len(samples), true
	})
	pcm := Render(endless, testRate)
	if got, want := len(pcm)/4, testRate.N(maxEffectLength); got != want {
		t.Errorf("rendered %d frames, want %d", got, want)
	}
}

func TestToInt16Clips(t *testing.T) {
	if toInt16(2) != 32767 || toInt16(-2) != -32767 || toInt16(0) != 0 {
		t.Error("toInt16 should clip to ±32767")
	}
}
