package config

import (
	"testing"
	"time"
)

// TestLoadGameConfig 测试项目 ride.yaml 与默认值一致
func TestLoadGameConfig(t *testing.T) {
	cfg, err := LoadGameConfig("../../data/ride.yaml")
	if err != nil {
		t.Fatalf("LoadGameConfig() error: %v", err)
	}

	def := DefaultGameConfig()

	if cfg.Ride != def.Ride {
		t.Errorf("Ride = %+v, want %+v", cfg.Ride, def.Ride)
	}
	if cfg.Track != def.Track {
		t.Errorf("Track = %+v, want %+v", cfg.Track, def.Track)
	}
	if cfg.Stations != def.Stations {
		t.Errorf("Stations = %+v, want %+v", cfg.Stations, def.Stations)
	}
	if len(cfg.Palettes) != 5 {
		t.Fatalf("len(Palettes) = %d, want 5", len(cfg.Palettes))
	}
	for i := range cfg.Palettes {
		if cfg.Palettes[i] != def.Palettes[i] {
			t.Errorf("Palettes[%d] = %+v, want %+v", i, cfg.Palettes[i], def.Palettes[i])
		}
	}
	if cfg.FunFact.Timeout != 10*time.Second {
		t.Errorf("FunFact.Timeout = %v, want 10s", cfg.FunFact.Timeout)
	}
	if cfg.FunFact.Model != "gemini-2.5-flash" {
		t.Errorf("FunFact.Model = %q", cfg.FunFact.Model)
	}
	if len(cfg.Speech.VoiceHints) != 2 {
		t.Errorf("Speech.VoiceHints = %v", cfg.Speech.VoiceHints)
	}
}

// TestParseGameConfigPartialOverride 测试部分覆盖保留默认值
func TestParseGameConfigPartialOverride(t *testing.T) {
	cfg, err := ParseGameConfig([]byte("ride:\n  speed: 0.3\n"))
	if err != nil {
		t.Fatalf("ParseGameConfig() error: %v", err)
	}
	if cfg.Ride.Speed != 0.3 {
		t.Errorf("Speed = %v, want 0.3", cfg.Ride.Speed)
	}
	if cfg.Ride.ArrivalEpsilon != 0.002 {
		t.Errorf("ArrivalEpsilon = %v, want default 0.002", cfg.Ride.ArrivalEpsilon)
	}
	if cfg.Track.Radius != 30 {
		t.Errorf("Track.Radius = %v, want default 30", cfg.Track.Radius)
	}
}

// TestParseGameConfigInvalid 测试非法配置被拒绝
func TestParseGameConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero speed", "ride:\n  speed: 0\n"},
		{"start progress out of range", "ride:\n  startProgress: 1.0\n"},
		{"bad palette", "palettes:\n  - [\"#FFFFFF\"]\n"},
		{"empty palettes", "palettes: []\n"},
		{"bad bird offset", "bird:\n  offset: [1, 2]\n"},
		{"fog inverted", "fog:\n  near: 10\n  far: 5\n"},
		{"bad timeout", "funFact:\n  timeout: 0s\n"},
		{"bad fov", "camera:\n  fov: 200\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGameConfig([]byte(tt.yaml)); err == nil {
				t.Errorf("ParseGameConfig(%q) expected error", tt.yaml)
			}
		})
	}
}
