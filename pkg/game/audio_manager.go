package game

import (
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音效播放
// 音量和开关读取 SettingsManager
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager // 可为 nil
	soundPlayers    map[SoundID]*audio.Player
}

// NewAudioManager 创建音频管理器
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		soundPlayers:    make(map[SoundID]*audio.Player),
	}
}

// PlaySound 播放音效，返回是否真正播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		logging.L().Warnf("[AudioManager] Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量，同时更新已缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(am.GetSoundVolume())
	}
}

// GetSoundVolume 当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// PreloadSounds 预先创建播放器，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(ids []SoundID) {
	loaded := 0
	for _, id := range ids {
		if am.getSoundPlayer(id) != nil {
			loaded++
		}
	}
	logging.L().Infof("[AudioManager] Preloaded %d/%d sounds", loaded, len(ids))
}

func (am *AudioManager) getSoundPlayer(id SoundID) *audio.Player {
	if player, ok := am.soundPlayers[id]; ok {
		return player
	}
	if am.resourceManager == nil {
		return nil
	}
	player := am.resourceManager.NewSoundPlayer(id)
	if player == nil {
		return nil
	}
	am.soundPlayers[id] = player
	return player
}
