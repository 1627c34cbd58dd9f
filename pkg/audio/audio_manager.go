// Package audio 在 ebiten 音频上下文上播放合成的提示音。
package audio

import (
	"log"

	"github.com/decker502/spacejellies/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// AudioManager 提示音播放器
// 职责：
//   - 按需合成每种提示音的 PCM 并缓存播放器
//   - 从 SettingsManager 读取音量和开关
//
// 实现 game.CuePlayer，可直接注入 gameplay.Match。
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager
	soundPlayers    map[game.Cue]*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文；nil 时所有播放请求被忽略
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[game.Cue]*audio.Player),
	}
}

// PlayCue 实现 game.CuePlayer
func (am *AudioManager) PlayCue(cue game.Cue) {
	am.Play(cue)
}

// Play 播放提示音，返回是否真正开始播放
func (am *AudioManager) Play(cue game.Cue) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(cue)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind cue %v: %v", cue, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音量并同步到所有已创建的播放器
// 需要调用 SettingsManager.Save() 持久化
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	v := am.getSoundVolume()
	for _, player := range am.soundPlayers {
		player.SetVolume(v)
	}
}

// GetSoundVolume 当前音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// getSoundPlayer 获取或合成提示音播放器
func (am *AudioManager) getSoundPlayer(cue game.Cue) *audio.Player {
	if player, ok := am.soundPlayers[cue]; ok {
		return player
	}
	if am.context == nil {
		return nil
	}

	tones := game.CueTones(cue)
	if len(tones) == 0 {
		log.Printf("[AudioManager] Warning: No tone defined for cue %v", cue)
		return nil
	}

	player := am.context.NewPlayerFromBytes(synthesize(am.context.SampleRate(), tones))
	am.soundPlayers[cue] = player
	return player
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().SoundVolume
}
