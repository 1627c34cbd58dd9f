package game

import "time"

// Cue 一次性提示音的种类
type Cue int

const (
	// CueSessionStart 会话开始
	CueSessionStart Cue = iota
	// CueSessionEnd 会话结束
	CueSessionEnd
	// CueLaunch 水母发射
	CueLaunch
)

// String 返回提示音名称（用于日志）
func (c Cue) String() string {
	switch c {
	case CueSessionStart:
		return "SessionStart"
	case CueSessionEnd:
		return "SessionEnd"
	case CueLaunch:
		return "Launch"
	default:
		return "Unknown"
	}
}

// CuePlayer 音频协作方
// PlayCue 只负责触发，不等待播放完成，也不返回错误
type CuePlayer interface {
	PlayCue(cue Cue)
}

// NopCuePlayer 不发声的 CuePlayer（无音频设备或无头运行时使用）
type NopCuePlayer struct{}

// PlayCue 什么都不做
func (NopCuePlayer) PlayCue(Cue) {}

// Tone 提示音中的一个正弦音符；Freq 为 0 表示静音
type Tone struct {
	Freq     float64
	Duration time.Duration
}

// cueTones 每种提示音的音符序列，桌面端和终端的播放器共用
var cueTones = map[Cue][]Tone{
	CueSessionStart: {{Freq: 660, Duration: 120 * time.Millisecond}, {Freq: 880, Duration: 180 * time.Millisecond}},
	CueSessionEnd:   {{Freq: 880, Duration: 150 * time.Millisecond}, {Freq: 660, Duration: 150 * time.Millisecond}, {Freq: 440, Duration: 300 * time.Millisecond}},
	CueLaunch:       {{Freq: 520, Duration: 80 * time.Millisecond}},
}

// CueTones 返回提示音的音符序列；未知提示音返回 nil
func CueTones(cue Cue) []Tone {
	return cueTones[cue]
}
