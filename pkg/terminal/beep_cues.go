package terminal

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/decker502/spacejellies/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// toneAmplitude 单个音符的峰值
	toneAmplitude = 0.5
	// toneFade 音符首尾淡入淡出时长
	toneFade = 10 * time.Millisecond
)

// BeepCuePlayer 用 beep 扬声器播放提示音，实现 game.CuePlayer
//
// 未初始化（无音频设备）时所有播放请求静默忽略。
type BeepCuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	settings    *game.SettingsManager
	initialized bool
}

// NewBeepCuePlayer 创建播放器；settings 可为 nil（固定音量、始终开启）
func NewBeepCuePlayer(settings *game.SettingsManager) *BeepCuePlayer {
	return &BeepCuePlayer{
		mixer:    &beep.Mixer{},
		settings: settings,
	}
}

// Initialize 打开扬声器；重复调用是安全的
func (p *BeepCuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close 清空混音器
func (p *BeepCuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// PlayCue 实现 game.CuePlayer
func (p *BeepCuePlayer) PlayCue(cue game.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	volume := 1.0
	if p.settings != nil {
		s := p.settings.GetSettings()
		if !s.SoundEnabled {
			return
		}
		volume = s.SoundVolume
	}

	tones := game.CueTones(cue)
	if len(tones) == 0 {
		log.Printf("[BeepCuePlayer] Warning: No tone defined for cue %v", cue)
		return
	}

	streamer := &effects.Volume{
		Streamer: cueStreamer(sampleRate, tones),
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 0.001)),
		Silent:   volume <= 0,
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

// cueStreamer 把音符序列串成一个有限长度的 Streamer
func cueStreamer(sr beep.SampleRate, tones []game.Tone) beep.Streamer {
	streamers := make([]beep.Streamer, 0, len(tones))
	for _, tone := range tones {
		streamers = append(streamers, newToneStreamer(sr, tone))
	}
	return beep.Seq(streamers...)
}

// toneStreamer 带线性包络的正弦音；Freq 为 0 时输出静音
type toneStreamer struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
	fade  int
}

func newToneStreamer(sr beep.SampleRate, tone game.Tone) *toneStreamer {
	return &toneStreamer{
		sr:    sr,
		freq:  tone.Freq,
		total: sr.N(tone.Duration),
		fade:  sr.N(toneFade),
	}
}

func (g *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			break
		}
		v := 0.0
		if g.freq > 0 {
			t := float64(g.pos) / float64(g.sr)
			v = math.Sin(2*math.Pi*g.freq*t) * g.envelope() * toneAmplitude
		}
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
		n++
	}
	return n, true
}

func (g *toneStreamer) Err() error {
	return nil
}

func (g *toneStreamer) envelope() float64 {
	if g.fade <= 0 {
		return 1
	}
	if g.pos < g.fade {
		return float64(g.pos) / float64(g.fade)
	}
	if remain := g.total - 1 - g.pos; remain < g.fade {
		return float64(remain) / float64(g.fade)
	}
	return 1
}
