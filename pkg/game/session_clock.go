package game

import (
	"errors"
	"log"

	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/utils"
)

var (
	// ErrSessionRunning 会话进行中再次调用 Start
	ErrSessionRunning = errors.New("session already running")
	// ErrSessionEnded 会话已结束，需要先 Rearm 才能重新开始
	ErrSessionEnded = errors.New("session ended, rearm before starting again")
)

// SessionPhase 会话阶段
type SessionPhase int

const (
	// SessionIdle 等待开始
	SessionIdle SessionPhase = iota
	// SessionRunning 计时中，允许计分
	SessionRunning
	// SessionEnded 时间耗尽
	SessionEnded
)

// String 返回阶段名称（用于日志）
func (p SessionPhase) String() string {
	switch p {
	case SessionIdle:
		return "Idle"
	case SessionRunning:
		return "Running"
	case SessionEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// SessionListener 接收会话开始/结束信号
type SessionListener interface {
	OnSessionStart()
	OnSessionEnd(finalScore int)
}

// SessionClock 一局游戏的计时与计分
//
// 阶段流转：Idle -> Running -> Ended，Ended 只能经 Rearm 回到 Idle。
// 剩余时间按整秒递减，显示 0 之后再过一秒才结束；剩余时间为 0 时不再计分。
type SessionClock struct {
	lengthSeconds int
	score         int
	timeLeft      int
	phase         SessionPhase
	ticker        utils.SecondTicker

	presenter Presenter
	cues      CuePlayer
	listeners []SessionListener
}

// NewSessionClock 创建会话时钟
// presenter 和 cues 可为 nil
func NewSessionClock(cfg config.SessionConfig, presenter Presenter, cues CuePlayer) *SessionClock {
	if cues == nil {
		cues = NopCuePlayer{}
	}
	sc := &SessionClock{
		lengthSeconds: cfg.LengthSeconds,
		timeLeft:      cfg.LengthSeconds,
		phase:         SessionIdle,
		presenter:     presenter,
		cues:          cues,
	}
	sc.pushScore()
	sc.pushVisibility()
	return sc
}

// AddListener 注册会话信号监听者
func (sc *SessionClock) AddListener(listener SessionListener) {
	sc.listeners = append(sc.listeners, listener)
}

// Start 开始一局
// 只能从 Idle 开始：进行中返回 ErrSessionRunning，已结束返回 ErrSessionEnded，状态都不变
func (sc *SessionClock) Start() error {
	switch sc.phase {
	case SessionRunning:
		return ErrSessionRunning
	case SessionEnded:
		return ErrSessionEnded
	}

	sc.score = 0
	sc.timeLeft = sc.lengthSeconds
	sc.ticker.Reset()
	sc.phase = SessionRunning

	sc.pushScore()
	sc.pushTime()
	sc.pushVisibility()
	sc.cues.PlayCue(CueSessionStart)
	log.Printf("[SessionClock] Session started (%d seconds)", sc.lengthSeconds)

	for _, l := range sc.listeners {
		l.OnSessionStart()
	}
	return nil
}

// Rearm 把已结束的会话重置为 Idle，返回是否发生了重置
func (sc *SessionClock) Rearm() bool {
	if sc.phase != SessionEnded {
		return false
	}
	sc.phase = SessionIdle
	sc.timeLeft = sc.lengthSeconds
	sc.ticker.Reset()
	sc.pushVisibility()
	log.Printf("[SessionClock] Session rearmed")
	return true
}

// Update 推进倒计时（仅 Running 阶段）
func (sc *SessionClock) Update(deltaTime float64) {
	if sc.phase != SessionRunning {
		return
	}

	ticks := sc.ticker.Advance(deltaTime)
	for i := 0; i < ticks; i++ {
		if sc.timeLeft == 0 {
			sc.end()
			return
		}
		sc.timeLeft--
		sc.pushTime()
	}
}

// end Running -> Ended，结束信号只发一次
func (sc *SessionClock) end() {
	sc.phase = SessionEnded
	sc.timeLeft = 0
	sc.pushTime()
	sc.pushVisibility()
	sc.cues.PlayCue(CueSessionEnd)
	log.Printf("[SessionClock] Time up, final score %d", sc.score)

	for _, l := range sc.listeners {
		l.OnSessionEnd(sc.score)
	}
}

// ApplyScore 计分
// 只有剩余时间大于 0 时生效；Idle、Ended 或最后一秒的分数被静默丢弃
func (sc *SessionClock) ApplyScore(delta int) {
	if sc.phase != SessionRunning || sc.timeLeft <= 0 {
		return
	}
	sc.score += delta
	sc.pushScore()
}

// Score 当前分数（可能为负）
func (sc *SessionClock) Score() int {
	return sc.score
}

// TimeLeft 剩余秒数（不会为负）
func (sc *SessionClock) TimeLeft() int {
	return sc.timeLeft
}

// Phase 当前阶段
func (sc *SessionClock) Phase() SessionPhase {
	return sc.phase
}

// IsRunning 是否处于计时阶段
func (sc *SessionClock) IsRunning() bool {
	return sc.phase == SessionRunning
}

func (sc *SessionClock) pushScore() {
	if sc.presenter != nil {
		sc.presenter.SetScoreText(FormatScore(sc.score))
	}
}

func (sc *SessionClock) pushTime() {
	if sc.presenter != nil {
		sc.presenter.SetTimeText(FormatTime(sc.timeLeft))
	}
}

func (sc *SessionClock) pushVisibility() {
	if sc.presenter != nil {
		running := sc.phase == SessionRunning
		sc.presenter.SetPhaseVisibility(!running, running)
	}
}
