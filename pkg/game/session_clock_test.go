package game

import (
	"errors"
	"testing"

	"github.com/decker502/spacejellies/pkg/config"
)

// recordingCues 记录播放过的提示音
type recordingCues struct {
	played []Cue
}

func (r *recordingCues) PlayCue(cue Cue) {
	r.played = append(r.played, cue)
}

func (r *recordingCues) count(cue Cue) int {
	n := 0
	for _, c := range r.played {
		if c == cue {
			n++
		}
	}
	return n
}

// countingListener 统计会话信号次数
type countingListener struct {
	starts     int
	ends       int
	finalScore int
}

func (l *countingListener) OnSessionStart() {
	l.starts++
}

func (l *countingListener) OnSessionEnd(finalScore int) {
	l.ends++
	l.finalScore = finalScore
}

func newTestClock(length int) (*SessionClock, *HUDState, *recordingCues, *countingListener) {
	hud := NewHUDState()
	cues := &recordingCues{}
	clock := NewSessionClock(config.SessionConfig{
		LengthSeconds: length,
		HitScore:      100,
		MissPenalty:   10,
	}, hud, cues)
	listener := &countingListener{}
	clock.AddListener(listener)
	return clock, hud, cues, listener
}

func TestSessionClockStart(t *testing.T) {
	clock, hud, cues, listener := newTestClock(120)

	if clock.Phase() != SessionIdle {
		t.Fatalf("Expected Idle before start, got %v", clock.Phase())
	}
	if !hud.InstructionsVisible || hud.TimerVisible {
		t.Errorf("Expected instructions visible and timer hidden before start")
	}

	if err := clock.Start(); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}

	if clock.Phase() != SessionRunning {
		t.Errorf("Expected Running, got %v", clock.Phase())
	}
	if clock.TimeLeft() != 120 {
		t.Errorf("Expected 120 seconds left, got %d", clock.TimeLeft())
	}
	if hud.TimeText != "Time: 120" {
		t.Errorf("Expected time text %q, got %q", "Time: 120", hud.TimeText)
	}
	if hud.InstructionsVisible || !hud.TimerVisible {
		t.Errorf("Expected instructions hidden and timer visible while running")
	}
	if listener.starts != 1 {
		t.Errorf("Expected 1 start signal, got %d", listener.starts)
	}
	if cues.count(CueSessionStart) != 1 {
		t.Errorf("Expected 1 start cue, got %d", cues.count(CueSessionStart))
	}
}

func TestSessionClockDoubleStart(t *testing.T) {
	clock, _, _, listener := newTestClock(10)
	_ = clock.Start()
	clock.ApplyScore(100)
	clock.Update(3.0)

	err := clock.Start()
	if !errors.Is(err, ErrSessionRunning) {
		t.Fatalf("Expected ErrSessionRunning, got %v", err)
	}
	if clock.Score() != 100 {
		t.Errorf("Expected score unchanged at 100, got %d", clock.Score())
	}
	if clock.TimeLeft() != 7 {
		t.Errorf("Expected 7 seconds left, got %d", clock.TimeLeft())
	}
	if listener.starts != 1 {
		t.Errorf("Expected no second start signal, got %d", listener.starts)
	}
}

func TestSessionClockCountdownAndEnd(t *testing.T) {
	clock, hud, cues, listener := newTestClock(3)
	_ = clock.Start()

	// 以 0.25 秒步长推进 3 秒：3 -> 0，仍在进行
	for i := 0; i < 12; i++ {
		clock.Update(0.25)
	}
	if clock.TimeLeft() != 0 {
		t.Errorf("Expected 0 seconds left after 3s, got %d", clock.TimeLeft())
	}
	if clock.Phase() != SessionRunning {
		t.Errorf("Expected still Running while showing 0, got %v", clock.Phase())
	}

	// 再一秒后结束
	clock.Update(1.0)
	if clock.Phase() != SessionEnded {
		t.Fatalf("Expected Ended, got %v", clock.Phase())
	}
	if hud.TimeText != "Time: 0" {
		t.Errorf("Expected time text %q, got %q", "Time: 0", hud.TimeText)
	}
	if !hud.InstructionsVisible || hud.TimerVisible {
		t.Errorf("Expected instructions visible and timer hidden after end")
	}

	// 继续推进不会重复发送结束信号，剩余时间不为负
	clock.Update(5.0)
	if listener.ends != 1 {
		t.Errorf("Expected exactly 1 end signal, got %d", listener.ends)
	}
	if cues.count(CueSessionEnd) != 1 {
		t.Errorf("Expected exactly 1 end cue, got %d", cues.count(CueSessionEnd))
	}
	if clock.TimeLeft() != 0 {
		t.Errorf("Expected time left clamped to 0, got %d", clock.TimeLeft())
	}
}

func TestSessionClockLargeDeltaEndsOnce(t *testing.T) {
	clock, _, _, listener := newTestClock(2)
	_ = clock.Start()

	clock.Update(10.0)

	if clock.Phase() != SessionEnded {
		t.Errorf("Expected Ended, got %v", clock.Phase())
	}
	if listener.ends != 1 {
		t.Errorf("Expected 1 end signal, got %d", listener.ends)
	}
}

func TestSessionClockApplyScore(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(c *SessionClock)
		delta    int
		expected int
	}{
		{
			name:     "idle ignores score",
			setup:    func(c *SessionClock) {},
			delta:    100,
			expected: 0,
		},
		{
			name:     "running adds hit",
			setup:    func(c *SessionClock) { _ = c.Start() },
			delta:    100,
			expected: 100,
		},
		{
			name:     "running allows negative total",
			setup:    func(c *SessionClock) { _ = c.Start() },
			delta:    -10,
			expected: -10,
		},
		{
			name: "zero time left ignores score",
			setup: func(c *SessionClock) {
				_ = c.Start()
				c.Update(5.0)
			},
			delta:    100,
			expected: 0,
		},
		{
			name: "ended ignores score",
			setup: func(c *SessionClock) {
				_ = c.Start()
				c.Update(10.0)
			},
			delta:    -10,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock, _, _, _ := newTestClock(5)
			tt.setup(clock)
			clock.ApplyScore(tt.delta)
			if clock.Score() != tt.expected {
				t.Errorf("Expected score %d, got %d", tt.expected, clock.Score())
			}
		})
	}
}

func TestSessionClockRearm(t *testing.T) {
	clock, _, _, listener := newTestClock(1)

	if clock.Rearm() {
		t.Error("Expected Rearm to be refused while Idle")
	}

	_ = clock.Start()
	clock.ApplyScore(100)
	clock.Update(2.0)

	if err := clock.Start(); !errors.Is(err, ErrSessionEnded) {
		t.Fatalf("Expected ErrSessionEnded, got %v", err)
	}
	if !clock.Rearm() {
		t.Fatal("Expected Rearm to succeed after end")
	}
	if clock.Phase() != SessionIdle {
		t.Errorf("Expected Idle after rearm, got %v", clock.Phase())
	}
	if err := clock.Start(); err != nil {
		t.Fatalf("Start() after rearm returned error: %v", err)
	}
	if clock.Score() != 0 {
		t.Errorf("Expected score reset to 0, got %d", clock.Score())
	}
	if listener.finalScore != 100 {
		t.Errorf("Expected final score 100 reported, got %d", listener.finalScore)
	}
	if listener.starts != 2 {
		t.Errorf("Expected 2 start signals, got %d", listener.starts)
	}
}

func TestSessionClockNilCollaborators(t *testing.T) {
	clock := NewSessionClock(config.SessionConfig{LengthSeconds: 1}, nil, nil)
	if err := clock.Start(); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}
	clock.ApplyScore(5)
	clock.Update(3.0)
	if clock.Phase() != SessionEnded {
		t.Errorf("Expected Ended, got %v", clock.Phase())
	}
}
