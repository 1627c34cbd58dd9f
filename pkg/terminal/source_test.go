package terminal

import (
	"testing"

	"github.com/decker502/spacejellies/pkg/input"
	"github.com/gdamore/tcell/v2"
)

type recorder struct {
	touches  []input.TouchEvent
	triggers int
}

func (r *recorder) OnTouch(event input.TouchEvent) {
	r.touches = append(r.touches, event)
}

func (r *recorder) OnTrigger() {
	r.triggers++
}

func newRecordingDispatcher() (*input.Dispatcher, *recorder) {
	d := input.NewDispatcher()
	r := &recorder{}
	d.SubscribeTouch(r)
	d.SubscribeTrigger(r)
	return d, r
}

func TestSourceTriggerKeys(t *testing.T) {
	d, r := newRecordingDispatcher()
	s := NewSource()

	s.Feed(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	s.Feed(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	s.Feed(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	s.Poll(d)

	if r.triggers != 2 {
		t.Errorf("Expected 2 triggers, got %d", r.triggers)
	}
	if len(r.touches) != 0 {
		t.Errorf("Expected no touches, got %d", len(r.touches))
	}

	// 事件只分发一次
	s.Poll(d)
	if r.triggers != 2 {
		t.Errorf("Expected pending events cleared, got %d triggers", r.triggers)
	}
}

func TestSourceTurnHoldsForFrames(t *testing.T) {
	d, _ := newRecordingDispatcher()
	s := NewSource()

	s.Feed(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	for i := 0; i < turnHoldFrames; i++ {
		if turn := s.Poll(d); turn != -1 {
			t.Fatalf("Frame %d: expected turn -1, got %v", i, turn)
		}
	}
	if turn := s.Poll(d); turn != 0 {
		t.Errorf("Expected turn to stop after %d frames, got %v", turnHoldFrames, turn)
	}

	s.Feed(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if turn := s.Poll(d); turn != 1 {
		t.Errorf("Expected turn 1, got %v", turn)
	}
}

func TestSourceKeyboardFinger(t *testing.T) {
	d, r := newRecordingDispatcher()
	s := NewSource()

	s.Feed(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	s.Feed(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	s.Feed(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	s.Feed(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	s.Poll(d)

	want := []input.TouchEvent{
		{FingerID: KeyFingerID, Phase: input.TouchDown},
		{FingerID: KeyFingerID, Phase: input.TouchMove, X: 0, Y: -keyDragStep},
		{FingerID: KeyFingerID, Phase: input.TouchMove, X: 0, Y: -2 * keyDragStep},
		{FingerID: KeyFingerID, Phase: input.TouchMove, X: keyDragStep, Y: -2 * keyDragStep},
		{FingerID: KeyFingerID, Phase: input.TouchUp, X: keyDragStep, Y: -2 * keyDragStep},
	}
	if len(r.touches) != len(want) {
		t.Fatalf("Expected %d touches, got %d: %+v", len(want), len(r.touches), r.touches)
	}
	for i := range want {
		if r.touches[i] != want[i] {
			t.Errorf("Touch %d: expected %+v, got %+v", i, want[i], r.touches[i])
		}
	}

	// 未按下时 f 不产生事件
	s.Feed(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	s.Poll(d)
	if len(r.touches) != len(want) {
		t.Errorf("Expected release without drag ignored, got %d touches", len(r.touches))
	}
}

func TestSourceMouseDrag(t *testing.T) {
	d, r := newRecordingDispatcher()
	s := NewSource()

	s.Feed(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	s.Feed(tcell.NewEventMouse(10, 8, tcell.Button1, tcell.ModNone))
	s.Feed(tcell.NewEventMouse(10, 8, tcell.ButtonNone, tcell.ModNone))
	s.Feed(tcell.NewEventMouse(12, 8, tcell.ButtonNone, tcell.ModNone))
	s.Poll(d)

	if len(r.touches) != 3 {
		t.Fatalf("Expected down/move/up, got %d touches: %+v", len(r.touches), r.touches)
	}
	phases := []input.TouchPhase{input.TouchDown, input.TouchMove, input.TouchUp}
	for i, p := range phases {
		if r.touches[i].Phase != p {
			t.Errorf("Touch %d: expected phase %v, got %v", i, p, r.touches[i].Phase)
		}
		if r.touches[i].FingerID != input.MouseFingerID {
			t.Errorf("Touch %d: expected mouse finger, got %d", i, r.touches[i].FingerID)
		}
	}

	// 向下拖拽在触摸坐标中为负
	dy := r.touches[1].Y - r.touches[0].Y
	if dy != -3*cellPixelsY {
		t.Errorf("Expected dy %v, got %v", -3*cellPixelsY, dy)
	}
}

func TestIsQuitKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
		{"w", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuitKey(tt.ev); got != tt.want {
				t.Errorf("IsQuitKey() = %v, want %v", got, tt.want)
			}
		})
	}
}
