// Package terminal 是水母投掷的终端前端：tcell 负责输入和绘制，beep 负责提示音。
//
// 终端没有触摸屏，鼠标左键拖拽和 WASD 键盘“虚拟手指”都会被翻译成
// input.TouchEvent，核心逻辑与桌面、移动端完全一致。
package terminal

import (
	"github.com/decker502/spacejellies/pkg/input"
	"github.com/gdamore/tcell/v2"
)

const (
	// cellPixelsX / cellPixelsY 一个字符格折算的像素，使鼠标拖拽与桌面端灵敏度接近
	cellPixelsX = 8.0
	cellPixelsY = 16.0

	// keyDragStep 每次 WASD 按键移动虚拟手指的像素
	keyDragStep = 10.0

	// turnHoldFrames 终端收不到按键抬起，方向键每按一次转向持续的帧数
	turnHoldFrames = 8

	// KeyFingerID 键盘虚拟手指使用的 FingerID
	KeyFingerID = -2
)

// Source 把 tcell 事件翻译成 input 事件，实现 input.Source
//
// Feed 与 Poll 须在同一个 goroutine 中调用（主循环）。
type Source struct {
	pending []tcell.Event

	mouseDown bool

	keyAiming  bool
	keyX, keyY float64

	turn       float64
	turnFrames int
}

// NewSource 创建终端输入源
func NewSource() *Source {
	return &Source{}
}

// Feed 缓存一个事件，下一次 Poll 时分发
func (s *Source) Feed(ev tcell.Event) {
	s.pending = append(s.pending, ev)
}

// Poll 实现 input.Source
func (s *Source) Poll(d *input.Dispatcher) float64 {
	for _, ev := range s.pending {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			s.handleKey(d, ev)
		case *tcell.EventMouse:
			s.handleMouse(d, ev)
		}
	}
	s.pending = s.pending[:0]

	if s.turnFrames <= 0 {
		return 0
	}
	s.turnFrames--
	return s.turn
}

func (s *Source) handleKey(d *input.Dispatcher, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		d.DispatchTrigger()
		return
	case tcell.KeyLeft:
		s.turn, s.turnFrames = -1, turnHoldFrames
		return
	case tcell.KeyRight:
		s.turn, s.turnFrames = 1, turnHoldFrames
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case ' ':
		d.DispatchTrigger()
	case 'w', 'W':
		s.keyDrag(d, 0, keyDragStep)
	case 's', 'S':
		s.keyDrag(d, 0, -keyDragStep)
	case 'a', 'A':
		s.keyDrag(d, -keyDragStep, 0)
	case 'd', 'D':
		s.keyDrag(d, keyDragStep, 0)
	case 'f', 'F':
		if s.keyAiming {
			s.keyAiming = false
			d.DispatchTouch(input.TouchEvent{FingerID: KeyFingerID, Phase: input.TouchUp, X: s.keyX, Y: s.keyY})
		}
	}
}

// keyDrag 第一次按键时按下虚拟手指，之后每次按键移动一步
func (s *Source) keyDrag(d *input.Dispatcher, dx, dy float64) {
	if !s.keyAiming {
		s.keyAiming = true
		s.keyX, s.keyY = 0, 0
		d.DispatchTouch(input.TouchEvent{FingerID: KeyFingerID, Phase: input.TouchDown})
	}
	s.keyX += dx
	s.keyY += dy
	d.DispatchTouch(input.TouchEvent{FingerID: KeyFingerID, Phase: input.TouchMove, X: s.keyX, Y: s.keyY})
}

func (s *Source) handleMouse(d *input.Dispatcher, ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x := float64(cx) * cellPixelsX
	y := -float64(cy) * cellPixelsY // 向上为正

	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !s.mouseDown:
		s.mouseDown = true
		d.DispatchTouch(input.TouchEvent{FingerID: input.MouseFingerID, Phase: input.TouchDown, X: x, Y: y})
	case pressed:
		d.DispatchTouch(input.TouchEvent{FingerID: input.MouseFingerID, Phase: input.TouchMove, X: x, Y: y})
	case s.mouseDown:
		s.mouseDown = false
		d.DispatchTouch(input.TouchEvent{FingerID: input.MouseFingerID, Phase: input.TouchUp, X: x, Y: y})
	}
}

// IsQuitKey Esc、Ctrl+C 或 q 退出
func IsQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
