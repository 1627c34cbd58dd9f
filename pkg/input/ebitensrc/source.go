// Package ebitensrc 把 ebiten 的触摸、鼠标和键盘输入转换成 input 事件。
//
// 单独成包，使 input 包本身不依赖 ebiten，终端和无头构建无需链接图形库。
package ebitensrc

import (
	"slices"

	"github.com/decker502/spacejellies/pkg/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TriggerTouchCount 同时触摸多少根手指视为开始手势
const TriggerTouchCount = 3

type point struct {
	x, y float64
}

// Source 从 ebiten 读取触摸、鼠标和键盘输入
//
// 鼠标左键模拟一根手指（input.MouseFingerID）；Enter/Space 等同开始手势；
// 左右方向键（或 A/D）控制视角转向。
type Source struct {
	touches   map[ebiten.TouchID]point
	mouseDown bool
	mouseLast point
}

// NewSource 创建 ebiten 输入源
func NewSource() *Source {
	return &Source{
		touches: make(map[ebiten.TouchID]point),
	}
}

// Poll 实现 input.Source
func (s *Source) Poll(d *input.Dispatcher) float64 {
	active := ebiten.AppendTouchIDs(nil)
	justPressed := inpututil.AppendJustPressedTouchIDs(nil)

	if (len(active) >= TriggerTouchCount && len(justPressed) > 0) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d.DispatchTrigger()
	}

	s.pollTouches(d, active, justPressed)
	s.pollMouse(d)

	turn := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		turn -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		turn += 1
	}
	return turn
}

func (s *Source) pollTouches(d *input.Dispatcher, active, justPressed []ebiten.TouchID) {
	for _, id := range justPressed {
		p := touchPoint(id)
		s.touches[id] = p
		d.DispatchTouch(input.TouchEvent{FingerID: int(id), Phase: input.TouchDown, X: p.x, Y: p.y})
	}

	for _, id := range active {
		if slices.Contains(justPressed, id) {
			continue
		}
		p := touchPoint(id)
		phase := input.TouchHeld
		if last, ok := s.touches[id]; !ok || last != p {
			phase = input.TouchMove
		}
		s.touches[id] = p
		d.DispatchTouch(input.TouchEvent{FingerID: int(id), Phase: phase, X: p.x, Y: p.y})
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		p, ok := s.touches[id]
		if !ok {
			continue
		}
		delete(s.touches, id)
		d.DispatchTouch(input.TouchEvent{FingerID: int(id), Phase: input.TouchUp, X: p.x, Y: p.y})
	}
}

func (s *Source) pollMouse(d *input.Dispatcher) {
	// 有真实触摸时忽略鼠标（部分平台会把触摸同时报告为鼠标）
	if len(s.touches) > 0 {
		return
	}

	cx, cy := ebiten.CursorPosition()
	p := point{x: float64(cx), y: -float64(cy)}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.mouseDown = true
		d.DispatchTouch(input.TouchEvent{FingerID: input.MouseFingerID, Phase: input.TouchDown, X: p.x, Y: p.y})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if s.mouseDown {
			s.mouseDown = false
			d.DispatchTouch(input.TouchEvent{FingerID: input.MouseFingerID, Phase: input.TouchUp, X: p.x, Y: p.y})
		}
	case s.mouseDown && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		phase := input.TouchHeld
		if p != s.mouseLast {
			phase = input.TouchMove
		}
		d.DispatchTouch(input.TouchEvent{FingerID: input.MouseFingerID, Phase: phase, X: p.x, Y: p.y})
	}
	s.mouseLast = p
}

// touchPoint 读取触摸位置并翻转 Y 轴
func touchPoint(id ebiten.TouchID) point {
	x, y := ebiten.TouchPosition(id)
	return point{x: float64(x), y: -float64(y)}
}
