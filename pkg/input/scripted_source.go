package input

// ScriptStep 脚本中的一帧输入
type ScriptStep struct {
	Touches []TouchEvent
	Trigger bool
	Turn    float64
}

// ScriptedSource 按帧回放预先录好的输入，用于无头模拟和测试
//
// 脚本播放完后 Poll 不再产生任何事件。
type ScriptedSource struct {
	steps []ScriptStep
	frame int
}

// NewScriptedSource 创建脚本输入源
func NewScriptedSource(steps ...ScriptStep) *ScriptedSource {
	return &ScriptedSource{steps: steps}
}

// Append 在脚本末尾追加帧
func (s *ScriptedSource) Append(steps ...ScriptStep) {
	s.steps = append(s.steps, steps...)
}

// Idle 追加 n 个空帧
func (s *ScriptedSource) Idle(n int) {
	for i := 0; i < n; i++ {
		s.steps = append(s.steps, ScriptStep{})
	}
}

// Done 脚本是否已播放完
func (s *ScriptedSource) Done() bool {
	return s.frame >= len(s.steps)
}

// Poll 实现 Source
func (s *ScriptedSource) Poll(d *Dispatcher) float64 {
	if s.Done() {
		return 0
	}
	step := s.steps[s.frame]
	s.frame++

	if step.Trigger {
		d.DispatchTrigger()
	}
	for _, ev := range step.Touches {
		d.DispatchTouch(ev)
	}
	return step.Turn
}

// Drag 生成一次完整的拖拽手势：按下、若干次移动、抬起
// 每次移动位移为 (dx, dy) / moves，每个事件占一帧
func Drag(fingerID int, x, y, dx, dy float64, moves int) []ScriptStep {
	if moves < 1 {
		moves = 1
	}
	steps := []ScriptStep{{Touches: []TouchEvent{{FingerID: fingerID, Phase: TouchDown, X: x, Y: y}}}}
	stepX, stepY := dx/float64(moves), dy/float64(moves)
	for i := 1; i <= moves; i++ {
		steps = append(steps, ScriptStep{Touches: []TouchEvent{{
			FingerID: fingerID,
			Phase:    TouchMove,
			X:        x + stepX*float64(i),
			Y:        y + stepY*float64(i),
		}}})
	}
	steps = append(steps, ScriptStep{Touches: []TouchEvent{{FingerID: fingerID, Phase: TouchUp, X: x + dx, Y: y + dy}}})
	return steps
}
