// Package input 把前端（ebiten 窗口、移动端触摸、终端）的原始输入
// 转换成与平台无关的触摸事件和"三指开始"手势，并分发给订阅者。
package input

// TouchPhase 触摸事件阶段
type TouchPhase int

const (
	// TouchDown 手指按下
	TouchDown TouchPhase = iota
	// TouchMove 手指移动
	TouchMove
	// TouchHeld 手指按住未移动
	TouchHeld
	// TouchUp 手指抬起
	TouchUp
)

// String 返回阶段名称（用于日志）
func (p TouchPhase) String() string {
	switch p {
	case TouchDown:
		return "Down"
	case TouchMove:
		return "Move"
	case TouchHeld:
		return "Held"
	case TouchUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// MouseFingerID 鼠标左键模拟触摸时使用的手指 ID
const MouseFingerID = -1

// TouchEvent 一次触摸采样
//
// 坐标为"向上为正"的平面坐标：X 向右，Y 向上（屏幕坐标的 Y 已被翻转）。
type TouchEvent struct {
	FingerID int
	Phase    TouchPhase
	X, Y     float64
}

// TouchListener 触摸事件订阅者
type TouchListener interface {
	OnTouch(event TouchEvent)
}

// TriggerListener 开始手势（三指同时触摸）订阅者
type TriggerListener interface {
	OnTrigger()
}

// Source 前端输入源
type Source interface {
	// Poll 读取本帧输入并投递给 dispatcher，返回视角转向轴（-1 ~ 1，正值向右转）
	Poll(d *Dispatcher) float64
}
