package systems

import (
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/utils"
)

// ViewState 玩家视点
//
// 头部追踪设备由平台直接写入 Yaw；桌面和终端用方向键调用 Turn。
// Yaw 为 0 时朝向 +Z，正值向右（+X）转。
type ViewState struct {
	Origin   utils.Vec3
	Yaw      float64
	TurnRate float64
}

// NewViewState 根据配置创建视点
func NewViewState(cfg config.ViewConfig) *ViewState {
	return &ViewState{
		Origin:   cfg.Origin.Vec3(),
		Yaw:      utils.NormalizeDeg(cfg.Yaw),
		TurnRate: cfg.TurnRate,
	}
}

// Turn 按转向轴（-1 ~ 1）和 TurnRate 旋转视点
func (v *ViewState) Turn(axis, deltaTime float64) {
	if axis == 0 {
		return
	}
	v.Yaw = utils.NormalizeDeg(v.Yaw + axis*v.TurnRate*deltaTime)
}

// ViewOrigin 实现 ViewProvider
func (v *ViewState) ViewOrigin() utils.Vec3 {
	return v.Origin
}

// ViewDirection 实现 ViewProvider
func (v *ViewState) ViewDirection() utils.Vec3 {
	return utils.RotateY(utils.Vec3{Z: 1}, -v.Yaw)
}

// PlanarToWorld 把视点坐标系下的平面位移（dx 向右，dy 向前）转换到世界 XZ 平面
func PlanarToWorld(view ViewProvider, dx, dy float64) utils.Vec3 {
	forward := view.ViewDirection()
	forward.Y = 0
	forward = forward.Normalized()
	right := utils.RotateY(forward, -90)
	return right.Scale(dx).Add(forward.Scale(dy))
}
