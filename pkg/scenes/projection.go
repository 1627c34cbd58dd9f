package scenes

import (
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/utils"
)

// Projection 俯视投影：视点朝向始终指向屏幕上方
type Projection struct {
	Origin        utils.Vec3
	Yaw           float64
	CenterX       float64
	CenterY       float64
	PixelsPerUnit float64
}

// NewProjection 使用布局常量创建投影
func NewProjection(origin utils.Vec3, yaw float64) Projection {
	return Projection{
		Origin:        origin,
		Yaw:           yaw,
		CenterX:       config.ViewCenterX,
		CenterY:       config.ViewCenterY,
		PixelsPerUnit: config.WorldPixelsPerUnit,
	}
}

// ToScreen 世界坐标 -> 屏幕坐标（Y 轴向下）
func (p Projection) ToScreen(world utils.Vec3) (float64, float64) {
	local := utils.RotateY(world.Sub(p.Origin), p.Yaw)
	return p.CenterX + local.X*p.PixelsPerUnit, p.CenterY - local.Z*p.PixelsPerUnit
}

// Length 世界长度 -> 像素长度
func (p Projection) Length(world float64) float64 {
	return world * p.PixelsPerUnit
}
