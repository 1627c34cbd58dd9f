package components

import "github.com/decker502/spacejellies/pkg/utils"

// TransformComponent 存储实体在世界中的位置、统一缩放和水平朝向
//
// 坐标系：Y 轴朝上，XZ 为水平面，玩家（视点）位于原点附近
type TransformComponent struct {
	// Position 世界坐标
	Position utils.Vec3

	// Scale 统一缩放因子（0 = 不可见，1.0 = 原始大小）
	Scale float64

	// Yaw 水平朝向角（度）
	Yaw float64
}
