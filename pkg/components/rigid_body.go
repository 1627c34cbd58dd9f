package components

import "github.com/decker502/spacejellies/pkg/utils"

// RigidBodyComponent 物理协作方使用的刚体数据
//
// Kinematic 为 true 时物理不推动该实体（装填过程中）。
type RigidBodyComponent struct {
	Velocity  utils.Vec3
	Kinematic bool
	// Radius 碰撞半径（世界单位）
	Radius float64
}
