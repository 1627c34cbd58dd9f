package components

// TargetComponent 标识实体为可被水母击中的目标
type TargetComponent struct {
	// Radius 碰撞半径（世界单位）
	Radius float64

	// Hits 被击中次数（仅用于展示）
	Hits int
}
