package systems

import (
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/utils"
)

// PhysicsCollaborator 玩法系统对物理的全部需求
// 由 PhysicsSystem 实现；测试中可替换为记录调用的假实现
type PhysicsCollaborator interface {
	// SetKinematic 开关物理驱动；kinematic 为 true 时物理不移动该实体
	SetKinematic(id ecs.EntityID, kinematic bool)
	// ApplyImpulse 施加一次性冲量（单位质量）
	ApplyImpulse(id ecs.EntityID, impulse utils.Vec3)
	// RemoveBody 移除刚体
	RemoveBody(id ecs.EntityID)
}

// ScoreSink 计分接收方（由 game.SessionClock 实现）
type ScoreSink interface {
	ApplyScore(delta int)
}

// ViewProvider 只读的视点查询
type ViewProvider interface {
	ViewOrigin() utils.Vec3
	// ViewDirection 水平面内的单位朝向
	ViewDirection() utils.Vec3
}
