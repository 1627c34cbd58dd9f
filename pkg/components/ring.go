package components

import (
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/utils"
)

// SlotState 环上槽位的状态
type SlotState int

const (
	// SlotEmpty 槽位为空
	SlotEmpty SlotState = iota
	// SlotGrowing 槽位中的水母正在生长
	SlotGrowing
	// SlotIdleLoaded 水母已长成，可以被拾取
	SlotIdleLoaded
)

// String 返回状态名称（用于日志）
func (s SlotState) String() string {
	switch s {
	case SlotEmpty:
		return "Empty"
	case SlotGrowing:
		return "Growing"
	case SlotIdleLoaded:
		return "IdleLoaded"
	default:
		return "Unknown"
	}
}

// RecruitSlot 环上的一个固定位置，以及当前在其中生长或等待的水母
type RecruitSlot struct {
	// Index 槽位下标（0 ~ N-1）
	Index int

	// BaseAngle 槽位相对环的固定角度（度），构造后不再改变
	BaseAngle float64

	// State 槽位状态
	State SlotState

	// ProjectileID 当前持有的水母实体；0 表示没有
	ProjectileID ecs.EntityID

	// Spawned 该槽位累计生成过的水母数量
	Spawned int
}

// RingComponent 围绕玩家旋转的水母环
//
// 槽位之间的角间距固定为 360/N，只有整体旋转偏移 Rotation 随时间变化。
type RingComponent struct {
	// Pivot 环的中心
	Pivot utils.Vec3

	// Radius 槽位到中心的距离
	Radius float64

	// Rotation 整体旋转偏移（度，0 ~ 360）
	Rotation float64

	// Slots 槽位列表，数量在构造时确定
	Slots []RecruitSlot
}
