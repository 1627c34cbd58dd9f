package components

// ProjectileState 水母（可投掷物）的生命周期状态
type ProjectileState int

const (
	// ProjectileGrowing 在环上槽位中生长
	ProjectileGrowing ProjectileState = iota
	// ProjectileLoaded 生长完成，等待拾取或已装入弹弓
	ProjectileLoaded
	// ProjectileInFlight 已发射，飞行倒计时中
	ProjectileInFlight
	// ProjectileExpired 倒计时结束未命中
	ProjectileExpired
	// ProjectileScored 飞行中命中目标
	ProjectileScored
	// ProjectileDestroyed 已销毁（终态）
	ProjectileDestroyed
)

// String 返回状态名称（用于日志）
func (s ProjectileState) String() string {
	switch s {
	case ProjectileGrowing:
		return "Growing"
	case ProjectileLoaded:
		return "Loaded"
	case ProjectileInFlight:
		return "InFlight"
	case ProjectileExpired:
		return "Expired"
	case ProjectileScored:
		return "Scored"
	case ProjectileDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// IsTerminal 是否为终态（过期、得分或已销毁）
func (s ProjectileState) IsTerminal() bool {
	return s == ProjectileExpired || s == ProjectileScored || s == ProjectileDestroyed
}

// ProjectileOwner 水母当前的所有者
type ProjectileOwner int

const (
	// OwnerSlot 由环上槽位持有
	OwnerSlot ProjectileOwner = iota
	// OwnerTossController 由弹弓控制器持有（装填中或已就绪）
	OwnerTossController
	// OwnerNone 已发射，无所有者，仅由自身倒计时追踪
	OwnerNone
)

// ProjectileComponent 标识实体为水母
type ProjectileComponent struct {
	// Kind 水母种类（来自配置目录）
	Kind string

	// State 生命周期状态
	State ProjectileState

	// Owner 当前所有者
	Owner ProjectileOwner

	// SlotIndex 生成该水母的槽位下标
	SlotIndex int
}
