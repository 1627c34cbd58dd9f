package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/spacejellies/pkg/components"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/utils"
)

// ErrNoTossableProjectile 槽位中没有可拾取（已长成）的水母
var ErrNoTossableProjectile = errors.New("no tossable projectile in slot")

// RingSystem 管理围绕玩家旋转的水母环及其槽位
//
// 职责：
//   - 环整体旋转，槽位角间距固定为 360/N
//   - 槽位中的水母跟随槽位移动、面向视点、按进度生长
//   - 水母被取走后立即在原槽位生成新的水母
type RingSystem struct {
	entityManager *ecs.EntityManager
	ringID        ecs.EntityID
	config        config.RingConfig
	kinds         []string
	projectile    config.ProjectileConfig
	rng           *utils.PRNG
	view          ViewProvider
}

// NewRingSystem 创建水母环实体，并在每个槽位生成第一只水母
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（使用 Ring 与 Projectile 两节）
//   - rng: 共享随机数源，用于挑选水母种类
//   - view: 视点查询，用于让槽位中的水母面向玩家
func NewRingSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *utils.PRNG, view ViewProvider) *RingSystem {
	s := &RingSystem{
		entityManager: em,
		config:        cfg.Ring,
		kinds:         cfg.Projectile.Kinds,
		projectile:    cfg.Projectile,
		rng:           rng,
		view:          view,
	}

	n := cfg.Ring.SlotCount
	ring := &components.RingComponent{
		Pivot:  cfg.Ring.Pivot.Vec3(),
		Radius: cfg.Ring.Radius,
		Slots:  make([]components.RecruitSlot, n),
	}
	for i := range ring.Slots {
		ring.Slots[i] = components.RecruitSlot{
			Index:     i,
			BaseAngle: float64(i) * 360.0 / float64(n),
			State:     components.SlotEmpty,
		}
	}

	s.ringID = em.CreateEntity()
	ecs.AddComponent(em, s.ringID, ring)

	for i := range ring.Slots {
		s.RequestNewProjectile(i)
	}

	log.Printf("[RingSystem] Ring created with %d slots (radius %.2f)", n, cfg.Ring.Radius)
	return s
}

// Ring 返回环组件
func (s *RingSystem) Ring() *components.RingComponent {
	ring, _ := ecs.GetComponent[*components.RingComponent](s.entityManager, s.ringID)
	return ring
}

// SlotCount 槽位数量
func (s *RingSystem) SlotCount() int {
	return len(s.Ring().Slots)
}

// Slot 返回指定槽位；下标越界时返回 nil
func (s *RingSystem) Slot(index int) *components.RecruitSlot {
	ring := s.Ring()
	if index < 0 || index >= len(ring.Slots) {
		return nil
	}
	return &ring.Slots[index]
}

// SlotAngle 槽位当前的世界角度（度，0 ~ 360）
func (s *RingSystem) SlotAngle(index int) float64 {
	ring := s.Ring()
	return utils.NormalizeDeg(ring.Slots[index].BaseAngle + ring.Rotation)
}

// SlotPosition 槽位当前的世界坐标
func (s *RingSystem) SlotPosition(index int) utils.Vec3 {
	ring := s.Ring()
	offset := utils.RotateY(utils.Vec3{X: ring.Radius}, s.SlotAngle(index))
	return ring.Pivot.Add(offset)
}

// Advance 按旋转速度推进环的整体旋转
func (s *RingSystem) Advance(deltaTime float64) {
	ring := s.Ring()
	ring.Rotation = utils.NormalizeDeg(ring.Rotation + s.config.RotationSpeed*deltaTime)
}

// Update 旋转环、让槽位中的水母跟随并生长
func (s *RingSystem) Update(deltaTime float64) {
	s.Advance(deltaTime)

	ring := s.Ring()
	for i := range ring.Slots {
		slot := &ring.Slots[i]
		if slot.ProjectileID == 0 {
			continue
		}

		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, slot.ProjectileID)
		if !ok {
			continue
		}
		transform.Position = s.SlotPosition(i)
		if s.view != nil {
			transform.Yaw = utils.YawToward(transform.Position, s.view.ViewOrigin())
		}

		if slot.State == components.SlotGrowing {
			s.grow(slot, transform, deltaTime)
		}
	}
}

// grow 推进生长进度；进度到 1.0 时转为 IdleLoaded（每个周期只发生一次）
func (s *RingSystem) grow(slot *components.RecruitSlot, transform *components.TransformComponent, deltaTime float64) {
	growth, ok := ecs.GetComponent[*components.GrowthComponent](s.entityManager, slot.ProjectileID)
	if !ok {
		return
	}

	growth.Progress = utils.Clamp01(growth.Progress + deltaTime/growth.Duration)
	transform.Scale = growth.Progress * growth.MaxScale

	if growth.Progress < 1.0 {
		return
	}

	slot.State = components.SlotIdleLoaded
	if proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, slot.ProjectileID); ok {
		proj.State = components.ProjectileLoaded
	}
	ecs.RemoveComponent[*components.GrowthComponent](s.entityManager, slot.ProjectileID)
}

// ClosestSlot 返回持有水母、且与视线夹角最小的槽位
//
// 夹角相同时取迭代顺序中的第一个。没有任何槽位持有水母时返回 (0, false)，
// 调用方仍可对槽位 0 调用 Detach，得到 ErrNoTossableProjectile。
func (s *RingSystem) ClosestSlot(viewDirection, viewOrigin utils.Vec3) (int, bool) {
	ring := s.Ring()
	best := 0
	found := false
	bestAngle := 0.0

	for i := range ring.Slots {
		slot := &ring.Slots[i]
		if slot.ProjectileID == 0 {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, slot.ProjectileID)
		if !ok {
			continue
		}

		angle := utils.AngleDeg(viewDirection, transform.Position.Sub(viewOrigin))
		if !found || angle < bestAngle {
			best, bestAngle, found = i, angle, true
		}
	}

	return best, found
}

// RandomPrefabKind 从种类目录中均匀随机挑选一种
func (s *RingSystem) RandomPrefabKind() string {
	return s.kinds[s.rng.IntN(len(s.kinds))]
}

// Detach 从已长成的槽位取走水母，并立即在该槽位生成新水母
//
// 槽位不是 IdleLoaded 时返回 ErrNoTossableProjectile，不做任何修改。
func (s *RingSystem) Detach(index int) (ecs.EntityID, error) {
	slot := s.Slot(index)
	if slot == nil {
		return 0, fmt.Errorf("slot %d: %w", index, ErrNoTossableProjectile)
	}
	if slot.State != components.SlotIdleLoaded || slot.ProjectileID == 0 {
		return 0, ErrNoTossableProjectile
	}

	id := slot.ProjectileID
	slot.ProjectileID = 0
	slot.State = components.SlotEmpty

	if proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id); ok {
		proj.Owner = components.OwnerTossController
	}

	log.Printf("[RingSystem] Detached projectile %d from slot %d", id, index)
	s.RequestNewProjectile(index)
	return id, nil
}

// RequestNewProjectile 在空槽位生成一只从零开始生长的水母（Empty -> Growing）
func (s *RingSystem) RequestNewProjectile(index int) {
	slot := s.Slot(index)
	if slot == nil || slot.ProjectileID != 0 {
		return
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.ProjectileComponent{
		Kind:      s.RandomPrefabKind(),
		State:     components.ProjectileGrowing,
		Owner:     components.OwnerSlot,
		SlotIndex: index,
	})
	ecs.AddComponent(s.entityManager, id, &components.TransformComponent{
		Position: s.SlotPosition(index),
		Scale:    0,
	})
	ecs.AddComponent(s.entityManager, id, &components.GrowthComponent{
		Progress: 0,
		Duration: s.config.GrowthDuration,
		MaxScale: s.config.MaxScale,
	})
	ecs.AddComponent(s.entityManager, id, &components.RigidBodyComponent{
		Kinematic: true,
		Radius:    s.projectile.Radius,
	})

	slot.ProjectileID = id
	slot.State = components.SlotGrowing
	slot.Spawned++
}

// LoadedCount 处于 IdleLoaded 的槽位数量
func (s *RingSystem) LoadedCount() int {
	count := 0
	for _, slot := range s.Ring().Slots {
		if slot.State == components.SlotIdleLoaded {
			count++
		}
	}
	return count
}
