package systems

import (
	"log"

	"github.com/decker502/spacejellies/pkg/components"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/utils"
	"github.com/solarlune/resolv"
)

const (
	// physicsPixelsPerUnit 世界单位到 resolv 空间像素的比例
	physicsPixelsPerUnit = 50.0
	// physicsCellSize resolv 空间网格尺寸（像素）
	physicsCellSize = 20

	tagProjectile = "projectile"
	tagTarget     = "target"
)

// CollisionHandler 飞行中的水母与目标相交时调用
type CollisionHandler func(projectileID, targetID ecs.EntityID)

// PhysicsSystem 水母与目标的物理协作方
//
// 运动：非运动学刚体按速度在世界中匀速移动（无重力、无阻尼），
// 冲量直接叠加到速度上（单位质量）。
// 碰撞：XZ 平面投影到 resolv 空间做宽阶段筛选，再用球体距离做精确判定。
// 只有 InFlight 状态的水母会报告碰撞。
type PhysicsSystem struct {
	entityManager *ecs.EntityManager
	space         *resolv.Space
	halfExtent    float64
	bodies        map[ecs.EntityID]*resolv.Object
	targets       map[ecs.EntityID]*resolv.Object
	onCollision   CollisionHandler
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - halfExtent: 参与碰撞检测的世界范围（以原点为中心的正方形半边长，世界单位）
func NewPhysicsSystem(em *ecs.EntityManager, halfExtent float64) *PhysicsSystem {
	size := int(halfExtent * 2 * physicsPixelsPerUnit)
	return &PhysicsSystem{
		entityManager: em,
		space:         resolv.NewSpace(size, size, physicsCellSize, physicsCellSize),
		halfExtent:    halfExtent,
		bodies:        make(map[ecs.EntityID]*resolv.Object),
		targets:       make(map[ecs.EntityID]*resolv.Object),
	}
}

// SetCollisionHandler 设置碰撞回调（通常是 FlightSystem.OnCollision）
func (s *PhysicsSystem) SetCollisionHandler(handler CollisionHandler) {
	s.onCollision = handler
}

// AddTargets 按配置创建目标球实体
func (s *PhysicsSystem) AddTargets(targets []config.TargetConfig) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(targets))
	for _, t := range targets {
		ids = append(ids, s.AddTarget(t.Position.Vec3(), t.Radius))
	}
	return ids
}

// AddTarget 创建一个目标球实体并注册碰撞体
func (s *PhysicsSystem) AddTarget(position utils.Vec3, radius float64) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TransformComponent{
		Position: position,
		Scale:    1.0,
	})
	ecs.AddComponent(s.entityManager, id, &components.TargetComponent{Radius: radius})

	obj := s.newObject(id, position, radius, tagTarget)
	s.targets[id] = obj
	log.Printf("[PhysicsSystem] Target %d at (%.2f, %.2f, %.2f) r=%.2f", id, position.X, position.Y, position.Z, radius)
	return id
}

// SetKinematic 实现 PhysicsCollaborator
func (s *PhysicsSystem) SetKinematic(id ecs.EntityID, kinematic bool) {
	body, ok := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)
	if !ok {
		return
	}
	body.Kinematic = kinematic
	if kinematic {
		body.Velocity = utils.Vec3{}
	}
}

// ApplyImpulse 实现 PhysicsCollaborator
func (s *PhysicsSystem) ApplyImpulse(id ecs.EntityID, impulse utils.Vec3) {
	body, ok := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)
	if !ok {
		return
	}
	body.Velocity = body.Velocity.Add(impulse)
}

// RemoveBody 实现 PhysicsCollaborator
func (s *PhysicsSystem) RemoveBody(id ecs.EntityID) {
	if obj, ok := s.bodies[id]; ok {
		s.space.Remove(obj)
		delete(s.bodies, id)
	}
	ecs.RemoveComponent[*components.RigidBodyComponent](s.entityManager, id)
}

// Update 移动非运动学刚体，并检测飞行中水母与目标的碰撞
func (s *PhysicsSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.TransformComponent,
		*components.RigidBodyComponent,
	](s.entityManager)

	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)

		if !body.Kinematic {
			transform.Position = transform.Position.Add(body.Velocity.Scale(deltaTime))
		}

		obj := s.syncBody(id, transform.Position, body.Radius)
		if proj.State != components.ProjectileInFlight {
			continue
		}
		if targetID, hit := s.findHit(obj, transform.Position, body.Radius); hit && s.onCollision != nil {
			s.onCollision(id, targetID)
		}
	}
}

// findHit 宽阶段取同网格的目标，再按球体相交判定
func (s *PhysicsSystem) findHit(obj *resolv.Object, position utils.Vec3, radius float64) (ecs.EntityID, bool) {
	collision := obj.Check(0, 0, tagTarget)
	if collision == nil {
		return 0, false
	}

	var best ecs.EntityID
	found := false
	for _, other := range collision.Objects {
		targetID, ok := other.Data.(ecs.EntityID)
		if !ok {
			continue
		}
		target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, targetID)
		if !ok {
			continue
		}
		targetTransform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, targetID)
		if !ok {
			continue
		}
		if position.Distance(targetTransform.Position) > radius+target.Radius {
			continue
		}
		// 同时命中多个目标时取 ID 最小的，保证结果可复现
		if !found || targetID < best {
			best, found = targetID, true
		}
	}
	return best, found
}

// syncBody 把实体位置同步到 resolv 对象（不存在时创建）
func (s *PhysicsSystem) syncBody(id ecs.EntityID, position utils.Vec3, radius float64) *resolv.Object {
	obj, ok := s.bodies[id]
	if !ok {
		obj = s.newObject(id, position, radius, tagProjectile)
		s.bodies[id] = obj
		return obj
	}
	obj.X, obj.Y = s.toSpace(position, radius)
	obj.Update()
	return obj
}

func (s *PhysicsSystem) newObject(id ecs.EntityID, position utils.Vec3, radius float64, tag string) *resolv.Object {
	size := radius * 2 * physicsPixelsPerUnit
	x, y := s.toSpace(position, radius)
	obj := resolv.NewObject(x, y, size, size, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = id
	s.space.Add(obj)
	return obj
}

// toSpace 世界 XZ 平面 -> resolv 空间左上角坐标
func (s *PhysicsSystem) toSpace(position utils.Vec3, radius float64) (float64, float64) {
	x := (position.X - radius + s.halfExtent) * physicsPixelsPerUnit
	y := (position.Z - radius + s.halfExtent) * physicsPixelsPerUnit
	return x, y
}

// BodyCount 当前注册的水母碰撞体数量
func (s *PhysicsSystem) BodyCount() int {
	return len(s.bodies)
}
