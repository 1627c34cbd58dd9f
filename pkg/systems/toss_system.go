package systems

import (
	"log"

	"github.com/decker502/spacejellies/pkg/components"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/input"
	"github.com/decker502/spacejellies/pkg/utils"
)

// TossPhase 弹弓控制器阶段
type TossPhase int

const (
	// TossEmpty 没有水母
	TossEmpty TossPhase = iota
	// TossLoading 水母正从槽位飞向锚点
	TossLoading
	// TossReady 水母已就位，等待按下
	TossReady
	// TossAiming 按住拖拽中
	TossAiming
	// TossFired 刚刚松手发射（瞬时阶段，随即进入下一次装填）
	TossFired
)

// String 返回阶段名称（用于日志）
func (p TossPhase) String() string {
	switch p {
	case TossEmpty:
		return "Empty"
	case TossLoading:
		return "Loading"
	case TossReady:
		return "Ready"
	case TossAiming:
		return "Aiming"
	case TossFired:
		return "Fired"
	default:
		return "Unknown"
	}
}

// Launcher 发射已装填的水母（由 FlightSystem 实现）
type Launcher interface {
	Launch(id ecs.EntityID) error
}

// TossSystem 弹弓控制器
//
// 同一时刻最多只有一只水母被装填。会话开始时 Enable 订阅触摸输入并开始装填，
// 会话结束时 Disable 退订；装填中的动画在 Disable 后仍会完成。
type TossSystem struct {
	entityManager *ecs.EntityManager
	config        config.TossConfig

	ring       *RingSystem
	launcher   Launcher
	physics    PhysicsCollaborator
	view       ViewProvider
	dispatcher *input.Dispatcher

	phase      TossPhase
	enabled    bool
	projectile ecs.EntityID

	restAnchor utils.Vec3
	anchor     utils.Vec3

	fingerID   int
	refX, refY float64

	detachRefused bool
	fired         int
}

// NewTossSystem 创建弹弓控制器（初始为 Empty、未启用）
func NewTossSystem(em *ecs.EntityManager, cfg config.TossConfig, ring *RingSystem, launcher Launcher,
	physics PhysicsCollaborator, view ViewProvider, dispatcher *input.Dispatcher) *TossSystem {
	rest := cfg.Anchor.Vec3()
	return &TossSystem{
		entityManager: em,
		config:        cfg,
		ring:          ring,
		launcher:      launcher,
		physics:       physics,
		view:          view,
		dispatcher:    dispatcher,
		phase:         TossEmpty,
		restAnchor:    rest,
		anchor:        rest,
	}
}

// Enable 订阅触摸输入，允许装填和发射
func (s *TossSystem) Enable() {
	if s.enabled {
		return
	}
	s.enabled = true
	if s.dispatcher != nil {
		s.dispatcher.SubscribeTouch(s)
	}
	log.Printf("[TossSystem] Enabled")
}

// Disable 退订触摸输入；拖拽中的水母回到锚点静止位置
func (s *TossSystem) Disable() {
	if !s.enabled {
		return
	}
	s.enabled = false
	if s.dispatcher != nil {
		s.dispatcher.UnsubscribeTouch(s)
	}
	if s.phase == TossAiming {
		s.phase = TossReady
		s.resetAnchor()
	}
	log.Printf("[TossSystem] Disabled (phase %v)", s.phase)
}

// Update 推进装填：Empty 时尝试取水母，Loading 时移动水母到锚点
func (s *TossSystem) Update(deltaTime float64) {
	switch s.phase {
	case TossEmpty:
		if s.enabled {
			s.beginLoading()
		}
	case TossLoading:
		s.updateTransit(deltaTime)
	case TossReady, TossAiming:
		s.updateTransit(deltaTime)
		s.followAnchor()
	}
}

// beginLoading Empty -> Loading；槽位拒绝时保持 Empty，下一帧重试
func (s *TossSystem) beginLoading() {
	index, _ := s.ring.ClosestSlot(s.view.ViewDirection(), s.view.ViewOrigin())
	id, err := s.ring.Detach(index)
	if err != nil {
		if !s.detachRefused {
			log.Printf("[TossSystem] Slot %d not ready: %v (retrying)", index, err)
			s.detachRefused = true
		}
		s.phase = TossEmpty
		return
	}
	s.detachRefused = false

	s.projectile = id
	if s.physics != nil {
		s.physics.SetKinematic(id, true)
	}

	transit := &components.TransitComponent{
		Duration:    s.config.SwapTime,
		TargetScale: s.config.LoadedScale,
		TargetYaw:   s.config.LoadedYaw,
	}
	if transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
		transit.StartScale = transform.Scale
		transit.StartYaw = transform.Yaw
	}
	ecs.AddComponent(s.entityManager, id, transit)

	s.phase = TossLoading
}

// updateTransit 位置以 swapSpeed 逼近锚点；缩放和朝向在 swapTime 内缓入缓出过渡
func (s *TossSystem) updateTransit(deltaTime float64) {
	if s.projectile == 0 {
		return
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.projectile)
	if !ok {
		return
	}

	if transit, ok := ecs.GetComponent[*components.TransitComponent](s.entityManager, s.projectile); ok {
		transit.Elapsed += deltaTime
		t := utils.EaseInOutCubic(utils.Clamp01(transit.Elapsed / transit.Duration))
		transform.Scale = utils.Lerp(transit.StartScale, transit.TargetScale, t)
		transform.Yaw = utils.Lerp(transit.StartYaw, transit.TargetYaw, t)
		if t >= 1.0 {
			ecs.RemoveComponent[*components.TransitComponent](s.entityManager, s.projectile)
		}
	}

	if s.phase != TossLoading {
		return
	}

	transform.Position = utils.MoveTowards(transform.Position, s.anchor, s.config.SwapSpeed*deltaTime)
	if transform.Position.Distance(s.anchor) < s.config.ArriveEpsilon {
		s.becomeReady(transform)
	}
}

// becomeReady Loading -> Ready：恢复物理，归属弹弓控制器
func (s *TossSystem) becomeReady(transform *components.TransformComponent) {
	transform.Position = s.anchor
	if s.physics != nil {
		s.physics.SetKinematic(s.projectile, false)
	}
	if proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, s.projectile); ok {
		proj.Owner = components.OwnerTossController
	}
	s.phase = TossReady
	log.Printf("[TossSystem] Projectile %d ready", s.projectile)
}

// followAnchor 就绪/瞄准时水母停在当前锚点上
func (s *TossSystem) followAnchor() {
	if transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.projectile); ok {
		transform.Position = s.anchor
	}
}

// OnTouch 实现 input.TouchListener
func (s *TossSystem) OnTouch(event input.TouchEvent) {
	if !s.enabled {
		return
	}
	switch event.Phase {
	case input.TouchDown:
		s.onTouchDown(event)
	case input.TouchMove, input.TouchHeld:
		s.onTouchDrag(event)
	case input.TouchUp:
		s.onTouchUp(event)
	}
}

// onTouchDown Ready -> Aiming，记录参考位置
func (s *TossSystem) onTouchDown(event input.TouchEvent) {
	if s.phase != TossReady || s.projectile == 0 {
		return
	}
	s.phase = TossAiming
	s.fingerID = event.FingerID
	s.refX, s.refY = event.X, event.Y
}

// onTouchDrag 按输入位移（投影到水平面）移动锚点，并更新参考位置
func (s *TossSystem) onTouchDrag(event input.TouchEvent) {
	if s.phase != TossAiming || event.FingerID != s.fingerID {
		return
	}
	dx, dy := event.X-s.refX, event.Y-s.refY
	s.refX, s.refY = event.X, event.Y
	if dx == 0 && dy == 0 {
		return
	}
	s.anchor = s.anchor.Add(PlanarToWorld(s.view, dx, dy).Scale(s.config.Sensitivity))
	s.followAnchor()
}

// onTouchUp 松手：有拉拽则发射并开始下一次装填，否则回到 Ready
func (s *TossSystem) onTouchUp(event input.TouchEvent) {
	if s.phase != TossAiming || event.FingerID != s.fingerID {
		return
	}

	pull := s.restAnchor.Sub(s.anchor)
	// 零拉拽松手不发射；结束这次瞄准回到 Ready，水母仍留在弹弓上，可以重新按下
	if s.projectile == 0 || pull.Length() == 0 {
		s.phase = TossReady
		s.resetAnchor()
		return
	}

	id := s.projectile
	if s.physics != nil {
		s.physics.ApplyImpulse(id, pull.Scale(s.config.ImpulseMultiplier))
	}
	if err := s.launcher.Launch(id); err != nil {
		log.Printf("[TossSystem] Launch of projectile %d failed: %v", id, err)
	}

	s.phase = TossFired
	s.fired++
	s.projectile = 0
	s.resetAnchor()
	log.Printf("[TossSystem] Released projectile %d (pull %.3f)", id, pull.Length())

	s.beginLoading()
}

func (s *TossSystem) resetAnchor() {
	s.anchor = s.restAnchor
	s.followAnchor()
}

// Phase 当前阶段
func (s *TossSystem) Phase() TossPhase {
	return s.phase
}

// Enabled 是否接收输入
func (s *TossSystem) Enabled() bool {
	return s.enabled
}

// Projectile 当前装填（或装填中）的水母；0 表示没有
func (s *TossSystem) Projectile() ecs.EntityID {
	return s.projectile
}

// Anchor 当前锚点（瞄准偏移后）
func (s *TossSystem) Anchor() utils.Vec3 {
	return s.anchor
}

// RestAnchor 锚点静止位置
func (s *TossSystem) RestAnchor() utils.Vec3 {
	return s.restAnchor
}

// Fired 累计发射次数
func (s *TossSystem) Fired() int {
	return s.fired
}
