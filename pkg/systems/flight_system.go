package systems

import (
	"errors"
	"log"

	"github.com/decker502/spacejellies/pkg/components"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/game"
	"github.com/decker502/spacejellies/pkg/utils"
)

// ErrNotLaunchable 只有已装填（Loaded）的水母可以发射
var ErrNotLaunchable = errors.New("projectile is not loaded")

// FlightSystem 管理已发射水母的生命周期
//
// 发射后开始整秒倒计时；倒计时归零前命中目标得分，归零则判定未命中扣分。
// 两者先发生者生效，之后水母进入 Destroyed 并被删除，不会再产生第二次结果。
// 结果由 Hits/Misses 计数保留。
type FlightSystem struct {
	entityManager *ecs.EntityManager
	session       config.SessionConfig
	flightSeconds int

	score     ScoreSink
	physics   PhysicsCollaborator
	cues      game.CuePlayer
	presenter game.Presenter

	hits   int
	misses int
}

// NewFlightSystem 创建飞行系统
// cues 和 presenter 可为 nil
func NewFlightSystem(em *ecs.EntityManager, cfg *config.GameConfig, score ScoreSink,
	physics PhysicsCollaborator, cues game.CuePlayer, presenter game.Presenter) *FlightSystem {
	if cues == nil {
		cues = game.NopCuePlayer{}
	}
	return &FlightSystem{
		entityManager: em,
		session:       cfg.Session,
		flightSeconds: cfg.Projectile.FlightSeconds,
		score:         score,
		physics:       physics,
		cues:          cues,
		presenter:     presenter,
	}
}

// Launch 发射水母：Loaded -> InFlight，开始飞行倒计时并播放发射音效
func (s *FlightSystem) Launch(id ecs.EntityID) error {
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
	if !ok || proj.State != components.ProjectileLoaded {
		return ErrNotLaunchable
	}

	startScale := 1.0
	if transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
		startScale = transform.Scale
	}

	proj.State = components.ProjectileInFlight
	proj.Owner = components.OwnerNone
	ecs.RemoveComponent[*components.TransitComponent](s.entityManager, id)
	ecs.AddComponent(s.entityManager, id, &components.FlightTimerComponent{
		Remaining:  s.flightSeconds,
		Duration:   s.flightSeconds,
		StartScale: startScale,
	})

	s.cues.PlayCue(game.CueLaunch)
	log.Printf("[FlightSystem] Projectile %d launched (%d seconds)", id, s.flightSeconds)
	return nil
}

// Update 推进所有飞行中水母的倒计时和缩小动画
func (s *FlightSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.FlightTimerComponent](s.entityManager)

	for _, id := range entities {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		timer, _ := ecs.GetComponent[*components.FlightTimerComponent](s.entityManager, id)
		if proj.State != components.ProjectileInFlight {
			continue
		}

		timer.Remaining -= timer.Ticker.Advance(deltaTime)
		if timer.Remaining < 0 {
			timer.Remaining = 0
		}

		if transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok && timer.Duration > 0 {
			left := float64(timer.Remaining) - timer.Ticker.Fraction()
			transform.Scale = timer.StartScale * utils.Clamp01(left/float64(timer.Duration))
		}

		if timer.Remaining == 0 {
			s.expire(id, proj)
		}
	}
}

// OnCollision 飞行中的水母命中目标
// 非飞行状态（已过期、已得分、装填中）的碰撞被忽略
func (s *FlightSystem) OnCollision(projectileID, targetID ecs.EntityID) {
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, projectileID)
	if !ok || proj.State != components.ProjectileInFlight {
		return
	}

	proj.State = components.ProjectileScored
	if target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, targetID); ok {
		target.Hits++
	}
	s.hits++
	s.score.ApplyScore(s.session.HitScore)
	log.Printf("[FlightSystem] Projectile %d hit target %d", projectileID, targetID)
	s.destroy(projectileID, proj)
}

// expire 倒计时归零：InFlight -> Expired，扣分并销毁
func (s *FlightSystem) expire(id ecs.EntityID, proj *components.ProjectileComponent) {
	proj.State = components.ProjectileExpired
	s.misses++
	s.score.ApplyScore(-s.session.MissPenalty)
	log.Printf("[FlightSystem] Projectile %d expired", id)
	s.destroy(id, proj)
}

// destroy Expired/Scored -> Destroyed，移出物理和展示，实体在帧末删除
func (s *FlightSystem) destroy(id ecs.EntityID, proj *components.ProjectileComponent) {
	proj.State = components.ProjectileDestroyed
	if s.physics != nil {
		s.physics.RemoveBody(id)
	}
	if s.presenter != nil {
		s.presenter.RemoveProjectile(id)
	}
	s.entityManager.DestroyEntity(id)
}

// Hits 累计命中次数
func (s *FlightSystem) Hits() int {
	return s.hits
}

// Misses 累计过期次数
func (s *FlightSystem) Misses() int {
	return s.misses
}
