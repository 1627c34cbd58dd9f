// Package gameplay 把会话时钟、水母环、弹弓、飞行和物理系统组装成一局可运行的游戏。
//
// Match 不依赖任何前端：ebiten 窗口、移动端、终端和无头模拟都只是
// 每帧调用 Update，并从 HUDState 读取要显示的内容。
package gameplay

import (
	"log"

	"github.com/decker502/spacejellies/pkg/components"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/game"
	"github.com/decker502/spacejellies/pkg/input"
	"github.com/decker502/spacejellies/pkg/systems"
	"github.com/decker502/spacejellies/pkg/utils"
)

// worldHalfExtent 参与碰撞检测的世界范围（世界单位）
const worldHalfExtent = 30.0

// Options 创建 Match 的参数
type Options struct {
	// Config 游戏配置；nil 时使用 config.DefaultGameConfig()
	Config *config.GameConfig
	// Seed 随机种子；0 表示使用当前时间
	Seed uint64
	// Source 输入源；nil 时只能通过 Dispatcher() 直接投递事件
	Source input.Source
	// Presenter 展示协作方；nil 时使用内置的 HUDState
	Presenter game.Presenter
	// Cues 音频协作方；nil 时静音
	Cues game.CuePlayer
}

// Match 一局水母投掷游戏
type Match struct {
	config *config.GameConfig

	entityManager *ecs.EntityManager
	dispatcher    *input.Dispatcher
	source        input.Source
	view          *systems.ViewState
	presenter     game.Presenter

	session *game.SessionClock
	ring    *systems.RingSystem
	toss    *systems.TossSystem
	flight  *systems.FlightSystem
	physics *systems.PhysicsSystem

	targets []ecs.EntityID
	ticks   int
}

// NewMatch 创建并连接所有系统；会话处于 Idle，等待开始手势
func NewMatch(opts Options) *Match {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	presenter := opts.Presenter
	if presenter == nil {
		presenter = game.NewHUDState()
	}

	m := &Match{
		config:        cfg,
		entityManager: ecs.NewEntityManager(),
		dispatcher:    input.NewDispatcher(),
		source:        opts.Source,
		view:          systems.NewViewState(cfg.View),
		presenter:     presenter,
	}

	m.session = game.NewSessionClock(cfg.Session, presenter, opts.Cues)
	m.physics = systems.NewPhysicsSystem(m.entityManager, worldHalfExtent)
	m.ring = systems.NewRingSystem(m.entityManager, cfg, utils.NewPRNG(opts.Seed), m.view)
	m.flight = systems.NewFlightSystem(m.entityManager, cfg, m.session, m.physics, opts.Cues, presenter)
	m.toss = systems.NewTossSystem(m.entityManager, cfg.Toss, m.ring, m.flight, m.physics, m.view, m.dispatcher)

	m.physics.SetCollisionHandler(m.flight.OnCollision)
	m.targets = m.physics.AddTargets(cfg.Targets)

	m.session.AddListener(m)
	m.dispatcher.SubscribeTrigger(m)

	log.Printf("[Match] Created (%d slots, %d targets)", cfg.Ring.SlotCount, len(m.targets))
	return m
}

// Update 推进一帧
//
// 顺序：输入 -> 环 -> 弹弓 -> 物理（碰撞）-> 飞行倒计时 -> 会话倒计时 -> 清理实体 -> 同步展示
func (m *Match) Update(deltaTime float64) {
	if m.source != nil {
		turn := m.source.Poll(m.dispatcher)
		m.view.Turn(turn, deltaTime)
	}

	m.ring.Update(deltaTime)
	m.toss.Update(deltaTime)
	m.physics.Update(deltaTime)
	m.flight.Update(deltaTime)
	m.session.Update(deltaTime)

	m.entityManager.RemoveMarkedEntities()
	m.syncPresenter()
	m.ticks++
}

// OnTrigger 实现 input.TriggerListener：开始（或结束后重新开始）一局
func (m *Match) OnTrigger() {
	m.session.Rearm()
	if err := m.session.Start(); err != nil {
		log.Printf("[Match] Start ignored: %v", err)
	}
}

// OnSessionStart 实现 game.SessionListener
// 会话进行中退订开始手势，避免重复开始
func (m *Match) OnSessionStart() {
	m.dispatcher.UnsubscribeTrigger(m)
	m.toss.Enable()
}

// OnSessionEnd 实现 game.SessionListener
func (m *Match) OnSessionEnd(finalScore int) {
	m.toss.Disable()
	m.dispatcher.SubscribeTrigger(m)
	log.Printf("[Match] Session over after %d ticks, score %d", m.ticks, finalScore)
}

// syncPresenter 推送所有水母的变换和瞄准线
func (m *Match) syncPresenter() {
	entities := ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.TransformComponent](m.entityManager)
	for _, id := range entities {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](m.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](m.entityManager, id)
		m.presenter.SetProjectileTransform(id, proj.Kind, transform.Position, transform.Scale, transform.Yaw)
	}

	if m.toss.Phase() == systems.TossAiming {
		m.presenter.SetAimGuide(true, m.toss.RestAnchor(), m.toss.Anchor())
	} else {
		m.presenter.SetAimGuide(false, utils.Vec3{}, utils.Vec3{})
	}
}

// Config 当前配置
func (m *Match) Config() *config.GameConfig {
	return m.config
}

// EntityManager 实体管理器（渲染器读取目标和水母）
func (m *Match) EntityManager() *ecs.EntityManager {
	return m.entityManager
}

// Dispatcher 输入分发器
func (m *Match) Dispatcher() *input.Dispatcher {
	return m.dispatcher
}

// HUD 内置展示状态；使用外部 Presenter 时返回 nil
func (m *Match) HUD() *game.HUDState {
	hud, _ := m.presenter.(*game.HUDState)
	return hud
}

// Session 会话时钟
func (m *Match) Session() *game.SessionClock {
	return m.session
}

// Ring 水母环
func (m *Match) Ring() *systems.RingSystem {
	return m.ring
}

// Toss 弹弓控制器
func (m *Match) Toss() *systems.TossSystem {
	return m.toss
}

// Flight 飞行系统
func (m *Match) Flight() *systems.FlightSystem {
	return m.flight
}

// View 视点
func (m *Match) View() *systems.ViewState {
	return m.view
}

// Targets 目标球实体
func (m *Match) Targets() []ecs.EntityID {
	return m.targets
}

// Ticks 已推进的帧数
func (m *Match) Ticks() int {
	return m.ticks
}
