package systems

import (
	"github.com/decker502/spacejellies/pkg/components"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/input"
	"github.com/decker502/spacejellies/pkg/utils"
)

// fakePhysics 记录物理协作方调用的测试替身
type fakePhysics struct {
	kinematic map[ecs.EntityID][]bool
	impulses  map[ecs.EntityID]utils.Vec3
	removed   []ecs.EntityID
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{
		kinematic: make(map[ecs.EntityID][]bool),
		impulses:  make(map[ecs.EntityID]utils.Vec3),
	}
}

func (f *fakePhysics) SetKinematic(id ecs.EntityID, kinematic bool) {
	f.kinematic[id] = append(f.kinematic[id], kinematic)
}

func (f *fakePhysics) ApplyImpulse(id ecs.EntityID, impulse utils.Vec3) {
	f.impulses[id] = f.impulses[id].Add(impulse)
}

func (f *fakePhysics) RemoveBody(id ecs.EntityID) {
	f.removed = append(f.removed, id)
}

// fakeScore 记录所有计分调用
type fakeScore struct {
	deltas []int
}

func (f *fakeScore) ApplyScore(delta int) {
	f.deltas = append(f.deltas, delta)
}

func (f *fakeScore) total() int {
	sum := 0
	for _, d := range f.deltas {
		sum += d
	}
	return sum
}

// fixedView 固定的视点
type fixedView struct {
	origin    utils.Vec3
	direction utils.Vec3
}

func (v fixedView) ViewOrigin() utils.Vec3 {
	return v.origin
}

func (v fixedView) ViewDirection() utils.Vec3 {
	return v.direction
}

// testWorld 一组连好线的玩法系统
type testWorld struct {
	cfg        *config.GameConfig
	em         *ecs.EntityManager
	view       fixedView
	ring       *RingSystem
	flight     *FlightSystem
	toss       *TossSystem
	physics    *fakePhysics
	score      *fakeScore
	dispatcher *input.Dispatcher
}

func newTestWorld(cfg *config.GameConfig) *testWorld {
	w := &testWorld{
		cfg:        cfg,
		em:         ecs.NewEntityManager(),
		view:       fixedView{direction: utils.Vec3{Z: 1}},
		physics:    newFakePhysics(),
		score:      &fakeScore{},
		dispatcher: input.NewDispatcher(),
	}
	w.ring = NewRingSystem(w.em, cfg, utils.NewPRNG(42), w.view)
	w.flight = NewFlightSystem(w.em, cfg, w.score, w.physics, nil, nil)
	w.toss = NewTossSystem(w.em, cfg.Toss, w.ring, w.flight, w.physics, w.view, w.dispatcher)
	return w
}

// growAll 让所有槽位的水母长成
func (w *testWorld) growAll() {
	w.ring.Update(w.cfg.Ring.GrowthDuration + 0.01)
}

// loadUntilReady 推进弹弓直到水母就位；返回是否成功
func (w *testWorld) loadUntilReady() bool {
	for i := 0; i < 200; i++ {
		w.toss.Update(0.02)
		if w.toss.Phase() == TossReady {
			return true
		}
	}
	return false
}

func (w *testWorld) touch(phase input.TouchPhase, x, y float64) {
	w.dispatcher.DispatchTouch(input.TouchEvent{FingerID: 0, Phase: phase, X: x, Y: y})
}

// spawnLoadedProjectile 直接创建一只已装填、可发射的水母
func spawnLoadedProjectile(em *ecs.EntityManager, position utils.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Kind:  "blue",
		State: components.ProjectileLoaded,
		Owner: components.OwnerTossController,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: position, Scale: 1.0})
	ecs.AddComponent(em, id, &components.RigidBodyComponent{Radius: 0.1})
	return id
}

func projectileState(em *ecs.EntityManager, id ecs.EntityID) components.ProjectileState {
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if !ok {
		return components.ProjectileDestroyed
	}
	return proj.State
}
