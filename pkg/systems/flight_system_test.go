package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/spacejellies/pkg/components"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/game"
	"github.com/decker502/spacejellies/pkg/utils"
)

type recordingCues struct {
	played []game.Cue
}

func (r *recordingCues) PlayCue(cue game.Cue) {
	r.played = append(r.played, cue)
}

func newFlightFixture() (*ecs.EntityManager, *FlightSystem, *fakeScore, *fakePhysics, *recordingCues, *game.HUDState) {
	em := ecs.NewEntityManager()
	score := &fakeScore{}
	physics := newFakePhysics()
	cues := &recordingCues{}
	hud := game.NewHUDState()
	flight := NewFlightSystem(em, config.DefaultGameConfig(), score, physics, cues, hud)
	return em, flight, score, physics, cues, hud
}

func TestFlightLaunch(t *testing.T) {
	em, flight, _, _, cues, _ := newFlightFixture()
	id := spawnLoadedProjectile(em, utils.Vec3{})

	if err := flight.Launch(id); err != nil {
		t.Fatalf("Launch returned error: %v", err)
	}
	if projectileState(em, id) != components.ProjectileInFlight {
		t.Errorf("Expected InFlight, got %v", projectileState(em, id))
	}
	timer, ok := ecs.GetComponent[*components.FlightTimerComponent](em, id)
	if !ok || timer.Remaining != 10 {
		t.Errorf("Expected 10 second countdown, got %+v", timer)
	}
	if len(cues.played) != 1 || cues.played[0] != game.CueLaunch {
		t.Errorf("Expected one launch cue, got %v", cues.played)
	}

	if err := flight.Launch(id); !errors.Is(err, ErrNotLaunchable) {
		t.Errorf("Expected ErrNotLaunchable on second launch, got %v", err)
	}
	if err := flight.Launch(ecs.EntityID(999)); !errors.Is(err, ErrNotLaunchable) {
		t.Errorf("Expected ErrNotLaunchable for unknown entity, got %v", err)
	}
}

func TestFlightExpiry(t *testing.T) {
	em, flight, score, physics, _, hud := newFlightFixture()
	id := spawnLoadedProjectile(em, utils.Vec3{})
	hud.SetProjectileTransform(id, "blue", utils.Vec3{}, 1, 0)
	_ = flight.Launch(id)

	for i := 0; i < 9; i++ {
		flight.Update(1.0)
	}
	if projectileState(em, id) != components.ProjectileInFlight {
		t.Fatalf("Expected still InFlight after 9s, got %v", projectileState(em, id))
	}
	timer, _ := ecs.GetComponent[*components.FlightTimerComponent](em, id)
	if timer.Remaining != 1 {
		t.Errorf("Expected 1 second remaining, got %d", timer.Remaining)
	}

	flight.Update(1.0)
	if state := projectileState(em, id); state != components.ProjectileDestroyed || !state.IsTerminal() {
		t.Fatalf("Expected Destroyed after 10s, got %v", state)
	}
	if flight.Misses() != 1 {
		t.Errorf("Expected expiry counted as a miss, got %d", flight.Misses())
	}
	if score.total() != -10 {
		t.Errorf("Expected score -10, got %d", score.total())
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Expected projectile marked for destroy")
	}
	if len(physics.removed) != 1 || physics.removed[0] != id {
		t.Errorf("Expected body removed, got %v", physics.removed)
	}
	if hud.ProjectileCount() != 0 {
		t.Errorf("Expected projectile removed from presenter, got %d", hud.ProjectileCount())
	}

	// 已过期不再重复扣分
	flight.Update(5.0)
	if len(score.deltas) != 1 {
		t.Errorf("Expected exactly one scoring event, got %v", score.deltas)
	}
	if flight.Misses() != 1 || flight.Hits() != 0 {
		t.Errorf("Expected 1 miss and 0 hits, got %d and %d", flight.Misses(), flight.Hits())
	}
}

func TestFlightCollisionWins(t *testing.T) {
	em, flight, score, _, _, _ := newFlightFixture()
	target := em.CreateEntity()
	ecs.AddComponent(em, target, &components.TargetComponent{Radius: 0.5})

	id := spawnLoadedProjectile(em, utils.Vec3{})
	_ = flight.Launch(id)
	flight.Update(3.0)

	flight.OnCollision(id, target)
	flight.OnCollision(id, target)
	flight.Update(20.0)

	if projectileState(em, id) != components.ProjectileDestroyed {
		t.Errorf("Expected Destroyed, got %v", projectileState(em, id))
	}
	if flight.Hits() != 1 || flight.Misses() != 0 {
		t.Errorf("Expected 1 hit and 0 misses, got %d and %d", flight.Hits(), flight.Misses())
	}
	if len(score.deltas) != 1 || score.deltas[0] != 100 {
		t.Errorf("Expected single +100, got %v", score.deltas)
	}
	tc, _ := ecs.GetComponent[*components.TargetComponent](em, target)
	if tc.Hits != 1 {
		t.Errorf("Expected target hit once, got %d", tc.Hits)
	}
}

func TestFlightCollisionIgnoredWhenNotInFlight(t *testing.T) {
	em, flight, score, _, _, _ := newFlightFixture()
	target := em.CreateEntity()
	ecs.AddComponent(em, target, &components.TargetComponent{Radius: 0.5})
	id := spawnLoadedProjectile(em, utils.Vec3{})

	flight.OnCollision(id, target)

	if projectileState(em, id) != components.ProjectileLoaded {
		t.Errorf("Expected Loaded projectile unaffected, got %v", projectileState(em, id))
	}
	if len(score.deltas) != 0 {
		t.Errorf("Expected no scoring, got %v", score.deltas)
	}
}

func TestFlightShrinks(t *testing.T) {
	em, flight, _, _, _, _ := newFlightFixture()
	id := spawnLoadedProjectile(em, utils.Vec3{})
	_ = flight.Launch(id)

	flight.Update(2.5)
	flight.Update(2.5)

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if math.Abs(transform.Scale-0.5) > 1e-9 {
		t.Errorf("Expected half scale after half the countdown, got %v", transform.Scale)
	}
}

func TestFlightIndependentCountdowns(t *testing.T) {
	em, flight, score, _, _, _ := newFlightFixture()
	first := spawnLoadedProjectile(em, utils.Vec3{})
	_ = flight.Launch(first)
	flight.Update(4.5)

	second := spawnLoadedProjectile(em, utils.Vec3{X: 1})
	_ = flight.Launch(second)
	flight.Update(5.5)

	if projectileState(em, first) != components.ProjectileDestroyed {
		t.Errorf("Expected first Destroyed after 10s, got %v", projectileState(em, first))
	}
	if projectileState(em, second) != components.ProjectileInFlight {
		t.Errorf("Expected second still InFlight after 5.5s, got %v", projectileState(em, second))
	}
	if score.total() != -10 {
		t.Errorf("Expected one miss, got %d", score.total())
	}
}

func TestProjectileStateIsTerminal(t *testing.T) {
	tests := []struct {
		state components.ProjectileState
		want  bool
	}{
		{components.ProjectileGrowing, false},
		{components.ProjectileLoaded, false},
		{components.ProjectileInFlight, false},
		{components.ProjectileExpired, true},
		{components.ProjectileScored, true},
		{components.ProjectileDestroyed, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

// 同一帧内物理先报告碰撞、倒计时随后归零：只计一次命中
func TestFlightCollisionOnExpiryTick(t *testing.T) {
	em := ecs.NewEntityManager()
	score := &fakeScore{}
	physics := NewPhysicsSystem(em, 20)
	flight := NewFlightSystem(em, config.DefaultGameConfig(), score, physics, nil, nil)
	physics.SetCollisionHandler(flight.OnCollision)
	targetPos := utils.Vec3{Z: 4}
	target := physics.AddTarget(targetPos, 0.5)

	id := spawnLoadedProjectile(em, utils.Vec3{})
	if err := flight.Launch(id); err != nil {
		t.Fatalf("Launch returned error: %v", err)
	}

	// 与 Match.Update 相同的顺序：物理（碰撞）-> 飞行倒计时
	step := func() {
		physics.Update(1.0)
		flight.Update(1.0)
	}
	for i := 0; i < 9; i++ {
		step()
	}
	timer, _ := ecs.GetComponent[*components.FlightTimerComponent](em, id)
	if projectileState(em, id) != components.ProjectileInFlight || timer.Remaining != 1 {
		t.Fatalf("Expected InFlight with 1 second left, got %v with %d", projectileState(em, id), timer.Remaining)
	}

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	transform.Position = targetPos
	step()

	if len(score.deltas) != 1 || score.deltas[0] != 100 {
		t.Fatalf("Expected single +100, got %v", score.deltas)
	}
	if flight.Hits() != 1 || flight.Misses() != 0 {
		t.Errorf("Expected 1 hit and 0 misses, got %d and %d", flight.Hits(), flight.Misses())
	}
	if projectileState(em, id) != components.ProjectileDestroyed {
		t.Errorf("Expected Destroyed, got %v", projectileState(em, id))
	}
	tc, _ := ecs.GetComponent[*components.TargetComponent](em, target)
	if tc.Hits != 1 {
		t.Errorf("Expected target hit once, got %d", tc.Hits)
	}

	step()
	if len(score.deltas) != 1 {
		t.Errorf("Expected no further scoring, got %v", score.deltas)
	}
}

// 倒计时先归零，同一帧稍后到达的碰撞被忽略：只计一次未命中
func TestFlightExpiryThenCollisionSameTick(t *testing.T) {
	em, flight, score, _, _, _ := newFlightFixture()
	target := em.CreateEntity()
	ecs.AddComponent(em, target, &components.TargetComponent{Radius: 0.5})

	id := spawnLoadedProjectile(em, utils.Vec3{})
	_ = flight.Launch(id)
	flight.Update(9.5)
	flight.Update(0.5)
	flight.OnCollision(id, target)

	if len(score.deltas) != 1 || score.deltas[0] != -10 {
		t.Errorf("Expected single -10, got %v", score.deltas)
	}
	if flight.Hits() != 0 || flight.Misses() != 1 {
		t.Errorf("Expected 0 hits and 1 miss, got %d and %d", flight.Hits(), flight.Misses())
	}
	tc, _ := ecs.GetComponent[*components.TargetComponent](em, target)
	if tc.Hits != 0 {
		t.Errorf("Expected target not hit, got %d", tc.Hits)
	}
}
