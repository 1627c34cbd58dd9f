package game

import (
	"testing"

	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/utils"
)

func TestFormatText(t *testing.T) {
	if got := FormatScore(-20); got != "Score: -20" {
		t.Errorf("Expected %q, got %q", "Score: -20", got)
	}
	if got := FormatTime(0); got != "Time: 0" {
		t.Errorf("Expected %q, got %q", "Time: 0", got)
	}
}

func TestHUDStateProjectiles(t *testing.T) {
	hud := NewHUDState()

	hud.SetProjectileTransform(ecs.EntityID(5), "pink", utils.Vec3{X: 1}, 0.5, 90)
	hud.SetProjectileTransform(ecs.EntityID(2), "blue", utils.Vec3{Z: 1}, 0.25, 0)
	hud.SetProjectileTransform(ecs.EntityID(5), "pink", utils.Vec3{X: 2}, 0.75, 90)

	views := hud.Projectiles()
	if len(views) != 2 {
		t.Fatalf("Expected 2 projectiles, got %d", len(views))
	}
	if views[0].ID != 2 || views[1].ID != 5 {
		t.Errorf("Expected projectiles sorted by ID, got %d, %d", views[0].ID, views[1].ID)
	}
	if views[1].Position.X != 2 || views[1].Scale != 0.75 {
		t.Errorf("Expected latest transform kept, got %+v", views[1])
	}

	hud.RemoveProjectile(ecs.EntityID(5))
	if hud.ProjectileCount() != 1 {
		t.Errorf("Expected 1 projectile after removal, got %d", hud.ProjectileCount())
	}
}

func TestHUDStateAimGuide(t *testing.T) {
	hud := NewHUDState()
	from := utils.Vec3{Z: 0.5}
	to := utils.Vec3{X: 0.1, Z: 0.4}

	hud.SetAimGuide(true, from, to)
	if !hud.AimVisible || hud.AimFrom != from || hud.AimTo != to {
		t.Errorf("Expected aim guide %v -> %v visible, got %+v", from, to, hud)
	}

	hud.SetAimGuide(false, utils.Vec3{}, utils.Vec3{})
	if hud.AimVisible {
		t.Error("Expected aim guide hidden")
	}
}
