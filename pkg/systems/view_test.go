package systems

import (
	"math"
	"testing"

	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/utils"
)

func vecNear(a, b utils.Vec3) bool {
	return a.Distance(b) < 1e-9
}

func TestViewTurn(t *testing.T) {
	v := NewViewState(config.ViewConfig{Yaw: 350, TurnRate: 90})

	v.Turn(1, 0.5)
	if math.Abs(v.Yaw-35) > 1e-9 {
		t.Errorf("Expected yaw to wrap to 35, got %v", v.Yaw)
	}

	v.Turn(0, 10)
	if math.Abs(v.Yaw-35) > 1e-9 {
		t.Errorf("Expected zero axis to keep yaw, got %v", v.Yaw)
	}
}

func TestViewDirection(t *testing.T) {
	tests := []struct {
		yaw  float64
		want utils.Vec3
	}{
		{0, utils.Vec3{Z: 1}},
		{90, utils.Vec3{X: 1}},
		{180, utils.Vec3{Z: -1}},
	}

	for _, tt := range tests {
		v := &ViewState{Yaw: tt.yaw}
		if got := v.ViewDirection(); !vecNear(got, tt.want) {
			t.Errorf("Yaw %v: expected %+v, got %+v", tt.yaw, tt.want, got)
		}
	}
}

func TestPlanarToWorld(t *testing.T) {
	forward := &ViewState{}
	if got := PlanarToWorld(forward, 0, 1); !vecNear(got, utils.Vec3{Z: 1}) {
		t.Errorf("Expected forward +Z, got %+v", got)
	}
	if got := PlanarToWorld(forward, 1, 0); !vecNear(got, utils.Vec3{X: 1}) {
		t.Errorf("Expected right +X, got %+v", got)
	}

	// 转向 +X 后，向右变为 -Z
	turned := &ViewState{Yaw: 90}
	if got := PlanarToWorld(turned, 1, 0); !vecNear(got, utils.Vec3{Z: -1}) {
		t.Errorf("Expected right -Z after turning, got %+v", got)
	}
}
