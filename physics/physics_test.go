package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

func testBody() *RigidBody {
	return NewRigidBody(BodyConfig{
		Mass:         80,
		Size:         mgl64.Vec3{0.5, 1, 2},
		CenterOfMass: mgl64.Vec3{0, -0.5, 0},
		GravityScale: 1,
	})
}

func TestLayerMaskContains(t *testing.T) {
	if !LayerAll.Contains(LayerGround) {
		t.Error("Expected LayerAll to contain ground")
	}
	if LayerDefault.Contains(LayerGround) {
		t.Error("Expected default layer to exclude ground")
	}
}

func TestCapSpeed(t *testing.T) {
	v := mgl64.Vec3{30, 0, 40}
	if !CapSpeed(&v, 10) {
		t.Fatal("Expected clamp")
	}
	if math.Abs(v.Len()-10) > 1e-9 {
		t.Errorf("Expected length 10, got %v", v.Len())
	}
	v = mgl64.Vec3{1, 0, 0}
	if CapSpeed(&v, 10) {
		t.Error("Expected no clamp below limit")
	}
}

func TestPlaneRaycast(t *testing.T) {
	p := NewPlane(0, LayerGround)
	hit, ok := p.Raycast(mgl64.Vec3{0, 0.25, 0}, vmath.Down, 0.5)
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.Distance-0.25) > 1e-12 {
		t.Errorf("Expected distance 0.25, got %v", hit.Distance)
	}
	if _, ok := p.Raycast(mgl64.Vec3{0, 1, 0}, vmath.Down, 0.5); ok {
		t.Error("Expected miss beyond max distance")
	}
	if _, ok := p.Raycast(mgl64.Vec3{0, -1, 0}, vmath.Down, 5); ok {
		t.Error("Expected miss from below the surface")
	}
}

func TestProfileHeightAndRaycast(t *testing.T) {
	prof, err := NewProfile([]ProfilePoint{{Z: 10, Y: 2}, {Z: 0, Y: 0}, {Z: 20, Y: 2}}, LayerGround)
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}

	tests := []struct {
		z, want float64
	}{
		{-5, 0},
		{0, 0},
		{5, 1},
		{15, 2},
		{30, 2},
	}
	for _, tt := range tests {
		h, _ := prof.HeightAt(0, tt.z)
		if math.Abs(h-tt.want) > 1e-9 {
			t.Errorf("HeightAt(z=%v) = %v, want %v", tt.z, h, tt.want)
		}
	}

	_, n := prof.HeightAt(0, 5)
	if n[1] <= 0 || n[2] >= 0 {
		t.Errorf("Expected upslope normal tilted toward -Z, got %v", n)
	}

	hit, ok := prof.Raycast(mgl64.Vec3{0, 3, 5}, vmath.Down, 10)
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.Distance-2) > 1e-4 {
		t.Errorf("Expected distance 2, got %v", hit.Distance)
	}
}

func TestProfileRejectsBadInput(t *testing.T) {
	if _, err := NewProfile([]ProfilePoint{{Z: 0, Y: 0}}, LayerGround); err == nil {
		t.Error("Expected error for single point")
	}
	if _, err := NewProfile([]ProfilePoint{{Z: 0, Y: 0}, {Z: 0, Y: 1}}, LayerGround); err == nil {
		t.Error("Expected error for duplicate z")
	}
}

func TestWorldRaycastFiltersByMask(t *testing.T) {
	w := NewWorld()
	w.AddTerrain(NewPlane(0, LayerGround))
	w.AddTerrain(NewPlane(1, LayerProps))

	hit, ok := w.Raycast(mgl64.Vec3{0, 5, 0}, vmath.Down, 100, LayerAll)
	if !ok || math.Abs(hit.Distance-4) > 1e-12 {
		t.Errorf("Expected nearest hit at 4, got %v ok=%v", hit.Distance, ok)
	}
	hit, ok = w.Raycast(mgl64.Vec3{0, 5, 0}, vmath.Down, 100, LayerGround)
	if !ok || math.Abs(hit.Distance-5) > 1e-12 {
		t.Errorf("Expected ground-only hit at 5, got %v ok=%v", hit.Distance, ok)
	}
	if _, ok := w.Raycast(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{}, 100, LayerAll); ok {
		t.Error("Expected miss for zero direction")
	}
}

func TestBodyFreeFall(t *testing.T) {
	b := testBody()
	dt := 0.01
	for range 100 {
		b.Step(dt, DefaultGravity)
	}
	if math.Abs(b.Velocity()[1]+9.81) > 1e-9 {
		t.Errorf("Expected vy=-9.81 after 1s, got %v", b.Velocity()[1])
	}
	if b.AngularVelocity().Len() > 1e-12 {
		t.Errorf("Expected no spin, got %v", b.AngularVelocity())
	}
}

func TestForceAtPositionProducesTorque(t *testing.T) {
	b := testBody()
	com := b.WorldCenterOfMass()
	// Push +X at a point ahead of the center of mass: yaw
	b.AddForceAtPosition(mgl64.Vec3{100, 0, 0}, com.Add(mgl64.Vec3{0, 0, 1}))
	b.Step(0.01, mgl64.Vec3{})
	w := b.AngularVelocity()
	if math.Abs(w[1]) < 1e-6 {
		t.Errorf("Expected yaw rate, got %v", w)
	}
	if math.Abs(w[0]) > 1e-9 || math.Abs(w[2]) > 1e-9 {
		t.Errorf("Expected pure yaw, got %v", w)
	}
}

func TestImpulseAndResetMotion(t *testing.T) {
	b := testBody()
	b.AddImpulse(mgl64.Vec3{0, 800, 0})
	if math.Abs(b.Velocity()[1]-10) > 1e-12 {
		t.Errorf("Expected dv=10, got %v", b.Velocity()[1])
	}
	b.AddAngularAcceleration(mgl64.Vec3{1, 0, 0})
	b.Step(0.1, DefaultGravity)
	b.ResetMotion()
	if b.Velocity() != (mgl64.Vec3{}) || b.AngularVelocity() != (mgl64.Vec3{}) {
		t.Error("Expected zero motion after reset")
	}
}

func TestNonFiniteInputsIgnored(t *testing.T) {
	b := testBody()
	b.AddForce(mgl64.Vec3{math.NaN(), 0, 0})
	b.AddTorque(mgl64.Vec3{0, math.Inf(1), 0})
	b.Step(0.01, mgl64.Vec3{})
	if !vmath.IsFinite3(b.Position()) || !vmath.IsFinite3(b.Velocity()) {
		t.Errorf("Expected finite state, got pos=%v vel=%v", b.Position(), b.Velocity())
	}
	b.Step(math.NaN(), DefaultGravity)
	if b.Velocity() != (mgl64.Vec3{}) {
		t.Errorf("Expected NaN dt to be ignored, got %v", b.Velocity())
	}
}

func TestMoveRotationKeepsOrigin(t *testing.T) {
	b := testBody()
	b.Teleport(mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent())
	b.MoveRotation(vmath.YawQuat(45))
	if b.Position() != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Expected origin unchanged, got %v", b.Position())
	}
}

func TestWorldContactStopsTunneling(t *testing.T) {
	w := NewWorld()
	w.AddTerrain(NewPlane(0, LayerGround))
	b := NewRigidBody(BodyConfig{Mass: 1, Size: mgl64.Vec3{1, 1, 1}, GravityScale: 1, ContactRadius: 0.5})
	b.Teleport(mgl64.Vec3{0, 2, 0}, mgl64.QuatIdent())
	w.AddBody(b)
	for range 500 {
		w.Step(0.01)
	}
	if b.Position()[1] < 0.5-1e-9 {
		t.Errorf("Expected body resting above ground, got y=%v", b.Position()[1])
	}
	if b.Velocity()[1] < -1 {
		t.Errorf("Expected settled vertical velocity, got %v", b.Velocity()[1])
	}
}

func TestWorldContactPointsStayAboveGround(t *testing.T) {
	w := NewWorld()
	w.AddTerrain(NewPlane(0, LayerGround))
	cfg := BodyConfig{
		Mass:           10,
		Size:           mgl64.Vec3{0.5, 0.5, 2},
		GravityScale:   1,
		AngularDamping: 0.5,
		Contacts: []ContactPoint{
			{Local: mgl64.Vec3{0, 0, 1}, Radius: 0.1},
			{Local: mgl64.Vec3{0, 0, -1}, Radius: 0.1},
		},
	}
	b := NewRigidBody(cfg)
	// Nose up so the rear point lands first
	b.Teleport(mgl64.Vec3{0, 1.5, 0}, mgl64.QuatRotate(mgl64.DegToRad(-20), mgl64.Vec3{1, 0, 0}))
	w.AddBody(b)

	for i := range 600 {
		w.Step(0.01)
		for _, c := range cfg.Contacts {
			p := b.TransformPoint(c.Local)
			if p[1] < c.Radius-1e-9 {
				t.Fatalf("Step %d: expected contact %v above ground, got y=%v", i, c.Local, p[1])
			}
		}
	}

	front := b.TransformPoint(cfg.Contacts[0].Local)
	rear := b.TransformPoint(cfg.Contacts[1].Local)
	if math.Abs(front[1]-rear[1]) > 0.05 {
		t.Errorf("Expected body to level out on both contacts, got front y=%v rear y=%v", front[1], rear[1])
	}
	if b.Velocity().Len() > 0.5 {
		t.Errorf("Expected body at rest, got speed %v", b.Velocity().Len())
	}
}
