package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/glscene/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestNewWalkCamera(t *testing.T) {
	c := NewWalkCamera(math.V3(0, 0, 5))

	f := c.Front()
	if !near(f.X, 0) || !near(f.Y, 0) || !near(f.Z, -1) {
		t.Errorf("front = %+v, want (0, 0, -1)", f)
	}
	r := c.Right()
	if !near(r.X, 1) || !near(r.Z, 0) {
		t.Errorf("right = %+v, want (1, 0, 0)", r)
	}
}

func TestWalkKeepsEyeHeight(t *testing.T) {
	c := NewWalkCamera(math.V3(0, 0, 0))
	c.EyeHeight = 0.5
	c.Ground = func(x, z float32) float32 { return x * 0.1 }

	// Looking down steeply still walks on the plane.
	c.HandleMouse(0, 500)
	c.Move(Forward, 1)
	if !near(c.Position.Z, -2.5) {
		t.Errorf("z = %f, want -2.5", c.Position.Z)
	}
	if !near(c.Position.Y, 0.5) {
		t.Errorf("y = %f, want 0.5", c.Position.Y)
	}

	c.Move(Right, 1)
	if !near(c.Position.X, 2.5) {
		t.Errorf("x = %f, want 2.5", c.Position.X)
	}
	if !near(c.Position.Y, 0.75) {
		t.Errorf("y = %f, want ground 0.25 + eye 0.5", c.Position.Y)
	}

	// Up is ignored while walking.
	c.Move(Up, 1)
	if !near(c.Position.Y, 0.75) {
		t.Errorf("walking camera moved up to %f", c.Position.Y)
	}
}

func TestFlyMode(t *testing.T) {
	c := NewWalkCamera(math.V3(0, 3, 0))
	c.Fly = true

	c.Move(Up, 2)
	if !near(c.Position.Y, 8) {
		t.Errorf("y = %f, want 8", c.Position.Y)
	}

	c.HandleMouse(0, -900) // look straight up
	c.Move(Forward, 1)
	if c.Position.Y <= 8 {
		t.Errorf("fly forward while looking up should climb, y = %f", c.Position.Y)
	}
}

func TestPitchClamp(t *testing.T) {
	c := NewWalkCamera(math.Vec3{})
	c.HandleMouse(0, -10000)
	if c.Pitch != 89 {
		t.Errorf("pitch = %f, want 89", c.Pitch)
	}
	c.HandleMouse(0, 10000)
	if c.Pitch != -89 {
		t.Errorf("pitch = %f, want -89", c.Pitch)
	}
}

func TestHandleZoom(t *testing.T) {
	tests := []struct {
		delta float32
		want  float32
	}{
		{5, 40},
		{100, 1},
		{-100, 45},
	}

	c := NewWalkCamera(math.Vec3{})
	for _, tt := range tests {
		c.HandleZoom(tt.delta)
		if c.Zoom != tt.want {
			t.Errorf("HandleZoom(%f) zoom = %f, want %f", tt.delta, c.Zoom, tt.want)
		}
	}
}

func TestViewMatrixLooksAlongFront(t *testing.T) {
	c := NewWalkCamera(math.V3(1, 2, 3))
	v := c.ViewMatrix()

	// A point straight ahead lands on the -Z axis in view space.
	p := v.TransformVec3(c.Position.Add(c.Front().Scale(4)))
	if !near(p.X, 0) || !near(p.Y, 0) || !near(p.Z, -4) {
		t.Errorf("ahead point in view space = %+v, want (0, 0, -4)", p)
	}
}
