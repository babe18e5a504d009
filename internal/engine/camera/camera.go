// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/glscene/pkg/math"
)

// Direction is a keyboard movement direction.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// GroundFunc returns the surface height under a world XZ position.
type GroundFunc func(x, z float32) float32

// WalkCamera is a first-person camera. Walking keeps the eye a fixed height
// above the ground; fly mode moves freely along the view direction.
type WalkCamera struct {
	Position math.Vec3

	// Euler angles in degrees
	Yaw   float32
	Pitch float32

	// Zoom is the vertical field of view in degrees.
	Zoom    float32
	MinZoom float32
	MaxZoom float32

	EyeHeight   float32
	MoveSpeed   float32 // units per second
	Sensitivity float32 // degrees per pixel
	Fly         bool

	// Ground is sampled while walking; nil means flat ground at y=0.
	Ground GroundFunc

	front math.Vec3
	right math.Vec3
	up    math.Vec3
}

// NewWalkCamera creates a camera at pos looking down -Z.
func NewWalkCamera(pos math.Vec3) *WalkCamera {
	c := &WalkCamera{
		Position:    pos,
		Yaw:         -90,
		Pitch:       0,
		Zoom:        45,
		MinZoom:     1,
		MaxZoom:     45,
		EyeHeight:   1.8,
		MoveSpeed:   2.5,
		Sensitivity: 0.1,
	}
	c.updateVectors()
	return c
}

// Front returns the unit view direction.
func (c *WalkCamera) Front() math.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *WalkCamera) Right() math.Vec3 { return c.right }

// ViewMatrix returns the view matrix for this camera.
func (c *WalkCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.front), c.up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *WalkCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	fov := c.Zoom * gomath.Pi / 180
	return math.Perspective(fov, aspect, 0.01, 200)
}

// Move moves the camera dt seconds in a direction. Walking ignores pitch and
// Up/Down and snaps the eye to EyeHeight above the ground.
func (c *WalkCamera) Move(dir Direction, dt float32) {
	v := c.MoveSpeed * dt

	front, right := c.front, c.right
	if !c.Fly {
		front = math.Vec3{X: front.X, Z: front.Z}.Normalize()
		right = math.Vec3{X: right.X, Z: right.Z}.Normalize()
	}

	switch dir {
	case Forward:
		c.Position = c.Position.Add(front.Scale(v))
	case Backward:
		c.Position = c.Position.Sub(front.Scale(v))
	case Left:
		c.Position = c.Position.Sub(right.Scale(v))
	case Right:
		c.Position = c.Position.Add(right.Scale(v))
	case Up:
		if c.Fly {
			c.Position.Y += v
		}
	case Down:
		if c.Fly {
			c.Position.Y -= v
		}
	}

	c.SnapToGround()
}

// SnapToGround places the eye EyeHeight above the ground when walking.
func (c *WalkCamera) SnapToGround() {
	if c.Fly {
		return
	}
	var ground float32
	if c.Ground != nil {
		ground = c.Ground(c.Position.X, c.Position.Z)
	}
	c.Position.Y = ground + c.EyeHeight
}

// HandleMouse turns the camera by a mouse delta in pixels. Pitch is clamped
// so the view never flips.
func (c *WalkCamera) HandleMouse(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity

	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
	c.updateVectors()
}

// HandleZoom narrows the field of view on scroll up.
func (c *WalkCamera) HandleZoom(delta float32) {
	c.Zoom -= delta
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	if c.Zoom > c.MaxZoom {
		c.Zoom = c.MaxZoom
	}
}

func (c *WalkCamera) updateVectors() {
	yaw := float64(c.Yaw) * gomath.Pi / 180
	pitch := float64(c.Pitch) * gomath.Pi / 180

	c.front = math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(math.V3(0, 1, 0)).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
