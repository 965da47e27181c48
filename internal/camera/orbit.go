package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. Dragging rotates it, the wheel zooms
// and released drags coast to a stop.
type OrbitCamera struct {
	Target   rl.Vector3
	Yaw      float32 // degrees around +Y, 0 looks down -Z
	Pitch    float32 // degrees above the target's horizon
	Distance float32
	Fovy     float32
	Near     float32
	Far      float32

	RotateSpeed float32
	ZoomSpeed   float32
	MinDistance float32
	MaxDistance float32
	Damping     float32 // fraction of coasting speed lost per 60 Hz frame

	yawVel   float32 // degrees per frame at 60 Hz
	pitchVel float32
}

// New places the camera at pos looking at target.
func New(pos, target rl.Vector3, fovy float32) *OrbitCamera {
	offset := rl.Vector3Subtract(pos, target)
	dist := rl.Vector3Length(offset)

	c := &OrbitCamera{
		Target:      target,
		Distance:    dist,
		Fovy:        fovy,
		Near:        1,
		Far:         100,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		MinDistance: 2,
		MaxDistance: 60,
		Damping:     0.05,
	}
	if dist > 0 {
		c.Yaw = math32.Atan2(offset.X, offset.Z) * rl.Rad2deg
		c.Pitch = math32.Asin(offset.Y/dist) * rl.Rad2deg
	}
	return c
}

// Position is the eye point derived from yaw, pitch and distance.
func (c *OrbitCamera) Position() rl.Vector3 {
	yaw := c.Yaw * rl.Deg2rad
	pitch := c.Pitch * rl.Deg2rad
	return rl.Vector3{
		X: c.Target.X + c.Distance*math32.Cos(pitch)*math32.Sin(yaw),
		Y: c.Target.Y + c.Distance*math32.Sin(pitch),
		Z: c.Target.Z + c.Distance*math32.Cos(pitch)*math32.Cos(yaw),
	}
}

// Rotate turns the camera by a drag of dx, dy pixels on a screen of the
// given height. A drag across the full height is one full turn.
func (c *OrbitCamera) Rotate(dx, dy float32, screenHeight int) {
	if screenHeight <= 0 {
		return
	}
	scale := 360 * c.RotateSpeed / float32(screenHeight)
	c.yawVel = -dx * scale
	c.pitchVel = dy * scale
	c.apply(c.yawVel, c.pitchVel)
}

// Zoom moves the camera toward the target for positive wheel steps.
func (c *OrbitCamera) Zoom(wheel float32) {
	if wheel == 0 {
		return
	}
	c.Distance *= math32.Pow(0.95, wheel*c.ZoomSpeed)
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// Coast applies leftover drag speed while no drag is active.
func (c *OrbitCamera) Coast(deltaTime float32) {
	keep := math32.Pow(1-c.Damping, deltaTime*60)
	c.yawVel *= keep
	c.pitchVel *= keep
	if math32.Abs(c.yawVel) < 1e-3 && math32.Abs(c.pitchVel) < 1e-3 {
		c.yawVel, c.pitchVel = 0, 0
		return
	}
	c.apply(c.yawVel*deltaTime*60, c.pitchVel*deltaTime*60)
}

func (c *OrbitCamera) apply(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, -89, 89)
}

// Update reads mouse input. Left drag rotates, wheel zooms. It returns true
// while a drag is moving the camera.
func (c *OrbitCamera) Update(deltaTime float32, allowInput bool) bool {
	dragging := false
	if allowInput {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			d := rl.GetMouseDelta()
			if d.X != 0 || d.Y != 0 {
				c.Rotate(d.X, d.Y, rl.GetScreenHeight())
				dragging = true
			}
		}
		c.Zoom(rl.GetMouseWheelMove())
	}
	if !dragging && !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		c.Coast(deltaTime)
	}
	return dragging
}

// Viewport returns the visible world width and height in the plane through
// the target, for a screen of the given aspect ratio.
func (c *OrbitCamera) Viewport(aspect float32) (width, height float32) {
	height = 2 * math32.Tan(c.Fovy*rl.Deg2rad/2) * c.Distance
	return height * aspect, height
}

// Projection builds the perspective matrix with the camera's clip planes.
func (c *OrbitCamera) Projection(aspect float32) rl.Matrix {
	return rl.MatrixPerspective(c.Fovy*rl.Deg2rad, aspect, c.Near, c.Far)
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
