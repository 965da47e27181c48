package sim

import (
	"connectors/internal/palette"

	"github.com/charmbracelet/harmonica"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// MaxDelta caps the frame time fed to the controller on slow frames.
	MaxDelta float32 = 0.1
	// ImpulseScale is the strength of the pull back toward the origin.
	ImpulseScale float32 = 0.2
	// ColorSmoothTime is roughly the time a color needs to reach its target.
	ColorSmoothTime float32 = 0.2

	colorEpsilon float32 = 0.001
)

// ClampDelta limits elapsed frame time to [0, MaxDelta]. NaN maps to 0.
func ClampDelta(delta float32) float32 {
	if delta < 0 || delta != delta {
		return 0
	}
	if delta > MaxDelta {
		return MaxDelta
	}
	return delta
}

// RestoringImpulse is the per-frame impulse that pulls a body at p toward
// the origin. It does not scale with frame time.
func RestoringImpulse(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Negate(p), ImpulseScale)
}

// DampColor moves current toward target on a critically damped spring and
// returns the new color and channel velocities. Channels close enough to
// the target snap onto it.
func DampColor(current, velocity, target palette.RGB, delta float32) (palette.RGB, palette.RGB) {
	if delta <= 0 {
		return current, velocity
	}
	spring := harmonica.NewSpring(float64(delta), float64(2/ColorSmoothTime), 1)

	var out, vel palette.RGB
	out.R, vel.R = dampChannel(spring, current.R, velocity.R, target.R)
	out.G, vel.G = dampChannel(spring, current.G, velocity.G, target.G)
	out.B, vel.B = dampChannel(spring, current.B, velocity.B, target.B)
	return out, vel
}

func dampChannel(s harmonica.Spring, x, v, target float32) (float32, float32) {
	d := x - target
	if d <= colorEpsilon && d >= -colorEpsilon {
		return target, 0
	}
	nx, nv := s.Update(float64(x), float64(v), float64(target))
	return float32(nx), float32(nv)
}
