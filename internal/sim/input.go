package sim

import rl "github.com/gen2brain/raylib-go/raylib"

// Pointer holds normalized device coordinates in [-1, 1], +Y up.
type Pointer struct {
	X, Y float32
}

// Viewport is the visible world extent at the camera's focus distance.
type Viewport struct {
	Width, Height float32
}

// NormalizePointer maps a pixel position to device coordinates.
func NormalizePointer(screen rl.Vector2, width, height int) Pointer {
	if width <= 0 || height <= 0 {
		return Pointer{}
	}
	return Pointer{
		X: screen.X/float32(width)*2 - 1,
		Y: 1 - screen.Y/float32(height)*2,
	}
}

// PointerTarget is where the pointer body should be this frame.
func PointerTarget(p Pointer, vp Viewport) rl.Vector3 {
	return rl.Vector3{
		X: p.X * vp.Width / 2,
		Y: p.Y * vp.Height / 2,
		Z: 0,
	}
}
