package components

import (
	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is a cuboid described by its half extents, like the connector
// hull of 1 x 1 x 0.38.
type BoxCollider struct {
	engine.BaseComponent
	HalfExtents rl.Vector3
	Offset      rl.Vector3
}

func NewBoxCollider(halfExtents rl.Vector3) *BoxCollider {
	return &BoxCollider{HalfExtents: halfExtents}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(b.GetGameObject().WorldPosition(), b.Offset)
}

// GetWorldHalfExtents applies the object's world scale.
func (b *BoxCollider) GetWorldHalfExtents() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return rl.Vector3{
		X: b.HalfExtents.X * s.X,
		Y: b.HalfExtents.Y * s.Y,
		Z: b.HalfExtents.Z * s.Z,
	}
}

func (b *BoxCollider) Volume() float32 {
	return 8 * b.HalfExtents.X * b.HalfExtents.Y * b.HalfExtents.Z
}
