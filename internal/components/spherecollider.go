package components

import (
	"math"

	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(s.GetGameObject().WorldPosition(), s.Offset)
}

func (s *SphereCollider) Volume() float32 {
	return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
}
