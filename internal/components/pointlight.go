package components

import (
	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointLight rides on accented connectors and takes their displayed color.
// Disabled lights are skipped by the renderer.
type PointLight struct {
	engine.BaseComponent
	Enabled   bool
	Color     rl.Color
	Intensity float32
	Radius    float32 // falloff distance
}

func NewPointLight(intensity, radius float32) *PointLight {
	return &PointLight{
		Color:     rl.White,
		Intensity: intensity,
		Radius:    radius,
	}
}

func (p *PointLight) GetPosition() rl.Vector3 {
	if g := p.GetGameObject(); g != nil {
		return g.WorldPosition()
	}
	return rl.Vector3Zero()
}

func (p *PointLight) GetColorFloat() []float32 {
	return []float32{
		float32(p.Color.R) / 255.0 * p.Intensity,
		float32(p.Color.G) / 255.0 * p.Intensity,
		float32(p.Color.B) / 255.0 * p.Intensity,
	}
}
