package components

import (
	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type LightformerForm int

const (
	FormCircle LightformerForm = iota
	FormRect
)

// Lightformer is an emissive card that only shows up in reflections and
// refraction. Its facing is the object's local +Z axis.
type Lightformer struct {
	engine.BaseComponent
	Form      LightformerForm
	Color     rl.Color
	Intensity float32
}

func NewLightformer(form LightformerForm, intensity float32) *Lightformer {
	return &Lightformer{
		Form:      form,
		Color:     rl.White,
		Intensity: intensity,
	}
}

// Normal is the world-space direction the card faces.
func (l *Lightformer) Normal() rl.Vector3 {
	g := l.GetGameObject()
	if g == nil {
		return rl.Vector3{Z: 1}
	}
	m := g.WorldMatrix()
	n := rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}
	return rl.Vector3Normalize(n)
}

// Tangent is the card's local +X axis in world space.
func (l *Lightformer) Tangent() rl.Vector3 {
	g := l.GetGameObject()
	if g == nil {
		return rl.Vector3{X: 1}
	}
	m := g.WorldMatrix()
	return rl.Vector3Normalize(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2})
}

// Radius is the card's world-space extent: the radius of a circle, or half
// the side of a rect. Unscaled circles have radius 1 and rects side 1.
func (l *Lightformer) Radius() float32 {
	scale := float32(1)
	if g := l.GetGameObject(); g != nil {
		scale = g.WorldScale().X
	}
	if l.Form == FormRect {
		return scale / 2
	}
	return scale
}

func (l *Lightformer) GetPosition() rl.Vector3 {
	if g := l.GetGameObject(); g != nil {
		return g.WorldPosition()
	}
	return rl.Vector3Zero()
}

func (l *Lightformer) GetColorFloat() []float32 {
	return []float32{
		float32(l.Color.R) / 255.0 * l.Intensity,
		float32(l.Color.G) / 255.0 * l.Intensity,
		float32(l.Color.B) / 255.0 * l.Intensity,
	}
}
