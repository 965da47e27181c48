package components

import (
	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TorusRenderer draws a connector's torus with the glass shader. The model is
// usually shared between connectors through the asset cache.
type TorusRenderer struct {
	engine.BaseComponent
	Model     rl.Model
	Color     rl.Color
	Roughness float32
	shared    bool // owned by the asset cache
}

func NewTorusRenderer(model rl.Model, shared bool) *TorusRenderer {
	return &TorusRenderer{
		Model:     model,
		Color:     rl.White,
		Roughness: 1,
		shared:    shared,
	}
}

func (m *TorusRenderer) SetShader(shader rl.Shader) {
	if m.Model.MaterialCount == 0 {
		return
	}
	m.Model.Materials.Shader = shader
}

func (m *TorusRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active || m.Model.MeshCount == 0 {
		return
	}

	m.Model.Materials.Maps.Color = m.Color
	m.Model.Transform = g.WorldMatrix()
	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, rl.White)
}

func (m *TorusRenderer) Unload() {
	if m.shared || m.Model.MeshCount == 0 {
		return
	}
	rl.UnloadModel(m.Model)
	m.Model = rl.Model{}
}
