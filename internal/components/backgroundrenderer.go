package components

import (
	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BackgroundRenderer draws the inside of a sphere with a two-color gradient
// along the sphere's local X axis, ColorA at +X and ColorB at -X. The colors
// reach the shader as uniforms set by the renderer.
type BackgroundRenderer struct {
	engine.BaseComponent
	Model  rl.Model
	ColorA rl.Color
	ColorB rl.Color
	shared bool
}

func NewBackgroundRenderer(model rl.Model, colorA, colorB rl.Color, shared bool) *BackgroundRenderer {
	return &BackgroundRenderer{
		Model:  model,
		ColorA: colorA,
		ColorB: colorB,
		shared: shared,
	}
}

func (b *BackgroundRenderer) SetShader(shader rl.Shader) {
	if b.Model.MaterialCount == 0 {
		return
	}
	b.Model.Materials.Shader = shader
}

// Draw renders back faces only so the camera sees the sphere from inside.
func (b *BackgroundRenderer) Draw() {
	g := b.GetGameObject()
	if g == nil || !g.Active || b.Model.MeshCount == 0 {
		return
	}

	b.Model.Transform = g.WorldMatrix()
	rl.SetCullFace(0) // cull front
	rl.DrawModel(b.Model, rl.Vector3Zero(), 1.0, rl.White)
	rl.SetCullFace(1)
}

func (b *BackgroundRenderer) Unload() {
	if b.shared || b.Model.MeshCount == 0 {
		return
	}
	rl.UnloadModel(b.Model)
	b.Model = rl.Model{}
}
