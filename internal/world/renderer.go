package world

import (
	"fmt"
	"log"

	"connectors/internal/assets"
	"connectors/internal/camera"
	"connectors/internal/components"
	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	GlassVS      = "assets/shaders/glass.vs"
	GlassFS      = "assets/shaders/glass.fs"
	BackgroundVS = "assets/shaders/background.vs"
	BackgroundFS = "assets/shaders/background.fs"

	// Array sizes declared in glass.fs.
	MaxLightformers = 8
	MaxPointLights  = 8

	transmissionSlot = int32(10)
)

// Renderer draws the scene in two passes. The transmission pass renders
// everything except the glass into an offscreen buffer, and the main pass
// samples that buffer from the glass shader.
type Renderer struct {
	Glass        rl.Shader
	Background   rl.Shader
	Transmission rl.RenderTexture2D

	glassLocs map[string]int32
	bgLocs    map[string]int32
	bufferW   int32
	bufferH   int32
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

var glassUniforms = []string{
	"viewPos", "ambient", "roughness", "resolution", "transmission",
	"ior", "thickness", "anisotropicBlur", "samples",
	"iridescence", "iridescenceIOR", "iridescenceRange",
	"clearcoat", "clearcoatRoughness", "envMapIntensity",
	"lightformerCount", "lightformerPos", "lightformerNormal", "lightformerTangent",
	"lightformerColor", "lightformerRadius", "lightformerRect",
	"pointLightCount", "pointLightPos", "pointLightColor", "pointLightRange",
}

var backgroundUniforms = []string{"colorA", "colorB"}

// Initialize loads the shaders and attaches them to w. It must run after the
// window exists. The shaders are re-attached whenever w rebuilds itself.
func (r *Renderer) Initialize(w *World) error {
	var err error
	r.Glass, err = assets.LoadShader(GlassVS, GlassFS)
	if err != nil {
		return fmt.Errorf("glass shader: %w", err)
	}
	r.Background, err = assets.LoadShader(BackgroundVS, BackgroundFS)
	if err != nil {
		return fmt.Errorf("background shader: %w", err)
	}

	r.glassLocs = lookupLocations(r.Glass, glassUniforms)
	r.bgLocs = lookupLocations(r.Background, backgroundUniforms)

	r.Attach(w)
	w.Rebuilt.AddListener(func() { r.Attach(w) })
	return nil
}

func lookupLocations(shader rl.Shader, names []string) map[string]int32 {
	locs := make(map[string]int32, len(names))
	for _, name := range names {
		locs[name] = rl.GetShaderLocation(shader, name)
	}
	return locs
}

// Attach sets the renderer's shaders on every drawable object in w.
func (r *Renderer) Attach(w *World) {
	for _, g := range w.Scene.GameObjects {
		if t := engine.GetComponent[*components.TorusRenderer](g); t != nil {
			t.SetShader(r.Glass)
		}
		if b := engine.GetComponent[*components.BackgroundRenderer](g); b != nil {
			b.SetShader(r.Background)
		}
	}
}

// resize keeps the transmission buffer at the render size times scale.
func (r *Renderer) resize(scale float32) {
	width := int32(float32(rl.GetRenderWidth()) * scale)
	height := int32(float32(rl.GetRenderHeight()) * scale)
	if width < 1 || height < 1 {
		return
	}
	if width == r.bufferW && height == r.bufferH && r.Transmission.ID != 0 {
		return
	}
	if r.Transmission.ID != 0 {
		rl.UnloadRenderTexture(r.Transmission)
	}
	r.Transmission = rl.LoadRenderTexture(width, height)
	rl.SetTextureFilter(r.Transmission.Texture, rl.FilterBilinear)
	r.bufferW, r.bufferH = width, height
	log.Printf("Renderer: transmission buffer %dx%d", width, height)
}

// Draw renders both passes. It must be called between BeginDrawing and
// EndDrawing.
func (r *Renderer) Draw(w *World, cam *camera.OrbitCamera) {
	r.resize(w.Config.Material.BufferScale)

	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	proj := cam.Projection(aspect)
	rc := cam.GetRaylibCamera()

	// Transmission pass
	rl.BeginTextureMode(r.Transmission)
	rl.ClearBackground(rl.Black)
	rl.BeginMode3D(rc)
	rl.SetMatrixProjection(proj)
	r.drawBackground(w)
	rl.EndMode3D()
	rl.EndTextureMode()

	rl.Viewport(0, 0, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))

	// Main pass
	rl.ClearBackground(rl.Black)
	rl.BeginMode3D(rc)
	rl.SetMatrixProjection(proj)
	r.drawBackground(w)
	r.drawGlass(w, rc.Position)
	rl.EndMode3D()
}

func (r *Renderer) drawBackground(w *World) {
	b := engine.GetComponent[*components.BackgroundRenderer](w.Background)
	if b == nil {
		return
	}
	rl.SetShaderValue(r.Background, r.bgLocs["colorA"], colorVec3(b.ColorA), rl.ShaderUniformVec3)
	rl.SetShaderValue(r.Background, r.bgLocs["colorB"], colorVec3(b.ColorB), rl.ShaderUniformVec3)
	b.Draw()
}

func (r *Renderer) drawGlass(w *World, viewPos rl.Vector3) {
	cfg := w.Config
	mat := cfg.Material
	s := r.Glass
	loc := r.glassLocs

	rl.SetShaderValue(s, loc["viewPos"], []float32{viewPos.X, viewPos.Y, viewPos.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(s, loc["ambient"], []float32{cfg.Scene.Ambient}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, loc["resolution"], []float32{float32(rl.GetRenderWidth()), float32(rl.GetRenderHeight())}, rl.ShaderUniformVec2)
	rl.SetShaderValue(s, loc["ior"], []float32{mat.IOR}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, loc["thickness"], []float32{mat.Thickness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, loc["anisotropicBlur"], []float32{mat.AnisotropicBlur}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, loc["iridescence"], []float32{mat.Iridescence}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, loc["iridescenceIOR"], []float32{mat.IridescenceIOR}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, loc["iridescenceRange"], mat.IridescenceThicknessRange[:], rl.ShaderUniformVec2)
	rl.SetShaderValue(s, loc["clearcoat"], []float32{mat.Clearcoat}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, loc["clearcoatRoughness"], []float32{mat.ClearcoatRoughness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s, loc["envMapIntensity"], []float32{mat.EnvMapIntensity}, rl.ShaderUniformFloat)

	lf := collectLightformers(w)
	pl := collectPointLights(w)

	rl.EnableShader(s.ID)
	rl.SetUniform(loc["samples"], []int32{int32(mat.Samples)}, int32(rl.ShaderUniformInt), 1)
	rl.SetUniform(loc["lightformerCount"], []int32{int32(lf.count)}, int32(rl.ShaderUniformInt), 1)
	rl.SetUniform(loc["pointLightCount"], []int32{int32(pl.count)}, int32(rl.ShaderUniformInt), 1)
	if lf.count > 0 {
		rl.SetShaderValueV(s, loc["lightformerPos"], lf.pos, rl.ShaderUniformVec3, int32(lf.count))
		rl.SetShaderValueV(s, loc["lightformerNormal"], lf.normal, rl.ShaderUniformVec3, int32(lf.count))
		rl.SetShaderValueV(s, loc["lightformerTangent"], lf.tangent, rl.ShaderUniformVec3, int32(lf.count))
		rl.SetShaderValueV(s, loc["lightformerRect"], lf.rect, rl.ShaderUniformFloat, int32(lf.count))
		rl.SetShaderValueV(s, loc["lightformerColor"], lf.color, rl.ShaderUniformVec3, int32(lf.count))
		rl.SetShaderValueV(s, loc["lightformerRadius"], lf.radius, rl.ShaderUniformFloat, int32(lf.count))
	}
	if pl.count > 0 {
		rl.SetShaderValueV(s, loc["pointLightPos"], pl.pos, rl.ShaderUniformVec3, int32(pl.count))
		rl.SetShaderValueV(s, loc["pointLightColor"], pl.color, rl.ShaderUniformVec3, int32(pl.count))
		rl.SetShaderValueV(s, loc["pointLightRange"], pl.rng, rl.ShaderUniformFloat, int32(pl.count))
	}

	rl.EnableShader(s.ID)
	rl.ActiveTextureSlot(transmissionSlot)
	rl.EnableTexture(r.Transmission.Texture.ID)
	rl.SetUniform(loc["transmission"], []int32{transmissionSlot}, int32(rl.ShaderUniformInt), 1)

	for _, g := range w.Connectors {
		t := engine.GetComponent[*components.TorusRenderer](g)
		if t == nil {
			continue
		}
		rl.SetShaderValue(s, loc["roughness"], []float32{t.Roughness}, rl.ShaderUniformFloat)
		t.Draw()
	}

	rl.ActiveTextureSlot(transmissionSlot)
	rl.DisableTexture()
	rl.ActiveTextureSlot(0)
}

type lightformerUniforms struct {
	count                               int
	pos, normal, tangent, color, radius []float32
	rect                                []float32 // 1 for rect cards, 0 for circles
}

func collectLightformers(w *World) lightformerUniforms {
	var u lightformerUniforms
	for _, g := range w.Environment.Children {
		l := engine.GetComponent[*components.Lightformer](g)
		if l == nil || u.count == MaxLightformers {
			continue
		}
		p, n, t := l.GetPosition(), l.Normal(), l.Tangent()
		u.pos = append(u.pos, p.X, p.Y, p.Z)
		u.normal = append(u.normal, n.X, n.Y, n.Z)
		u.tangent = append(u.tangent, t.X, t.Y, t.Z)
		rect := float32(0)
		if l.Form == components.FormRect {
			rect = 1
		}
		u.rect = append(u.rect, rect)
		u.color = append(u.color, l.GetColorFloat()...)
		u.radius = append(u.radius, l.Radius())
		u.count++
	}
	return u
}

type pointLightUniforms struct {
	count           int
	pos, color, rng []float32
}

func collectPointLights(w *World) pointLightUniforms {
	var u pointLightUniforms
	for _, g := range w.Connectors {
		l := engine.GetComponent[*components.PointLight](g)
		if l == nil || !l.Enabled || u.count == MaxPointLights {
			continue
		}
		p := l.GetPosition()
		u.pos = append(u.pos, p.X, p.Y, p.Z)
		u.color = append(u.color, l.GetColorFloat()...)
		u.rng = append(u.rng, l.Radius)
		u.count++
	}
	return u
}

func colorVec3(c rl.Color) []float32 {
	return []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// Unload frees the transmission buffer. Shaders belong to the asset cache.
func (r *Renderer) Unload() {
	if r.Transmission.ID != 0 {
		rl.UnloadRenderTexture(r.Transmission)
		r.Transmission = rl.RenderTexture2D{}
	}
}
