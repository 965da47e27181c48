package world

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"connectors/internal/assets"
	"connectors/internal/components"
	"connectors/internal/config"
	"connectors/internal/engine"
	"connectors/internal/palette"
	"connectors/internal/physics"
	"connectors/internal/sim"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	TagConnector   = "connector"
	TagPointer     = "pointer"
	TagLightformer = "lightformer"
)

// World owns the scene registry and the physics world built from a config.
// A headless world has no models or shaders and can run without a window.
type World struct {
	Config      *config.Config
	Scene       *engine.Scene
	Physics     *physics.PhysicsWorld
	Pointer     *engine.GameObject
	Connectors  []*engine.GameObject
	Environment *engine.GameObject
	Background  *engine.GameObject
	Seed        int64

	// Rebuilt fires after Reload replaced the scene's objects.
	Rebuilt engine.Event

	headless bool
	spawn    []rl.Vector3
}

// New builds the scene. A zero seed in the config picks a time-based one.
func New(cfg *config.Config, headless bool) *World {
	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &World{
		Config:   cfg,
		Seed:     seed,
		headless: headless,
	}
	w.build(nil)
	return w
}

func (w *World) Headless() bool {
	return w.headless
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func degrees(rad [3]float32) rl.Vector3 {
	return rl.Vector3{X: rad[0] * rl.Rad2deg, Y: rad[1] * rl.Rad2deg, Z: rad[2] * rl.Rad2deg}
}

// build creates every object. Connectors whose index has an entry in spawn
// start there; the rest draw a position from the seeded generator.
func (w *World) build(spawn []rl.Vector3) {
	cfg := w.Config
	w.Scene = engine.NewScene("Connectors")
	w.Physics = physics.NewPhysicsWorld()
	w.Physics.Gravity = vec3(cfg.Physics.Gravity)
	w.Physics.FixedStep = cfg.Physics.FixedStep
	w.Physics.MaxSubsteps = cfg.Physics.MaxSubsteps
	w.Connectors = w.Connectors[:0]

	rng := rand.New(rand.NewSource(w.Seed))

	w.Pointer = w.newPointer()
	w.Scene.AddGameObject(w.Pointer)
	w.Physics.AddObject(w.Pointer)

	var torus rl.Model
	if !w.headless {
		torus = assets.TorusModel(cfg.Torus.Radius, cfg.Torus.Tube, cfg.Torus.RadialSegments, cfg.Torus.TubularSegments)
	}

	n := len(cfg.Scene.Palette.Looks)
	w.spawn = make([]rl.Vector3, n)
	for i := range n {
		pos := randomSpawn(rng, cfg.Scene.Spread)
		if i < len(spawn) {
			pos = spawn[i]
		}
		w.spawn[i] = pos

		g := w.newConnector(i, pos, torus)
		w.Connectors = append(w.Connectors, g)
		w.Scene.AddGameObject(g)
		w.Physics.AddObject(g)
	}

	w.Environment = w.newEnvironment()
	w.Scene.AddGameObject(w.Environment)

	w.Background = w.newBackground()
	w.Scene.AddGameObject(w.Background)

	w.Scene.Start()
	log.Printf("Scene: built %d connectors (seed %d)", len(w.Connectors), w.Seed)
}

// randomSpawn draws each axis uniformly from [-spread/2, spread/2].
func randomSpawn(rng *rand.Rand, spread float32) rl.Vector3 {
	r := func() float32 { return (rng.Float32() - 0.5) * spread }
	return rl.Vector3{X: r(), Y: r(), Z: r()}
}

func (w *World) newPointer() *engine.GameObject {
	g := engine.NewGameObject("Pointer")
	g.Tags = []string{TagPointer}
	g.AddComponent(components.NewSphereCollider(w.Config.Pointer.Radius))
	g.AddComponent(components.NewKinematicRigidbody())
	return g
}

func (w *World) newConnector(i int, pos rl.Vector3, torus rl.Model) *engine.GameObject {
	cfg := w.Config
	g := engine.NewGameObject(fmt.Sprintf("Connector_%d", i))
	g.Tags = []string{TagConnector}
	g.Transform.Position = pos

	g.AddComponent(components.NewBoxCollider(vec3(cfg.Collider.HalfExtents)))

	rb := components.NewRigidbody()
	rb.LinearDamping = cfg.Physics.LinearDamping
	rb.AngularDamping = cfg.Physics.AngularDamping
	rb.Friction = cfg.Physics.Friction
	rb.Bounciness = cfg.Physics.Bounciness
	g.AddComponent(rb)
	rb.Mass = physics.ColliderMass(g, cfg.Physics.Density)

	g.AddComponent(components.NewPointLight(cfg.Scene.AccentLight.Intensity, cfg.Scene.AccentLight.Distance))

	if !w.headless {
		g.AddComponent(components.NewTorusRenderer(torus, true))
	}
	return g
}

func (w *World) newEnvironment() *engine.GameObject {
	env := w.Config.Environment
	group := engine.NewGameObject("Environment")
	group.Transform.Rotation = degrees(env.Rotation)

	for i, lf := range env.Lightformers {
		g := engine.NewGameObject(fmt.Sprintf("Lightformer_%d", i))
		g.Tags = []string{TagLightformer}
		g.Transform.Position = vec3(lf.Position)
		g.Transform.Rotation = degrees(lf.Rotation)
		g.Transform.Scale = rl.Vector3{X: lf.Scale, Y: lf.Scale, Z: lf.Scale}

		form := components.FormCircle
		if lf.Form == "rect" {
			form = components.FormRect
		}
		g.AddComponent(components.NewLightformer(form, lf.Intensity))
		group.AddChild(g)
	}
	return group
}

func (w *World) newBackground() *engine.GameObject {
	bg := w.Config.Background
	g := engine.NewGameObject("Background")
	s := bg.Scale
	g.Transform.Scale = rl.Vector3{X: s, Y: s, Z: s}
	g.Transform.Rotation.Y = bg.RotationY * rl.Rad2deg

	if !w.headless {
		model := assets.SphereModel(bg.Segments)
		a := palette.MustParse(bg.ColorA).Color()
		b := palette.MustParse(bg.ColorB).Color()
		g.AddComponent(components.NewBackgroundRenderer(model, a, b, true))
	}
	return g
}

// BodyIDs lists the pointer followed by every connector, the order
// sim.NewState expects.
func (w *World) BodyIDs() []sim.BodyID {
	ids := make([]sim.BodyID, 0, len(w.Connectors)+1)
	ids = append(ids, sim.BodyID(w.Pointer.UID))
	for _, g := range w.Connectors {
		ids = append(ids, sim.BodyID(g.UID))
	}
	return ids
}

// NewState returns a fresh scene state addressing this world's bodies.
func (w *World) NewState() sim.State {
	return sim.NewState(w.Config.Scene.Palette, w.BodyIDs())
}

// SpawnPositions returns where each connector started.
func (w *World) SpawnPositions() []rl.Vector3 {
	out := make([]rl.Vector3, len(w.spawn))
	copy(out, w.spawn)
	return out
}

// Sync copies the state's appearance onto the scene objects. Positions are
// already written by the physics world.
func (w *World) Sync(s sim.State) {
	for _, b := range s.Bodies {
		if b.Kind != sim.KindConnector {
			continue
		}
		g := w.Scene.FindByUID(uint64(b.ID))
		if g == nil {
			continue
		}
		if r := engine.GetComponent[*components.TorusRenderer](g); r != nil {
			r.Color = b.Color.Color()
			r.Roughness = b.Roughness
		}
		if l := engine.GetComponent[*components.PointLight](g); l != nil {
			l.Enabled = b.Accent
			l.Color = b.Target.Color()
		}
	}
}

// Reload applies cfg. Changes to bodies or physics rebuild the scene,
// keeping connector positions unless the seed changed, and report true; the caller must then
// create a new state. Anything else is applied in place.
func (w *World) Reload(cfg *config.Config) bool {
	old := w.Config
	w.Config = cfg

	rebuild := old.Physics != cfg.Physics ||
		old.Torus != cfg.Torus ||
		old.Collider != cfg.Collider ||
		old.Pointer != cfg.Pointer ||
		old.Scene.Spread != cfg.Scene.Spread ||
		old.Scene.AccentLight != cfg.Scene.AccentLight ||
		len(old.Scene.Palette.Looks) != len(cfg.Scene.Palette.Looks)
	reseed := cfg.Scene.Seed != 0 && cfg.Scene.Seed != old.Scene.Seed
	if reseed {
		w.Seed = cfg.Scene.Seed
		rebuild = true
	}

	if rebuild {
		var positions []rl.Vector3
		if !reseed {
			positions = w.currentPositions()
		}
		w.release()
		w.build(positions)
		w.Rebuilt.Invoke()
		return true
	}

	w.Scene.RemoveGameObject(w.Environment)
	w.Environment = w.newEnvironment()
	w.Scene.AddGameObject(w.Environment)

	if r := engine.GetComponent[*components.BackgroundRenderer](w.Background); r != nil {
		r.ColorA = palette.MustParse(cfg.Background.ColorA).Color()
		r.ColorB = palette.MustParse(cfg.Background.ColorB).Color()
	}
	w.Background.Transform.Scale = rl.Vector3{X: cfg.Background.Scale, Y: cfg.Background.Scale, Z: cfg.Background.Scale}
	w.Background.Transform.Rotation.Y = cfg.Background.RotationY * rl.Rad2deg
	return false
}

func (w *World) currentPositions() []rl.Vector3 {
	out := make([]rl.Vector3, len(w.Connectors))
	for i, g := range w.Connectors {
		out[i] = g.Transform.Position
	}
	return out
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}

func (w *World) release() {
	w.Physics.Clear()
	w.Scene.Unload()
}

// Unload releases the scene's components. Shared models stay with the asset
// cache.
func (w *World) Unload() {
	w.release()
}
