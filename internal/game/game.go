package game

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"connectors/internal/assets"
	"connectors/internal/camera"
	"connectors/internal/config"
	"connectors/internal/sim"
	"connectors/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	Config   *config.Config
	World    *world.World
	Renderer *world.Renderer
	Camera   *camera.OrbitCamera
	Composer *sim.Composer
	State    sim.State

	ShowHUD     bool
	Paused      bool
	SnapshotDir string

	// Updates delivers reloaded configs; it may be nil.
	Updates <-chan *config.Config

	clicks      clickTracker
	queuedClick bool
	lastReport  sim.FrameReport
	shuffles    int

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(cfg *config.Config) *Game {
	g := &Game{
		Config:      cfg,
		Renderer:    world.NewRenderer(),
		Composer:    sim.NewComposer(),
		SnapshotDir: "snapshots",
	}
	g.Camera = newCamera(cfg.Camera)
	g.Composer.Shuffled.AddListener(func(accent int) {
		g.shuffles++
		log.Printf("Scene: accent %d (%s)", accent, g.Config.Scene.Palette.Accents[accent])
	})
	return g
}

func newCamera(c config.CameraConfig) *camera.OrbitCamera {
	cam := camera.New(
		rl.Vector3{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]},
		rl.Vector3{X: c.Target[0], Y: c.Target[1], Z: c.Target[2]},
		c.Fov,
	)
	cam.Near = c.Near
	cam.Far = c.Far
	return cam
}

// Run opens the window and drives the frame loop until it is closed or ctx
// is cancelled. A non-empty snapshotPath restores that snapshot before the
// first frame.
func (g *Game) Run(ctx context.Context, snapshotPath string) error {
	win := g.Config.Window
	flags := uint32(rl.FlagWindowHighdpi)
	if win.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	if win.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(win.TargetFPS))

	// GPU resources need the OpenGL context created above
	assets.Init()
	defer assets.Unload()

	g.World = world.New(g.Config, false)
	defer g.World.Unload()

	if err := g.Renderer.Initialize(g.World); err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	defer g.Renderer.Unload()

	initHUDStyle()

	g.State = g.World.NewState()
	if snapshotPath != "" {
		snap, err := world.LoadSnapshot(snapshotPath)
		if err != nil {
			return err
		}
		if g.State, err = g.World.Restore(snap, g.Composer); err != nil {
			return err
		}
	}

	for g.running(ctx) {
		g.drainUpdates()
		g.Update()
		g.Draw()
	}
	if ctx.Err() != nil {
		log.Printf("Scene: interrupted, closing window")
	}
	return nil
}

// running checks ctx before the window so a cancelled run never touches
// raylib.
func (g *Game) running(ctx context.Context) bool {
	return ctx.Err() == nil && !rl.WindowShouldClose()
}

// drainUpdates applies a pending config reload, if any, between frames.
func (g *Game) drainUpdates() {
	if g.Updates == nil {
		return
	}
	select {
	case cfg, ok := <-g.Updates:
		if !ok {
			g.Updates = nil
			return
		}
		g.applyConfig(cfg)
	default:
	}
}

func (g *Game) applyConfig(cfg *config.Config) {
	accent := g.State.Accent
	g.Config = cfg
	if g.World.Reload(cfg) {
		g.State = g.Composer.SetAccent(g.World.NewState(), accent)
	} else {
		g.State = g.Composer.SetPalette(g.State, cfg.Scene.Palette)
	}

	g.Camera.Fovy = cfg.Camera.Fov
	g.Camera.Near = cfg.Camera.Near
	g.Camera.Far = cfg.Camera.Far
	if !g.World.Headless() {
		rl.SetTargetFPS(int32(cfg.Window.TargetFPS))
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.ShowHUD = !g.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.saveSnapshot()
	}

	overHUD := g.ShowHUD && rl.CheckCollisionPointRec(rl.GetMousePosition(), hudBounds)
	g.Camera.Update(deltaTime, !overHUD)

	clicked := g.clicks.poll(overHUD) || g.queuedClick
	g.queuedClick = false

	if g.Paused {
		if clicked {
			g.State = g.Composer.Click(g.State)
		}
		g.World.Sync(g.State)
		return
	}

	in, ok := g.frameInput(deltaTime, rl.GetMousePosition(), rl.GetScreenWidth(), rl.GetScreenHeight())
	if !ok {
		// Minimized: hold the scene, keep the click.
		g.queuedClick = clicked
		return
	}
	in.Clicked = clicked
	g.State, g.lastReport = g.Composer.Frame(g.State, in, g.World.Physics)

	g.World.Update(deltaTime)
	g.World.Sync(g.State)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// frameInput maps the mouse into the camera viewport. It reports false
// when the window has no area.
func (g *Game) frameInput(delta float32, mouse rl.Vector2, width, height int) (sim.FrameInput, bool) {
	if width <= 0 || height <= 0 {
		return sim.FrameInput{}, false
	}
	vw, vh := g.Camera.Viewport(float32(width) / float32(height))
	return sim.FrameInput{
		Delta:    delta,
		Pointer:  sim.NormalizePointer(mouse, width, height),
		Viewport: sim.Viewport{Width: vw, Height: vh},
	}, true
}

func (g *Game) Draw() {
	rl.BeginDrawing()

	drawStart := time.Now()
	g.Renderer.Draw(g.World, g.Camera)
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) saveSnapshot() {
	name := fmt.Sprintf("snapshot-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(g.SnapshotDir, name)
	if err := world.SaveSnapshot(path, g.World.Capture(g.State)); err != nil {
		log.Printf("Scene: %v", err)
		return
	}
	log.Printf("Scene: saved %s", path)
}
