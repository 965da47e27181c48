package game

import (
	"context"
	"math"
	"testing"

	"connectors/internal/config"
	"connectors/internal/palette"
	"connectors/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickTracker(t *testing.T) {
	tests := []struct {
		name    string
		press   rl.Vector2
		release rl.Vector2
		blocked bool
		want    bool
	}{
		{"still", rl.Vector2{X: 100, Y: 100}, rl.Vector2{X: 100, Y: 100}, false, true},
		{"small wobble", rl.Vector2{X: 100, Y: 100}, rl.Vector2{X: 102, Y: 103}, false, true},
		{"orbit drag", rl.Vector2{X: 100, Y: 100}, rl.Vector2{X: 160, Y: 100}, false, false},
		{"pressed on hud", rl.Vector2{X: 20, Y: 20}, rl.Vector2{X: 20, Y: 20}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c clickTracker
			c.Press(tt.press, tt.blocked)
			assert.Equal(t, tt.want, c.Release(tt.release))
		})
	}
}

func TestClickTrackerNeedsPress(t *testing.T) {
	var c clickTracker
	assert.False(t, c.Release(rl.Vector2{}))

	c.Press(rl.Vector2{}, false)
	assert.True(t, c.Release(rl.Vector2{}))
	assert.False(t, c.Release(rl.Vector2{}), "one press gives one click")
}

func newHeadlessGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Scene.Seed = 5
	g := New(cfg)
	g.World = world.New(cfg, true)
	g.State = g.World.NewState()
	return g
}

func TestApplyConfigSwapsPalette(t *testing.T) {
	g := newHeadlessGame(t)
	g.State = g.Composer.Click(g.State)
	ids := g.World.BodyIDs()

	cfg := config.Default()
	cfg.Scene.Seed = 5
	cfg.Scene.Palette.Looks[0].Color = "#000000"
	cfg.Camera.Fov = 30
	g.applyConfig(cfg)

	assert.Equal(t, ids, g.World.BodyIDs(), "palette edits keep the bodies")
	assert.Equal(t, 1, g.State.Accent)
	assert.Equal(t, palette.MustParse("#000000"), g.State.Connectors()[0].Target)
	assert.Equal(t, float32(30), g.Camera.Fovy)
}

func TestApplyConfigRebuildKeepsAccent(t *testing.T) {
	g := newHeadlessGame(t)
	g.State = g.Composer.Click(g.Composer.Click(g.State))
	ids := g.World.BodyIDs()

	cfg := config.Default()
	cfg.Scene.Seed = 5
	cfg.Physics.Friction = 0.5
	g.applyConfig(cfg)

	require.Len(t, g.State.Connectors(), 5)
	assert.NotEqual(t, ids, g.World.BodyIDs())
	assert.Equal(t, g.World.BodyIDs()[0], g.State.Pointer)
	assert.Equal(t, 2, g.State.Accent)
}

func TestDrainUpdatesClosedChannel(t *testing.T) {
	g := newHeadlessGame(t)
	ch := make(chan *config.Config)
	close(ch)
	g.Updates = ch

	g.drainUpdates()
	assert.Nil(t, g.Updates)
}

func TestNewCameraUsesConfig(t *testing.T) {
	cfg := config.Default()
	cam := newCamera(cfg.Camera)
	assert.InDelta(t, 15, cam.Distance, 1e-5)
	assert.Equal(t, float32(17.5), cam.Fovy)
	assert.Equal(t, float32(1), cam.Near)
	assert.Equal(t, float32(100), cam.Far)
}

func TestRunningStopsOnCancel(t *testing.T) {
	g := newHeadlessGame(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, g.running(ctx))
}

func TestFrameInput(t *testing.T) {
	g := newHeadlessGame(t)

	in, ok := g.frameInput(0.016, rl.Vector2{X: 800, Y: 0}, 800, 600)
	require.True(t, ok)
	assert.Equal(t, float32(0.016), in.Delta)
	assert.InDelta(t, 1, in.Pointer.X, 1e-6)
	assert.InDelta(t, 1, in.Pointer.Y, 1e-6)
	assert.InDelta(t, in.Viewport.Height*800/600, in.Viewport.Width, 1e-4)
	assert.False(t, math.IsInf(float64(in.Viewport.Width), 0))

	for _, size := range [][2]int{{800, 0}, {0, 600}, {0, 0}} {
		_, ok := g.frameInput(0.016, rl.Vector2{}, size[0], size[1])
		assert.False(t, ok, "size %v", size)
	}
}
