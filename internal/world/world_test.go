package world

import (
	"path/filepath"
	"testing"

	"connectors/internal/components"
	"connectors/internal/config"
	"connectors/internal/engine"
	"connectors/internal/sim"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(seed int64) *config.Config {
	cfg := config.Default()
	cfg.Scene.Seed = seed
	return cfg
}

func TestNewHeadlessWorld(t *testing.T) {
	w := New(testConfig(1), true)
	defer w.Unload()

	require.Len(t, w.Connectors, 5)
	assert.Equal(t, 5, w.Physics.DynamicObjectCount())
	assert.Len(t, w.Physics.Kinematics, 1)
	assert.True(t, w.Headless())

	rb := engine.GetComponent[*components.Rigidbody](w.Pointer)
	require.NotNil(t, rb)
	assert.True(t, rb.IsKinematic)
	assert.NotNil(t, engine.GetComponent[*components.SphereCollider](w.Pointer))

	half := float32(w.Config.Scene.Spread / 2)
	for _, g := range w.Connectors {
		assert.True(t, g.HasTag(TagConnector))
		assert.Nil(t, engine.GetComponent[*components.TorusRenderer](g), "headless worlds have no models")

		crb := engine.GetComponent[*components.Rigidbody](g)
		require.NotNil(t, crb)
		assert.InDelta(t, 3.04, crb.Mass, 1e-4)
		assert.Equal(t, float32(4), crb.LinearDamping)
		assert.Equal(t, float32(1), crb.AngularDamping)

		p := g.Transform.Position
		for _, v := range []float32{p.X, p.Y, p.Z} {
			assert.LessOrEqual(t, v, half)
			assert.GreaterOrEqual(t, v, -half)
		}
	}

	assert.Len(t, w.Environment.Children, 4)
	assert.InDelta(t, 10, w.Background.Transform.Scale.X, 1e-6)
	assert.InDelta(t, 2.5*rl.Rad2deg, w.Background.Transform.Rotation.Y, 1e-3)
}

func TestSameSeedSameSpawn(t *testing.T) {
	a := New(testConfig(7), true)
	b := New(testConfig(7), true)
	c := New(testConfig(8), true)

	assert.Equal(t, a.SpawnPositions(), b.SpawnPositions())
	assert.NotEqual(t, a.SpawnPositions(), c.SpawnPositions())
}

func TestNewStateAddressesBodies(t *testing.T) {
	w := New(testConfig(1), true)
	s := w.NewState()

	ids := w.BodyIDs()
	require.Len(t, ids, 6)
	assert.Equal(t, sim.BodyID(w.Pointer.UID), ids[0])
	assert.Equal(t, ids[0], s.Pointer)
	assert.Len(t, s.Connectors(), 5)

	for _, id := range ids {
		_, ok := w.Physics.Translation(id)
		assert.True(t, ok)
	}
}

func TestSyncEnablesAccentLights(t *testing.T) {
	cfg := testConfig(1)
	cfg.Scene.Palette.Looks[0].Accent = true
	w := New(cfg, true)

	w.Sync(w.NewState())

	first := engine.GetComponent[*components.PointLight](w.Connectors[0])
	require.NotNil(t, first)
	assert.True(t, first.Enabled)
	assert.Equal(t, rl.NewColor(0x40, 0x60, 0xff, 255), first.Color)

	for _, g := range w.Connectors[1:] {
		assert.False(t, engine.GetComponent[*components.PointLight](g).Enabled)
	}
}

func TestComposerDrivesWorldPhysics(t *testing.T) {
	w := New(testConfig(3), true)
	c := sim.NewComposer()
	s := w.NewState()

	in := sim.FrameInput{
		Delta:    1.0 / 60,
		Pointer:  sim.Pointer{X: 1, Y: 1},
		Viewport: sim.Viewport{Width: 4, Height: 4},
	}
	start := meanDistance(s)
	for range 240 {
		s, _ = c.Frame(s, in, w.Physics)
	}
	assert.Less(t, meanDistance(s), start)
	assert.Equal(t, uint64(240), s.Frame)

	pos, ok := w.Physics.Translation(s.Pointer)
	require.True(t, ok)
	assert.InDelta(t, 2, pos.X, 1e-4)
	assert.InDelta(t, 2, pos.Y, 1e-4)
}

func meanDistance(s sim.State) float32 {
	var sum float32
	conns := s.Connectors()
	for _, b := range conns {
		sum += rl.Vector3Length(b.Position)
	}
	return sum / float32(len(conns))
}

func TestReloadAppliesInPlace(t *testing.T) {
	w := New(testConfig(1), true)
	rebuilt := 0
	w.Rebuilt.AddListener(func() { rebuilt++ })
	pointer := w.Pointer

	cfg := testConfig(1)
	cfg.Environment.Lightformers[0].Intensity = 9
	cfg.Background.Scale = 12

	assert.False(t, w.Reload(cfg))
	assert.Equal(t, 0, rebuilt)
	assert.Same(t, pointer, w.Pointer)
	assert.InDelta(t, 12, w.Background.Transform.Scale.X, 1e-6)

	l := engine.GetComponent[*components.Lightformer](w.Environment.Children[0])
	require.NotNil(t, l)
	assert.Equal(t, float32(9), l.Intensity)
}

func TestReloadRebuildsOnPhysicsChange(t *testing.T) {
	w := New(testConfig(1), true)
	rebuilt := 0
	w.Rebuilt.AddListener(func() { rebuilt++ })

	w.Connectors[0].Transform.Position = rl.Vector3{X: 1, Y: 2, Z: 3}

	cfg := testConfig(1)
	cfg.Physics.LinearDamping = 2
	require.True(t, w.Reload(cfg))
	assert.Equal(t, 1, rebuilt)

	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, w.Connectors[0].Transform.Position)
	assert.Equal(t, float32(2), engine.GetComponent[*components.Rigidbody](w.Connectors[0]).LinearDamping)
	assert.Equal(t, 5, w.Physics.DynamicObjectCount())
}

func TestReloadNewSeedRespawns(t *testing.T) {
	w := New(testConfig(1), true)
	w.Connectors[0].Transform.Position = rl.Vector3{X: 1, Y: 2, Z: 3}

	require.True(t, w.Reload(testConfig(9)))
	assert.Equal(t, int64(9), w.Seed)
	assert.Equal(t, New(testConfig(9), true).SpawnPositions(), w.SpawnPositions())
	assert.Equal(t, w.SpawnPositions()[0], w.Connectors[0].Transform.Position)
}

func TestSnapshotRoundTrip(t *testing.T) {
	w := New(testConfig(11), true)
	c := sim.NewComposer()
	s := w.NewState()
	s = c.Click(c.Click(s))
	in := sim.FrameInput{Delta: 1.0 / 60, Viewport: sim.Viewport{Width: 4, Height: 4}}
	for range 30 {
		s, _ = c.Frame(s, in, w.Physics)
	}

	path := filepath.Join(t.TempDir(), "snapshots", "scene.json")
	require.NoError(t, SaveSnapshot(path, w.Capture(s)))

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Accent)
	assert.Equal(t, uint64(30), snap.Frame)
	assert.Equal(t, int64(11), snap.Seed)
	require.Len(t, snap.Bodies, 6)
	assert.Equal(t, "pointer", snap.Bodies[0].Kind)

	other := New(testConfig(12), true)
	restored, err := other.Restore(snap, c)
	require.NoError(t, err)

	assert.Equal(t, 2, restored.Accent)
	assert.Equal(t, uint64(30), restored.Frame)
	assert.Equal(t, int64(11), other.Seed)

	want := w.currentPositions()
	got := other.currentPositions()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-5)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-5)
		assert.InDelta(t, want[i].Z, got[i].Z, 1e-5)
	}

	before := s.Connectors()
	after := restored.Connectors()
	for i := range before {
		assert.Less(t, before[i].Color.Distance(after[i].Color), float32(0.01))
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	w := New(testConfig(1), true)
	_, err = w.Restore(&Snapshot{Bodies: []BodyDef{{Kind: "connector", Color: "nope"}}}, sim.NewComposer())
	assert.Error(t, err)
}
