package physics

import (
	"testing"

	"connectors/internal/components"
	"connectors/internal/engine"
	"connectors/internal/palette"
	"connectors/internal/sim"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConnector(p *PhysicsWorld, pos rl.Vector3) *engine.GameObject {
	obj := engine.NewGameObject("Connector")
	obj.Transform.Position = pos
	obj.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 0.38}))
	rb := components.NewRigidbody()
	obj.AddComponent(rb)
	rb.Mass = ColliderMass(obj, 1)
	p.AddObject(obj)
	return obj
}

func newPointer(p *PhysicsWorld, pos rl.Vector3) *engine.GameObject {
	obj := engine.NewGameObject("Pointer")
	obj.Transform.Position = pos
	obj.AddComponent(components.NewSphereCollider(1))
	obj.AddComponent(components.NewKinematicRigidbody())
	p.AddObject(obj)
	return obj
}

func TestAddObjectSortsBodies(t *testing.T) {
	p := NewPhysicsWorld()
	newConnector(p, rl.Vector3{})
	newPointer(p, rl.Vector3{X: 5})
	p.AddObject(engine.NewGameObject("NoBody"))

	assert.Equal(t, 1, p.DynamicObjectCount())
	assert.Len(t, p.Kinematics, 1)
}

func TestColliderMassUsesVolume(t *testing.T) {
	p := NewPhysicsWorld()
	c := newConnector(p, rl.Vector3{})
	assert.InDelta(t, 3.04, engine.GetComponent[*components.Rigidbody](c).Mass, 1e-5)
}

func TestStepAccumulatesFixedSubsteps(t *testing.T) {
	p := NewPhysicsWorld()

	p.Step(0.01)
	assert.Equal(t, uint64(0), p.Steps())
	p.Step(0.01)
	assert.Equal(t, uint64(1), p.Steps())

	p.Step(0)
	p.Step(-1)
	assert.Equal(t, uint64(1), p.Steps())
}

func TestStepCapsSubsteps(t *testing.T) {
	p := NewPhysicsWorld()

	p.Step(1)
	assert.Equal(t, uint64(DefaultMaxSubsteps), p.Steps())

	// backlog was dropped
	p.Step(0.001)
	assert.Equal(t, uint64(DefaultMaxSubsteps), p.Steps())
}

func TestSolverLookupsByUID(t *testing.T) {
	p := NewPhysicsWorld()
	c := newConnector(p, rl.Vector3{X: 2})
	ptr := newPointer(p, rl.Vector3{})

	pos, ok := p.Translation(sim.BodyID(c.UID))
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 2}, pos)

	_, ok = p.Translation(sim.BodyID(1 << 40))
	assert.False(t, ok)
	assert.False(t, p.ApplyImpulse(sim.BodyID(1<<40), rl.Vector3{X: 1}))
	assert.False(t, p.ApplyImpulse(sim.BodyID(ptr.UID), rl.Vector3{X: 1}), "kinematic bodies take no impulses")
	assert.False(t, p.SetKinematicTranslation(sim.BodyID(c.UID), rl.Vector3{}), "dynamic bodies have no kinematic target")

	p.RemoveObject(c)
	_, ok = p.Translation(sim.BodyID(c.UID))
	assert.False(t, ok)
}

func TestImpulseMovesAndDamps(t *testing.T) {
	p := NewPhysicsWorld()
	c := newConnector(p, rl.Vector3{})
	rb := engine.GetComponent[*components.Rigidbody](c)

	require.True(t, p.ApplyImpulse(sim.BodyID(c.UID), rl.Vector3{X: rb.Mass}))
	p.Step(p.FixedStep)

	h := p.FixedStep
	assert.InDelta(t, h, c.Transform.Position.X, 1e-5)
	assert.InDelta(t, 1/(1+h*4), rb.Velocity.X, 1e-5)
}

func TestKinematicPointerPushesConnectorOut(t *testing.T) {
	p := NewPhysicsWorld()
	c := newConnector(p, rl.Vector3{X: 1.5})
	ptr := newPointer(p, rl.Vector3{})

	require.True(t, p.SetKinematicTranslation(sim.BodyID(ptr.UID), rl.Vector3{X: 0.8}))
	p.Step(p.FixedStep)

	assert.InDelta(t, 0.8, ptr.Transform.Position.X, 1e-5)
	// left face of the box rests on the sphere surface
	assert.InDelta(t, 2.8, c.Transform.Position.X, 1e-4)
	assert.Greater(t, engine.GetComponent[*components.Rigidbody](c).Velocity.X, float32(0))
	assert.Equal(t, 1, p.ContactCount())
}

func TestOverlappingConnectorsSeparate(t *testing.T) {
	p := NewPhysicsWorld()
	a := newConnector(p, rl.Vector3{})
	b := newConnector(p, rl.Vector3{X: 1.5})

	started := 0
	p.ContactStarted.AddListener(func(ContactPair) { started++ })

	p.Step(p.FixedStep)

	assert.InDelta(t, -0.25, a.Transform.Position.X, 1e-4)
	assert.InDelta(t, 1.75, b.Transform.Position.X, 1e-4)
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, p.ContactCount())

	p.Step(p.FixedStep)
	assert.Equal(t, 1, started, "contact start fires once per touch")
}

func TestPosToCellFloorsNegative(t *testing.T) {
	assert.Equal(t, CellKey{-1, 0, 0}, posToCell(rl.Vector3{X: -0.5}))
	assert.Equal(t, CellKey{1, 0, -2}, posToCell(rl.Vector3{X: 5, Z: -5.5}))
}

func TestComposerPullsConnectorsToCenter(t *testing.T) {
	p := NewPhysicsWorld()
	ptr := newPointer(p, rl.Vector3{})
	c := newConnector(p, rl.Vector3{X: 4})

	pal := palette.Palette{Accents: []string{"#4060ff"}, Looks: []palette.Look{{Color: "#ff9430", Roughness: 1}}}
	state := sim.NewState(pal, []sim.BodyID{sim.BodyID(ptr.UID), sim.BodyID(c.UID)})
	composer := sim.NewComposer()

	// park the pointer in a corner out of the connector's way
	in := sim.FrameInput{Delta: 1.0 / 60, Pointer: sim.Pointer{X: 1, Y: 1}, Viewport: sim.Viewport{Width: 10, Height: 10}}
	for i := 0; i < 300; i++ {
		var rep sim.FrameReport
		state, rep = composer.Frame(state, in, p)
		require.Zero(t, rep.Skipped)
	}

	body, ok := state.Body(sim.BodyID(c.UID))
	require.True(t, ok)
	assert.Less(t, rl.Vector3Length(body.Position), float32(0.1))
	assert.Equal(t, rl.Vector3{X: 5, Y: 5}, ptr.Transform.Position)
}
