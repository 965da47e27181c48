package components

import (
	"testing"

	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyImpulseDividesByMass(t *testing.T) {
	rb := NewRigidbody()
	rb.Mass = 2
	rb.IsSleeping = true

	rb.ApplyImpulse(rl.Vector3{X: 4, Y: -2})

	assert.Equal(t, rl.Vector3{X: 2, Y: -1}, rb.Velocity)
	assert.False(t, rb.IsSleeping, "impulse should wake the body")
}

func TestKinematicIgnoresImpulse(t *testing.T) {
	rb := NewKinematicRigidbody()
	rb.ApplyImpulse(rl.Vector3{X: 10})
	assert.Equal(t, rl.Vector3{}, rb.Velocity)
}

func TestNextKinematicTranslationIsConsumedOnce(t *testing.T) {
	rb := NewKinematicRigidbody()
	_, ok := rb.TakeNextKinematicTranslation()
	require.False(t, ok)

	rb.SetNextKinematicTranslation(rl.Vector3{X: 1, Y: 2})
	p, ok := rb.TakeNextKinematicTranslation()
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2}, p)

	_, ok = rb.TakeNextKinematicTranslation()
	assert.False(t, ok)
}

func TestDampMatchesRationalDecay(t *testing.T) {
	rb := NewRigidbody()
	rb.Velocity = rl.Vector3{X: 10}
	rb.AngularVelocity = rl.Vector3{Y: 10}

	rb.Damp(0.25)

	assert.InDelta(t, 10/(1+0.25*4), rb.Velocity.X, 1e-5)
	assert.InDelta(t, 10/(1+0.25*1), rb.AngularVelocity.Y, 1e-5)
}

func TestTrySleepAfterThreshold(t *testing.T) {
	rb := NewRigidbody()
	rb.Velocity = rl.Vector3{X: 0.01}

	rb.TrySleep(SleepTimeThreshold / 2)
	assert.False(t, rb.IsSleeping)
	rb.TrySleep(SleepTimeThreshold / 2)
	assert.True(t, rb.IsSleeping)
	assert.Equal(t, rl.Vector3{}, rb.Velocity)
}

func TestColliderVolumes(t *testing.T) {
	box := NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 0.38})
	assert.InDelta(t, 3.04, box.Volume(), 1e-5)

	sphere := NewSphereCollider(1)
	assert.InDelta(t, 4.18879, sphere.Volume(), 1e-4)
}

func TestBoxColliderFollowsObject(t *testing.T) {
	obj := engine.NewGameObject("Connector")
	obj.Transform.Position = rl.Vector3{X: 3}
	obj.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	box := NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 0.5})
	obj.AddComponent(box)

	assert.Equal(t, rl.Vector3{X: 3}, box.GetCenter())
	assert.Equal(t, rl.Vector3{X: 2, Y: 2, Z: 1}, box.GetWorldHalfExtents())
}

func TestLightformerFacesRotatedAxis(t *testing.T) {
	obj := engine.NewGameObject("Lightformer")
	obj.Transform.Rotation = rl.Vector3{Y: 90}
	obj.Transform.Scale = rl.Vector3{X: 3, Y: 3, Z: 3}
	lf := NewLightformer(FormCircle, 2)
	obj.AddComponent(lf)

	n := lf.Normal()
	assert.InDelta(t, 1, n.X, 1e-5)
	assert.InDelta(t, 0, n.Z, 1e-5)
	assert.InDelta(t, 3, lf.Radius(), 1e-6)
	assert.Equal(t, []float32{2, 2, 2}, lf.GetColorFloat())

	tan := lf.Tangent()
	assert.InDelta(t, -1, tan.Z, 1e-5)

	lf.Form = FormRect
	assert.InDelta(t, 1.5, lf.Radius(), 1e-6)
}
