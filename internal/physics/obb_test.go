package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestOBBIntersectsAligned(t *testing.T) {
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 0.38}, rl.Vector3{})
	b := NewOBB(rl.Vector3{X: 1.5}, rl.Vector3{X: 1, Y: 1, Z: 0.38}, rl.Vector3{})
	c := NewOBB(rl.Vector3{X: 2.5}, rl.Vector3{X: 1, Y: 1, Z: 0.38}, rl.Vector3{})

	assert.True(t, a.IntersectsOBB(b))
	assert.False(t, a.IntersectsOBB(c))
}

func TestOBBRotatedSeparation(t *testing.T) {
	// A thin slab rotated 90 degrees around Y is only 0.38 deep along X.
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 0.38}, rl.Vector3{Y: 90})
	b := NewOBB(rl.Vector3{X: 1.5}, rl.Vector3{X: 1, Y: 1, Z: 0.38}, rl.Vector3{})

	assert.False(t, a.IntersectsOBB(b), "0.38 + 1 < 1.5")

	unrotated := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 0.38}, rl.Vector3{})
	assert.True(t, unrotated.IntersectsOBB(b))
}

func TestResolveOBBMinimumTranslation(t *testing.T) {
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})
	b := NewOBB(rl.Vector3{X: 1.5}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})

	mtv := a.ResolveOBB(b)

	assert.InDelta(t, -0.5, mtv.X, 1e-5)
	assert.InDelta(t, 0, mtv.Y, 1e-5)
	assert.InDelta(t, 0, mtv.Z, 1e-5)
}

func TestResolveOBBNoOverlap(t *testing.T) {
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})
	b := NewOBB(rl.Vector3{Y: 3}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})
	assert.Equal(t, rl.Vector3Zero(), a.ResolveOBB(b))
}

func TestClosestPointOnOBB(t *testing.T) {
	o := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 0.38}, rl.Vector3{})

	p := ClosestPointOnOBB(o, rl.Vector3{X: 5, Y: 0.5, Z: -3})
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 0.5, p.Y, 1e-5)
	assert.InDelta(t, -0.38, p.Z, 1e-5)

	assert.True(t, o.IntersectsSphere(rl.Vector3{X: 1.5}, 1))
	assert.False(t, o.IntersectsSphere(rl.Vector3{X: 2.5}, 1))
}

func TestSphereContactOutside(t *testing.T) {
	o := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 0.38}, rl.Vector3{})

	n, depth, ok := o.SphereContact(rl.Vector3{X: 1.5}, 1)

	assert.True(t, ok)
	assert.InDelta(t, 1, n.X, 1e-5)
	assert.InDelta(t, 0.5, depth, 1e-5)

	_, _, ok = o.SphereContact(rl.Vector3{X: 3}, 1)
	assert.False(t, ok)
}

func TestSphereContactCenterInside(t *testing.T) {
	o := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 0.38}, rl.Vector3{})

	// Closest face is -Z, 0.28 away.
	n, depth, ok := o.SphereContact(rl.Vector3{Z: -0.1}, 1)

	assert.True(t, ok)
	assert.InDelta(t, -1, n.Z, 1e-5)
	assert.InDelta(t, 1.28, depth, 1e-5)
}
