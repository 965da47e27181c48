package physics

import (
	"connectors/internal/components"
	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cross computes the cross product of two vectors
func cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// estimateContactPoint estimates the contact point on an object's surface given a push direction
func estimateContactPoint(center rl.Vector3, halfSize rl.Vector3, pushDir rl.Vector3) rl.Vector3 {
	contact := center
	contact.X -= pushDir.X * halfSize.X
	contact.Y -= pushDir.Y * halfSize.Y
	contact.Z -= pushDir.Z * halfSize.Z
	return contact
}

// boxInertia approximates a cuboid's moment of inertia with a single scalar.
func boxInertia(mass float32, half rl.Vector3) float32 {
	return mass * rl.Vector3DotProduct(half, half) / 3
}

// ColliderMass returns the mass of g's collider at the given density.
// Objects without a collider weigh density.
func ColliderMass(g *engine.GameObject, density float32) float32 {
	if box := engine.GetComponent[*components.BoxCollider](g); box != nil {
		return box.Volume() * density
	}
	if sphere := engine.GetComponent[*components.SphereCollider](g); sphere != nil {
		return sphere.Volume() * density
	}
	return density
}

// boxOBB builds the collision box of a GameObject with a BoxCollider.
func boxOBB(g *engine.GameObject, box *components.BoxCollider) OBB {
	return NewOBB(box.GetCenter(), box.GetWorldHalfExtents(), g.WorldRotation())
}
