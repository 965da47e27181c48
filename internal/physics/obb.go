package physics

import (
	"math"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, half extents and euler rotation in
// degrees, rotated in the engine's X, Y, Z order.
func NewOBB(center, halfSize, rotation rl.Vector3) OBB {
	rotX := rl.MatrixRotateX(rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotation.Z * rl.Deg2rad)
	m := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	return OBB{
		Center:   center,
		HalfSize: halfSize,
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2}),
			rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}),
			rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}),
		},
	}
}

// BoundingRadius is the radius of the sphere enclosing the box.
func (o OBB) BoundingRadius() float32 {
	return rl.Vector3Length(o.HalfSize)
}

// project returns the box's half length along axis.
func (o OBB) project(axis rl.Vector3) float32 {
	return o.HalfSize.X*math32.Abs(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(o.Axes[2], axis))
}

// candidateAxes are the 15 separating axis candidates of the SAT test.
func (a OBB) candidateAxes(b OBB) []rl.Vector3 {
	axes := make([]rl.Vector3, 0, 15)
	axes = append(axes, a.Axes[:]...)
	axes = append(axes, b.Axes[:]...)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			// parallel edges give no axis
			if rl.Vector3Length(axis) > 0.0001 {
				axes = append(axes, rl.Vector3Normalize(axis))
			}
		}
	}
	return axes
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	t := rl.Vector3Subtract(b.Center, a.Center)
	for _, axis := range a.candidateAxes(b) {
		if math32.Abs(rl.Vector3DotProduct(t, axis)) > a.project(axis)+b.project(axis) {
			return false
		}
	}
	return true
}

// ResolveOBB returns the minimum translation vector to push 'a' out of 'b'
// Returns zero vector if no overlap
func (a OBB) ResolveOBB(b OBB) rl.Vector3 {
	t := rl.Vector3Subtract(b.Center, a.Center)
	minPenetration := float32(math.MaxFloat32)
	var mtv rl.Vector3

	for _, axis := range a.candidateAxes(b) {
		dist := rl.Vector3DotProduct(t, axis)
		penetration := a.project(axis) + b.project(axis) - math32.Abs(dist)
		if penetration <= 0 {
			return rl.Vector3Zero()
		}
		if penetration < minPenetration {
			minPenetration = penetration
			// push away from b
			if dist < 0 {
				mtv = rl.Vector3Scale(axis, penetration)
			} else {
				mtv = rl.Vector3Scale(axis, -penetration)
			}
		}
	}
	return mtv
}

// toLocal expresses a world point in the box's frame.
func (o OBB) toLocal(point rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(point, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

func (o OBB) toWorld(local rl.Vector3) rl.Vector3 {
	result := o.Center
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[0], local.X))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], local.Y))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], local.Z))
	return result
}

// ClosestPointOnOBB returns the point of the box closest to point. Points
// inside the box are returned unchanged.
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	local := o.toLocal(point)
	return o.toWorld(rl.Vector3{
		X: clamp(local.X, -o.HalfSize.X, o.HalfSize.X),
		Y: clamp(local.Y, -o.HalfSize.Y, o.HalfSize.Y),
		Z: clamp(local.Z, -o.HalfSize.Z, o.HalfSize.Z),
	})
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	closest := ClosestPointOnOBB(o, center)
	d := rl.Vector3Subtract(center, closest)
	return rl.Vector3DotProduct(d, d) <= radius*radius
}

// SphereContact reports how far the sphere overlaps the box. normal points
// from the box toward the sphere center; moving the box by -normal*depth
// separates them. A center inside the box exits through the nearest face.
func (o OBB) SphereContact(center rl.Vector3, radius float32) (normal rl.Vector3, depth float32, ok bool) {
	local := o.toLocal(center)
	inside := math32.Abs(local.X) <= o.HalfSize.X &&
		math32.Abs(local.Y) <= o.HalfSize.Y &&
		math32.Abs(local.Z) <= o.HalfSize.Z

	if !inside {
		closest := ClosestPointOnOBB(o, center)
		diff := rl.Vector3Subtract(center, closest)
		dist := rl.Vector3Length(diff)
		if dist >= radius || dist < 0.0001 {
			return rl.Vector3{}, 0, false
		}
		return rl.Vector3Scale(diff, 1/dist), radius - dist, true
	}

	// nearest face
	gaps := [3]float32{
		o.HalfSize.X - math32.Abs(local.X),
		o.HalfSize.Y - math32.Abs(local.Y),
		o.HalfSize.Z - math32.Abs(local.Z),
	}
	coords := [3]float32{local.X, local.Y, local.Z}
	best := 0
	for i := 1; i < 3; i++ {
		if gaps[i] < gaps[best] {
			best = i
		}
	}
	normal = o.Axes[best]
	if coords[best] < 0 {
		normal = rl.Vector3Negate(normal)
	}
	return normal, radius + gaps[best], true
}
