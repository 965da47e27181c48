package physics

import (
	"connectors/internal/components"
	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// resolveCollision handles collision between two dynamic boxes
func (p *PhysicsWorld) resolveCollision(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}

	boxA := engine.GetComponent[*components.BoxCollider](a)
	boxB := engine.GetComponent[*components.BoxCollider](b)
	if boxA == nil || boxB == nil {
		return
	}

	obbA := boxOBB(a, boxA)
	obbB := boxOBB(b, boxB)

	// bounding sphere reject before SAT
	reach := obbA.BoundingRadius() + obbB.BoundingRadius()
	d := rl.Vector3Subtract(obbA.Center, obbB.Center)
	if rl.Vector3DotProduct(d, d) > reach*reach {
		return
	}

	pushOut := obbA.ResolveOBB(obbB)
	if pushOut.X == 0 && pushOut.Y == 0 && pushOut.Z == 0 {
		return
	}

	p.recordContact(a, b)

	// Split the push based on mass ratio
	totalMass := rbA.Mass + rbB.Mass
	ratioA := rbB.Mass / totalMass
	ratioB := rbA.Mass / totalMass
	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(pushOut, ratioA))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(pushOut, ratioB))

	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 0.0001 {
		return
	}
	normal := rl.Vector3Scale(pushOut, 1/pushLen)

	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)

	// separating already
	if velAlongNormal > 0 {
		return
	}

	invMassSum := 1/rbA.Mass + 1/rbB.Mass
	e := (rbA.Bounciness + rbB.Bounciness) / 2
	j := -(1 + e) * velAlongNormal / invMassSum

	impulse := rl.Vector3Scale(normal, j)
	impulse = rl.Vector3Add(impulse, frictionImpulse(relVel, normal, j, invMassSum, (rbA.Friction+rbB.Friction)/2))

	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))

	// Torque from the contact on the face in the push direction
	rA := estimateContactPoint(rl.Vector3{}, obbA.HalfSize, normal)
	rB := estimateContactPoint(rl.Vector3{}, obbB.HalfSize, rl.Vector3Negate(normal))
	torqueA := cross(rA, impulse)
	torqueB := cross(rB, rl.Vector3Negate(impulse))

	rbA.AngularVelocity = rl.Vector3Add(rbA.AngularVelocity, rl.Vector3Scale(torqueA, rl.Rad2deg/boxInertia(rbA.Mass, obbA.HalfSize)))
	rbB.AngularVelocity = rl.Vector3Add(rbB.AngularVelocity, rl.Vector3Scale(torqueB, rl.Rad2deg/boxInertia(rbB.Mass, obbB.HalfSize)))
}

// frictionImpulse opposes tangential sliding, bounded by friction*j.
func frictionImpulse(relVel, normal rl.Vector3, j, invMassSum, friction float32) rl.Vector3 {
	tangentVel := rl.Vector3Subtract(relVel, rl.Vector3Scale(normal, rl.Vector3DotProduct(relVel, normal)))
	speed := rl.Vector3Length(tangentVel)
	if speed < 0.0001 || friction <= 0 {
		return rl.Vector3{}
	}
	tangent := rl.Vector3Scale(tangentVel, 1/speed)
	jt := clamp(speed/invMassSum, 0, friction*j)
	return rl.Vector3Scale(tangent, -jt)
}

// resolveKinematicCollision handles the kinematic pointer pushing a dynamic
// box. The kinematic body never moves; the box is pushed fully out.
func (p *PhysicsWorld) resolveKinematicCollision(kinematic, obj *engine.GameObject) {
	rbKin := engine.GetComponent[*components.Rigidbody](kinematic)
	rbObj := engine.GetComponent[*components.Rigidbody](obj)
	box := engine.GetComponent[*components.BoxCollider](obj)
	if rbKin == nil || rbObj == nil || box == nil {
		return
	}

	obb := boxOBB(obj, box)

	var normal rl.Vector3 // from box toward kinematic
	var depth float32

	if sphere := engine.GetComponent[*components.SphereCollider](kinematic); sphere != nil {
		n, d, ok := obb.SphereContact(sphere.GetCenter(), sphere.Radius)
		if !ok {
			return
		}
		normal, depth = n, d
	} else if kinBox := engine.GetComponent[*components.BoxCollider](kinematic); kinBox != nil {
		pushOut := obb.ResolveOBB(boxOBB(kinematic, kinBox))
		depth = rl.Vector3Length(pushOut)
		if depth < 0.0001 {
			return
		}
		normal = rl.Vector3Scale(pushOut, -1/depth)
	} else {
		return
	}

	p.recordContact(kinematic, obj)

	obj.Transform.Position = rl.Vector3Subtract(obj.Transform.Position, rl.Vector3Scale(normal, depth))

	// Box moving toward the kinematic relative to it loses that component
	relVel := rl.Vector3Subtract(rbObj.Velocity, rbKin.Velocity)
	approach := rl.Vector3DotProduct(relVel, normal)
	if approach <= 0 {
		return
	}
	j := (1 + rbObj.Bounciness) * approach * rbObj.Mass
	impulse := rl.Vector3Scale(normal, -j)
	impulse = rl.Vector3Add(impulse, frictionImpulse(relVel, normal, j, 1/rbObj.Mass, rbObj.Friction))
	rbObj.Velocity = rl.Vector3Add(rbObj.Velocity, rl.Vector3Scale(impulse, 1/rbObj.Mass))

	r := estimateContactPoint(rl.Vector3{}, obb.HalfSize, rl.Vector3Negate(normal))
	torque := cross(r, impulse)
	rbObj.AngularVelocity = rl.Vector3Add(rbObj.AngularVelocity, rl.Vector3Scale(torque, rl.Rad2deg/boxInertia(rbObj.Mass, obb.HalfSize)))
}
