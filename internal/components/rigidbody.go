package components

import (
	"connectors/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.05 // units/sec
	SleepAngularThreshold  = 1.0  // deg/sec
	SleepTimeThreshold     = 0.5  // seconds of low velocity before sleeping
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // tangential velocity lost per contact, 0..1
	LinearDamping   float32 // per second, applied as v *= 1/(1+dt*damping)
	AngularDamping  float32
	IsKinematic     bool // moved by SetNextKinematicTranslation, never pushed

	// Sleeping bodies skip integration until an impulse or contact wakes them
	IsSleeping bool
	CanSleep   bool
	sleepTimer float32

	nextTranslation rl.Vector3
	hasNext         bool
}

// NewRigidbody returns a dynamic body with the connector defaults.
func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:           1.0,
		Friction:       0.1,
		LinearDamping:  4,
		AngularDamping: 1,
		CanSleep:       true,
	}
}

func NewKinematicRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:        1.0,
		IsKinematic: true,
	}
}

// ApplyImpulse changes the velocity by impulse/mass. Kinematic bodies ignore it.
func (r *Rigidbody) ApplyImpulse(impulse rl.Vector3) {
	if r.IsKinematic || r.Mass <= 0 {
		return
	}
	if impulse == (rl.Vector3{}) {
		return
	}
	r.Velocity = rl.Vector3Add(r.Velocity, rl.Vector3Scale(impulse, 1/r.Mass))
	r.Wake()
}

// SetNextKinematicTranslation schedules the position the body moves to on the
// next physics step.
func (r *Rigidbody) SetNextKinematicTranslation(p rl.Vector3) {
	r.nextTranslation = p
	r.hasNext = true
}

// TakeNextKinematicTranslation returns and clears the scheduled position.
func (r *Rigidbody) TakeNextKinematicTranslation() (rl.Vector3, bool) {
	if !r.hasNext {
		return rl.Vector3{}, false
	}
	r.hasNext = false
	return r.nextTranslation, true
}

// Damp applies linear and angular damping for one step of dt seconds.
func (r *Rigidbody) Damp(dt float32) {
	r.Velocity = rl.Vector3Scale(r.Velocity, 1/(1+dt*r.LinearDamping))
	r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, 1/(1+dt*r.AngularDamping))
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep puts the body to sleep after it stays slow for SleepTimeThreshold.
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping || r.IsKinematic {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)
	if speed >= SleepVelocityThreshold || angSpeed >= SleepAngularThreshold {
		r.sleepTimer = 0
		return
	}

	r.sleepTimer += deltaTime
	if r.sleepTimer >= SleepTimeThreshold {
		r.IsSleeping = true
		r.Velocity = rl.Vector3{}
		r.AngularVelocity = rl.Vector3{}
	}
}
