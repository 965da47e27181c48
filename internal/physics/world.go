package physics

import (
	"log"
	"time"

	"connectors/internal/components"
	"connectors/internal/engine"
	"connectors/internal/sim"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const CellSize = 5.0

const (
	DefaultFixedStep   = 1.0 / 60.0
	DefaultMaxSubsteps = 4
)

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(math32.Floor(pos.X / CellSize)),
		Y: int(math32.Floor(pos.Y / CellSize)),
		Z: int(math32.Floor(pos.Z / CellSize)),
	}
}

// ContactPair identifies two touching bodies by UID, smaller UID first.
type ContactPair struct {
	A, B uint64
}

func makePair(a, b *engine.GameObject) ContactPair {
	if a.UID > b.UID {
		return ContactPair{A: b.UID, B: a.UID}
	}
	return ContactPair{A: a.UID, B: b.UID}
}

// PhysicsWorld advances rigid bodies in fixed substeps. Bodies are addressed
// by GameObject UID, which makes it the solver behind sim.Composer.
type PhysicsWorld struct {
	Gravity     rl.Vector3
	FixedStep   float32
	MaxSubsteps int
	Objects     []*engine.GameObject // dynamic rigidbodies
	Kinematics  []*engine.GameObject // kinematic rigidbodies (the pointer)

	bodies      map[uint64]*engine.GameObject
	grid        map[CellKey][]*engine.GameObject
	accumulator float32
	steps       uint64

	activeContacts  map[ContactPair]bool // contacts from the last substep
	currentContacts map[ContactPair]bool // contacts this substep

	// ContactStarted fires once when two bodies begin touching.
	ContactStarted engine.EventWithArg[ContactPair]

	lastLogTime time.Time
}

var _ sim.Solver = (*PhysicsWorld)(nil)

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		FixedStep:       DefaultFixedStep,
		MaxSubsteps:     DefaultMaxSubsteps,
		Objects:         make([]*engine.GameObject, 0),
		Kinematics:      make([]*engine.GameObject, 0),
		bodies:          make(map[uint64]*engine.GameObject),
		grid:            make(map[CellKey][]*engine.GameObject),
		activeContacts:  make(map[ContactPair]bool),
		currentContacts: make(map[ContactPair]bool),
	}
}

// AddObject registers g. Objects without a Rigidbody are ignored.
func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](g)
	if rb == nil {
		return
	}
	if rb.IsKinematic {
		p.Kinematics = append(p.Kinematics, g)
	} else {
		p.Objects = append(p.Objects, g)
	}
	p.bodies[g.UID] = g
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	delete(p.bodies, g.UID)
	for i, obj := range p.Objects {
		if obj == g {
			p.Objects = append(p.Objects[:i], p.Objects[i+1:]...)
			return
		}
	}
	for i, obj := range p.Kinematics {
		if obj == g {
			p.Kinematics = append(p.Kinematics[:i], p.Kinematics[i+1:]...)
			return
		}
	}
}

// Clear drops every body and pending time.
func (p *PhysicsWorld) Clear() {
	p.Objects = p.Objects[:0]
	p.Kinematics = p.Kinematics[:0]
	p.bodies = make(map[uint64]*engine.GameObject)
	p.activeContacts = make(map[ContactPair]bool)
	p.accumulator = 0
}

// DynamicObjectCount returns the number of dynamic physics objects
func (p *PhysicsWorld) DynamicObjectCount() int {
	return len(p.Objects)
}

// ContactCount returns the number of touching pairs after the last substep.
func (p *PhysicsWorld) ContactCount() int {
	return len(p.activeContacts)
}

// Steps returns the number of fixed substeps taken so far.
func (p *PhysicsWorld) Steps() uint64 {
	return p.steps
}

func (p *PhysicsWorld) lookup(id sim.BodyID) (*engine.GameObject, *components.Rigidbody) {
	g, ok := p.bodies[uint64(id)]
	if !ok {
		return nil, nil
	}
	return g, engine.GetComponent[*components.Rigidbody](g)
}

func (p *PhysicsWorld) Translation(id sim.BodyID) (rl.Vector3, bool) {
	g, _ := p.lookup(id)
	if g == nil {
		return rl.Vector3{}, false
	}
	return g.Transform.Position, true
}

func (p *PhysicsWorld) ApplyImpulse(id sim.BodyID, impulse rl.Vector3) bool {
	_, rb := p.lookup(id)
	if rb == nil || rb.IsKinematic {
		return false
	}
	rb.ApplyImpulse(impulse)
	return true
}

func (p *PhysicsWorld) SetKinematicTranslation(id sim.BodyID, target rl.Vector3) bool {
	_, rb := p.lookup(id)
	if rb == nil || !rb.IsKinematic {
		return false
	}
	rb.SetNextKinematicTranslation(target)
	return true
}

// Step consumes dt in fixed substeps. Time beyond MaxSubsteps is dropped so
// a long frame cannot snowball.
func (p *PhysicsWorld) Step(dt float32) {
	if dt <= 0 {
		return
	}
	p.accumulator += dt

	n := 0
	for p.accumulator >= p.FixedStep && n < p.MaxSubsteps {
		p.substep(p.FixedStep)
		p.accumulator -= p.FixedStep
		n++
	}

	if p.accumulator >= p.FixedStep {
		if time.Since(p.lastLogTime) >= time.Second {
			p.lastLogTime = time.Now()
			log.Printf("Physics: dropped %.3fs of backlog after %d substeps", p.accumulator, n)
		}
		p.accumulator = 0
	}
}

func (p *PhysicsWorld) substep(h float32) {
	p.currentContacts = make(map[ContactPair]bool)
	p.steps++

	// 1. Move kinematic bodies to their targets, deriving velocity from the move
	for _, kin := range p.Kinematics {
		rb := engine.GetComponent[*components.Rigidbody](kin)
		next, ok := rb.TakeNextKinematicTranslation()
		if !ok {
			rb.Velocity = rl.Vector3{}
			continue
		}
		rb.Velocity = rl.Vector3Scale(rl.Vector3Subtract(next, kin.Transform.Position), 1/h)
		kin.Transform.Position = next
	}

	// 2. Integrate dynamic bodies
	for _, obj := range p.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb.IsSleeping {
			continue
		}

		rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.Gravity, h))
		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(rb.Velocity, h))
		obj.Transform.Rotation = rl.Vector3Add(obj.Transform.Rotation, rl.Vector3Scale(rb.AngularVelocity, h))
		rb.Damp(h)
		rb.TrySleep(h)
	}

	// 3. Dynamic vs dynamic, broad-phase by spatial hashing
	p.rebuildGrid()
	checked := make(map[ContactPair]bool)
	for _, obj := range p.Objects {
		for _, other := range p.getNeighborObjects(obj) {
			if obj == other {
				continue
			}
			key := makePair(obj, other)
			if checked[key] {
				continue
			}
			checked[key] = true
			p.resolveCollision(obj, other)
		}
	}

	// 4. Kinematic vs dynamic (kinematic pushes dynamic)
	for _, kin := range p.Kinematics {
		for _, obj := range p.Objects {
			p.resolveKinematicCollision(kin, obj)
		}
	}

	p.dispatchContacts()
}

// rebuildGrid clears and repopulates the spatial hash grid
func (p *PhysicsWorld) rebuildGrid() {
	for k := range p.grid {
		delete(p.grid, k)
	}
	for _, obj := range p.Objects {
		cell := posToCell(obj.Transform.Position)
		p.grid[cell] = append(p.grid[cell], obj)
	}
}

// getNeighborObjects returns all objects in same cell and 26 neighboring cells
func (p *PhysicsWorld) getNeighborObjects(obj *engine.GameObject) []*engine.GameObject {
	cell := posToCell(obj.Transform.Position)
	var neighbors []*engine.GameObject
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				neighbors = append(neighbors, p.grid[key]...)
			}
		}
	}
	return neighbors
}

// recordContact marks a pair as touching this substep and wakes both bodies.
func (p *PhysicsWorld) recordContact(a, b *engine.GameObject) {
	p.currentContacts[makePair(a, b)] = true
	for _, g := range []*engine.GameObject{a, b} {
		if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil && rb.IsSleeping {
			rb.Wake()
		}
	}
}

func (p *PhysicsWorld) dispatchContacts() {
	for pair := range p.currentContacts {
		if !p.activeContacts[pair] {
			p.ContactStarted.Invoke(pair)
		}
	}
	p.activeContacts = p.currentContacts
}
