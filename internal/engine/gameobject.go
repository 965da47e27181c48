package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// Matrix builds scale -> rotate (X, Y, Z) -> translate.
func (t Transform) Matrix() rl.Matrix {
	scale := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	rot := rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixRotateX(t.Rotation.X*rl.Deg2rad), rl.MatrixRotateY(t.Rotation.Y*rl.Deg2rad)),
		rl.MatrixRotateZ(t.Rotation.Z*rl.Deg2rad),
	)
	trans := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

var nextUID atomic.Uint64

// GameObject is an entry in the scene registry. Its UID is stable for the
// object's lifetime and is the id physics and the simulation address it by.
type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Scale: rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero T.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldMatrix composes the transforms of g and all of its parents.
func (g *GameObject) WorldMatrix() rl.Matrix {
	m := g.Transform.Matrix()
	if g.Parent == nil {
		return m
	}
	return rl.MatrixMultiply(m, g.Parent.WorldMatrix())
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	return rl.Vector3Transform(rl.Vector3{}, g.WorldMatrix())
}

func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}
