// Package sim is the per-frame core of the connectors scene: pointer
// tracking, recentering impulses, color damping and accent shuffles.
//
// Nothing here owns a physics body. Bodies are addressed by BodyID through
// the Solver interface, and all mutable scene state lives in State, which is
// passed into and returned from each frame update.
package sim

import (
	"connectors/internal/palette"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BodyID identifies a body in the solver's registry.
type BodyID uint64

type Kind int

const (
	KindConnector Kind = iota
	KindPointer
)

func (k Kind) String() string {
	switch k {
	case KindPointer:
		return "pointer"
	default:
		return "connector"
	}
}

// Phase is the composer's two-state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseShuffling
)

func (p Phase) String() string {
	if p == PhaseShuffling {
		return "shuffling"
	}
	return "idle"
}

type Body struct {
	ID       BodyID
	Kind     Kind
	Position rl.Vector3

	// Color is what is displayed; it chases Target.
	Color         palette.RGB
	ColorVelocity palette.RGB
	Target        palette.RGB
	Roughness     float32
	Accent        bool
}

type State struct {
	Accent  int
	Phase   Phase
	Frame   uint64
	Pointer BodyID
	Bodies  []Body
	Palette palette.Palette
}

// NewState creates the pointer body and one connector per look. ids must
// hold the pointer id first followed by one id per look.
func NewState(p palette.Palette, ids []BodyID) State {
	s := State{Palette: p}
	if len(ids) == 0 {
		return s
	}
	s.Pointer = ids[0]
	s.Bodies = append(s.Bodies, Body{ID: ids[0], Kind: KindPointer, Color: palette.White, Target: palette.White})

	looks := p.Shuffle(0)
	for i, id := range ids[1:] {
		if i >= len(looks) {
			break
		}
		b := Body{ID: id, Kind: KindConnector, Color: palette.White}
		applyLook(&b, looks[i])
		s.Bodies = append(s.Bodies, b)
	}
	return s
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	out := s
	out.Bodies = make([]Body, len(s.Bodies))
	copy(out.Bodies, s.Bodies)
	return out
}

// Connectors returns the free bodies in registry order.
func (s State) Connectors() []Body {
	var out []Body
	for _, b := range s.Bodies {
		if b.Kind == KindConnector {
			out = append(out, b)
		}
	}
	return out
}

func (s State) Body(id BodyID) (Body, bool) {
	for _, b := range s.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return Body{}, false
}

func applyLook(b *Body, l palette.Look) {
	b.Target = palette.MustParse(l.Color)
	b.Roughness = l.Roughness
	b.Accent = l.Accent
}
