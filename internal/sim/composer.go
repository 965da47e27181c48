package sim

import (
	"connectors/internal/engine"
	"connectors/internal/palette"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Solver is the physics collaborator, addressed by body id. Calls for ids
// it does not know return false and change nothing.
type Solver interface {
	Translation(id BodyID) (rl.Vector3, bool)
	ApplyImpulse(id BodyID, impulse rl.Vector3) bool
	SetKinematicTranslation(id BodyID, target rl.Vector3) bool
	Step(deltaTime float32)
}

type FrameInput struct {
	Delta    float32
	Pointer  Pointer
	Viewport Viewport
	Clicked  bool
}

// FrameReport describes what a frame did, for the HUD and the headless report.
type FrameReport struct {
	Delta    float32
	Target   rl.Vector3
	Skipped  int
	Shuffled bool
}

// Composer drives one frame of the scene. It keeps no scene state of its
// own; listeners on Shuffled hear the new accent index after every click.
type Composer struct {
	Shuffled engine.EventWithArg[int]
}

func NewComposer() *Composer {
	return &Composer{}
}

// Click advances the accent and regenerates the connector looks. The
// returned state is in PhaseShuffling until the next Frame.
func (c *Composer) Click(s State) State {
	out := s.Clone()
	out.Accent = out.Palette.Next(out.Accent)
	out.reshuffle()
	out.Phase = PhaseShuffling
	c.Shuffled.Invoke(out.Accent)
	return out
}

// SetAccent jumps to an accent index, as when a snapshot is restored. The
// looks are regenerated but no shuffle is reported.
func (c *Composer) SetAccent(s State, accent int) State {
	out := s.Clone()
	out.Accent = out.Palette.Clamp(accent)
	out.reshuffle()
	return out
}

// SetPalette swaps the palette, keeping the accent index in range.
func (c *Composer) SetPalette(s State, p palette.Palette) State {
	out := s.Clone()
	out.Palette = p
	out.Accent = p.Clamp(out.Accent)
	out.reshuffle()
	return out
}

// Frame runs one update: click handling, pointer target, restoring
// impulses, solver step and color damping. s is not modified.
func (c *Composer) Frame(s State, in FrameInput, solver Solver) (State, FrameReport) {
	var out State
	if in.Clicked {
		out = c.Click(s)
	} else {
		out = s.Clone()
	}

	var rep FrameReport
	if out.Phase == PhaseShuffling {
		rep.Shuffled = true
		out.Phase = PhaseIdle
	}

	delta := ClampDelta(in.Delta)
	rep.Delta = delta
	rep.Target = PointerTarget(in.Pointer, in.Viewport)

	if !solver.SetKinematicTranslation(out.Pointer, rep.Target) {
		rep.Skipped++
	}
	for i := range out.Bodies {
		b := &out.Bodies[i]
		if b.Kind != KindConnector {
			continue
		}
		pos, ok := solver.Translation(b.ID)
		if !ok {
			rep.Skipped++
			continue
		}
		solver.ApplyImpulse(b.ID, RestoringImpulse(pos))
	}

	solver.Step(delta)

	for i := range out.Bodies {
		b := &out.Bodies[i]
		if pos, ok := solver.Translation(b.ID); ok {
			b.Position = pos
		}
		if b.Kind == KindConnector {
			b.Color, b.ColorVelocity = DampColor(b.Color, b.ColorVelocity, b.Target, delta)
		}
	}
	out.Frame++
	return out, rep
}

func (s *State) reshuffle() {
	looks := s.Palette.Shuffle(s.Accent)
	if len(looks) == 0 {
		return
	}
	i := 0
	for j := range s.Bodies {
		if s.Bodies[j].Kind != KindConnector {
			continue
		}
		applyLook(&s.Bodies[j], looks[i%len(looks)])
		i++
	}
}
