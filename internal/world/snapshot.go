package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"connectors/internal/palette"
	"connectors/internal/sim"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type Snapshot struct {
	Accent int       `json:"accent"`
	Frame  uint64    `json:"frame"`
	Seed   int64     `json:"seed"`
	Bodies []BodyDef `json:"bodies"`
}

type BodyDef struct {
	ID        uint64     `json:"id"`
	Kind      string     `json:"kind"`
	Position  [3]float32 `json:"position"`
	Rotation  [3]float32 `json:"rotation"` // degrees
	Color     string     `json:"color,omitempty"`
	Target    string     `json:"target,omitempty"`
	Roughness float32    `json:"roughness,omitempty"`
}

func toArray(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Capture records the state and the current body transforms.
func (w *World) Capture(s sim.State) *Snapshot {
	snap := &Snapshot{
		Accent: s.Accent,
		Frame:  s.Frame,
		Seed:   w.Seed,
	}
	for _, b := range s.Bodies {
		def := BodyDef{
			ID:       uint64(b.ID),
			Kind:     b.Kind.String(),
			Position: toArray(b.Position),
		}
		if g := w.Scene.FindByUID(uint64(b.ID)); g != nil {
			def.Position = toArray(g.Transform.Position)
			def.Rotation = toArray(g.Transform.Rotation)
		}
		if b.Kind == sim.KindConnector {
			def.Color = b.Color.Hex()
			def.Target = b.Target.Hex()
			def.Roughness = b.Roughness
		}
		snap.Bodies = append(snap.Bodies, def)
	}
	return snap
}

// --- Saving & loading ---

func SaveSnapshot(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// Restore rebuilds the world with the snapshot's seed and connector
// transforms and returns a state at the snapshot's accent and frame.
// Connectors are matched by order; body ids are not preserved.
func (w *World) Restore(snap *Snapshot, c *sim.Composer) (sim.State, error) {
	var connectors []BodyDef
	for _, b := range snap.Bodies {
		if b.Kind == sim.KindConnector.String() {
			connectors = append(connectors, b)
		}
	}

	colors := make([]palette.RGB, len(connectors))
	for i, b := range connectors {
		hex := b.Color
		if hex == "" {
			hex = "#ffffff"
		}
		col, err := palette.Parse(hex)
		if err != nil {
			return sim.State{}, fmt.Errorf("restore body %d: %w", b.ID, err)
		}
		colors[i] = col
	}

	positions := make([]rl.Vector3, len(connectors))
	for i, b := range connectors {
		positions[i] = vec3(b.Position)
	}

	if snap.Seed != 0 {
		w.Seed = snap.Seed
	}
	w.release()
	w.build(positions)
	for i, g := range w.Connectors {
		if i < len(connectors) {
			g.Transform.Rotation = vec3(connectors[i].Rotation)
		}
	}
	w.Rebuilt.Invoke()

	s := c.SetAccent(w.NewState(), snap.Accent)
	s.Frame = snap.Frame
	i := 0
	for j := range s.Bodies {
		b := &s.Bodies[j]
		if b.Kind != sim.KindConnector {
			continue
		}
		if i < len(colors) {
			b.Color = colors[i]
		}
		if g := w.Scene.FindByUID(uint64(b.ID)); g != nil {
			b.Position = g.Transform.Position
		}
		i++
	}
	log.Printf("Scene: restored snapshot (accent %d, frame %d)", s.Accent, s.Frame)
	return s, nil
}
