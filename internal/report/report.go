// Package report runs the scene without a window and summarizes how the
// connectors settle.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"connectors/internal/camera"
	"connectors/internal/config"
	"connectors/internal/physics"
	"connectors/internal/sim"
	"connectors/internal/world"

	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/guptarohit/asciigraph"
)

var ErrBadOptions = errors.New("invalid simulate options")

type Options struct {
	Frames     int
	Delta      float32
	ClickEvery int     // 0 never clicks
	Orbit      float32 // pointer circle radius in device coordinates; 0 keeps it centered
}

func DefaultOptions() Options {
	return Options{Frames: 600, Delta: 1.0 / 60, ClickEvery: 120, Orbit: 0.5}
}

type Sample struct {
	Frame        uint64
	Accent       int
	MeanDistance float32
	Contacts     int
}

type Result struct {
	Seed        int64
	Options     Options
	Samples     []Sample
	Shuffles    int
	Steps       uint64
	MaxContacts int
	Touches     int // contacts started over the run
}

// Simulate builds a headless world from cfg and runs opts.Frames frames.
func Simulate(cfg *config.Config, opts Options) (*Result, error) {
	switch {
	case opts.Frames <= 0:
		return nil, fmt.Errorf("%w: frames %d", ErrBadOptions, opts.Frames)
	case opts.Delta <= 0:
		return nil, fmt.Errorf("%w: dt %v", ErrBadOptions, opts.Delta)
	case opts.ClickEvery < 0:
		return nil, fmt.Errorf("%w: click-every %d", ErrBadOptions, opts.ClickEvery)
	}

	w := world.New(cfg, true)
	defer w.Unload()

	res := &Result{Seed: w.Seed, Options: opts}
	composer := sim.NewComposer()
	composer.Shuffled.AddListener(func(int) { res.Shuffles++ })
	w.Physics.ContactStarted.AddListener(func(physics.ContactPair) { res.Touches++ })

	cam := camera.New(
		rl.Vector3{X: cfg.Camera.Position[0], Y: cfg.Camera.Position[1], Z: cfg.Camera.Position[2]},
		rl.Vector3{X: cfg.Camera.Target[0], Y: cfg.Camera.Target[1], Z: cfg.Camera.Target[2]},
		cfg.Camera.Fov,
	)
	vw, vh := cam.Viewport(float32(cfg.Window.Width) / float32(cfg.Window.Height))

	s := w.NewState()
	res.Samples = append(res.Samples, sample(s, w))
	for i := 1; i <= opts.Frames; i++ {
		angle := float32(i) * opts.Delta * 0.5
		in := sim.FrameInput{
			Delta:    opts.Delta,
			Pointer:  sim.Pointer{X: opts.Orbit * math32.Cos(angle), Y: opts.Orbit * math32.Sin(angle)},
			Viewport: sim.Viewport{Width: vw, Height: vh},
			Clicked:  opts.ClickEvery > 0 && i%opts.ClickEvery == 0,
		}
		s, _ = composer.Frame(s, in, w.Physics)

		smp := sample(s, w)
		res.MaxContacts = max(res.MaxContacts, smp.Contacts)
		res.Samples = append(res.Samples, smp)
	}
	res.Steps = w.Physics.Steps()
	return res, nil
}

func sample(s sim.State, w *world.World) Sample {
	var sum float32
	conns := s.Connectors()
	for _, b := range conns {
		sum += rl.Vector3Length(b.Position)
	}
	smp := Sample{Frame: s.Frame, Accent: s.Accent, Contacts: w.Physics.ContactCount()}
	if len(conns) > 0 {
		smp.MeanDistance = sum / float32(len(conns))
	}
	return smp
}

func (r *Result) Initial() Sample {
	return r.Samples[0]
}

func (r *Result) Final() Sample {
	return r.Samples[len(r.Samples)-1]
}

// Plot draws mean connector distance from the origin over time.
func (r *Result) Plot(width, height int) string {
	data := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		data[i] = float64(s.MeanDistance)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("mean connector distance from origin"),
	)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8dcec1")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4060ff")).Bold(true)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)
)

func (r *Result) Summary() string {
	first, last := r.Initial(), r.Final()
	rows := [][2]string{
		{"seed", strconv.FormatInt(r.Seed, 10)},
		{"frames", strconv.Itoa(r.Options.Frames)},
		{"dt", fmt.Sprintf("%.4f", r.Options.Delta)},
		{"physics steps", strconv.FormatUint(r.Steps, 10)},
		{"shuffles", strconv.Itoa(r.Shuffles)},
		{"final accent", strconv.Itoa(last.Accent)},
		{"start distance", fmt.Sprintf("%.3f", first.MeanDistance)},
		{"final distance", fmt.Sprintf("%.3f", last.MeanDistance)},
		{"max contacts", strconv.Itoa(r.MaxContacts)},
		{"touches", strconv.Itoa(r.Touches)},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("connectors simulate"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row[0]) + valueStyle.Render(row[1]) + "\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// WriteCSV writes one row per sample.
func (r *Result) WriteCSV(out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"frame", "accent", "mean_distance", "contacts"}); err != nil {
		return err
	}
	for _, s := range r.Samples {
		row := []string{
			strconv.FormatUint(s.Frame, 10),
			strconv.Itoa(s.Accent),
			strconv.FormatFloat(float64(s.MeanDistance), 'f', 5, 32),
			strconv.Itoa(s.Contacts),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
