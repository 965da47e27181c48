package palette

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	ErrNoAccents = errors.New("palette has no accent colors")
	ErrNoLooks   = errors.New("palette has no looks")
)

// Look describes the surface of one connector.
// Accented looks take the current accent color instead of Color.
type Look struct {
	Color     string  `yaml:"color" json:"color"`
	Roughness float32 `yaml:"roughness" json:"roughness"`
	Accent    bool    `yaml:"accent,omitempty" json:"accent,omitempty"`
}

type Palette struct {
	Accents []string `yaml:"accents" json:"accents"`
	Looks   []Look   `yaml:"looks" json:"looks"`
}

// Default returns the stock accents and looks: five plain connectors, none
// accented.
func Default() Palette {
	return Palette{
		Accents: []string{"#4060ff", "#20ffa0", "#ff4060", "#ffcc00"},
		Looks: []Look{
			{Color: "#ff9430", Roughness: 1},
			{Color: "#fff", Roughness: 1},
			{Color: "#4a7ed1", Roughness: 1},
			{Color: "#f0115f", Roughness: 1},
			{Color: "#03fcb6", Roughness: 1},
		},
	}
}

// Next advances an accent index cyclically.
func (p Palette) Next(accent int) int {
	if len(p.Accents) == 0 {
		return 0
	}
	return (p.Clamp(accent) + 1) % len(p.Accents)
}

// Clamp maps any index into [0, len(Accents)).
func (p Palette) Clamp(accent int) int {
	n := len(p.Accents)
	if n == 0 {
		return 0
	}
	accent %= n
	if accent < 0 {
		accent += n
	}
	return accent
}

// Shuffle returns the connector looks for the given accent index.
func (p Palette) Shuffle(accent int) []Look {
	looks := make([]Look, len(p.Looks))
	copy(looks, p.Looks)
	if len(p.Accents) == 0 {
		return looks
	}
	ac := p.Accents[p.Clamp(accent)]
	for i := range looks {
		if looks[i].Accent {
			looks[i].Color = ac
		}
	}
	return looks
}

// Colors lists every color a body may take under this palette.
func (p Palette) Colors() []string {
	out := make([]string, 0, len(p.Accents)+len(p.Looks))
	out = append(out, p.Accents...)
	for _, l := range p.Looks {
		out = append(out, l.Color)
	}
	return out
}

func (p Palette) Validate() error {
	if len(p.Accents) == 0 {
		return ErrNoAccents
	}
	if len(p.Looks) == 0 {
		return ErrNoLooks
	}
	for _, c := range p.Colors() {
		if _, err := Parse(c); err != nil {
			return err
		}
	}
	for i, l := range p.Looks {
		if l.Roughness < 0 || l.Roughness > 1 {
			return fmt.Errorf("look %d: roughness %v outside [0,1]", i, l.Roughness)
		}
	}
	return nil
}

// RGB is a linear-light color, the space colors are damped in.
type RGB struct {
	R, G, B float32
}

var White = RGB{R: 1, G: 1, B: 1}

// Parse reads a #rgb or #rrggbb sRGB hex string into linear RGB.
func Parse(hex string) (RGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.LinearRgb()
	return RGB{R: float32(r), G: float32(g), B: float32(b)}, nil
}

// MustParse is Parse for colors that were already validated.
func MustParse(hex string) RGB {
	c, err := Parse(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func (c RGB) colorful() colorful.Color {
	return colorful.LinearRgb(float64(c.R), float64(c.G), float64(c.B)).Clamped()
}

// Color converts back to 8-bit sRGB for raylib.
func (c RGB) Color() rl.Color {
	r, g, b := c.colorful().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// Distance is the largest per-channel difference between two colors.
func (c RGB) Distance(o RGB) float32 {
	d := abs(c.R - o.R)
	if g := abs(c.G - o.G); g > d {
		d = g
	}
	if b := abs(c.B - o.B); b > d {
		d = b
	}
	return d
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
