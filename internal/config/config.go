package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"connectors/internal/palette"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultTargetFPS = 120
	DefaultFov       = 17.5
	DefaultSpread    = 10.0
	DefaultFixedStep = 1.0 / 60.0
	DefaultDensity   = 1.0
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Camera      CameraConfig      `yaml:"camera"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Scene       SceneConfig       `yaml:"scene"`
	Torus       TorusConfig       `yaml:"torus"`
	Collider    ColliderConfig    `yaml:"collider"`
	Pointer     PointerConfig     `yaml:"pointer"`
	Material    MaterialConfig    `yaml:"material"`
	Background  BackgroundConfig  `yaml:"background"`
	Environment EnvironmentConfig `yaml:"environment"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
	MSAA      bool   `yaml:"msaa"`
	Resizable bool   `yaml:"resizable"`
}

type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type PhysicsConfig struct {
	Gravity        [3]float32 `yaml:"gravity"`
	FixedStep      float32    `yaml:"fixed_step"`
	MaxSubsteps    int        `yaml:"max_substeps"`
	Density        float32    `yaml:"density"`
	LinearDamping  float32    `yaml:"linear_damping"`
	AngularDamping float32    `yaml:"angular_damping"`
	Friction       float32    `yaml:"friction"`
	Bounciness     float32    `yaml:"bounciness"`
}

type SceneConfig struct {
	Seed        int64           `yaml:"seed"`
	Spread      float32         `yaml:"spread"` // spawn cube edge length
	Ambient     float32         `yaml:"ambient"`
	AccentLight LightConfig     `yaml:"accent_light"`
	Palette     palette.Palette `yaml:"palette"`
}

type LightConfig struct {
	Intensity float32 `yaml:"intensity"`
	Distance  float32 `yaml:"distance"`
}

type TorusConfig struct {
	Radius          float32 `yaml:"radius"`
	Tube            float32 `yaml:"tube"`
	RadialSegments  int     `yaml:"radial_segments"`
	TubularSegments int     `yaml:"tubular_segments"`
}

type ColliderConfig struct {
	HalfExtents [3]float32 `yaml:"half_extents"`
}

type PointerConfig struct {
	Radius float32 `yaml:"radius"`
}

// MaterialConfig holds the transmission material parameters.
type MaterialConfig struct {
	Samples                   int        `yaml:"samples"`
	Thickness                 float32    `yaml:"thickness"`
	AnisotropicBlur           float32    `yaml:"anisotropic_blur"`
	Iridescence               float32    `yaml:"iridescence"`
	IridescenceIOR            float32    `yaml:"iridescence_ior"`
	IridescenceThicknessRange [2]float32 `yaml:"iridescence_thickness_range"`
	Clearcoat                 float32    `yaml:"clearcoat"`
	ClearcoatRoughness        float32    `yaml:"clearcoat_roughness"`
	EnvMapIntensity           float32    `yaml:"env_map_intensity"`
	IOR                       float32    `yaml:"ior"`
	BufferScale               float32    `yaml:"buffer_scale"` // transmission buffer size relative to the screen
}

type BackgroundConfig struct {
	Scale     float32 `yaml:"scale"`
	RotationY float32 `yaml:"rotation_y"` // radians
	Segments  int     `yaml:"segments"`
	ColorA    string  `yaml:"color_a"`
	ColorB    string  `yaml:"color_b"`
}

type EnvironmentConfig struct {
	Rotation     [3]float32          `yaml:"rotation"` // radians
	Lightformers []LightformerConfig `yaml:"lightformers"`
}

type LightformerConfig struct {
	Form      string     `yaml:"form"` // circle or rect
	Intensity float32    `yaml:"intensity"`
	Position  [3]float32 `yaml:"position"`
	Rotation  [3]float32 `yaml:"rotation"` // radians
	Scale     float32    `yaml:"scale"`
}

func Default() *Config {
	halfPi := float32(math.Pi / 2)
	return &Config{
		Window: WindowConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Title:     "connectors",
			TargetFPS: DefaultTargetFPS,
			MSAA:      true,
			Resizable: true,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 0, 15},
			Fov:      DefaultFov,
			Near:     1,
			Far:      100,
		},
		Physics: PhysicsConfig{
			FixedStep:      DefaultFixedStep,
			MaxSubsteps:    4,
			Density:        DefaultDensity,
			LinearDamping:  4,
			AngularDamping: 1,
			Friction:       0.1,
		},
		Scene: SceneConfig{
			Spread:      DefaultSpread,
			Ambient:     1,
			AccentLight: LightConfig{Intensity: 4, Distance: 2.5},
			Palette:     palette.Default(),
		},
		Torus: TorusConfig{
			Radius:          0.75,
			Tube:            0.3,
			RadialSegments:  32,
			TubularSegments: 100,
		},
		Collider: ColliderConfig{HalfExtents: [3]float32{1, 1, 0.38}},
		Pointer:  PointerConfig{Radius: 1},
		Material: MaterialConfig{
			Samples:                   16,
			Thickness:                 200,
			AnisotropicBlur:           0.1,
			Iridescence:               1,
			IridescenceIOR:            1,
			IridescenceThicknessRange: [2]float32{0, 1400},
			Clearcoat:                 1,
			ClearcoatRoughness:        0.5,
			EnvMapIntensity:           0.4,
			IOR:                       0.9,
			BufferScale:               1,
		},
		Background: BackgroundConfig{
			Scale:     10,
			RotationY: 2.5,
			Segments:  64,
			ColorA:    "#cccdab",
			ColorB:    "#8dcec1",
		},
		Environment: EnvironmentConfig{
			Rotation: [3]float32{-math.Pi / 3, 0, 1},
			Lightformers: []LightformerConfig{
				{Form: "circle", Intensity: 4, Rotation: [3]float32{halfPi, 0, 0}, Position: [3]float32{0, 5, -9}, Scale: 3},
				{Form: "circle", Intensity: 2, Rotation: [3]float32{0, halfPi, 0}, Position: [3]float32{-5, 1, -1}, Scale: 3},
				{Form: "circle", Intensity: 2, Rotation: [3]float32{0, halfPi, 0}, Position: [3]float32{-5, -1, -1}, Scale: 3},
				{Form: "circle", Intensity: 2, Rotation: [3]float32{0, -halfPi, 0}, Position: [3]float32{10, 1, 0}, Scale: 8},
			},
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate reports the first setting that cannot produce a working scene.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return invalid("camera fov %v", c.Camera.Fov)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return invalid("camera clip planes %v..%v", c.Camera.Near, c.Camera.Far)
	case c.Physics.FixedStep <= 0:
		return invalid("physics fixed_step %v", c.Physics.FixedStep)
	case c.Physics.MaxSubsteps < 1:
		return invalid("physics max_substeps %d", c.Physics.MaxSubsteps)
	case c.Physics.Density <= 0:
		return invalid("physics density %v", c.Physics.Density)
	case c.Physics.LinearDamping < 0 || c.Physics.AngularDamping < 0:
		return invalid("negative damping")
	case c.Scene.Spread < 0:
		return invalid("scene spread %v", c.Scene.Spread)
	case c.Torus.Tube <= 0 || c.Torus.Radius <= c.Torus.Tube:
		return invalid("torus radius %v tube %v", c.Torus.Radius, c.Torus.Tube)
	case c.Torus.RadialSegments < 3 || c.Torus.TubularSegments < 3:
		return invalid("torus segments %d x %d", c.Torus.RadialSegments, c.Torus.TubularSegments)
	case c.Collider.HalfExtents[0] <= 0 || c.Collider.HalfExtents[1] <= 0 || c.Collider.HalfExtents[2] <= 0:
		return invalid("collider half_extents %v", c.Collider.HalfExtents)
	case c.Pointer.Radius <= 0:
		return invalid("pointer radius %v", c.Pointer.Radius)
	case c.Material.IOR <= 0:
		return invalid("material ior %v", c.Material.IOR)
	case c.Material.BufferScale <= 0 || c.Material.BufferScale > 2:
		return invalid("material buffer_scale %v", c.Material.BufferScale)
	case c.Background.Scale <= 0:
		return invalid("background scale %v", c.Background.Scale)
	}

	if err := c.Scene.Palette.Validate(); err != nil {
		return fmt.Errorf("%w: palette: %w", ErrInvalid, err)
	}
	for _, hex := range []string{c.Background.ColorA, c.Background.ColorB} {
		if _, err := palette.Parse(hex); err != nil {
			return fmt.Errorf("%w: background: %w", ErrInvalid, err)
		}
	}
	for i, lf := range c.Environment.Lightformers {
		if lf.Form != "circle" && lf.Form != "rect" {
			return invalid("lightformer %d form %q", i, lf.Form)
		}
		if lf.Scale <= 0 {
			return invalid("lightformer %d scale %v", i, lf.Scale)
		}
	}
	return nil
}
