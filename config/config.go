// Package config holds the per-scene viewer settings: camera defaults, animation timing,
// pointer bindings and named view presets. Settings load from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/easing"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/chewxy/math32"
)

// Config is the complete viewer configuration. The zero value is not useful; start from Default.
type Config struct {
	Window      WindowConfig      `yaml:"window" toml:"window"`
	Camera      CameraConfig      `yaml:"camera" toml:"camera"`
	Animation   AnimationConfig   `yaml:"animation" toml:"animation"`
	Interaction InteractionConfig `yaml:"interaction" toml:"interaction"`
	Scene       SceneConfig       `yaml:"scene" toml:"scene"`
	Presets     []ViewPreset      `yaml:"presets" toml:"presets"`
}

// WindowConfig sizes the native window.
type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

// CameraConfig is the initial camera placement and gesture tuning.
type CameraConfig struct {
	Position    common.Vec3 `yaml:"position" toml:"position"`
	Center      common.Vec3 `yaml:"center" toml:"center"`
	Up          common.Vec3 `yaml:"up" toml:"up"`
	FovDegrees  float32     `yaml:"fov_degrees" toml:"fov_degrees"`
	Projection  string      `yaml:"projection" toml:"projection"`
	DollyFactor float32     `yaml:"dolly_factor" toml:"dolly_factor"`
	PanFactor   float32     `yaml:"pan_factor" toml:"pan_factor"`
	MinDistance float32     `yaml:"min_distance" toml:"min_distance"`
}

// AnimationConfig times scripted moves and inertia.
type AnimationConfig struct {
	Duration        Duration `yaml:"duration" toml:"duration"`
	Easing          string   `yaml:"easing" toml:"easing"`
	InertiaDuration Duration `yaml:"inertia_duration" toml:"inertia_duration"`
}

// InteractionConfig maps pointer buttons to gestures and tunes keyboard steps.
// Binding keys use the "button[+modifier]" form, values name an interaction.
type InteractionConfig struct {
	Mode         string            `yaml:"mode" toml:"mode"`
	Bindings     map[string]string `yaml:"bindings" toml:"bindings"`
	ScrollFactor float32           `yaml:"scroll_factor" toml:"scroll_factor"`
	KeyOrbitStep float32           `yaml:"key_orbit_step" toml:"key_orbit_step"`
	KeyPanStep   float32           `yaml:"key_pan_step" toml:"key_pan_step"`
	KeyDollyStep float32           `yaml:"key_dolly_step" toml:"key_dolly_step"`
}

// SceneConfig controls frame clearing and bounds accumulation.
type SceneConfig struct {
	Background    [4]float32 `yaml:"background" toml:"background"`
	BoundsWorkers int        `yaml:"bounds_workers" toml:"bounds_workers"`

	// BoundsParallelThreshold is the renderable count below which bounds fold on the caller.
	BoundsParallelThreshold int `yaml:"bounds_parallel_threshold" toml:"bounds_parallel_threshold"`
}

// ViewPreset is a named camera view. Direction presets frame the scene bounds from a standard side;
// otherwise Center, Position and Up are used as given.
type ViewPreset struct {
	Name      string      `yaml:"name" toml:"name"`
	Direction string      `yaml:"direction,omitempty" toml:"direction,omitempty"`
	Center    common.Vec3 `yaml:"center,omitempty" toml:"center,omitempty"`
	Position  common.Vec3 `yaml:"position,omitempty" toml:"position,omitempty"`
	Up        common.Vec3 `yaml:"up,omitempty" toml:"up,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "oxy-view", Width: 1280, Height: 720},
		Camera: CameraConfig{
			Position:    common.Vec3{0, 0, 10},
			Up:          common.Vec3{0, 1, 0},
			FovDegrees:  45,
			Projection:  camera.Perspective.String(),
			DollyFactor: camera.DefaultDollyFactor,
			PanFactor:   1,
			MinDistance: camera.DefaultMinDistance,
		},
		Animation: AnimationConfig{
			Duration:        Duration(camera.DefaultAnimateDuration),
			Easing:          easing.DefaultEasing.String(),
			InertiaDuration: Duration(camera.DefaultInertiaDuration),
		},
		Interaction: InteractionConfig{
			Mode:         interaction.Mode3D.String(),
			Bindings:     map[string]string{},
			ScrollFactor: interaction.DefaultScrollFactor,
			KeyOrbitStep: 4,
			KeyPanStep:   4,
			KeyDollyStep: 0.02,
		},
		Scene: SceneConfig{
			Background:              [4]float32{0.1, 0.1, 0.12, 1},
			BoundsWorkers:           4,
			BoundsParallelThreshold: 64,
		},
	}
}

// Validate checks every field and returns all problems joined into one error.
//
// Returns:
//   - error: nil if the configuration is usable
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		add("camera.fov_degrees must be in (0, 180), got %v", c.Camera.FovDegrees)
	}
	if _, err := camera.ParseProjection(c.Camera.Projection); err != nil {
		add("camera.projection: %w", err)
	}
	if c.Camera.Position == c.Camera.Center {
		add("camera.position must differ from camera.center")
	}
	if c.Camera.Up.IsZero() {
		add("camera.up must be non-zero")
	}
	if c.Camera.DollyFactor <= 0 || c.Camera.DollyFactor >= 1 {
		add("camera.dolly_factor must be in (0, 1), got %v", c.Camera.DollyFactor)
	}
	if c.Camera.PanFactor <= 0 {
		add("camera.pan_factor must be positive, got %v", c.Camera.PanFactor)
	}
	if c.Camera.MinDistance <= 0 {
		add("camera.min_distance must be positive, got %v", c.Camera.MinDistance)
	}
	if c.Animation.Duration < 0 || c.Animation.InertiaDuration < 0 {
		add("animation durations must not be negative")
	}
	if _, err := easing.Parse(c.Animation.Easing); err != nil {
		add("animation.easing: %w", err)
	}
	if _, err := interaction.ParseMode(c.Interaction.Mode); err != nil {
		add("interaction.mode: %w", err)
	}
	if _, err := interaction.ParseBindings(c.Interaction.Bindings); err != nil {
		add("interaction.bindings: %w", err)
	}
	if c.Interaction.ScrollFactor <= 0 {
		add("interaction.scroll_factor must be positive, got %v", c.Interaction.ScrollFactor)
	}
	if c.Scene.BoundsWorkers < 1 {
		add("scene.bounds_workers must be at least 1, got %d", c.Scene.BoundsWorkers)
	}

	seen := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		if p.Name == "" {
			add("presets[%d]: name is required", i)
		} else if seen[p.Name] {
			add("presets[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		if p.Direction != "" {
			if _, err := camera.ParseViewDirection(p.Direction); err != nil {
				add("presets[%d]: %w", i, err)
			}
		} else if p.Position == p.Center {
			add("presets[%d]: position must differ from center", i)
		}
	}
	return errors.Join(errs...)
}

// Preset looks up a view preset by name.
//
// Parameters:
//   - name: the preset name, matched case-insensitively
//
// Returns:
//   - ViewPreset: the preset
//   - bool: false if no preset has that name
func (c *Config) Preset(name string) (ViewPreset, bool) {
	for _, p := range c.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ViewPreset{}, false
}

// CameraOptions converts the camera and animation settings into camera builder options.
// The configuration must be valid.
//
// Parameters:
//   - width, height: initial viewport in pixels
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c *Config) CameraOptions(width, height int) []camera.CameraBuilderOption {
	projection, _ := camera.ParseProjection(c.Camera.Projection)
	return []camera.CameraBuilderOption{
		camera.WithPosition(c.Camera.Position),
		camera.WithCenter(c.Camera.Center),
		camera.WithUp(c.Camera.Up),
		camera.WithFov(c.Camera.FovDegrees * math32.Pi / 180),
		camera.WithProjection(projection),
		camera.WithViewport(width, height),
		camera.WithDollyFactor(c.Camera.DollyFactor),
		camera.WithPanFactor(c.Camera.PanFactor),
		camera.WithMinDistance(c.Camera.MinDistance),
		camera.WithInertiaDuration(time.Duration(c.Animation.InertiaDuration)),
	}
}

// AnimationOptions returns the configured scripted move timing. Invalid easing names fall back to the default curve.
func (c *Config) AnimationOptions() camera.AnimationOptions {
	curve, err := easing.Parse(c.Animation.Easing)
	if err != nil {
		curve = easing.DefaultEasing
	}
	return camera.AnimationOptions{Duration: time.Duration(c.Animation.Duration), Easing: curve}
}

// DispatcherOptions converts the interaction settings into dispatcher options.
//
// Returns:
//   - []interaction.DispatcherBuilderOption: options for interaction.NewDispatcher
//   - error: if the bindings or mode do not parse
func (c *Config) DispatcherOptions() ([]interaction.DispatcherBuilderOption, error) {
	bindings, err := interaction.ParseBindings(c.Interaction.Bindings)
	if err != nil {
		return nil, fmt.Errorf("interaction bindings: %w", err)
	}
	mode, err := interaction.ParseMode(c.Interaction.Mode)
	if err != nil {
		return nil, err
	}
	return []interaction.DispatcherBuilderOption{
		interaction.WithBindings(bindings),
		interaction.WithMode(mode),
		interaction.WithScrollFactor(c.Interaction.ScrollFactor),
	}, nil
}

// KeyControllerOptions converts the keyboard step settings into key controller options.
func (c *Config) KeyControllerOptions() []interaction.KeyControllerBuilderOption {
	return []interaction.KeyControllerBuilderOption{
		interaction.WithOrbitStep(c.Interaction.KeyOrbitStep),
		interaction.WithPanStep(c.Interaction.KeyPanStep),
		interaction.WithDollyStep(c.Interaction.KeyDollyStep),
	}
}
