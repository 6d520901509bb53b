package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/orientation"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config is the viewer configuration file.
type Config struct {
	Window   WindowConfig        `yaml:"window"`
	Texture  TextureConfig       `yaml:"texture"`
	Geometry GeometryConfig      `yaml:"geometry"`
	Material MaterialConfig      `yaml:"material"`
	Camera   CameraConfig        `yaml:"camera"`
	Sensor   SensorConfig        `yaml:"sensor"`
	Renderer RendererConfig      `yaml:"renderer"`
	Log      logger.LoggerConfig `yaml:"log"`
	Profile  bool                `yaml:"profile"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// TextureConfig picks exactly one panorama source.
type TextureConfig struct {
	Image string `yaml:"image"`

	// Video is an animated GIF, a directory of frames or a glob such as "frames/*.jpg".
	Video string  `yaml:"video"`
	FPS   float64 `yaml:"fps"`

	// MaxSize caps the longest texture edge; larger sources are scaled down.
	MaxSize       int `yaml:"max_size"`
	DecodeWorkers int `yaml:"decode_workers"`
}

type GeometryConfig struct {
	Shape    string  `yaml:"shape"`
	Radius   float32 `yaml:"radius"`
	Height   float32 `yaml:"height"`
	Segments int     `yaml:"segments"`
}

// MaterialConfig selects the built-in shaders, a named preset or a pair of WGSL files.
type MaterialConfig struct {
	Preset         string `yaml:"preset"`
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`
}

// CameraConfig angles are in degrees.
type CameraConfig struct {
	Fov         float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Sensitivity float64 `yaml:"sensitivity"`
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
}

type SensorConfig struct {
	UDP    string `yaml:"udp"`
	Replay string `yaml:"replay"`

	// ScreenAngle is the fallback screen rotation when events carry none.
	ScreenAngle *int `yaml:"screen_angle"`
}

type RendererConfig struct {
	PresentMode   string  `yaml:"present_mode"`
	MSAA          int     `yaml:"msaa"`
	FrameLimit    float64 `yaml:"frame_limit"`
	ForceSoftware bool    `yaml:"force_software"`

	// ClearColor is RGBA in [0, 1], visible wherever the material is transparent.
	ClearColor [4]float64 `yaml:"clear_color"`
}

// PresetFisheye names the bundled fisheye fragment shader.
const PresetFisheye = "fisheye"

// Default returns a configuration that validates once a texture is set.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-pano",
			Width:  1280,
			Height: 720,
		},
		Texture: TextureConfig{
			FPS:           30,
			MaxSize:       8192,
			DecodeWorkers: 4,
		},
		Geometry: GeometryConfig{
			Shape:  model.ShapeSphere.String(),
			Radius: 500,
			Height: 500,
		},
		Camera: CameraConfig{
			Fov:         75,
			Near:        1,
			Far:         1000,
			Sensitivity: 0.01,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			MSAA:        4,
			ClearColor:  [4]float64{0, 0, 0, 1},
		},
		Log: logger.DefaultConfig(),
	}
}

// Load reads a YAML file over the defaults and applies the logging environment overrides.
// The result is not validated; flags may still change it.
//
// Parameters:
//   - path: config file path, empty for defaults only
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.Log = logger.ApplyEnv(cfg.Log)
	return cfg, nil
}

// Validate reports every problem in the configuration.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	switch {
	case c.Texture.Image == "" && c.Texture.Video == "":
		add("texture: one of image or video is required")
	case c.Texture.Image != "" && c.Texture.Video != "":
		add("texture: image and video are mutually exclusive")
	}
	if c.Texture.Video != "" && c.Texture.FPS <= 0 {
		add("texture: fps %v must be positive", c.Texture.FPS)
	}
	if c.Texture.MaxSize < 0 {
		add("texture: max_size %d must not be negative", c.Texture.MaxSize)
	}
	if c.Texture.DecodeWorkers < 1 {
		add("texture: decode_workers %d must be at least 1", c.Texture.DecodeWorkers)
	}

	if _, err := model.ParseShape(c.Geometry.Shape); err != nil {
		add("geometry: %w", err)
	}
	if c.Geometry.Radius <= 0 {
		add("geometry: radius %v must be positive", c.Geometry.Radius)
	}
	if c.Geometry.Height <= 0 {
		add("geometry: height %v must be positive", c.Geometry.Height)
	}
	if c.Geometry.Segments < 0 || (c.Geometry.Segments > 0 && c.Geometry.Segments < 3) {
		add("geometry: segments %d must be 0 (default) or at least 3", c.Geometry.Segments)
	}

	custom := c.Material.VertexShader != "" || c.Material.FragmentShader != ""
	if (c.Material.VertexShader == "") != (c.Material.FragmentShader == "") {
		add("material: vertex_shader and fragment_shader must be set together")
	}
	switch strings.ToLower(c.Material.Preset) {
	case "", "basic":
	case PresetFisheye:
		if custom {
			add("material: preset %q cannot be combined with shader files", c.Material.Preset)
		}
	default:
		add("material: unknown preset %q", c.Material.Preset)
	}

	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		add("camera: fov %v must be between 0 and 180 degrees", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		add("camera: clip planes near %v far %v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if c.Geometry.Radius > 0 && c.Camera.Far > 0 && c.Geometry.Radius >= c.Camera.Far {
		add("camera: far plane %v must lie beyond the geometry radius %v", c.Camera.Far, c.Geometry.Radius)
	}
	if c.Camera.Sensitivity <= 0 {
		add("camera: sensitivity %v must be positive", c.Camera.Sensitivity)
	}

	if c.Sensor.UDP != "" && c.Sensor.Replay != "" {
		add("sensor: udp and replay are mutually exclusive")
	}
	if a := c.Sensor.ScreenAngle; a != nil && orientation.NormalizeAngle(*a)%90 != 0 {
		add("sensor: screen_angle %d must be a multiple of 90", *a)
	}

	if _, ok := renderer.ParsePresentMode(c.Renderer.PresentMode); !ok {
		add("renderer: unknown present_mode %q", c.Renderer.PresentMode)
	}
	if _, ok := renderer.ParseMSAA(c.Renderer.MSAA); !ok {
		add("renderer: msaa %d must be 0, 1 or 4", c.Renderer.MSAA)
	}
	if c.Renderer.FrameLimit < 0 {
		add("renderer: frame_limit %v must not be negative", c.Renderer.FrameLimit)
	}
	for _, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 {
			add("renderer: clear_color %v components must be in [0, 1]", c.Renderer.ClearColor)
			break
		}
	}

	return errors.Join(errs...)
}
