package main

import (
	"flag"
	"io"

	"github.com/Carmen-Shannon/oxy-pano/internal/config"
)

// options holds the command line. Only flags the user set override the config file.
type options struct {
	configPath string

	fs *flag.FlagSet

	image          string
	video          string
	fps            float64
	geometry       string
	preset         string
	vertexShader   string
	fragmentShader string
	sensorUDP      string
	sensorReplay   string
	screenAngle    int
	logLevel       string
	profile        bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{fs: flag.NewFlagSet("oxy-pano", flag.ContinueOnError)}
	fs := o.fs
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.image, "image", "", "equirectangular image")
	fs.StringVar(&o.video, "video", "", "animated GIF, frame directory or frame glob")
	fs.Float64Var(&o.fps, "fps", 0, "frame rate of a frame-sequence video")
	fs.StringVar(&o.geometry, "geometry", "", "sphere, dome or tube")
	fs.StringVar(&o.preset, "preset", "", "built-in material preset (fisheye)")
	fs.StringVar(&o.vertexShader, "vertex-shader", "", "custom WGSL vertex shader")
	fs.StringVar(&o.fragmentShader, "fragment-shader", "", "custom WGSL fragment shader")
	fs.StringVar(&o.sensorUDP, "sensor-udp", "", "listen for JSON orientation datagrams on this address")
	fs.StringVar(&o.sensorReplay, "sensor-replay", "", "replay an orientation recording (.yaml or .jsonl)")
	fs.IntVar(&o.screenAngle, "screen-angle", 0, "screen rotation when events carry none (0, 90, 180, 270)")
	fs.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&o.profile, "profile", false, "log frame statistics every second")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// apply copies every explicitly set flag onto cfg.
func (o *options) apply(cfg *config.Config) {
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "image":
			cfg.Texture.Image = o.image
			cfg.Texture.Video = ""
		case "video":
			cfg.Texture.Video = o.video
			cfg.Texture.Image = ""
		case "fps":
			cfg.Texture.FPS = o.fps
		case "geometry":
			cfg.Geometry.Shape = o.geometry
		case "preset":
			cfg.Material.Preset = o.preset
		case "vertex-shader":
			cfg.Material.VertexShader = o.vertexShader
		case "fragment-shader":
			cfg.Material.FragmentShader = o.fragmentShader
		case "sensor-udp":
			cfg.Sensor.UDP = o.sensorUDP
			cfg.Sensor.Replay = ""
		case "sensor-replay":
			cfg.Sensor.Replay = o.sensorReplay
			cfg.Sensor.UDP = ""
		case "screen-angle":
			angle := o.screenAngle
			cfg.Sensor.ScreenAngle = &angle
		case "log-level":
			cfg.Log.Level = o.logLevel
		case "profile":
			cfg.Profile = o.profile
		}
	})
}
