package main

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/orientation"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-pano/engine/scene"
	"github.com/Carmen-Shannon/oxy-pano/engine/sensor"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/Carmen-Shannon/oxy-pano/internal/config"
	"github.com/go-gl/mathgl/mgl32"
)

func buildTexture(cfg config.TextureConfig) (texture.Source, error) {
	if cfg.Video != "" {
		v, err := texture.LoadVideo(cfg.Video, cfg.FPS, cfg.MaxSize, cfg.DecodeWorkers)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	s, err := texture.LoadStill(cfg.Image, cfg.MaxSize)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func buildModel(cfg config.GeometryConfig) (model.Model, error) {
	shape, err := model.ParseShape(cfg.Shape)
	if err != nil {
		return nil, err
	}

	opts := []model.ModelBuilderOption{
		model.WithRadius(cfg.Radius),
		model.WithHeight(cfg.Height),
	}
	if n := cfg.Segments; n > 0 {
		switch shape {
		case model.ShapeDome:
			opts = append(opts, model.WithSegments(n, max(n/2, 1)))
		case model.ShapeTube:
			opts = append(opts, model.WithSegments(n, 0))
		default:
			opts = append(opts, model.WithSegments(n, n))
		}
	}
	return model.NewModel(shape, opts...), nil
}

func buildMaterial(cfg config.MaterialConfig) (material.Material, error) {
	switch {
	case strings.EqualFold(cfg.Preset, config.PresetFisheye):
		fs, err := shader.NewShader("fisheye.frag", shader.ShaderTypeFragment, scene.FisheyeFragmentSource)
		if err != nil {
			return nil, err
		}
		vs := shader.MustShader("fisheye.vert", shader.ShaderTypeVertex, material.BasicVertexSource)
		return material.NewMaterial(
			material.WithName(config.PresetFisheye),
			material.WithShaders(vs, fs),
			material.WithPipelineOptions(pipeline.WithAlphaBlend()),
		)
	case cfg.VertexShader != "" || cfg.FragmentShader != "":
		return material.NewMaterial(material.WithName("custom"), material.WithShaderFiles(cfg.VertexShader, cfg.FragmentShader))
	default:
		return material.NewMaterial()
	}
}

func buildController(cfg config.Config) orientation.Controller {
	opts := []orientation.ControllerOption{
		orientation.WithSensitivity(cfg.Camera.Sensitivity),
		orientation.WithLatitude(float64(mgl32.DegToRad(float32(cfg.Camera.Latitude)))),
		orientation.WithLongitude(float64(mgl32.DegToRad(float32(cfg.Camera.Longitude)))),
	}
	if a := cfg.Sensor.ScreenAngle; a != nil {
		opts = append(opts, orientation.WithScreenProbes(orientation.FixedScreen(orientation.ScreenAngle(*a))))
	}
	return orientation.NewController(opts...)
}

// buildSensor returns nil when no sensor input is configured.
func buildSensor(cfg config.SensorConfig) (sensor.Source, error) {
	switch {
	case cfg.UDP != "":
		return sensor.NewUDPSource(cfg.UDP), nil
	case cfg.Replay != "":
		rec, err := sensor.LoadRecording(cfg.Replay)
		if err != nil {
			return nil, err
		}
		return sensor.NewReplaySource(rec), nil
	default:
		return nil, nil
	}
}

func describe(src texture.Source) string {
	w, h := src.Size()
	if v, ok := src.(*texture.Video); ok {
		return fmt.Sprintf("%dx%d video, %d frames, %s loop", w, h, v.FrameCount(), v.Duration())
	}
	return fmt.Sprintf("%dx%d image", w, h)
}
