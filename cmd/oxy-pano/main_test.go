package main

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/orientation"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-pano/engine/sensor"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/Carmen-Shannon/oxy-pano/internal/config"
)

func TestApplyOnlySetFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-video", "clip.gif", "-geometry", "dome", "-screen-angle", "90"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	cfg := config.Default()
	cfg.Texture.Image = "from-file.jpg"
	cfg.Texture.FPS = 24
	opts.apply(&cfg)

	if cfg.Texture.Video != "clip.gif" || cfg.Texture.Image != "" {
		t.Errorf("texture = %+v, want video only", cfg.Texture)
	}
	if cfg.Texture.FPS != 24 {
		t.Errorf("unset -fps overrode config: %v", cfg.Texture.FPS)
	}
	if cfg.Geometry.Shape != "dome" {
		t.Errorf("shape = %q, want dome", cfg.Geometry.Shape)
	}
	if cfg.Sensor.ScreenAngle == nil || *cfg.Sensor.ScreenAngle != 90 {
		t.Errorf("screen angle = %v, want 90", cfg.Sensor.ScreenAngle)
	}
	if cfg.Profile {
		t.Error("unset -profile enabled profiling")
	}
}

func TestApplyZeroScreenAngle(t *testing.T) {
	opts, err := parseFlags([]string{"-screen-angle", "0"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	cfg := config.Default()
	opts.apply(&cfg)
	if cfg.Sensor.ScreenAngle == nil || *cfg.Sensor.ScreenAngle != 0 {
		t.Errorf("explicit zero screen angle lost: %v", cfg.Sensor.ScreenAngle)
	}
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	if _, err := parseFlags([]string{"-nope"}, io.Discard); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestBuildModel(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.GeometryConfig
		want    model.Shape
		wantErr bool
	}{
		{"sphere", config.GeometryConfig{Shape: "sphere", Radius: 500, Height: 500, Segments: 8}, model.ShapeSphere, false},
		{"dome", config.GeometryConfig{Shape: "dome", Radius: 500, Height: 500, Segments: 8}, model.ShapeDome, false},
		{"tube", config.GeometryConfig{Shape: "tube", Radius: 500, Height: 500}, model.ShapeTube, false},
		{"unknown", config.GeometryConfig{Shape: "cube"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := buildModel(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildModel failed: %v", err)
			}
			if m.Shape() != tt.want {
				t.Errorf("shape = %v, want %v", m.Shape(), tt.want)
			}
			if len(m.Indices()) == 0 {
				t.Error("model has no indices")
			}
		})
	}
}

func TestBuildMaterial(t *testing.T) {
	basic, err := buildMaterial(config.MaterialConfig{})
	if err != nil {
		t.Fatalf("default material failed: %v", err)
	}
	if basic.Mode() != material.ModeBasic {
		t.Errorf("default mode = %v, want basic", basic.Mode())
	}

	fisheye, err := buildMaterial(config.MaterialConfig{Preset: "Fisheye"})
	if err != nil {
		t.Fatalf("fisheye material failed: %v", err)
	}
	if fisheye.Mode() != material.ModeShader || fisheye.Name() != config.PresetFisheye {
		t.Errorf("fisheye material = %s/%v", fisheye.Name(), fisheye.Mode())
	}
	if fisheye.Pipeline().BlendState() == nil {
		t.Error("fisheye pipeline should blend over the clear colour")
	}
	if basic.Pipeline().BlendState() != nil {
		t.Error("basic pipeline should not blend")
	}

	if _, err := buildMaterial(config.MaterialConfig{VertexShader: "only.wgsl"}); err == nil {
		t.Error("expected error for a vertex shader without a fragment shader")
	}
}

func TestBuildController(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Latitude = 45
	cfg.Camera.Longitude = -90
	angle := 270
	cfg.Sensor.ScreenAngle = &angle

	ctrl := buildController(cfg)
	if got := ctrl.Latitude(); math.Abs(got-math.Pi/4) > 1e-6 {
		t.Errorf("latitude = %v, want π/4", got)
	}
	if got := ctrl.Longitude(); math.Abs(got+math.Pi/2) > 1e-6 {
		t.Errorf("longitude = %v, want -π/2", got)
	}

	if !ctrl.ApplySensor(orientation.DeviceOrientation{Alpha: 10}) {
		t.Fatal("sensor sample was dropped")
	}
	if got := ctrl.ScreenAngle(); got != orientation.ScreenAngle(270) {
		t.Errorf("screen angle = %v, want 270", got)
	}
}

func TestBuildSensor(t *testing.T) {
	src, err := buildSensor(config.SensorConfig{})
	if err != nil || src != nil {
		t.Fatalf("no sensor config gave %v, %v", src, err)
	}

	src, err = buildSensor(config.SensorConfig{UDP: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("udp sensor failed: %v", err)
	}
	if _, ok := src.(*sensor.UDPSource); !ok {
		t.Errorf("udp sensor is %T", src)
	}

	path := filepath.Join(t.TempDir(), "rec.yaml")
	rec := "samples:\n  - t: 0\n    alpha: 10\n  - t: 0.5\n    alpha: 20\n"
	if err := os.WriteFile(path, []byte(rec), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err = buildSensor(config.SensorConfig{Replay: path})
	if err != nil {
		t.Fatalf("replay sensor failed: %v", err)
	}
	if _, ok := src.(*sensor.ReplaySource); !ok {
		t.Errorf("replay sensor is %T", src)
	}

	if _, err := buildSensor(config.SensorConfig{Replay: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("expected error for a missing recording")
	}
}

func TestBuildTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pano.png")
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	src, err := buildTexture(config.TextureConfig{Image: path, MaxSize: 8192})
	if err != nil {
		t.Fatalf("buildTexture failed: %v", err)
	}
	if src.Kind() != texture.KindImage {
		t.Errorf("kind = %v, want image", src.Kind())
	}
	if got := describe(src); got != "8x4 image" {
		t.Errorf("describe = %q", got)
	}

	if _, err := buildTexture(config.TextureConfig{Image: filepath.Join(t.TempDir(), "missing.png")}); err == nil {
		t.Error("expected error for a missing image")
	}
}
