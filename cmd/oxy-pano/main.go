// Command oxy-pano displays a 360° equirectangular image or video and lets the user look
// around with the mouse, the keyboard or a phone's orientation sensor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Carmen-Shannon/oxy-pano/engine"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pano/engine/scene"
	"github.com/Carmen-Shannon/oxy-pano/engine/viewer"
	"github.com/Carmen-Shannon/oxy-pano/engine/window"
	"github.com/Carmen-Shannon/oxy-pano/internal/config"
	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	opts.apply(&cfg)

	log, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("oxy-pano failed", logger.Err(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	tex, err := buildTexture(cfg.Texture)
	if err != nil {
		return err
	}
	log.Info("texture loaded", logger.F("kind", tex.Kind().String()), logger.F("source", describe(tex)))

	mdl, err := buildModel(cfg.Geometry)
	if err != nil {
		return err
	}
	mat, err := buildMaterial(cfg.Material)
	if err != nil {
		return err
	}
	ctrl := buildController(cfg)
	src, err := buildSensor(cfg.Sensor)
	if err != nil {
		return err
	}

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	defer win.Close()

	presentMode, _ := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	msaa, _ := renderer.ParseMSAA(cfg.Renderer.MSAA)
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithClearColor(cfg.Renderer.ClearColor),
		renderer.WithLogger(log.With(logger.F("component", "renderer"))),
	)
	defer r.Release()

	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cfg.Camera.Fov)),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithViewport(win.Width(), win.Height()),
		camera.WithSource(ctrl),
	)

	pano, err := scene.NewScene("panorama", cam, r, mdl, mat, tex,
		scene.WithLogger(log.With(logger.F("component", "scene"))),
	)
	if err != nil {
		return err
	}
	defer pano.Release()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(0, pano),
		engine.WithProfiling(cfg.Profile),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
		engine.WithLogger(log.With(logger.F("component", "engine"))),
	)

	v := viewer.NewViewer(win, ctrl,
		viewer.WithCamera(cam),
		viewer.WithTexture(tex),
		viewer.WithLogger(log.With(logger.F("component", "viewer"))),
	)
	v.Attach()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	sensorCtx := logger.WithLogger(ctx, log.With(logger.F("component", "sensor")))

	var wg sync.WaitGroup
	var sensorErr error
	if src != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := v.RunSensor(sensorCtx, src); err != nil {
				sensorErr = err
				log.Error("sensor input stopped", logger.Err(err))
			}
		}()
	}
	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	eng.Run()
	stop()
	wg.Wait()
	return sensorErr
}
