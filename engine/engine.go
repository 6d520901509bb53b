package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pano/engine/scene"
	"github.com/Carmen-Shannon/oxy-pano/engine/window"
	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
)

// engine implements the Engine interface.
// Coordinates the render goroutine with the window message loop on the main thread.
type engine struct {
	mu sync.RWMutex
	wg sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window window.Window
	log    logger.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderCallback   func(deltaTime time.Duration)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	scenes map[int]scene.Scene
}

// Engine orchestrates the render loop and window lifetime.
type Engine interface {
	// Window returns the underlying window.
	Window() window.Window

	// EnableProfiler enables periodic frame statistics in the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics.
	DisableProfiler()

	// SetRenderCallback registers a function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function receiving the frame's wall-clock delta
	SetRenderCallback(callback func(deltaTime time.Duration))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are drawn in ascending key order within one render pass.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	RemoveScene(key int)

	// Scene returns the scene at the given key, or nil.
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	Scenes() map[int]scene.Scene

	// Run starts the render goroutine and runs the window message loop on the calling
	// goroutine. Blocks until the window closes or Quit is called, then waits for the
	// render goroutine to exit.
	Run()

	// Quit stops the render loop and asks the window to close.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine. A window is required; scenes may be added later.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		scenes:      make(map[int]scene.Scene),
		log:         logger.NewNop(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.window == nil {
		panic("engine: NewEngine requires a window")
	}
	e.profiler = profiler.NewProfiler(e.log.With(logger.F("component", "profiler")), time.Second)

	e.window.SetResizeCallback(func(width, height int) {
		for _, s := range e.Scenes() {
			s.Resize(width, height)
		}
	})

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.wg.Add(1)
	go e.handleRender()

	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
}

func (e *engine) Quit() {
	e.signalQuit()
	e.window.RequestClose()
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics so a GPU failure closes the window instead of crashing the process.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("render goroutine recovered from panic", logger.F("panic", fmt.Sprint(r)))
			e.Quit()
		}
	}()

	lastRender := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := now.Sub(lastRender)
		lastRender = now

		if err := e.renderFrame(dt); err != nil {
			e.log.Error("render failed", logger.Err(err))
			e.Quit()
			return
		}

		e.mu.RLock()
		callback, profiling, limit := e.renderCallback, e.profilingEnabled, e.renderFrameLimit
		e.mu.RUnlock()

		if callback != nil {
			callback(dt)
		}
		if profiling {
			e.profiler.Tick()
		}
		if limit > 0 {
			if remaining := limit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// renderFrame updates every active scene, then draws them in ascending z-index order inside a
// single render pass owned by the first active scene's renderer.
func (e *engine) renderFrame(dt time.Duration) error {
	active := e.activeScenes()
	if len(active) == 0 {
		return nil
	}

	for _, s := range active {
		if err := s.Update(dt); err != nil {
			return err
		}
	}

	frameRenderer := active[0].Renderer()
	if err := frameRenderer.BeginFrame(); err != nil {
		// the surface is unavailable while minimised or being reconfigured
		e.log.Debug("skipping frame", logger.Err(err))
		return nil
	}
	for _, s := range active {
		if err := s.DrawCalls(); err != nil {
			e.log.Warn("draw failed", logger.F("scene", s.Name()), logger.Err(err))
		}
	}
	frameRenderer.EndFrame()
	frameRenderer.Present()
	return nil
}

func (e *engine) activeScenes() []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetRenderCallback(callback func(deltaTime time.Duration)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
