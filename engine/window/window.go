package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling for the viewer.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical wheel delta (positive = away from the user)
	SetScrollCallback(callback func(delta float64))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button (common.MouseButton*) and cursor position
	SetMouseDownCallback(callback func(button uint32, x, y float64))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button (common.MouseButton*) and cursor position
	SetMouseUpCallback(callback func(button uint32, x, y float64))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in screen coordinates
	SetMouseMoveCallback(callback func(x, y float64))

	// SurfaceDescriptor returns a platform-specific descriptor for creating a WebGPU surface,
	// or nil if the window is not initialized.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true while the window is open and no close was requested.
	IsRunning() bool

	// RequestClose asks the message loop to stop at its next iteration.
	// Safe to call from any goroutine or callback.
	RequestClose()

	// Close destroys the window and releases platform resources.
	// Must be called from the thread that created the window.
	//
	// Returns:
	//   - error: error if the window is not initialized
	Close() error

	// ProcessMessages runs the window message loop on the calling thread.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Callback fields are set before ProcessMessages starts and only read afterwards.
type engineWindow struct {
	title     string
	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	sizeMu sync.RWMutex
	width  int
	height int

	closeMu        sync.Mutex
	closeRequested bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float64)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(button uint32, x, y float64)
	onMouseUp   func(button uint32, x, y float64)
	onMouseMove func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a platform window with the specified options.
// Must be called from the main goroutine; the OS thread is locked for the window's lifetime.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// newEngineWindow applies defaults and options without touching the platform layer.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-pano",
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	w.width = max(w.width, w.minWidth)
	w.height = max(w.height, w.minHeight)
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float64)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button uint32, x, y float64)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button uint32, x, y float64)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float64)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	if w.closeWasRequested() {
		return false
	}
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	w.closeRequested = true
}

func (w *engineWindow) closeWasRequested() bool {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	return w.closeRequested
}

func (w *engineWindow) Close() error {
	w.RequestClose()
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if !platformProcessMessages(w) {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.sizeMu.RLock()
	defer w.sizeMu.RUnlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.sizeMu.RLock()
	defer w.sizeMu.RUnlock()
	return w.height
}

// The dispatch helpers below translate platform events into callbacks.
// They hold no platform state so they can be driven directly in tests.

func (w *engineWindow) dispatchResize(width, height int) {
	if width <= 0 || height <= 0 {
		// minimised
		return
	}
	w.sizeMu.Lock()
	w.width, w.height = width, height
	w.sizeMu.Unlock()
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) dispatchKey(key uint32, pressed bool) {
	if pressed {
		if w.onKeyDown != nil {
			w.onKeyDown(key)
		}
		return
	}
	if w.onKeyUp != nil {
		w.onKeyUp(key)
	}
}

func (w *engineWindow) dispatchMouseButton(button uint32, pressed bool, x, y float64) {
	if pressed {
		if w.onMouseDown != nil {
			w.onMouseDown(button, x, y)
		}
		return
	}
	if w.onMouseUp != nil {
		w.onMouseUp(button, x, y)
	}
}

func (w *engineWindow) dispatchMouseMove(x, y float64) {
	if w.onMouseMove != nil {
		w.onMouseMove(x, y)
	}
}

func (w *engineWindow) dispatchScroll(delta float64) {
	if delta != 0 && w.onScroll != nil {
		w.onScroll(delta)
	}
}
