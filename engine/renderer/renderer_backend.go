package renderer

import (
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately. May tear.
	PresentModeUncapped
)

// ParsePresentMode maps a config name ("vsync", "fifo", "uncapped", "immediate") to a PresentMode.
// An empty name selects PresentModeVSync.
func ParsePresentMode(name string) (PresentMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "vsync", "fifo":
		return PresentModeVSync, true
	case "uncapped", "immediate":
		return PresentModeUncapped, true
	default:
		return PresentModeVSync, false
	}
}

func (m PresentMode) toWGPU() wgpu.PresentMode {
	if m == PresentModeUncapped {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// MSAASampleCount is the multisample count of the main render pass. WebGPU guarantees 1 and 4.
type MSAASampleCount uint32

const (
	// MSAAOff renders straight into the swapchain image.
	MSAAOff MSAASampleCount = 1

	// MSAA4x renders into a 4x multisampled target resolved into the swapchain image. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ParseMSAA maps a configured sample count to a supported MSAASampleCount.
//
// Parameters:
//   - samples: the configured count, 0 or 1 disables MSAA
//
// Returns:
//   - MSAASampleCount: the sample count
//   - bool: false if samples is not 0, 1 or 4
func ParseMSAA(samples int) (MSAASampleCount, bool) {
	switch samples {
	case 0, 1:
		return MSAAOff, true
	case 4:
		return MSAA4x, true
	default:
		return MSAAOff, false
	}
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
