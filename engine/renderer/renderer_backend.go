package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank before presenting. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately and may tear.
	PresentModeUncapped
)

// MSAASampleCount is the number of samples per pixel of the main pass.
// WebGPU guarantees 1 and 4; 8 and 16 depend on the adapter.
type MSAASampleCount uint32

const (
	MSAAOff MSAASampleCount = 1
	MSAA4x  MSAASampleCount = 4
	MSAA8x  MSAASampleCount = 8
	MSAA16x MSAASampleCount = 16
)

// ParseMSAA maps a sample count to an MSAASampleCount. 0 and 1 disable MSAA.
//
// Parameters:
//   - samples: the requested samples per pixel
//
// Returns:
//   - MSAASampleCount: the matching constant
//   - bool: false if samples is not a supported count
func ParseMSAA(samples int) (MSAASampleCount, bool) {
	switch samples {
	case 0, 1:
		return MSAAOff, true
	case 4:
		return MSAA4x, true
	case 8:
		return MSAA8x, true
	case 16:
		return MSAA16x, true
	default:
		return MSAAOff, false
	}
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
