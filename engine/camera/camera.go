package camera

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/bind_group_provider"
)

// Zoom limits in pixels per world unit.
const (
	MinZoom float32 = 2
	MaxZoom float32 = 400
)

var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	zoom   float32
	near   float32
	far    float32
	width  float32
	height float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera is an orthographic camera. The visible world extent follows the viewport: a viewport of w x h pixels
// at zoom z shows w/z by h/z world units, so resizing the window reveals more of the scene instead of
// stretching it.
type Camera interface {
	Up() (x, y, z float32)

	// Zoom returns the scale in pixels per world unit.
	//
	// Returns:
	//   - float32: the zoom factor
	Zoom() float32

	Near() float32
	Far() float32

	// Viewport returns the framebuffer size the projection is fitted to.
	//
	// Returns:
	//   - width, height: size in pixels
	Viewport() (width, height float32)

	ViewMatrix() [16]float32
	ProjectionMatrix() [16]float32
	ViewProjectionMatrix() [16]float32

	Controller() CameraController
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Uniform snapshots the matrices for upload.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform contents
	Uniform() GPUCameraUniform

	// Update recomputes the matrices from the controller's current position and target.
	Update()

	SetUp(x, y, z float32)

	// SetZoom sets the scale in pixels per world unit, clamped to [MinZoom, MaxZoom].
	//
	// Parameters:
	//   - zoom: the new zoom factor
	SetZoom(zoom float32)

	SetNear(near float32)
	SetFar(far float32)

	// SetViewport refits the projection to a new framebuffer size. Zero sizes (minimized window) are ignored.
	//
	// Parameters:
	//   - width, height: size in pixels
	SetViewport(width, height float32)

	SetController(ctrl CameraController)
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new orthographic Camera configured with the given options.
// Defaults: up +Y, zoom 30, near 0.1, far 1000, 1280x720 viewport.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the new camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		zoom:   30,
		near:   0.1,
		far:    1000,
		width:  1280,
		height: 720,
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	common.Identity(c.viewMatrix[:])
	common.Identity(c.projectionMatrix[:])
	common.Identity(c.viewProjectionMatrix[:])
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Viewport() (width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := GPUCameraUniform{ViewProj: c.viewProjectionMatrix}
	if c.controller != nil {
		x, y, z := c.controller.Position()
		u.CameraPosition = [3]float32{x, y, z}
	}
	return u
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetZoom(zoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = clampZoom(zoom)
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

func (c *cameraImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindGroupProvider = provider
}

// updateMatrices rebuilds view, projection and view-projection. Caller must hold c.mu.
func (c *cameraImpl) updateMatrices() {
	halfW := c.width / (2 * c.zoom)
	halfH := c.height / (2 * c.zoom)
	common.Orthographic(c.projectionMatrix[:], -halfW, halfW, -halfH, halfH, c.near, c.far)

	if c.controller == nil {
		c.viewProjectionMatrix = c.projectionMatrix
		return
	}
	px, py, pz := c.controller.Position()
	tx, ty, tz := c.controller.Target()
	common.LookAt(c.viewMatrix[:], px, py, pz, tx, ty, tz, c.up[0], c.up[1], c.up[2])
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

func clampZoom(z float32) float32 {
	return max(MinZoom, min(MaxZoom, z))
}
