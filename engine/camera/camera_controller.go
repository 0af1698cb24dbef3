package camera

import "sync"

// CameraController owns the camera's positional state. The camera reads it on every Update.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// SetTarget changes the look-at point.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)
}

type fixedController struct {
	mu       sync.RWMutex
	position [3]float32
	target   [3]float32
}

var _ CameraController = &fixedController{}

// NewCameraController creates a controller that holds a position and target until told otherwise.
// Defaults to (10, 10, 10) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the new controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &fixedController{position: [3]float32{10, 10, 10}}
	for _, opt := range options {
		opt(cc)
	}
	return cc
}

func (cc *fixedController) Position() (x, y, z float32) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *fixedController) Target() (x, y, z float32) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *fixedController) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = [3]float32{x, y, z}
}

func (cc *fixedController) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
}
