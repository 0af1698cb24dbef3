package light

import (
	"math"
	"sync"
)

type lightImpl struct {
	mu           sync.RWMutex
	direction    [3]float32
	color        [3]float32
	intensity    float32
	enabled      bool
	castsShadows bool
}

// Light is a directional light. Direction is the way the light travels, from the source toward the scene.
type Light interface {
	// Direction returns the normalized travel direction of the light.
	//
	// Returns:
	//   - [3]float32: unit direction
	Direction() [3]float32

	// Color returns the linear RGB color of the light.
	//
	// Returns:
	//   - [3]float32: linear RGB
	Color() [3]float32

	Intensity() float32
	Enabled() bool

	// CastsShadows reports whether this light renders the scene's shadow map. Only the first enabled
	// shadow-casting light is used.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// SetDirection sets the travel direction. The vector is normalized; a zero vector is ignored.
	//
	// Parameters:
	//   - x, y, z: direction components
	SetDirection(x, y, z float32)

	// SetSourcePosition aims the light from a point toward the origin, as a sun placed at (x, y, z).
	//
	// Parameters:
	//   - x, y, z: the source position
	SetSourcePosition(x, y, z float32)

	SetColor(r, g, b float32)
	SetIntensity(intensity float32)
	SetEnabled(enabled bool)
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a directional Light. Defaults: straight down, white, intensity 1, enabled, no shadows.
//
// Parameters:
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the new light
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		direction: [3]float32{0, -1, 0},
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Direction() [3]float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.castsShadows
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if d, ok := normalize3(x, y, z); ok {
		l.direction = d
	}
}

func (l *lightImpl) SetSourcePosition(x, y, z float32) {
	l.SetDirection(-x, -y, -z)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.castsShadows = castsShadows
}

func normalize3(x, y, z float32) ([3]float32, bool) {
	n := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if n == 0 {
		return [3]float32{}, false
	}
	return [3]float32{x / n, y / n, z / n}, true
}
