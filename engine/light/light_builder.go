package light

import "github.com/Carmen-Shannon/prism-tower/common"

// LightBuilderOption is a functional option for configuring a Light via NewLight.
type LightBuilderOption func(*lightImpl)

// WithDirection sets the travel direction of the light. A zero vector keeps the default.
//
// Parameters:
//   - x, y, z: direction components
//
// Returns:
//   - LightBuilderOption: a function that sets the direction
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		if d, ok := normalize3(x, y, z); ok {
			l.direction = d
		}
	}
}

// WithSourcePosition aims the light from (x, y, z) toward the origin.
//
// Parameters:
//   - x, y, z: the source position
//
// Returns:
//   - LightBuilderOption: a function that sets the direction
func WithSourcePosition(x, y, z float32) LightBuilderOption {
	return WithDirection(-x, -y, -z)
}

// WithColor sets the light color from an sRGB color. The value is stored linearized.
//
// Parameters:
//   - c: the light color
//
// Returns:
//   - LightBuilderOption: a function that sets the color
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		lin := c.Linear()
		l.color = [3]float32{lin[0], lin[1], lin[2]}
	}
}

// WithIntensity sets the light intensity multiplier.
//
// Parameters:
//   - intensity: the multiplier
//
// Returns:
//   - LightBuilderOption: a function that sets the intensity
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithEnabled sets whether the light contributes to shading.
//
// Parameters:
//   - enabled: false to disable the light
//
// Returns:
//   - LightBuilderOption: a function that sets the enabled state
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastsShadows sets whether the light renders the shadow map.
//
// Parameters:
//   - castsShadows: true to cast shadows
//
// Returns:
//   - LightBuilderOption: a function that sets shadow casting
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}
