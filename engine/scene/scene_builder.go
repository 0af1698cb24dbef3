package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithComputeWorkers sets the number of worker goroutines that build the per-object uniforms in
// PrepareFrame. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithAmbient sets the linear ambient color. Defaults to 0.5 gray.
//
// Parameters:
//   - r, g, b: the ambient color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbient(r, g, b float32) SceneBuilderOption {
	return func(s *scene) {
		s.ambient = [3]float32{r, g, b}
	}
}

// WithShadowHalfExtent sets the half-size of the orthographic shadow frustum in world units.
//
// Parameters:
//   - halfExtent: the half extent, ignored unless positive
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowHalfExtent(halfExtent float32) SceneBuilderOption {
	return func(s *scene) {
		if halfExtent > 0 {
			s.shadowHalfExtent = halfExtent
		}
	}
}

// WithShadowNearFar sets the depth range of the shadow frustum.
//
// Parameters:
//   - near: the near plane
//   - far: the far plane, must exceed near
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowNearFar(near, far float32) SceneBuilderOption {
	return func(s *scene) {
		if far > near {
			s.shadowNear, s.shadowFar = near, far
		}
	}
}

// WithShadowBias sets the constant depth bias applied when comparing against the shadow map.
//
// Parameters:
//   - bias: the depth bias
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowBias(bias float32) SceneBuilderOption {
	return func(s *scene) {
		s.shadowBias = bias
	}
}

// WithShadowNormalBiasScale scales the normal offset in shadow-map texels.
//
// Parameters:
//   - scale: the multiplier
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowNormalBiasScale(scale float32) SceneBuilderOption {
	return func(s *scene) {
		s.shadowNormalBiasScale = scale
	}
}

// WithShadowMapResolution sets the square shadow map size in texels.
//
// Parameters:
//   - res: the resolution, ignored unless positive
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowMapResolution(res int) SceneBuilderOption {
	return func(s *scene) {
		if res > 0 {
			s.shadowMapResolution = res
		}
	}
}
