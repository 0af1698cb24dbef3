package light

// ShadowMapResolution is the width and height in texels of the shadow depth texture.
const ShadowMapResolution = 2048

// DefaultShadowHalfExtent is the orthographic half-extent in world units of the shadow frustum.
// Scenes normally size it from their content instead.
const DefaultShadowHalfExtent float32 = 40.0

// DefaultShadowNear is the near plane of the shadow projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the far plane of the shadow projection.
const DefaultShadowFar float32 = 200.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons.
const DefaultShadowBias float32 = 0.001

// DefaultShadowNormalBiasScale multiplies the world size of one shadow texel to get the distance a
// fragment is pushed along its normal before the shadow lookup. Typical values are 2 to 4.
const DefaultShadowNormalBiasScale float32 = 3.0
