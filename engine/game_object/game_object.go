package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine/model"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/bind_group_provider"
)

type gameObject struct {
	mu           sync.RWMutex
	id           uint64
	enabled      atomic.Bool
	castsShadows bool
	mdl          model.Model
	color        common.Color

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	parent   *gameObject
	children []*gameObject

	provider bind_group_provider.BindGroupProvider
}

// GameObject is a node in the scene graph. It carries a local transform relative to its parent, an optional
// shared Model, and a per-object color. Objects without a Model are pure transform nodes.
type GameObject interface {
	ID() uint64
	Enabled() bool
	Model() model.Model
	Color() common.Color
	CastsShadows() bool

	// Position returns the local translation relative to the parent.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the local Euler rotation in radians, applied in Y * X * Z order.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the local scale factors.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	SetID(id uint64)
	SetEnabled(enabled bool)
	SetColor(c common.Color)
	SetPosition(x, y, z float32)
	SetRotation(rx, ry, rz float32)
	SetScale(sx, sy, sz float32)

	// AddChild parents child under this object. A child already attached elsewhere is moved.
	//
	// Parameters:
	//   - child: the object to attach; must have been created by NewGameObject
	AddChild(child GameObject)

	// Children returns a snapshot of the direct children.
	//
	// Returns:
	//   - []GameObject: the children in insertion order
	Children() []GameObject

	// Parent returns the parent object, or nil for a root.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// LocalMatrix returns the column-major transform relative to the parent.
	//
	// Returns:
	//   - [16]float32: the local matrix
	LocalMatrix() [16]float32

	// WorldMatrix composes the local matrices from the root down to this object.
	//
	// Returns:
	//   - [16]float32: the world matrix
	WorldMatrix() [16]float32

	// Walk visits this object and every descendant depth-first.
	//
	// Parameters:
	//   - fn: called once per object
	Walk(fn func(GameObject))

	// BindGroupProvider returns the provider holding this object's uniform buffer, or nil before the scene
	// initializes it.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	SetBindGroupProvider(p bind_group_provider.BindGroupProvider)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled with unit scale and a white color.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale:        [3]float32{1, 1, 1},
		color:        common.Color{R: 1, G: 1, B: 1, A: 1},
		castsShadows: true,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mdl
}

func (g *gameObject) Color() common.Color {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.color
}

func (g *gameObject) CastsShadows() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.castsShadows
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetColor(c common.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.color = c
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) AddChild(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok || c == nil || c == g {
		return
	}
	if old := c.parentNode(); old != nil {
		old.removeChild(c)
	}

	g.mu.Lock()
	g.children = append(g.children, c)
	g.mu.Unlock()

	c.mu.Lock()
	c.parent = g
	c.mu.Unlock()
}

func (g *gameObject) removeChild(c *gameObject) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, ch := range g.children {
		if ch == c {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return
		}
	}
}

func (g *gameObject) parentNode() *gameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) Parent() GameObject {
	if p := g.parentNode(); p != nil {
		return p
	}
	return nil
}

func (g *gameObject) LocalMatrix() [16]float32 {
	g.mu.RLock()
	p, r, s := g.position, g.rotation, g.scale
	g.mu.RUnlock()

	var m [16]float32
	common.BuildModelMatrix(m[:], p[0], p[1], p[2], r[0], r[1], r[2], s[0], s[1], s[2])
	return m
}

func (g *gameObject) WorldMatrix() [16]float32 {
	m := g.LocalMatrix()
	for p := g.parentNode(); p != nil; p = p.parentNode() {
		pm := p.LocalMatrix()
		common.Mul4(m[:], pm[:], m[:])
	}
	return m
}

func (g *gameObject) Walk(fn func(GameObject)) {
	fn(g)
	for _, c := range g.Children() {
		c.Walk(fn)
	}
}

func (g *gameObject) BindGroupProvider() bind_group_provider.BindGroupProvider {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.provider
}

func (g *gameObject) SetBindGroupProvider(p bind_group_provider.BindGroupProvider) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.provider = p
}
