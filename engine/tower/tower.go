package tower

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine/game_object"
	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
	"github.com/Carmen-Shannon/prism-tower/engine/model"
)

// Model names shared by every tower. The scene uploads each once.
const (
	ModelPrismA = "prism_a"
	ModelPrismB = "prism_b"
	ModelWire   = "wire"
)

// DefaultRotationRate is the spin speed in radians per second.
const DefaultRotationRate = 0.5

type tower struct {
	mu        sync.Mutex
	dims      geometry.Dimensions
	table     []Level
	rate      float64
	wireColor common.Color
	cache     *geometry.Cache

	layout  *Layout
	rotator *Rotator
	root    game_object.GameObject
	models  []model.Model
}

// Tower is the composed scene graph: a root object that spins about +Y with every wireframe cell and prism
// half attached as a child.
type Tower interface {
	// Root returns the object whose rotation spins the whole stack.
	//
	// Returns:
	//   - game_object.GameObject: the root
	Root() game_object.GameObject

	// Objects returns the root followed by every descendant.
	//
	// Returns:
	//   - []game_object.GameObject: all tower objects
	Objects() []game_object.GameObject

	// Models returns the shared meshes referenced by the tower objects.
	//
	// Returns:
	//   - []model.Model: the wire cell and the two prism halves
	Models() []model.Model

	Layout() *Layout

	// Tick advances the rotation by dt seconds and applies it to the root.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous tick
	Tick(dt float64)

	// Angle returns the accumulated rotation in radians.
	//
	// Returns:
	//   - float64: the angle
	Angle() float64
}

var _ Tower = &tower{}

// NewTower composes the color table and builds the scene graph. Recreating a tower starts its angle at zero.
//
// Parameters:
//   - options: functional options to configure the tower
//
// Returns:
//   - Tower: the composed tower
//   - error: ErrEmptyColorTable, or a geometry error for invalid dimensions
func NewTower(options ...TowerBuilderOption) (Tower, error) {
	t := &tower{
		dims:      geometry.DefaultDimensions,
		table:     DefaultColorTable(),
		rate:      DefaultRotationRate,
		wireColor: common.MustParseHexColor("#1F1F1F"),
	}
	for _, opt := range options {
		opt(t)
	}
	if t.cache == nil {
		t.cache = geometry.NewCache()
	}

	layout, err := Compose(t.table, t.dims)
	if err != nil {
		return nil, err
	}
	t.layout = layout
	t.rotator = NewRotator(t.rate)

	if err := t.build(); err != nil {
		return nil, fmt.Errorf("tower: failed to build scene graph: %w", err)
	}
	return t, nil
}

func (t *tower) build() error {
	wireMesh, err := t.cache.Wireframe(t.dims)
	if err != nil {
		return err
	}
	meshA, err := t.cache.Prism(geometry.HalfA, t.dims)
	if err != nil {
		return err
	}
	meshB, err := t.cache.Prism(geometry.HalfB, t.dims)
	if err != nil {
		return err
	}

	wire := model.FromLineMesh(ModelWire, wireMesh)
	halves := map[geometry.Half]model.Model{
		geometry.HalfA: model.FromPrismMesh(ModelPrismA, meshA),
		geometry.HalfB: model.FromPrismMesh(ModelPrismB, meshB),
	}
	t.models = []model.Model{wire, halves[geometry.HalfA], halves[geometry.HalfB]}

	var nextID uint64
	id := func() uint64 {
		nextID++
		return nextID
	}

	t.root = game_object.NewGameObject(game_object.WithID(0))
	for _, slot := range t.layout.Slots {
		t.root.AddChild(game_object.NewGameObject(
			game_object.WithID(id()),
			game_object.WithModel(wire),
			game_object.WithPosition(0, slot.Y, 0),
			game_object.WithColor(t.wireColor),
			game_object.WithCastsShadows(false),
		))
		for _, h := range []geometry.Half{geometry.HalfA, geometry.HalfB} {
			c := Level{A: slot.A, B: slot.B}.Color(h)
			if c == nil {
				continue
			}
			t.root.AddChild(game_object.NewGameObject(
				game_object.WithID(id()),
				game_object.WithModel(halves[h]),
				game_object.WithPosition(0, slot.Y, 0),
				game_object.WithColor(*c),
			))
		}
	}
	return nil
}

func (t *tower) Root() game_object.GameObject {
	return t.root
}

func (t *tower) Objects() []game_object.GameObject {
	var out []game_object.GameObject
	t.root.Walk(func(o game_object.GameObject) {
		out = append(out, o)
	})
	return out
}

func (t *tower) Models() []model.Model {
	return t.models
}

func (t *tower) Layout() *Layout {
	return t.layout
}

func (t *tower) Tick(dt float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	angle := t.rotator.Advance(dt)
	// The stored angle keeps growing; only the float32 transform is reduced to one turn.
	t.root.SetRotation(0, float32(math.Mod(angle, 2*math.Pi)), 0)
}

func (t *tower) Angle() float64 {
	return t.rotator.Angle()
}
